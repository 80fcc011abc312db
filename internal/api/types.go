package api

import "time"

// SetData is one set row inside an exercise. Reps and weight are pointers
// because an empty entry row ("ghost" set) has both fields null on the wire.
type SetData struct {
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Completed bool     `json:"completed"`
}

// Valid reports whether the set counts toward scoring: both fields present
// and positive. Completed is only meaningful on valid sets.
func (s SetData) Valid() bool {
	return s.Reps != nil && s.Weight != nil && *s.Reps > 0 && *s.Weight > 0
}

// Ghost reports whether the set is an empty placeholder row (both fields null).
func (s SetData) Ghost() bool {
	return s.Reps == nil && s.Weight == nil
}

// EpleyScore returns weight * (1 + reps/30), or 0 for an invalid set.
func (s SetData) EpleyScore() float64 {
	if !s.Valid() {
		return 0
	}
	return *s.Weight * (1 + float64(*s.Reps)/30)
}

// ExerciseData is one exercise instance within a draft. Name is a denormalized
// copy of the definition's name at the time the exercise was added.
type ExerciseData struct {
	DefinitionID int64     `json:"definition_id"`
	Name         string    `json:"name"`
	Sets         []SetData `json:"sets"`
	IsDone       bool      `json:"is_done"`
}

// SessionData is the mutable payload of a workout draft. Exercise order is
// display/navigation order and is preserved across edits and syncs.
type SessionData struct {
	Exercises []ExerciseData `json:"exercises"`
}

// WorkoutDraft is the in-progress workout session. The server is the durable
// owner; the client holds a synchronized copy. At most one draft per user.
type WorkoutDraft struct {
	ID          int64       `json:"id"`
	TemplateID  *int64      `json:"template_id"`
	SessionData SessionData `json:"session_data"`
	StartedAt   time.Time   `json:"started_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CompletedSet is one scored set of a finished session.
type CompletedSet struct {
	ID                   int64   `json:"id"`
	ExerciseDefinitionID int64   `json:"exercise_definition_id"`
	SetNumber            int     `json:"set_number"`
	Reps                 int     `json:"reps"`
	Weight               float64 `json:"weight"`
	EpleyScore           float64 `json:"epley_score"`
}

// CompletedSession is the terminal snapshot returned by finishing a workout.
// SessionScore is server-computed and authoritative.
type CompletedSession struct {
	ID            int64          `json:"id"`
	TemplateID    *int64         `json:"template_id"`
	StartedAt     time.Time      `json:"started_at"`
	CompletedAt   time.Time      `json:"completed_at"`
	SessionScore  float64        `json:"session_score"`
	CompletedSets []CompletedSet `json:"completed_sets"`
}

// Exercise is a reusable exercise definition.
type Exercise struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Template is a reusable workout layout within a split.
type Template struct {
	ID        int64      `json:"id"`
	SplitID   int64      `json:"split_id"`
	Name      string     `json:"name"`
	Order     int        `json:"order"`
	CreatedAt time.Time  `json:"created_at"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// Split groups templates (e.g. push/pull/legs).
type Split struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	Templates []Template `json:"templates,omitempty"`
}

// User is the authenticated account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Token is the auth response for register/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SessionSummary is one completed session in the analytics list.
type SessionSummary struct {
	ID           int64     `json:"id"`
	TemplateID   *int64    `json:"template_id"`
	TemplateName *string   `json:"template_name"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	SessionScore float64   `json:"session_score"`
}

// SetHistory is one set within an exercise's per-session history.
type SetHistory struct {
	SetNumber  int     `json:"set_number"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	EpleyScore float64 `json:"epley_score"`
}

// ExerciseSessionHistory is the performance of one exercise on one session date.
type ExerciseSessionHistory struct {
	SessionID  int64        `json:"session_id"`
	Date       time.Time    `json:"date"`
	TotalScore float64      `json:"total_score"`
	Sets       []SetHistory `json:"sets"`
}

// ExerciseSummary is the all-time statistics for one exercise.
type ExerciseSummary struct {
	ExerciseID          int64      `json:"exercise_id"`
	ExerciseName        string     `json:"exercise_name"`
	TotalSessions       int        `json:"total_sessions"`
	TotalSets           int        `json:"total_sets"`
	TotalVolume         float64    `json:"total_volume"`
	BestSetWeight       float64    `json:"best_set_weight"`
	BestSetReps         int        `json:"best_set_reps"`
	BestSetEpleyScore   float64    `json:"best_set_epley_score"`
	AverageSessionScore float64    `json:"average_session_score"`
	LastPerformed       *time.Time `json:"last_performed"`
}

// NewSet returns an empty placeholder set for data entry.
func NewSet() SetData {
	return SetData{Reps: nil, Weight: nil, Completed: false}
}
