package session

import "github.com/meltforce/liftlog/internal/api"

// Derived read-models over a draft snapshot. These are recomputed on every
// read: drafts are replaced wholesale on each store update, so there is no
// cache to invalidate.

// EstimatedScore sums weight*(1+reps/30) over all valid sets. The server
// computes the authoritative score on finish; this is the client-side
// estimate shown during the session. Returns 0 for a nil draft.
func EstimatedScore(d *api.WorkoutDraft) float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, ex := range d.SessionData.Exercises {
		for _, s := range ex.Sets {
			total += s.EpleyScore()
		}
	}
	return total
}

// ValidSetCount counts sets with non-null, positive reps and weight.
func ValidSetCount(d *api.WorkoutDraft) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, ex := range d.SessionData.Exercises {
		for _, s := range ex.Sets {
			if s.Valid() {
				n++
			}
		}
	}
	return n
}

// CompletedExerciseCount counts exercises the user has marked done.
func CompletedExerciseCount(d *api.WorkoutDraft) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, ex := range d.SessionData.Exercises {
		if ex.IsDone {
			n++
		}
	}
	return n
}
