package session

import (
	"math"
	"testing"

	"github.com/meltforce/liftlog/internal/api"
)

func draftWith(exercises ...api.ExerciseData) *api.WorkoutDraft {
	return &api.WorkoutDraft{ID: 1, SessionData: api.SessionData{Exercises: exercises}}
}

func set(reps int, weight float64) api.SetData {
	return api.SetData{Reps: &reps, Weight: &weight}
}

// TestEstimatedScoreNil verifies nil and all-ghost drafts score exactly 0.
func TestEstimatedScoreNil(t *testing.T) {
	if got := EstimatedScore(nil); got != 0 {
		t.Errorf("score(nil) = %v, want 0", got)
	}

	d := draftWith(api.ExerciseData{Name: "Squat", Sets: []api.SetData{api.NewSet(), api.NewSet()}})
	if got := EstimatedScore(d); got != 0 {
		t.Errorf("score(all-ghost) = %v, want 0", got)
	}
}

// TestEstimatedScoreEpley verifies the Epley sum over valid sets only.
func TestEstimatedScoreEpley(t *testing.T) {
	d := draftWith(api.ExerciseData{
		Name: "Deadlift",
		Sets: []api.SetData{
			set(5, 100),    // 100 * (1 + 5/30)
			set(3, 120),    // 120 * (1 + 3/30)
			api.NewSet(),   // ghost, excluded
			{Reps: nil, Weight: floatp(80)}, // partial, excluded
		},
	})

	want := 100*(1+5.0/30) + 120*(1+3.0/30)
	if got := EstimatedScore(d); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

// TestEstimatedScoreMonotonic verifies adding valid sets never lowers the
// estimate.
func TestEstimatedScoreMonotonic(t *testing.T) {
	sets := []api.SetData{}
	prev := 0.0
	for i := 1; i <= 5; i++ {
		sets = append(sets, set(i, float64(10*i)))
		d := draftWith(api.ExerciseData{Name: "Row", Sets: sets})
		got := EstimatedScore(d)
		if got < prev {
			t.Fatalf("score decreased from %v to %v after adding a valid set", prev, got)
		}
		prev = got
	}
}

// TestValidSetCount verifies the validity predicate: both fields non-null
// and strictly positive.
func TestValidSetCount(t *testing.T) {
	zero := 0
	d := draftWith(api.ExerciseData{
		Name: "Bench",
		Sets: []api.SetData{
			set(5, 50),
			api.NewSet(),
			{Reps: &zero, Weight: floatp(50)},  // zero reps: invalid
			{Reps: intp(5), Weight: nil},       // null weight: invalid
			{Reps: intp(8), Weight: floatp(0)}, // zero weight: invalid
		},
	})

	if got := ValidSetCount(d); got != 1 {
		t.Errorf("valid sets = %d, want 1", got)
	}
	if total := len(d.SessionData.Exercises[0].Sets); ValidSetCount(d) > total {
		t.Errorf("valid count exceeds total sets")
	}
	if got := ValidSetCount(nil); got != 0 {
		t.Errorf("valid sets(nil) = %d, want 0", got)
	}
}

// TestCompletedExerciseCount verifies only is_done exercises count.
func TestCompletedExerciseCount(t *testing.T) {
	d := draftWith(
		api.ExerciseData{Name: "A", IsDone: false},
		api.ExerciseData{Name: "B", IsDone: true},
		api.ExerciseData{Name: "C", IsDone: false},
	)

	if got := CompletedExerciseCount(d); got != 1 {
		t.Errorf("completed exercises = %d, want 1", got)
	}
	if got := CompletedExerciseCount(nil); got != 0 {
		t.Errorf("completed exercises(nil) = %d, want 0", got)
	}
}
