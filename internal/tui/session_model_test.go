package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/liftlog/internal/api"
	"github.com/meltforce/liftlog/internal/session"
)

type stubAPI struct{}

func (stubAPI) StartWorkout(_ context.Context, templateID *int64) (*api.WorkoutDraft, error) {
	reps := 8
	weight := 100.0
	return &api.WorkoutDraft{
		ID:        1,
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
		SessionData: api.SessionData{Exercises: []api.ExerciseData{
			{DefinitionID: 1, Name: "Bench Press", Sets: []api.SetData{
				{Reps: &reps, Weight: &weight},
				api.NewSet(),
			}},
			{DefinitionID: 2, Name: "Squat", Sets: []api.SetData{api.NewSet()}},
		}},
	}, nil
}

func (stubAPI) GetDraft(context.Context) (*api.WorkoutDraft, error) { return nil, nil }
func (stubAPI) UpdateDraft(_ context.Context, _ api.SessionData) (*api.WorkoutDraft, error) {
	return &api.WorkoutDraft{UpdatedAt: time.Now()}, nil
}
func (stubAPI) AddDraftExercise(_ context.Context, _ int64) (*api.WorkoutDraft, error) {
	return nil, nil
}
func (stubAPI) FinishWorkout(context.Context) (*api.CompletedSession, error) {
	return &api.CompletedSession{}, nil
}
func (stubAPI) DeleteDraft(context.Context) error { return nil }

func newTestModel(t *testing.T) SessionModel {
	t.Helper()
	mgr := session.NewManager(stubAPI{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mgr.SetDebounce(time.Hour)
	if derr := mgr.StartWorkout(context.Background(), nil); derr != nil {
		t.Fatal(derr)
	}
	m := NewSessionModel(mgr)
	m.width = 80
	m.height = 24
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestSetSelectionClamps verifies up/down never leave the set list.
func TestSetSelectionClamps(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("k"))
	m = next.(SessionModel)
	if m.selectedSet != 0 {
		t.Errorf("selectedSet = %d after up at top", m.selectedSet)
	}

	for i := 0; i < 5; i++ {
		next, _ = m.Update(key("j"))
		m = next.(SessionModel)
	}
	if m.selectedSet != 1 {
		t.Errorf("selectedSet = %d, want 1 (last set)", m.selectedSet)
	}
}

// TestExerciseNavigationResetsSelection verifies switching exercises puts
// the cursor back on the first set.
func TestExerciseNavigationResetsSelection(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("j"))
	m = next.(SessionModel)
	next, _ = m.Update(key("n"))
	m = next.(SessionModel)

	if m.mgr.CurrentExercise() != 1 {
		t.Errorf("current exercise = %d, want 1", m.mgr.CurrentExercise())
	}
	if m.selectedSet != 0 {
		t.Errorf("selectedSet = %d, want 0", m.selectedSet)
	}
}

// TestCompleteGhostSetRejected verifies a ghost set cannot be completed.
func TestCompleteGhostSetRejected(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("j")) // select the ghost set
	m = next.(SessionModel)
	next, _ = m.Update(key(" "))
	m = next.(SessionModel)

	if m.errMsg == "" {
		t.Error("completing a ghost set was accepted")
	}
	if set := m.mgr.Draft().SessionData.Exercises[0].Sets[1]; set.Completed {
		t.Error("ghost set marked completed")
	}
}

// TestCompleteValidSetToggles verifies space toggles completion on a
// filled-in set.
func TestCompleteValidSetToggles(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key(" "))
	m = next.(SessionModel)

	if set := m.mgr.Draft().SessionData.Exercises[0].Sets[0]; !set.Completed {
		t.Error("valid set not completed")
	}
}

// TestEditCommitAppliesPatch verifies the edit flow writes both fields
// through to the draft.
func TestEditCommitAppliesPatch(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("e"))
	m = next.(SessionModel)
	if !m.editing {
		t.Fatal("edit mode not entered")
	}

	m.repsInput.SetValue("5")
	m.weightInput.SetValue("102.5")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)

	if m.editing {
		t.Error("edit mode not exited on commit")
	}
	set := m.mgr.Draft().SessionData.Exercises[0].Sets[0]
	if set.Reps == nil || *set.Reps != 5 || set.Weight == nil || *set.Weight != 102.5 {
		t.Errorf("set after edit = %+v", set)
	}
}

// TestEditEmptyFieldsClear verifies blanking both inputs turns the set
// back into a ghost.
func TestEditEmptyFieldsClear(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("e"))
	m = next.(SessionModel)
	m.repsInput.SetValue("")
	m.weightInput.SetValue("")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)

	if set := m.mgr.Draft().SessionData.Exercises[0].Sets[0]; !set.Ghost() {
		t.Errorf("set after clearing = %+v, want ghost", set)
	}
}

// TestBuildPatchRejectsGarbage verifies non-numeric input is refused.
func TestBuildPatchRejectsGarbage(t *testing.T) {
	m := newTestModel(t)
	m.repsInput.SetValue("heavy")
	m.weightInput.SetValue("100")

	if _, err := m.buildPatch(); err == nil {
		t.Error("non-numeric reps accepted")
	}

	m.repsInput.SetValue("-3")
	if _, err := m.buildPatch(); err == nil {
		t.Error("negative reps accepted")
	}
}

// TestFinishGatedOnValidSets verifies f without any valid set shows an
// error instead of the confirm prompt.
func TestFinishGatedOnValidSets(t *testing.T) {
	m := newTestModel(t)

	// Clear the one valid set first.
	next, _ := m.Update(key("e"))
	m = next.(SessionModel)
	m.repsInput.SetValue("")
	m.weightInput.SetValue("")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)

	next, _ = m.Update(key("f"))
	m = next.(SessionModel)

	if m.confirm != confirmNone {
		t.Error("finish confirm shown with zero valid sets")
	}
	if m.errMsg == "" {
		t.Error("no error message for empty finish")
	}
}

// TestDiscardConfirmCancel verifies n dismisses the discard prompt.
func TestDiscardConfirmCancel(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("D"))
	m = next.(SessionModel)
	if m.confirm != confirmDiscard {
		t.Fatal("discard confirm not shown")
	}

	next, _ = m.Update(key("n"))
	m = next.(SessionModel)
	if m.confirm != confirmNone {
		t.Error("confirm prompt not dismissed")
	}
	if m.mgr.Draft() == nil {
		t.Error("draft discarded after cancel")
	}
}
