// Package session manages the active workout draft: local-first editing of
// the nested session structure, debounced synchronization to the server, and
// recovery from missing drafts and failed flushes.
//
// The server is the durable owner of the draft; the manager holds a
// synchronized in-memory copy. Every edit produces a new immutable snapshot
// (copy-on-write of only the touched path) and marks the draft dirty; a
// single-slot debounce timer coalesces bursts of edits into one flush.
// Flush failures are never surfaced — the dirty flag stays set and the next
// edit or explicit flush retries.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/liftlog/internal/api"
)

// DefaultSyncDebounce is the quiet period after the last edit before a
// deferred flush fires.
const DefaultSyncDebounce = 2 * time.Second

// DraftAPI is the slice of the API client the manager needs. Abstracted so
// tests can substitute a fake.
type DraftAPI interface {
	StartWorkout(ctx context.Context, templateID *int64) (*api.WorkoutDraft, error)
	GetDraft(ctx context.Context) (*api.WorkoutDraft, error)
	UpdateDraft(ctx context.Context, data api.SessionData) (*api.WorkoutDraft, error)
	AddDraftExercise(ctx context.Context, exerciseID int64) (*api.WorkoutDraft, error)
	FinishWorkout(ctx context.Context) (*api.CompletedSession, error)
	DeleteDraft(ctx context.Context) error
}

// Compile-time check: *api.Client satisfies DraftAPI.
var _ DraftAPI = (*api.Client)(nil)

// Manager owns the active workout draft for one client.
type Manager struct {
	api      DraftAPI
	log      *slog.Logger
	debounce time.Duration

	sched scheduler

	// flushMu serializes flushes so at most one PUT is in flight.
	flushMu sync.Mutex

	mu      sync.Mutex
	draft   *api.WorkoutDraft
	current int
	rev     uint64
	loading bool
	syncing bool
	dirty   bool
}

// NewManager creates a Manager with the default debounce interval.
func NewManager(a DraftAPI, log *slog.Logger) *Manager {
	return &Manager{api: a, log: log, debounce: DefaultSyncDebounce}
}

// SetDebounce overrides the quiet period. Must be called before edits begin.
func (m *Manager) SetDebounce(d time.Duration) {
	m.debounce = d
}

// State is an atomic snapshot of the manager's observable state.
type State struct {
	Draft           *api.WorkoutDraft
	CurrentExercise int
	Loading         bool
	Syncing         bool
	Dirty           bool
}

// State returns the current store state. The draft snapshot is shared and
// must be treated as read-only.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Draft:           m.draft,
		CurrentExercise: m.current,
		Loading:         m.loading,
		Syncing:         m.syncing,
		Dirty:           m.dirty,
	}
}

// Draft returns the current draft snapshot, or nil. Read-only.
func (m *Manager) Draft() *api.WorkoutDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Dirty reports whether local edits have not been confirmed persisted.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Syncing reports whether a flush is in flight.
func (m *Manager) Syncing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncing
}

// --- Lifecycle ---

// StartWorkout requests a new draft seeded from templateID (nil for an
// ad-hoc session) and replaces local state wholesale. If the server already
// holds a draft it returns that one instead.
func (m *Manager) StartWorkout(ctx context.Context, templateID *int64) *DraftError {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	d, err := m.api.StartWorkout(ctx, templateID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.draft = nil
		return wrapErr(err, "Failed to start workout")
	}
	m.sched.Cancel()
	m.draft = d
	m.current = 0
	m.dirty = false
	m.rev++
	return nil
}

// LoadDraft fetches an existing draft, if any. A 404 is normal absence:
// it returns (false, nil) with no draft. Any other failure is returned.
func (m *Manager) LoadDraft(ctx context.Context) (bool, *DraftError) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	d, err := m.api.GetDraft(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		if api.IsNotFound(err) {
			m.draft = nil
			return false, nil
		}
		return false, wrapErr(err, "Failed to load workout")
	}
	m.sched.Cancel()
	m.draft = d
	m.current = 0
	m.dirty = false
	m.rev++
	return true, nil
}

// Reset clears all state and cancels any pending flush. Used on logout.
func (m *Manager) Reset() {
	m.sched.Cancel()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	m.current = 0
	m.loading = false
	m.syncing = false
	m.dirty = false
	m.rev++
}

// --- Mutations ---
//
// All mutations are silent no-ops without an active draft or with an index
// out of range: they are only invoked from UI state rendered off a valid
// snapshot. Each produces a new snapshot sharing nothing mutable with the
// previous one along the edited path.

// SetPatch is a partial update of one set. Nil pointer fields leave the
// current value untouched; ClearReps/ClearWeight null a field out (the user
// emptied the input).
type SetPatch struct {
	Reps        *int
	Weight      *float64
	Completed   *bool
	ClearReps   bool
	ClearWeight bool
}

// UpdateSet merges patch into the target set and schedules a deferred flush.
func (m *Manager) UpdateSet(exerciseIdx, setIdx int, patch SetPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return
	}
	exs := m.draft.SessionData.Exercises
	if exerciseIdx < 0 || exerciseIdx >= len(exs) {
		return
	}
	if setIdx < 0 || setIdx >= len(exs[exerciseIdx].Sets) {
		return
	}

	data := cloneForExercise(m.draft.SessionData, exerciseIdx)
	applyPatch(&data.Exercises[exerciseIdx].Sets[setIdx], patch)
	m.commitLocked(data)
	m.sched.Arm(m.debounce, m.backgroundFlush)
}

// AddSet appends an empty entry row to the exercise.
func (m *Manager) AddSet(exerciseIdx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return
	}
	if exerciseIdx < 0 || exerciseIdx >= len(m.draft.SessionData.Exercises) {
		return
	}

	data := cloneForExercise(m.draft.SessionData, exerciseIdx)
	ex := &data.Exercises[exerciseIdx]
	ex.Sets = append(ex.Sets, api.NewSet())
	m.commitLocked(data)
	m.sched.Arm(m.debounce, m.backgroundFlush)
}

// RemoveSet removes the set at setIdx. Every exercise keeps at least one
// set: removing the only set is a no-op that neither dirties the draft nor
// schedules a flush.
func (m *Manager) RemoveSet(exerciseIdx, setIdx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return
	}
	exs := m.draft.SessionData.Exercises
	if exerciseIdx < 0 || exerciseIdx >= len(exs) {
		return
	}
	sets := exs[exerciseIdx].Sets
	if setIdx < 0 || setIdx >= len(sets) || len(sets) <= 1 {
		return
	}

	data := cloneForExercise(m.draft.SessionData, exerciseIdx)
	ex := &data.Exercises[exerciseIdx]
	ex.Sets = append(ex.Sets[:setIdx], ex.Sets[setIdx+1:]...)
	m.commitLocked(data)
	m.sched.Arm(m.debounce, m.backgroundFlush)
}

// MarkExerciseDone trims trailing ghost sets (down to at least one set),
// marks the exercise done, and flushes immediately — marking done is a
// checkpoint, not a keystroke. The flush itself still swallows failures;
// an unsynced done-mark simply retries on the next trigger.
func (m *Manager) MarkExerciseDone(ctx context.Context, exerciseIdx int) {
	m.mu.Lock()
	if m.draft == nil {
		m.mu.Unlock()
		return
	}
	if exerciseIdx < 0 || exerciseIdx >= len(m.draft.SessionData.Exercises) {
		m.mu.Unlock()
		return
	}

	data := cloneForExercise(m.draft.SessionData, exerciseIdx)
	ex := &data.Exercises[exerciseIdx]
	for len(ex.Sets) > 1 && ex.Sets[len(ex.Sets)-1].Ghost() {
		ex.Sets = ex.Sets[:len(ex.Sets)-1]
	}
	ex.IsDone = true
	m.commitLocked(data)
	m.mu.Unlock()

	m.Flush(ctx)
}

// AddExercise appends an ad-hoc exercise to the draft. Pending local edits
// are flushed first so the server-side append does not overwrite them; the
// server's merged draft then replaces local state (the server is
// authoritative for the merged structure).
func (m *Manager) AddExercise(ctx context.Context, definitionID int64) *DraftError {
	m.mu.Lock()
	if m.draft == nil {
		m.mu.Unlock()
		return validationErr("No active workout")
	}
	dirty := m.dirty
	m.mu.Unlock()

	if dirty {
		m.Flush(ctx)
	}

	d, err := m.api.AddDraftExercise(ctx, definitionID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		return wrapErr(err, "Failed to add exercise")
	}
	m.sched.Cancel()
	m.draft = d
	m.dirty = false
	m.rev++
	return nil
}

// commitLocked installs a new session-data snapshot and marks the draft
// dirty. Caller holds m.mu.
func (m *Manager) commitLocked(data api.SessionData) {
	d := *m.draft
	d.SessionData = data
	m.draft = &d
	m.dirty = true
	m.rev++
}

// --- Navigation ---
//
// Pure cursor movement, clamped to the exercise range. No sync, no mutation.

func (m *Manager) CurrentExercise() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) GoToExercise(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.clampLocked(idx)
}

func (m *Manager) NextExercise() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.clampLocked(m.current + 1)
}

func (m *Manager) PreviousExercise() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.clampLocked(m.current - 1)
}

func (m *Manager) clampLocked(idx int) int {
	max := 0
	if m.draft != nil {
		max = len(m.draft.SessionData.Exercises) - 1
	}
	if max < 0 {
		max = 0
	}
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

// --- Sync ---

func (m *Manager) backgroundFlush() {
	m.Flush(context.Background())
}

// Flush persists the current session data if the draft is dirty. Idempotent
// and safe to call speculatively. Failures are logged and swallowed: the
// dirty flag stays set and the next trigger retries. Edits that land while
// the PUT is in flight keep the draft dirty for the next flush; the in-flight
// request carries whatever snapshot existed at send time.
func (m *Manager) Flush(ctx context.Context) {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.mu.Lock()
	if m.draft == nil || !m.dirty {
		m.mu.Unlock()
		return
	}
	m.sched.Cancel()
	m.syncing = true
	snapshot := m.draft.SessionData
	sent := m.rev
	m.mu.Unlock()

	updated, err := m.api.UpdateDraft(ctx, snapshot)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncing = false
	if err != nil {
		m.log.Warn("draft sync failed, will retry on next trigger", "error", err)
		return
	}
	if m.rev == sent && m.draft != nil {
		m.dirty = false
		d := *m.draft
		d.UpdatedAt = updated.UpdatedAt
		m.draft = &d
	}
}

// PendingFlush reports whether a deferred flush is scheduled.
func (m *Manager) PendingFlush() bool {
	return m.sched.Pending()
}

// --- Terminal operations ---

// FinishWorkout flushes any pending edits, finalizes the session server-side,
// and clears the draft. The server decides set validity and computes the
// authoritative score.
func (m *Manager) FinishWorkout(ctx context.Context) (*api.CompletedSession, *DraftError) {
	m.mu.Lock()
	if m.draft == nil {
		m.mu.Unlock()
		return nil, validationErr("No active workout")
	}
	dirty := m.dirty
	m.mu.Unlock()

	if dirty {
		m.Flush(ctx)
	}

	cs, err := m.api.FinishWorkout(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		return nil, wrapErr(err, "Failed to finish workout")
	}
	m.sched.Cancel()
	m.draft = nil
	m.current = 0
	m.dirty = false
	m.rev++
	return cs, nil
}

// DiscardWorkout deletes the draft without saving. A 404 means it is already
// gone and counts as success. Local state clears either way on success.
func (m *Manager) DiscardWorkout(ctx context.Context) *DraftError {
	m.sched.Cancel()

	err := m.api.DeleteDraft(ctx)
	if err != nil && !api.IsNotFound(err) {
		return wrapErr(err, "Failed to discard workout")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	m.current = 0
	m.dirty = false
	m.rev++
	return nil
}

// --- Snapshot helpers ---

// cloneForExercise copies the exercises slice and the target exercise's sets
// slice, so edits to that path cannot alias the previous snapshot. Untouched
// exercises keep sharing their (never-mutated-in-place) set slices.
func cloneForExercise(data api.SessionData, exerciseIdx int) api.SessionData {
	exercises := make([]api.ExerciseData, len(data.Exercises))
	copy(exercises, data.Exercises)

	src := data.Exercises[exerciseIdx].Sets
	sets := make([]api.SetData, len(src))
	copy(sets, src)
	exercises[exerciseIdx].Sets = sets

	return api.SessionData{Exercises: exercises}
}

// applyPatch merges patch into s. Values are copied into fresh pointers so
// the snapshot never aliases caller-owned memory.
func applyPatch(s *api.SetData, patch SetPatch) {
	switch {
	case patch.ClearReps:
		s.Reps = nil
	case patch.Reps != nil:
		v := *patch.Reps
		s.Reps = &v
	}
	switch {
	case patch.ClearWeight:
		s.Weight = nil
	case patch.Weight != nil:
		v := *patch.Weight
		s.Weight = &v
	}
	if patch.Completed != nil {
		s.Completed = *patch.Completed
	}
}
