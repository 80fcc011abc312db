package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meltforce/liftlog/internal/api"
	"github.com/meltforce/liftlog/internal/session"
)

const opTimeout = 15 * time.Second

// editField identifies which set input is focused while editing.
type editField int

const (
	fieldReps editField = iota
	fieldWeight
)

// confirmKind identifies which pending action needs a y/n answer.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmFinish
	confirmDiscard
)

// SessionModel is the TUI model for running an active workout session.
// All draft state lives in the session manager; the model only holds
// view state (selection, edit inputs, pending confirmations).
type SessionModel struct {
	mgr    *session.Manager
	width  int
	height int

	selectedSet int

	// Edit mode state
	editing     bool
	activeField editField
	repsInput   textinput.Model
	weightInput textinput.Model

	confirm confirmKind

	errMsg    string
	finished  *api.CompletedSession
	discarded bool
}

// refreshTickMsg re-renders periodically so the elapsed clock and the
// background sync status stay current.
type refreshTickMsg struct{}

// opDoneMsg reports completion of an async manager call.
type opDoneMsg struct {
	err *session.DraftError
}

// finishDoneMsg reports completion of finish-workout.
type finishDoneMsg struct {
	completed *api.CompletedSession
	err       *session.DraftError
}

// discardDoneMsg reports completion of discard-workout.
type discardDoneMsg struct {
	err *session.DraftError
}

// NewSessionModel creates the session runner model. The manager must
// already hold an active draft.
func NewSessionModel(mgr *session.Manager) SessionModel {
	reps := textinput.New()
	reps.Placeholder = "reps"
	reps.CharLimit = 4
	reps.Width = 6
	reps.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	reps.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	weight := textinput.New()
	weight.Placeholder = "kg"
	weight.CharLimit = 7
	weight.Width = 8
	weight.TextStyle = reps.TextStyle
	weight.Cursor.Style = reps.Cursor.Style

	return SessionModel{
		mgr:         mgr,
		repsInput:   reps,
		weightInput: weight,
	}
}

// Init starts the refresh ticker.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(refreshTick(), textinput.Blink)
}

func refreshTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update handles messages.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		return m, refreshTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Message
		}
		return m, nil

	case finishDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Message
			return m, nil
		}
		m.finished = msg.completed
		return m, tea.Quit

	case discardDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Message
			return m, nil
		}
		m.discarded = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateNormal handles keys outside edit and confirm modes.
func (m SessionModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.mgr.Draft()

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		// Leave the session running; push unsaved edits before exiting.
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			m.mgr.Flush(ctx)
			return tea.Quit()
		}

	case "right", "l", "n":
		m.mgr.NextExercise()
		m.selectedSet = 0
		m.errMsg = ""
		return m, nil

	case "left", "h", "p":
		m.mgr.PreviousExercise()
		m.selectedSet = 0
		m.errMsg = ""
		return m, nil

	case "down", "j":
		if ex := m.currentExercise(draft); ex != nil && m.selectedSet < len(ex.Sets)-1 {
			m.selectedSet++
		}
		return m, nil

	case "up", "k":
		if m.selectedSet > 0 {
			m.selectedSet--
		}
		return m, nil

	case "a":
		m.mgr.AddSet(m.mgr.CurrentExercise())
		if ex := m.currentExercise(m.mgr.Draft()); ex != nil {
			m.selectedSet = len(ex.Sets) - 1
		}
		return m, nil

	case "x":
		m.mgr.RemoveSet(m.mgr.CurrentExercise(), m.selectedSet)
		m.selectedSet = m.clampSet(m.mgr.Draft(), m.selectedSet)
		return m, nil

	case "enter", "e":
		ex := m.currentExercise(draft)
		if ex == nil || m.selectedSet >= len(ex.Sets) {
			return m, nil
		}
		set := ex.Sets[m.selectedSet]
		m.repsInput.SetValue("")
		m.weightInput.SetValue("")
		if set.Reps != nil {
			m.repsInput.SetValue(strconv.Itoa(*set.Reps))
		}
		if set.Weight != nil {
			m.weightInput.SetValue(strconv.FormatFloat(*set.Weight, 'f', -1, 64))
		}
		m.editing = true
		m.activeField = fieldReps
		m.weightInput.Blur()
		return m, m.repsInput.Focus()

	case " ", "c":
		ex := m.currentExercise(draft)
		if ex == nil || m.selectedSet >= len(ex.Sets) {
			return m, nil
		}
		set := ex.Sets[m.selectedSet]
		if !set.Valid() {
			m.errMsg = "Fill in reps and weight before completing a set"
			return m, nil
		}
		done := !set.Completed
		m.mgr.UpdateSet(m.mgr.CurrentExercise(), m.selectedSet, session.SetPatch{Completed: &done})
		m.errMsg = ""
		return m, nil

	case "m":
		idx := m.mgr.CurrentExercise()
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			m.mgr.MarkExerciseDone(ctx, idx)
			return opDoneMsg{}
		}

	case "f":
		if session.ValidSetCount(draft) == 0 {
			m.errMsg = "Log at least one set before finishing"
			return m, nil
		}
		m.confirm = confirmFinish
		return m, nil

	case "D":
		m.confirm = confirmDiscard
		return m, nil
	}

	return m, nil
}

// updateEditing handles keys while a set is being edited.
func (m SessionModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.repsInput.Blur()
		m.weightInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		if m.activeField == fieldReps {
			m.activeField = fieldWeight
			m.repsInput.Blur()
			return m, m.weightInput.Focus()
		}
		m.activeField = fieldReps
		m.weightInput.Blur()
		return m, m.repsInput.Focus()

	case "enter":
		patch, err := m.buildPatch()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.mgr.UpdateSet(m.mgr.CurrentExercise(), m.selectedSet, patch)
		m.editing = false
		m.errMsg = ""
		m.repsInput.Blur()
		m.weightInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.activeField == fieldReps {
		m.repsInput, cmd = m.repsInput.Update(msg)
	} else {
		m.weightInput, cmd = m.weightInput.Update(msg)
	}
	return m, cmd
}

// buildPatch converts the edit inputs into a set patch. Empty fields
// clear the corresponding value, turning the set back into a ghost.
func (m SessionModel) buildPatch() (session.SetPatch, error) {
	var patch session.SetPatch

	repsText := strings.TrimSpace(m.repsInput.Value())
	if repsText == "" {
		patch.ClearReps = true
	} else {
		reps, err := strconv.Atoi(repsText)
		if err != nil || reps < 0 {
			return patch, fmt.Errorf("reps must be a whole number")
		}
		patch.Reps = &reps
	}

	weightText := strings.TrimSpace(m.weightInput.Value())
	if weightText == "" {
		patch.ClearWeight = true
	} else {
		weight, err := strconv.ParseFloat(weightText, 64)
		if err != nil || weight < 0 {
			return patch, fmt.Errorf("weight must be a number")
		}
		patch.Weight = &weight
	}

	return patch, nil
}

// updateConfirm handles the y/n prompt for finish and discard.
func (m SessionModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		kind := m.confirm
		m.confirm = confirmNone
		if kind == confirmFinish {
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
				defer cancel()
				completed, err := m.mgr.FinishWorkout(ctx)
				return finishDoneMsg{completed: completed, err: err}
			}
		}
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			return discardDoneMsg{err: m.mgr.DiscardWorkout(ctx)}
		}

	case "n", "N", "esc":
		m.confirm = confirmNone
		return m, nil
	}
	return m, nil
}

func (m SessionModel) currentExercise(draft *api.WorkoutDraft) *api.ExerciseData {
	if draft == nil {
		return nil
	}
	idx := m.mgr.CurrentExercise()
	if idx >= len(draft.SessionData.Exercises) {
		return nil
	}
	return &draft.SessionData.Exercises[idx]
}

func (m SessionModel) clampSet(draft *api.WorkoutDraft, idx int) int {
	ex := m.currentExercise(draft)
	if ex == nil || len(ex.Sets) == 0 {
		return 0
	}
	if idx >= len(ex.Sets) {
		return len(ex.Sets) - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// View renders the session runner.
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	state := m.mgr.State()
	if state.Draft == nil {
		return "No active workout."
	}

	var sections []string
	sections = append(sections, m.renderHeader(state))
	sections = append(sections, m.renderExercisePanel(state))
	sections = append(sections, m.renderStatsLine(state.Draft))
	sections = append(sections, m.renderStatusLine(state))

	if m.confirm != confirmNone {
		sections = append(sections, m.renderConfirm())
	} else {
		sections = append(sections, m.renderHelpBar())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SessionModel) renderHeader(state session.State) string {
	elapsed := time.Since(state.Draft.StartedAt).Round(time.Second)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)

	return titleStyle.Render(fmt.Sprintf("🏋  ACTIVE WORKOUT · %s", formatElapsed(elapsed)))
}

func (m SessionModel) renderExercisePanel(state session.State) string {
	exercises := state.Draft.SessionData.Exercises
	if len(exercises) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Align(lipgloss.Center).
			Width(m.width).
			Render("No exercises in this workout yet.")
	}

	idx := state.CurrentExercise
	ex := exercises[idx]

	var b strings.Builder

	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	positionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	name := ex.Name
	if ex.IsDone {
		name += " ✓"
	}
	b.WriteString(nameStyle.Render(name))
	b.WriteString("  ")
	b.WriteString(positionStyle.Render(fmt.Sprintf("(%d/%d)", idx+1, len(exercises))))
	b.WriteString("\n\n")

	for i, set := range ex.Sets {
		b.WriteString(m.renderSetRow(i, set))
		b.WriteString("\n")
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Width(min(m.width-2, 60))

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m SessionModel) renderSetRow(i int, set api.SetData) string {
	selected := i == m.selectedSet

	if selected && m.editing {
		return fmt.Sprintf("▸ #%d  %s × %s", i+1, m.repsInput.View(), m.weightInput.View())
	}

	reps := "—"
	if set.Reps != nil {
		reps = strconv.Itoa(*set.Reps)
	}
	weight := "—"
	if set.Weight != nil {
		weight = strconv.FormatFloat(*set.Weight, 'f', -1, 64) + " kg"
	}

	marker := " "
	if selected {
		marker = "▸"
	}
	check := " "
	if set.Completed {
		check = "✓"
	}

	row := fmt.Sprintf("%s #%d  %s × %s  %s", marker, i+1, reps, weight, check)

	style := lipgloss.NewStyle()
	switch {
	case set.Ghost():
		style = style.Foreground(lipgloss.Color(ColorDisabledText))
	case set.Completed:
		style = style.Foreground(lipgloss.Color(ColorSuccess))
	default:
		style = style.Foreground(lipgloss.Color(ColorPrimaryText))
	}
	if selected {
		style = style.Bold(true)
	}

	return style.Render(row)
}

func (m SessionModel) renderStatsLine(draft *api.WorkoutDraft) string {
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Width(m.width)

	return statsStyle.Render(fmt.Sprintf(
		"Score %.1f · %d valid sets · %d/%d exercises done",
		session.EstimatedScore(draft),
		session.ValidSetCount(draft),
		session.CompletedExerciseCount(draft),
		len(draft.SessionData.Exercises),
	))
}

func (m SessionModel) renderStatusLine(state session.State) string {
	var text string
	var color string
	switch {
	case m.errMsg != "":
		text = "✗ " + m.errMsg
		color = ColorError
	case state.Syncing:
		text = "↻ Syncing..."
		color = ColorWarning
	case state.Dirty:
		text = "● Unsaved changes"
		color = ColorWarning
	default:
		text = "✓ Saved"
		color = ColorSuccess
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Width(m.width).
		Render(text)
}

func (m SessionModel) renderConfirm() string {
	prompt := "Finish this workout? (y/n)"
	if m.confirm == confirmDiscard {
		prompt = "Discard this workout? All progress will be lost. (y/n)"
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true).
		Width(m.width).
		Render(prompt)
}

func (m SessionModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Width(m.width)

	if m.editing {
		return helpStyle.Render("tab switch field · enter save · esc cancel")
	}
	return helpStyle.Render("↑↓ set · ←→ exercise · e edit · space complete · a add · x remove · m done · f finish · D discard · q exit")
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// RunSessionTUI runs the session runner and prints a summary after the
// program exits.
func RunSessionTUI(mgr *session.Manager) error {
	p := tea.NewProgram(NewSessionModel(mgr), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	final := finalModel.(SessionModel)
	switch {
	case final.finished != nil:
		fmt.Printf("🎉 Workout finished! Session score: %.1f across %d sets\n",
			final.finished.SessionScore, len(final.finished.CompletedSets))
	case final.discarded:
		fmt.Println("Workout discarded.")
	default:
		fmt.Println("💡 Workout is still active. Run 'liftlog session' to resume it.")
	}

	return nil
}
