package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/session"
	"github.com/meltforce/liftlog/internal/tui"
)

// newManager builds a session manager wired to the API client with the
// configured debounce.
func (a *app) newManager() *session.Manager {
	mgr := session.NewManager(a.client, a.log)
	mgr.SetDebounce(a.cfg.Sync.Debounce())
	return mgr
}

var startTemplateID int64

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout and open the session runner",
	Long: `Start a workout session, optionally from a template, and drop into
the interactive session runner. If a draft already exists on the server
it is resumed instead.`,
	Args: cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		mgr := a.newManager()

		var templateID *int64
		if startTemplateID > 0 {
			templateID = &startTemplateID
		}
		if derr := mgr.StartWorkout(cmd.Context(), templateID); derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}

		return tui.RunSessionTUI(mgr)
	}),
}

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"resume"},
	Short:   "Open the session runner for the active workout",
	Args:    cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		mgr := a.newManager()

		found, derr := mgr.LoadDraft(cmd.Context())
		if derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}
		if !found {
			return fmt.Errorf("no active workout — run 'liftlog start' first")
		}

		return tui.RunSessionTUI(mgr)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active workout, if any",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		mgr := a.newManager()

		found, derr := mgr.LoadDraft(cmd.Context())
		if derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}
		if !found {
			fmt.Println("No active workout.")
			return nil
		}

		draft := mgr.Draft()
		fmt.Printf("Active workout since %s\n", draft.StartedAt.Local().Format("15:04"))
		fmt.Printf("  %d exercises, %d valid sets, estimated score %.1f\n",
			len(draft.SessionData.Exercises),
			session.ValidSetCount(draft),
			session.EstimatedScore(draft))
		for _, ex := range draft.SessionData.Exercises {
			done := " "
			if ex.IsDone {
				done = "✓"
			}
			fmt.Printf("  %s %s (%d sets)\n", done, ex.Name, len(ex.Sets))
		}
		return nil
	}),
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the active workout",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		mgr := a.newManager()

		found, derr := mgr.LoadDraft(cmd.Context())
		if derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}
		if !found {
			return fmt.Errorf("no active workout")
		}
		if session.ValidSetCount(mgr.Draft()) == 0 {
			return fmt.Errorf("no valid sets logged — nothing to finish")
		}

		completed, derr := mgr.FinishWorkout(cmd.Context())
		if derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}

		fmt.Printf("🎉 Workout finished! Session score: %.1f across %d sets\n",
			completed.SessionScore, len(completed.CompletedSets))
		return nil
	}),
}

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise <exercise-id>",
	Short: "Add an exercise to the active workout",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}

		mgr := a.newManager()

		found, derr := mgr.LoadDraft(cmd.Context())
		if derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}
		if !found {
			return fmt.Errorf("no active workout")
		}

		if derr := mgr.AddExercise(cmd.Context(), exerciseID); derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}

		draft := mgr.Draft()
		added := draft.SessionData.Exercises[len(draft.SessionData.Exercises)-1]
		fmt.Printf("✓ Added %s to the active workout\n", added.Name)
		return nil
	}),
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the active workout",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		mgr := a.newManager()

		if derr := mgr.DiscardWorkout(cmd.Context()); derr != nil {
			return fmt.Errorf("%s", derr.Message)
		}
		fmt.Println("Workout discarded.")
		return nil
	}),
}

func init() {
	startCmd.Flags().Int64Var(&startTemplateID, "template", 0, "template to seed the session from")
}
