package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/api"
)

var historyTemplateID int64

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed workout sessions",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		var templateID *int64
		if historyTemplateID > 0 {
			templateID = &historyTemplateID
		}
		sessions, err := a.client.ListSessions(cmd.Context(), templateID)
		if err != nil {
			return fmt.Errorf("listing sessions: %s", api.Detail(err, "server error"))
		}
		if len(sessions) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}
		for _, s := range sessions {
			name := "ad-hoc"
			if s.TemplateName != nil {
				name = *s.TemplateName
			}
			dur := s.CompletedAt.Sub(s.StartedAt).Round(time.Minute)
			fmt.Printf("%s  %-20s  score %7.1f  (%s)\n",
				s.CompletedAt.Local().Format("2006-01-02"), name, s.SessionScore, dur)
		}
		return nil
	}),
}

var exerciseHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Per-session history for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		history, err := a.client.GetExerciseHistory(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching history: %s", api.Detail(err, "server error"))
		}
		if len(history) == 0 {
			fmt.Println("No history for this exercise yet.")
			return nil
		}
		for _, h := range history {
			fmt.Printf("%s  total %.1f\n", h.Date.Local().Format("2006-01-02"), h.TotalScore)
			for _, set := range h.Sets {
				fmt.Printf("    #%d  %d × %.1f kg  (%.1f)\n",
					set.SetNumber, set.Reps, set.Weight, set.EpleyScore)
			}
		}
		return nil
	}),
}

var exerciseSummaryCmd = &cobra.Command{
	Use:   "summary <id>",
	Short: "All-time statistics for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := a.client.GetExerciseSummary(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching summary: %s", api.Detail(err, "server error"))
		}

		fmt.Printf("%s\n", s.ExerciseName)
		fmt.Printf("  Sessions:      %d\n", s.TotalSessions)
		fmt.Printf("  Sets:          %d\n", s.TotalSets)
		fmt.Printf("  Total volume:  %.1f kg\n", s.TotalVolume)
		fmt.Printf("  Best set:      %d × %.1f kg  (%.1f)\n",
			s.BestSetReps, s.BestSetWeight, s.BestSetEpleyScore)
		fmt.Printf("  Avg score:     %.1f\n", s.AverageSessionScore)
		if s.LastPerformed != nil {
			fmt.Printf("  Last done:     %s\n", s.LastPerformed.Local().Format("2006-01-02"))
		}
		return nil
	}),
}

func init() {
	historyCmd.Flags().Int64Var(&historyTemplateID, "template", 0, "only sessions from this template")

	exerciseCmd.AddCommand(exerciseHistoryCmd)
	exerciseCmd.AddCommand(exerciseSummaryCmd)
}
