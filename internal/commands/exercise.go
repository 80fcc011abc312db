package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/api"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercise definitions",
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your exercises",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		exercises, err := a.client.ListExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing exercises: %s", api.Detail(err, "server error"))
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises yet. Add one with 'liftlog exercise add <name>'.")
			return nil
		}
		for _, ex := range exercises {
			fmt.Printf("%4d  %s\n", ex.ID, ex.Name)
		}
		return nil
	}),
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		ex, err := a.client.CreateExercise(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("creating exercise: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Created exercise #%d %s\n", ex.ID, ex.Name)
		return nil
	}),
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an exercise",
	Args:  cobra.ExactArgs(2),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ex, err := a.client.UpdateExercise(cmd.Context(), id, args[1])
		if err != nil {
			return fmt.Errorf("renaming exercise: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Renamed exercise #%d to %s\n", ex.ID, ex.Name)
		return nil
	}),
}

var exerciseRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.client.DeleteExercise(cmd.Context(), id); err != nil {
			return fmt.Errorf("deleting exercise: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Deleted exercise #%d\n", id)
		return nil
	}),
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseRmCmd)
}
