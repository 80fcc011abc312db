package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/api"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage workout templates",
}

var templateListSplitID int64

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workout templates",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		var splitID *int64
		if templateListSplitID > 0 {
			splitID = &templateListSplitID
		}
		templates, err := a.client.ListTemplates(cmd.Context(), splitID)
		if err != nil {
			return fmt.Errorf("listing templates: %s", api.Detail(err, "server error"))
		}
		if len(templates) == 0 {
			fmt.Println("No templates yet. Add one with 'liftlog template add <split-id> <name>'.")
			return nil
		}
		for _, t := range templates {
			var names []string
			for _, ex := range t.Exercises {
				names = append(names, ex.Name)
			}
			fmt.Printf("%4d  %s", t.ID, t.Name)
			if len(names) > 0 {
				fmt.Printf("  [%s]", strings.Join(names, ", "))
			}
			fmt.Println()
		}
		return nil
	}),
}

var templateAddOrder int

var templateAddCmd = &cobra.Command{
	Use:   "add <split-id> <name>",
	Short: "Create a template in a split",
	Args:  cobra.ExactArgs(2),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		splitID, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := a.client.CreateTemplate(cmd.Context(), splitID, args[1], templateAddOrder)
		if err != nil {
			return fmt.Errorf("creating template: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Created template #%d %s\n", t.ID, t.Name)
		return nil
	}),
}

var templateExerciseOrder int

var templateAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <template-id> <exercise-id>",
	Short: "Add an exercise to a template",
	Args:  cobra.ExactArgs(2),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		templateID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		t, err := a.client.AddTemplateExercise(cmd.Context(), templateID, exerciseID, templateExerciseOrder)
		if err != nil {
			return fmt.Errorf("adding exercise: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ %s now has %d exercises\n", t.Name, len(t.Exercises))
		return nil
	}),
}

var templateRmExerciseCmd = &cobra.Command{
	Use:   "rm-exercise <template-id> <exercise-id>",
	Short: "Remove an exercise from a template",
	Args:  cobra.ExactArgs(2),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		templateID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.client.RemoveTemplateExercise(cmd.Context(), templateID, exerciseID); err != nil {
			return fmt.Errorf("removing exercise: %s", api.Detail(err, "server error"))
		}
		fmt.Println("✓ Removed")
		return nil
	}),
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.client.DeleteTemplate(cmd.Context(), id); err != nil {
			return fmt.Errorf("deleting template: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Deleted template #%d\n", id)
		return nil
	}),
}

func init() {
	templateListCmd.Flags().Int64Var(&templateListSplitID, "split", 0, "only templates in this split")
	templateAddCmd.Flags().IntVar(&templateAddOrder, "order", 0, "position within the split")
	templateAddExerciseCmd.Flags().IntVar(&templateExerciseOrder, "order", 0, "position within the template")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateAddExerciseCmd)
	templateCmd.AddCommand(templateRmExerciseCmd)
	templateCmd.AddCommand(templateRmCmd)
}
