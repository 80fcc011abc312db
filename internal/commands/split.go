package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/api"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Manage training splits",
}

var splitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your splits",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		splits, err := a.client.ListSplits(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing splits: %s", api.Detail(err, "server error"))
		}
		if len(splits) == 0 {
			fmt.Println("No splits yet. Add one with 'liftlog split add <name>'.")
			return nil
		}
		for _, s := range splits {
			active := ""
			if s.IsActive {
				active = "  (active)"
			}
			fmt.Printf("%4d  %s%s\n", s.ID, s.Name, active)
		}
		return nil
	}),
}

var splitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a split",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		s, err := a.client.CreateSplit(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("creating split: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Created split #%d %s\n", s.ID, s.Name)
		return nil
	}),
}

var splitActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a split the active one",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		active := true
		s, err := a.client.UpdateSplit(cmd.Context(), id, api.SplitUpdate{IsActive: &active})
		if err != nil {
			return fmt.Errorf("activating split: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ %s is now the active split\n", s.Name)
		return nil
	}),
}

var splitRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a split and its templates",
	Args:  cobra.ExactArgs(1),
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.client.DeleteSplit(cmd.Context(), id); err != nil {
			return fmt.Errorf("deleting split: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("✓ Deleted split #%d\n", id)
		return nil
	}),
}

func init() {
	splitCmd.AddCommand(splitListCmd)
	splitCmd.AddCommand(splitAddCmd)
	splitCmd.AddCommand(splitActivateCmd)
	splitCmd.AddCommand(splitRmCmd)
}
