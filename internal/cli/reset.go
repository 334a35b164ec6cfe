package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app func() *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all tasks and categories and reseed the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("this deletes every task and category, pass --yes to confirm")
			}
			a := app()
			if err := a.Cats.ResetToDefaults(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store reset to the default categories.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive reset")
	return cmd
}
