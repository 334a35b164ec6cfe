package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(app func() *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import data from a JSON export or a tasks CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			resolved := format
			if resolved == "" {
				resolved = "json"
				if strings.HasSuffix(strings.ToLower(args[0]), ".csv") {
					resolved = "csv"
				}
			}

			switch resolved {
			case "json":
				report, err := a.Data.ImportJSON(cmd.Context(), string(payload))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks, %d categories, settings: %v\n",
					report.TasksImported, report.CategoriesImported, report.SettingsImported)
				printErrors(cmd, report.Errors)
			case "csv":
				report, err := a.Data.ImportCSV(cmd.Context(), string(payload))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", report.TasksImported)
				printErrors(cmd, report.Errors)
			default:
				return fmt.Errorf("unknown format %q, expected json or csv", resolved)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "import format: json or csv (default from file extension)")
	return cmd
}

func printErrors(cmd *cobra.Command, errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d records failed:\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
	}
}
