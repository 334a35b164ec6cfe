package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app func() *App) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON, or tasks as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			var data string
			var err error
			switch format {
			case "json":
				data, err = a.Data.ExportJSON(cmd.Context(), time.Now())
			case "csv":
				data, err = a.Data.ExportCSV(cmd.Context())
			default:
				return fmt.Errorf("unknown format %q, expected json or csv", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), data)
				return nil
			}
			if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
