package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatsCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task, category, and backup statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			now := time.Now()

			taskStats, err := a.Tasks.Stats(cmd.Context(), now)
			if err != nil {
				return err
			}
			backupStats, err := a.Data.Stats(cmd.Context(), now)
			if err != nil {
				return err
			}
			counts, err := a.Cats.WithTaskCounts(cmd.Context(), now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tasks: %d active, %d completed today, %d overdue\n",
				taskStats.TotalTasks, taskStats.CompletedToday, taskStats.OverdueTasks)
			if taskStats.AverageCompletionDays > 0 {
				fmt.Fprintf(out, "Average days to completion: %.1f\n", taskStats.AverageCompletionDays)
			}

			fmt.Fprintln(out, "Categories:")
			for _, c := range counts {
				fmt.Fprintf(out, "  %-20s %d tasks", c.Name, c.TaskCount)
				if c.OverdueTaskCount > 0 {
					fmt.Fprintf(out, " (%d overdue)", c.OverdueTaskCount)
				}
				fmt.Fprintln(out)
			}

			if backupStats.LastBackupDate != nil {
				fmt.Fprintf(out, "Last backup: %s\n", backupStats.LastBackupDate.Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "Last backup: never")
			}
			if backupStats.ShouldShowReminder {
				fmt.Fprintln(out, "Backup recommended: data has not been backed up in over two weeks.")
			}
			return nil
		},
	}
}
