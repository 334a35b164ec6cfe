package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"howlongsince/internal/service"
)

func newWatchCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run in the foreground, writing automatic backups on schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			cfg := a.Config
			if cfg.BackupTime == "" && cfg.BackupInterval <= 0 {
				return fmt.Errorf("no backup schedule configured, set HLS_BACKUP_TIME or HLS_BACKUP_INTERVAL_HOURS")
			}

			scheduler := service.NewSchedulerService(time.Local)
			job := func() {
				path, err := writeBackup(a, cmd, cfg.BackupDir)
				if err != nil {
					a.Log.Errorw("automatic backup failed", "error", err)
					return
				}
				a.Log.Infow("automatic backup written", "path", path)
			}

			if cfg.BackupTime != "" {
				if _, err := scheduler.ScheduleDaily(cfg.BackupTime, job); err != nil {
					return fmt.Errorf("schedule daily backup: %w", err)
				}
			}
			if cfg.BackupInterval > 0 {
				if _, err := scheduler.ScheduleInterval(cfg.BackupInterval, job); err != nil {
					return fmt.Errorf("schedule interval backup: %w", err)
				}
			}

			scheduler.Start()
			defer scheduler.Stop()

			a.Log.Infow("backup watcher started",
				"daily", cfg.BackupTime, "interval", cfg.BackupInterval.String())
			<-cmd.Context().Done()
			a.Log.Infow("backup watcher stopped")
			return nil
		},
	}
}
