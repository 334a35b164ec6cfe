package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newBackupCmd(app func() *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped JSON backup and record the backup time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			target := dir
			if target == "" {
				target = a.Config.BackupDir
			}
			path, err := writeBackup(a, cmd, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "backup directory (default from config)")
	return cmd
}

func writeBackup(a *App, cmd *cobra.Command, dir string) (string, error) {
	filename, data, err := a.Data.CreateBackup(cmd.Context(), time.Now())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}
