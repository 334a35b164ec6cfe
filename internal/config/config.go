package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DatabasePath   string
	LogDir         string
	LogLevel       string
	BackupDir      string
	BackupTime     string
	BackupInterval time.Duration
}

// Load reads configuration from the environment with sane defaults.
// All keys are prefixed HLS_, e.g. HLS_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HLS")
	v.AutomaticEnv()

	v.SetDefault("database_path", "howlongsince.db")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", "info")
	v.SetDefault("backup_dir", "backups")
	v.SetDefault("backup_time", "")
	v.SetDefault("backup_interval_hours", 0)

	cfg := Config{
		DatabasePath: v.GetString("database_path"),
		LogDir:       v.GetString("log_dir"),
		LogLevel:     v.GetString("log_level"),
		BackupDir:    v.GetString("backup_dir"),
		BackupTime:   v.GetString("backup_time"),
	}

	hours := v.GetInt("backup_interval_hours")
	if hours < 0 {
		return cfg, fmt.Errorf("HLS_BACKUP_INTERVAL_HOURS must not be negative")
	}
	cfg.BackupInterval = time.Duration(hours) * time.Hour

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "howlongsince.db"
	}

	return cfg, nil
}
