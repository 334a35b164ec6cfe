// Package cli wires the data-portability and maintenance commands
// around the core services. All presentation lives here; the services
// only return plain data and typed errors.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"howlongsince/internal/config"
	"howlongsince/internal/logging"
	"howlongsince/internal/repository"
	"howlongsince/internal/service"
)

// App bundles the wired services behind the CLI commands.
type App struct {
	Config   config.Config
	Log      *zap.SugaredLogger
	DB       *gorm.DB
	Tasks    *service.TaskService
	Cats     *service.CategoryService
	Settings *service.SettingsService
	Data     *service.ExportImportService

	closers []func()
}

// NewApp loads config, opens the store, seeds defaults, and wires the
// service graph.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	app, err := newApp(cfg, db, log)
	if err != nil {
		closeLog()
		return nil, err
	}
	app.closers = append(app.closers, closeLog)
	if sqlDB, err := db.DB(); err == nil {
		app.closers = append(app.closers, func() { _ = sqlDB.Close() })
	}
	return app, nil
}

func newApp(cfg config.Config, db *gorm.DB, log *zap.SugaredLogger) (*App, error) {
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	tasks := service.NewTaskService(taskRepo, categoryRepo, log)
	cats := service.NewCategoryService(db, categoryRepo, taskRepo, log)
	settings := service.NewSettingsService(settingsRepo, service.NoopProbe{}, log)
	data, err := service.NewExportImportService(db, tasks, cats, settings, log)
	if err != nil {
		return nil, fmt.Errorf("init export service: %w", err)
	}

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Tasks:    tasks,
		Cats:     cats,
		Settings: settings,
		Data:     data,
	}, nil
}

// Close releases the store and flushes logs.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// NewRootCmd builds the command tree. The app is constructed lazily so
// that --help never touches disk.
func NewRootCmd() *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:           "howlongsince",
		Short:         "Local-first recurring task tracker",
		Long:          "howlongsince tracks recurring chores in a local embedded store and moves data in and out via versioned JSON and CSV formats.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			app, err = NewApp()
			if err != nil {
				return err
			}
			return app.Cats.EnsureDefaults(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app != nil {
				app.Close()
			}
		},
	}

	appRef := func() *App { return app }
	root.AddCommand(
		newExportCmd(appRef),
		newImportCmd(appRef),
		newBackupCmd(appRef),
		newStatsCmd(appRef),
		newWatchCmd(appRef),
		newResetCmd(appRef),
	)
	return root
}
