package service

import (
	"context"
	"path/filepath"
	"testing"

	"howlongsince/internal/logging"
	"howlongsince/internal/model"
	"howlongsince/internal/repository"
)

// fixture wires the full service graph over a throwaway SQLite file.
type fixture struct {
	tasks    *TaskService
	cats     *CategoryService
	settings *SettingsService
	data     *ExportImportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logging.NewNop()
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	f := &fixture{
		tasks:    NewTaskService(taskRepo, categoryRepo, log),
		cats:     NewCategoryService(db, categoryRepo, taskRepo, log),
		settings: NewSettingsService(settingsRepo, nil, log),
	}
	f.data, err = NewExportImportService(db, f.tasks, f.cats, f.settings, log)
	if err != nil {
		t.Fatalf("init export service: %v", err)
	}
	return f
}

// seeded additionally inserts the default categories.
func newSeededFixture(t *testing.T) (*fixture, []model.Category) {
	t.Helper()
	f := newFixture(t)
	if err := f.cats.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	categories, err := f.cats.List(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 10 {
		t.Fatalf("expected 10 default categories, got %d", len(categories))
	}
	return f, categories
}

func mustCreateTask(t *testing.T, f *fixture, form model.TaskForm) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), form)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}
