package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"howlongsince/internal/model"
)

func TestExportJSONShape(t *testing.T) {
	f, categories := newSeededFixture(t)
	ctx := context.Background()
	mustCreateTask(t, f, model.TaskForm{Name: "Clean oven", CategoryID: categories[0].ID})

	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	payload, err := f.data.ExportJSON(ctx, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded["version"] != model.ExportVersion {
		t.Errorf("version: got %v", decoded["version"])
	}
	if _, err := time.Parse(time.RFC3339, decoded["exportDate"].(string)); err != nil {
		t.Errorf("exportDate not ISO-8601: %v", err)
	}
	if len(decoded["categories"].([]any)) != 10 {
		t.Errorf("categories: got %d", len(decoded["categories"].([]any)))
	}
	if len(decoded["tasks"].([]any)) != 1 {
		t.Errorf("tasks: got %d", len(decoded["tasks"].([]any)))
	}
	if _, ok := decoded["settings"].(map[string]any); !ok {
		t.Error("settings missing from export")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	source, categories := newSeededFixture(t)
	ctx := context.Background()

	commitment := model.Commitment2Hrs
	task := mustCreateTask(t, source, model.TaskForm{
		Name:              "Service \"the\" mower, carefully",
		Description:       "blade, oil\nand filter",
		CategoryID:        categories[5].ID,
		ExpectedFrequency: &model.ExpectedFrequency{Value: 6, Unit: model.UnitMonth},
		TimeCommitment:    &commitment,
		Notes:             "torque to spec",
	})
	if _, err := source.tasks.Complete(ctx, task.ID, time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	archived := mustCreateTask(t, source, model.TaskForm{Name: "Old chore", CategoryID: categories[1].ID})
	if _, err := source.tasks.Archive(ctx, archived.ID); err != nil {
		t.Fatal(err)
	}
	if err := source.settings.SetTheme(ctx, model.ThemeDark); err != nil {
		t.Fatal(err)
	}

	payload, err := source.data.ExportJSON(ctx, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dest := newFixture(t)
	report, err := dest.data.ImportJSON(ctx, payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected record errors: %v", report.Errors)
	}
	if report.TasksImported != 2 || report.CategoriesImported != 10 || !report.SettingsImported {
		t.Fatalf("unexpected report: %+v", report)
	}

	got, err := dest.tasks.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("imported task missing: %v", err)
	}
	if got.Name != task.Name || got.Description != task.Description || got.Notes != task.Notes {
		t.Errorf("text fields mangled: %+v", got)
	}
	if got.ExpectedFrequency == nil || got.ExpectedFrequency.Value != 6 || got.ExpectedFrequency.Unit != model.UnitMonth {
		t.Errorf("frequency mangled: %+v", got.ExpectedFrequency)
	}
	if got.LastCompletedAt == nil || !got.LastCompletedAt.Equal(time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("completion instant mangled: %v", got.LastCompletedAt)
	}

	settings, err := dest.settings.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if settings.Theme != model.ThemeDark {
		t.Errorf("settings not imported: %+v", settings)
	}
}

func TestReimportIsIdempotent(t *testing.T) {
	f, categories := newSeededFixture(t)
	ctx := context.Background()
	mustCreateTask(t, f, model.TaskForm{Name: "Clean oven", CategoryID: categories[0].ID})

	payload, err := f.data.ExportJSON(ctx, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		report, err := f.data.ImportJSON(ctx, payload)
		if err != nil {
			t.Fatalf("re-import %d: %v", i+1, err)
		}
		if len(report.Errors) != 0 {
			t.Fatalf("re-import %d errors: %v", i+1, report.Errors)
		}
	}

	tasks, err := f.tasks.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Errorf("tasks duplicated: got %d, want 1", len(tasks))
	}
	cats, err := f.cats.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 10 {
		t.Errorf("categories duplicated: got %d, want 10", len(cats))
	}
}

func TestImportJSONStructuralRejection(t *testing.T) {
	f, _ := newSeededFixture(t)
	ctx := context.Background()

	var serr *ImportStructureError
	if _, err := f.data.ImportJSON(ctx, "{not json"); !errors.As(err, &serr) {
		t.Errorf("broken JSON: expected ImportStructureError, got %v", err)
	}
	if _, err := f.data.ImportJSON(ctx, `{"version":"1.0.0"}`); !errors.As(err, &serr) {
		t.Errorf("missing fields: expected ImportStructureError, got %v", err)
	}
	if _, err := f.data.ImportJSON(ctx, `{"version":"1.0.0","exportDate":"2024-06-01T00:00:00Z","tasks":{},"categories":[],"settings":{"id":"default"}}`); !errors.As(err, &serr) {
		t.Errorf("tasks not an array: expected ImportStructureError, got %v", err)
	}
}

func TestImportJSONRecordsPerTaskErrors(t *testing.T) {
	f, categories := newSeededFixture(t)
	ctx := context.Background()

	export := model.ExportData{
		Version:    model.ExportVersion,
		ExportDate: time.Now(),
		Tasks: []model.Task{
			{
				ID: "11111111-0000-0000-0000-000000000001", Name: "Good task",
				CategoryID: categories[0].ID, CreatedAt: time.Now(),
			},
			{
				ID: "11111111-0000-0000-0000-000000000002", Name: "Orphan task",
				CategoryID: "22222222-0000-0000-0000-000000000099", CreatedAt: time.Now(),
			},
		},
		Categories: []model.Category{},
		Settings:   model.DefaultSettings(),
	}
	payload, err := json.Marshal(export)
	if err != nil {
		t.Fatal(err)
	}

	report, err := f.data.ImportJSON(ctx, string(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.TasksImported != 1 {
		t.Errorf("tasks imported: got %d, want 1", report.TasksImported)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "Orphan task") {
		t.Errorf("expected one orphan-task error, got %v", report.Errors)
	}
}

func TestExportCSV(t *testing.T) {
	f, categories := newSeededFixture(t)
	ctx := context.Background()

	commitment := model.Commitment30Min
	task := mustCreateTask(t, f, model.TaskForm{
		Name:              "Clean, then \"polish\"",
		Description:       "multi\nline",
		CategoryID:        categories[0].ID,
		ExpectedFrequency: &model.ExpectedFrequency{Value: 2, Unit: model.UnitWeek},
		TimeCommitment:    &commitment,
	})
	archived := mustCreateTask(t, f, model.TaskForm{Name: "Retired", CategoryID: categories[1].ID})
	if _, err := f.tasks.Archive(ctx, archived.ID); err != nil {
		t.Fatal(err)
	}

	out, err := f.data.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("export is not parseable CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows: got %d, want header + 2", len(records))
	}
	if got := strings.Join(records[0], "|"); got != strings.Join(csvHeaders, "|") {
		t.Errorf("header mismatch: %v", records[0])
	}

	var row []string
	for _, r := range records[1:] {
		if r[0] == task.ID {
			row = r
		}
	}
	if row == nil {
		t.Fatal("task row missing")
	}
	if row[1] != task.Name || row[2] != task.Description {
		t.Errorf("escaped fields mangled: %v", row)
	}
	if row[3] != categories[0].Name {
		t.Errorf("category not resolved by name: %q", row[3])
	}
	if row[6] != "2" || row[7] != "week" || row[8] != "30min" {
		t.Errorf("frequency columns: %v", row[6:9])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	source, categories := newSeededFixture(t)
	ctx := context.Background()

	commitment := model.Commitment1Hr
	mustCreateTask(t, source, model.TaskForm{
		Name:              "Rotate tires, check pressure",
		CategoryID:        categories[5].ID,
		ExpectedFrequency: &model.ExpectedFrequency{Value: 6, Unit: model.UnitMonth},
		TimeCommitment:    &commitment,
	})

	out, err := source.data.ExportCSV(ctx)
	if err != nil {
		t.Fatal(err)
	}

	dest, _ := newSeededFixture(t)
	report, err := dest.data.ImportCSV(ctx, out)
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	if report.TasksImported != 1 {
		t.Fatalf("imported: got %d, want 1", report.TasksImported)
	}

	tasks, err := dest.tasks.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	got := tasks[0]
	if got.Name != "Rotate tires, check pressure" {
		t.Errorf("name: %q", got.Name)
	}
	if got.ExpectedFrequency == nil || got.ExpectedFrequency.Value != 6 || got.ExpectedFrequency.Unit != model.UnitMonth {
		t.Errorf("frequency: %+v", got.ExpectedFrequency)
	}
	if got.TimeCommitment == nil || *got.TimeCommitment != model.Commitment1Hr {
		t.Errorf("commitment: %v", got.TimeCommitment)
	}
	// Category resolved by name onto the destination's own id space.
	category, err := dest.cats.Get(ctx, got.CategoryID)
	if err != nil {
		t.Fatal(err)
	}
	if category.Name != categories[5].Name {
		t.Errorf("category: got %q, want %q", category.Name, categories[5].Name)
	}
}

func TestImportCSVPerRowErrors(t *testing.T) {
	f, _ := newSeededFixture(t)
	ctx := context.Background()

	rows := []string{
		strings.Join(csvHeaders, ","),
		// Good row.
		",Dust shelves,,Kitchen,2024-01-01T00:00:00Z,,,,,false,",
		// Unknown category.
		",Lost task,,Atlantis,2024-01-01T00:00:00Z,,,,,false,",
		// Invalid creation date.
		",Bad date,,Kitchen,yesterday,,,,,false,",
		// Invalid frequency drops to absent instead of failing the row.
		",Loose frequency,,Kitchen,2024-01-01T00:00:00Z,,often,sometimes,whenever,false,",
	}

	report, err := f.data.ImportCSV(ctx, strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.TasksImported != 2 {
		t.Errorf("imported: got %d, want 2", report.TasksImported)
	}
	if len(report.Errors) != 2 {
		t.Errorf("errors: got %d, want 2: %v", len(report.Errors), report.Errors)
	}

	tasks, err := f.tasks.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range tasks {
		if task.Name == "Loose frequency" {
			if task.ExpectedFrequency != nil || task.TimeCommitment != nil {
				t.Errorf("invalid enums must drop to absent: %+v", task)
			}
		}
		if task.CategoryID == "" {
			t.Errorf("task %q has no category", task.Name)
		}
	}
}

func TestImportCSVHeaderRejection(t *testing.T) {
	f, _ := newSeededFixture(t)
	ctx := context.Background()

	var serr *ImportStructureError
	if _, err := f.data.ImportCSV(ctx, "Name,Category\nfoo,bar"); !errors.As(err, &serr) {
		t.Errorf("expected ImportStructureError, got %v", err)
	}
}

func TestCreateBackup(t *testing.T) {
	f, _ := newSeededFixture(t)
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC)

	filename, data, err := f.data.CreateBackup(ctx, now)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(filename, "how-long-since-backup-") || !strings.HasSuffix(filename, ".json") {
		t.Errorf("filename: %q", filename)
	}
	if strings.ContainsAny(filename, ":") {
		t.Errorf("filename must not contain colons: %q", filename)
	}
	if !json.Valid([]byte(data)) {
		t.Error("backup payload is not valid JSON")
	}

	settings, err := f.settings.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if settings.LastBackupDate == nil || !settings.LastBackupDate.Equal(now) {
		t.Errorf("backup instant not recorded: %v", settings.LastBackupDate)
	}

	stats, err := f.data.Stats(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ShouldShowReminder {
		t.Error("reminder right after a backup")
	}
	if stats.TotalCategories != 10 {
		t.Errorf("stats categories: got %d", stats.TotalCategories)
	}
}
