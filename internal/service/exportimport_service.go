package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"howlongsince/internal/model"
	"howlongsince/internal/repository"
	"howlongsince/internal/validation"
)

// csvHeaders is the fixed column order of the CSV interchange format.
var csvHeaders = []string{
	"ID", "Name", "Description", "Category", "Created At",
	"Last Completed At", "Expected Frequency Value", "Expected Frequency Unit",
	"Time Commitment", "Is Archived", "Notes",
}

// ImportReport accumulates per-record outcomes of a JSON import. A
// batch partially succeeds with a full error report; only a
// structurally invalid payload aborts the whole import.
type ImportReport struct {
	TasksImported      int      `json:"tasksImported"`
	CategoriesImported int      `json:"categoriesImported"`
	SettingsImported   bool     `json:"settingsImported"`
	Errors             []string `json:"errors"`
}

// CSVImportReport accumulates per-row outcomes of a CSV import.
type CSVImportReport struct {
	TasksImported int      `json:"tasksImported"`
	Errors        []string `json:"errors"`
}

// BackupStats summarizes what a backup would cover.
type BackupStats struct {
	TotalTasks         int        `json:"totalTasks"`
	TotalCategories    int        `json:"totalCategories"`
	LastBackupDate     *time.Time `json:"lastBackupDate"`
	ShouldShowReminder bool       `json:"shouldShowReminder"`
}

// ExportImportService serializes the full data set to the versioned
// interchange formats and ingests external data.
type ExportImportService struct {
	db       *gorm.DB
	tasks    *TaskService
	cats     *CategoryService
	settings *SettingsService
	schema   *jsonschema.Schema
	log      *zap.SugaredLogger
}

func NewExportImportService(db *gorm.DB, tasks *TaskService, cats *CategoryService, settings *SettingsService, log *zap.SugaredLogger) (*ExportImportService, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("exportdata.json", strings.NewReader(exportDataSchema)); err != nil {
		return nil, fmt.Errorf("add export schema: %w", err)
	}
	schema, err := compiler.Compile("exportdata.json")
	if err != nil {
		return nil, fmt.Errorf("compile export schema: %w", err)
	}
	return &ExportImportService{
		db:       db,
		tasks:    tasks,
		cats:     cats,
		settings: settings,
		schema:   schema,
		log:      log,
	}, nil
}

// Snapshot builds the full ExportData snapshot, archived tasks included.
func (s *ExportImportService) Snapshot(ctx context.Context, now time.Time) (*model.ExportData, error) {
	tasks, err := s.tasks.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	categories, err := s.cats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	return &model.ExportData{
		Version:    model.ExportVersion,
		ExportDate: now,
		Tasks:      tasks,
		Categories: categories,
		Settings:   *settings,
	}, nil
}

// ExportJSON serializes the snapshot deterministically: fixed struct
// field order, ISO-8601 instants, two-space indent.
func (s *ExportImportService) ExportJSON(ctx context.Context, now time.Time) (string, error) {
	snapshot, err := s.Snapshot(ctx, now)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export data: %w", err)
	}
	return string(data), nil
}

// ExportCSV writes one row per task, archived included, with the
// category resolved by name. Escaping is RFC-4180: fields containing
// comma, quote, or newline are quoted with internal quotes doubled.
func (s *ExportImportService) ExportCSV(ctx context.Context) (string, error) {
	tasks, err := s.tasks.List(ctx, true)
	if err != nil {
		return "", fmt.Errorf("export tasks: %w", err)
	}
	categories, err := s.cats.List(ctx)
	if err != nil {
		return "", fmt.Errorf("export categories: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	var out strings.Builder
	w := csv.NewWriter(&out)
	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, task := range tasks {
		name, ok := names[task.CategoryID]
		if !ok {
			name = "Unknown"
		}
		row := []string{
			task.ID,
			task.Name,
			task.Description,
			name,
			task.CreatedAt.Format(time.RFC3339),
			"",
			"",
			"",
			"",
			strconv.FormatBool(task.IsArchived),
			task.Notes,
		}
		if task.LastCompletedAt != nil {
			row[5] = task.LastCompletedAt.Format(time.RFC3339)
		}
		if task.ExpectedFrequency != nil {
			row[6] = strconv.Itoa(task.ExpectedFrequency.Value)
			row[7] = string(task.ExpectedFrequency.Unit)
		}
		if task.TimeCommitment != nil {
			row[8] = string(*task.TimeCommitment)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return out.String(), nil
}

// ImportJSON validates the payload against the interchange schema,
// then upserts categories, tasks, and settings within one
// transaction. Tasks whose category id is unknown are skipped and
// recorded; existing ids are updated, never duplicated.
func (s *ExportImportService) ImportJSON(ctx context.Context, payload string) (*ImportReport, error) {
	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ImportStructureError{Cause: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := s.schema.Validate(raw); err != nil {
		return nil, &ImportStructureError{Cause: err}
	}

	var incoming model.ExportData
	if err := json.Unmarshal([]byte(payload), &incoming); err != nil {
		return nil, &ImportStructureError{Cause: err}
	}

	report := &ImportReport{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		categories := repository.NewCategoryRepository(tx)
		settings := repository.NewSettingsRepository(tx)

		// Categories first; tasks depend on them.
		for _, category := range incoming.Categories {
			if issues := validation.ValidateCategory(category); !issues.OK() {
				report.Errors = append(report.Errors,
					fmt.Sprintf("category %q: %s", category.Name, issues))
				continue
			}
			if err := upsertCategory(ctx, categories, category); err != nil {
				report.Errors = append(report.Errors,
					fmt.Sprintf("category %q: %v", category.Name, err))
				continue
			}
			report.CategoriesImported++
		}

		for _, task := range incoming.Tasks {
			if issues := validation.ValidateTask(validation.NormalizeTask(task)); !issues.OK() {
				report.Errors = append(report.Errors,
					fmt.Sprintf("task %q: %s", task.Name, issues))
				continue
			}
			if _, err := categories.GetByID(ctx, task.CategoryID); err != nil {
				report.Errors = append(report.Errors,
					fmt.Sprintf("task %q references non-existent category", task.Name))
				continue
			}
			if err := upsertTask(ctx, tasks, task); err != nil {
				report.Errors = append(report.Errors,
					fmt.Sprintf("task %q: %v", task.Name, err))
				continue
			}
			report.TasksImported++
		}

		incoming.Settings = validation.NormalizeSettings(incoming.Settings)
		incoming.Settings.ID = model.SettingsID
		if issues := validation.ValidateSettings(incoming.Settings); !issues.OK() {
			report.Errors = append(report.Errors, fmt.Sprintf("settings: %s", issues))
		} else if err := settings.Put(ctx, &incoming.Settings); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("settings: %v", err))
		} else {
			report.SettingsImported = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import data: %w", err)
	}

	s.log.Infow("json import finished",
		"tasks", report.TasksImported,
		"categories", report.CategoriesImported,
		"errors", len(report.Errors))
	return report, nil
}

// ImportCSV ingests tasks from the CSV interchange format. Categories
// are resolved by case-insensitive name. Rows commit individually:
// unlike the JSON path this import is not all-or-nothing, so a failed
// row never rolls back its predecessors.
func (s *ExportImportService) ImportCSV(ctx context.Context, payload string) (*CSVImportReport, error) {
	reader := csv.NewReader(strings.NewReader(payload))
	header, err := reader.Read()
	if err != nil {
		return nil, &ImportStructureError{Cause: fmt.Errorf("read csv header: %w", err)}
	}
	if err := checkCSVHeader(header); err != nil {
		return nil, &ImportStructureError{Cause: err}
	}

	categories, err := s.cats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("import csv: %w", err)
	}
	byName := make(map[string]string, len(categories))
	for _, category := range categories {
		byName[strings.ToLower(category.Name)] = category.ID
	}

	tasks := repository.NewTaskRepository(s.db)
	report := &CSVImportReport{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		task, err := taskFromCSVRow(record, byName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if issues := validation.ValidateTask(*task); !issues.OK() {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s", line, issues))
			continue
		}
		if err := upsertTask(ctx, tasks, *task); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		report.TasksImported++
	}

	s.log.Infow("csv import finished",
		"tasks", report.TasksImported, "errors", len(report.Errors))
	return report, nil
}

// CreateBackup exports everything to JSON under a timestamp-derived
// filename and records the backup instant.
func (s *ExportImportService) CreateBackup(ctx context.Context, now time.Time) (filename, data string, err error) {
	data, err = s.ExportJSON(ctx, now)
	if err != nil {
		return "", "", fmt.Errorf("create backup: %w", err)
	}
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.UTC().Format(time.RFC3339))
	filename = fmt.Sprintf("how-long-since-backup-%s.json", stamp)

	if err := s.settings.UpdateLastBackup(ctx, now); err != nil {
		return "", "", fmt.Errorf("record backup time: %w", err)
	}
	s.log.Infow("backup created", "filename", filename)
	return filename, data, nil
}

// Stats reports backup coverage and whether a reminder is due.
func (s *ExportImportService) Stats(ctx context.Context, now time.Time) (*BackupStats, error) {
	tasks, err := s.tasks.List(ctx, true)
	if err != nil {
		return nil, err
	}
	categories, err := s.cats.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	remind, err := s.settings.ShouldShowBackupReminder(ctx, now)
	if err != nil {
		return nil, err
	}
	return &BackupStats{
		TotalTasks:         len(tasks),
		TotalCategories:    len(categories),
		LastBackupDate:     settings.LastBackupDate,
		ShouldShowReminder: remind,
	}, nil
}

func upsertCategory(ctx context.Context, repo *repository.CategoryRepository, category model.Category) error {
	_, err := repo.GetByID(ctx, category.ID)
	switch {
	case err == nil:
		return repo.Save(ctx, &category)
	case err == gorm.ErrRecordNotFound:
		return repo.Create(ctx, &category)
	default:
		return err
	}
}

func upsertTask(ctx context.Context, repo *repository.TaskRepository, task model.Task) error {
	_, err := repo.GetByID(ctx, task.ID)
	switch {
	case err == nil:
		return repo.Save(ctx, &task)
	case err == gorm.ErrRecordNotFound:
		return repo.Create(ctx, &task)
	default:
		return err
	}
}

func checkCSVHeader(header []string) error {
	if len(header) != len(csvHeaders) {
		return fmt.Errorf("expected %d columns, got %d", len(csvHeaders), len(header))
	}
	for i, want := range csvHeaders {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("column %d: expected %q, got %q", i+1, want, header[i])
		}
	}
	return nil
}

// taskFromCSVRow converts one CSV record into a task. The category
// must resolve by name; frequency and time commitment parse
// defensively, dropping invalid values to absent instead of failing
// the row.
func taskFromCSVRow(record []string, categoriesByName map[string]string) (*model.Task, error) {
	get := func(i int) string { return strings.TrimSpace(record[i]) }

	categoryID, ok := categoriesByName[strings.ToLower(get(3))]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", get(3))
	}

	createdAt, err := time.Parse(time.RFC3339, get(4))
	if err != nil {
		return nil, fmt.Errorf("invalid Created At value %q", get(4))
	}

	var lastCompleted *time.Time
	if raw := get(5); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid Last Completed At value %q", raw)
		}
		lastCompleted = &parsed
	}

	var frequency *model.ExpectedFrequency
	if rawValue, rawUnit := get(6), get(7); rawValue != "" && rawUnit != "" {
		value, err := strconv.Atoi(rawValue)
		unit := model.FrequencyUnit(strings.ToLower(rawUnit))
		if err == nil && value > 0 && model.ValidFrequencyUnit(unit) {
			frequency = &model.ExpectedFrequency{Value: value, Unit: unit}
		}
	}

	var commitment *model.TimeCommitment
	if raw := model.TimeCommitment(get(8)); model.ValidTimeCommitment(raw) {
		commitment = &raw
	}

	id := get(0)
	if id == "" {
		id = uuid.NewString()
	}

	return &model.Task{
		ID:                id,
		Name:              get(1),
		Description:       record[2],
		CategoryID:        categoryID,
		CreatedAt:         createdAt,
		LastCompletedAt:   lastCompleted,
		ExpectedFrequency: frequency,
		TimeCommitment:    commitment,
		IsArchived:        strings.EqualFold(get(9), "true"),
		Notes:             record[10],
	}, nil
}
