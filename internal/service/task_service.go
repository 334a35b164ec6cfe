package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"howlongsince/internal/model"
	"howlongsince/internal/recurrence"
	"howlongsince/internal/repository"
	"howlongsince/internal/validation"
)

// TaskUpdate patches task fields; nil pointers leave the field
// untouched. Clearing an optional field is requested explicitly so a
// nil pointer stays unambiguous.
type TaskUpdate struct {
	Name              *string
	Description       *string
	CategoryID        *string
	ExpectedFrequency *model.ExpectedFrequency
	ClearFrequency    bool
	TimeCommitment    *model.TimeCommitment
	ClearCommitment   bool
	Notes             *string
}

// TaskService wraps task business logic: validation, identifier
// assignment, and the completion lifecycle.
type TaskService struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	log        *zap.SugaredLogger
}

func NewTaskService(tasks *repository.TaskRepository, categories *repository.CategoryRepository, log *zap.SugaredLogger) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, log: log}
}

// Create validates the form, assigns identifier and creation time, and
// persists the task unarchived with no completion recorded.
func (s *TaskService) Create(ctx context.Context, form model.TaskForm) (*model.Task, error) {
	form = validation.NormalizeTaskForm(form)
	if issues := validation.ValidateTaskForm(form); !issues.OK() {
		return nil, validationErr(issues)
	}
	if err := s.requireCategory(ctx, form.CategoryID); err != nil {
		return nil, err
	}

	task := model.Task{
		ID:                uuid.NewString(),
		Name:              form.Name,
		Description:       form.Description,
		CategoryID:        form.CategoryID,
		CreatedAt:         time.Now(),
		LastCompletedAt:   nil,
		ExpectedFrequency: form.ExpectedFrequency,
		TimeCommitment:    form.TimeCommitment,
		IsArchived:        false,
		Notes:             form.Notes,
	}

	if issues := validation.ValidateTask(task); !issues.OK() {
		return nil, validationErr(issues)
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	s.log.Infow("task created", "id", task.ID, "name", task.Name)
	return &task, nil
}

// Update merges the patch onto the current record, re-validates, and
// persists. Fails with ErrNotFound when the task does not exist.
func (s *TaskService) Update(ctx context.Context, id string, patch TaskUpdate) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if patch.Name != nil {
		task.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		task.CategoryID = *patch.CategoryID
	}
	if patch.ClearFrequency {
		task.ExpectedFrequency = nil
	} else if patch.ExpectedFrequency != nil {
		task.ExpectedFrequency = patch.ExpectedFrequency
	}
	if patch.ClearCommitment {
		task.TimeCommitment = nil
	} else if patch.TimeCommitment != nil {
		task.TimeCommitment = patch.TimeCommitment
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}

	if issues := validation.ValidateTask(*task); !issues.OK() {
		return nil, validationErr(issues)
	}
	if patch.CategoryID != nil {
		if err := s.requireCategory(ctx, task.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return asNotFound(err)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infow("task deleted", "id", id)
	return nil
}

// Archive soft-hides a task; only the archived flag changes.
func (s *TaskService) Archive(ctx context.Context, id string) (*model.Task, error) {
	return s.setArchived(ctx, id, true)
}

// Restore brings an archived task back.
func (s *TaskService) Restore(ctx context.Context, id string) (*model.Task, error) {
	return s.setArchived(ctx, id, false)
}

func (s *TaskService) setArchived(ctx context.Context, id string, archived bool) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	task.IsArchived = archived
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete records a completion instant; no other field is touched.
func (s *TaskService) Complete(ctx context.Context, id string, completedAt time.Time) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	task.LastCompletedAt = &completedAt
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UndoComplete clears the completion instant.
func (s *TaskService) UndoComplete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	task.LastCompletedAt = nil
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get fetches one task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return task, nil
}

// List returns tasks newest first, excluding archived unless asked.
func (s *TaskService) List(ctx context.Context, includeArchived bool) ([]model.Task, error) {
	return s.tasks.List(ctx, includeArchived)
}

// ListByCategory returns the tasks referencing one category.
func (s *TaskService) ListByCategory(ctx context.Context, categoryID string, includeArchived bool) ([]model.Task, error) {
	return s.tasks.ListByCategory(ctx, categoryID, includeArchived)
}

// ListOverdue filters non-archived tasks through the recurrence engine.
func (s *TaskService) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, false)
	if err != nil {
		return nil, err
	}
	var overdue []model.Task
	for _, task := range tasks {
		if recurrence.IsOverdue(task, now) {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

// Search matches the query case-insensitively against name,
// description, and notes. An empty query returns everything.
func (s *TaskService) Search(ctx context.Context, query string, includeArchived bool) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return tasks, nil
	}
	var matched []model.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Name), term) ||
			strings.Contains(strings.ToLower(task.Description), term) ||
			strings.Contains(strings.ToLower(task.Notes), term) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// GroupByTimeCommitment buckets non-archived tasks by effort; tasks
// without a commitment land under "unknown".
func (s *TaskService) GroupByTimeCommitment(ctx context.Context, includeArchived bool) (map[string][]model.Task, error) {
	tasks, err := s.tasks.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]model.Task, len(model.TimeCommitments)+1)
	for _, c := range model.TimeCommitments {
		grouped[string(c)] = nil
	}
	grouped["unknown"] = nil
	for _, task := range tasks {
		key := "unknown"
		if task.TimeCommitment != nil {
			key = string(*task.TimeCommitment)
		}
		grouped[key] = append(grouped[key], task)
	}
	return grouped, nil
}

// Stats aggregates counts over non-archived tasks: completions today,
// overdue tasks, and the mean days from creation to last completion
// across ever-completed tasks.
func (s *TaskService) Stats(ctx context.Context, now time.Time) (*model.TaskStats, error) {
	tasks, err := s.tasks.List(ctx, false)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := model.TaskStats{TotalTasks: len(tasks)}
	var completed int
	var totalDays float64
	for _, task := range tasks {
		if recurrence.IsOverdue(task, now) {
			stats.OverdueTasks++
		}
		if task.LastCompletedAt == nil {
			continue
		}
		if !task.LastCompletedAt.Before(dayStart) && task.LastCompletedAt.Before(dayEnd) {
			stats.CompletedToday++
		}
		completed++
		totalDays += task.LastCompletedAt.Sub(task.CreatedAt).Hours() / 24
	}
	if completed > 0 {
		stats.AverageCompletionDays = totalDays / float64(completed)
	}
	return &stats, nil
}

// requireCategory rejects writes whose category reference points nowhere.
func (s *TaskService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if asNotFound(err) == ErrNotFound {
			var issues validation.Issues
			issues.Add("categoryId", "category %q does not exist", categoryID)
			return validationErr(issues)
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}
