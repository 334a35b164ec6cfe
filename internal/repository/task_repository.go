package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"howlongsince/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Save writes the full task record back.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// GetByID returns gorm.ErrRecordNotFound when the task does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, includeArchived bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByCategory(ctx context.Context, categoryID string, includeArchived bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("created_at DESC")
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by category: %w", err)
	}
	return tasks, nil
}

// CountByCategory counts non-archived tasks referencing the category.
func (r *TaskRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ? AND is_archived = ?", categoryID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks by category: %w", err)
	}
	return count, nil
}

// CountAllByCategory counts every task referencing the category,
// archived included.
func (r *TaskRepository) CountAllByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count all tasks by category: %w", err)
	}
	return count, nil
}

// ReassignCategory bulk-repoints every task from one category to another.
func (r *TaskRepository) ReassignCategory(ctx context.Context, fromID, toID string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ?", fromID).
		Update("category_id", toID).Error; err != nil {
		return fmt.Errorf("reassign tasks: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteAll clears the task table. Used by the category reset flow.
func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}
