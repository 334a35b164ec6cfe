package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"howlongsince/internal/model"
	"howlongsince/internal/recurrence"
	"howlongsince/internal/repository"
	"howlongsince/internal/validation"
)

// CategoryUpdate patches category fields; nil pointers leave the
// field untouched.
type CategoryUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// CategoryService owns category CRUD plus the transactional flows
// that touch tasks and categories together.
type CategoryService struct {
	db         *gorm.DB
	categories *repository.CategoryRepository
	tasks      *repository.TaskRepository
	log        *zap.SugaredLogger
}

func NewCategoryService(db *gorm.DB, categories *repository.CategoryRepository, tasks *repository.TaskRepository, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{db: db, categories: categories, tasks: tasks, log: log}
}

// List returns all categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// Get fetches one category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return category, nil
}

// Create adds a user category at the end of the ordering. The name
// must be unique ignoring case.
func (s *CategoryService) Create(ctx context.Context, form model.CategoryForm) (*model.Category, error) {
	form = validation.NormalizeCategoryForm(form)
	if issues := validation.ValidateCategoryForm(form); !issues.OK() {
		return nil, validationErr(issues)
	}

	existing, err := s.categories.FindByNameFold(ctx, form.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	maxOrder, err := s.categories.MaxOrder(ctx)
	if err != nil {
		return nil, err
	}

	category := model.Category{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Color:     form.Color,
		Icon:      form.Icon,
		IsDefault: false,
		Order:     maxOrder + 1,
	}

	if issues := validation.ValidateCategory(category); !issues.OK() {
		return nil, validationErr(issues)
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	s.log.Infow("category created", "id", category.ID, "name", category.Name)
	return &category, nil
}

// Update merges the patch, re-checks name uniqueness excluding the
// category itself, re-validates, and persists.
func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryUpdate) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	form := model.CategoryForm{Name: category.Name, Color: category.Color, Icon: category.Icon}
	if patch.Name != nil {
		form.Name = *patch.Name
	}
	if patch.Color != nil {
		form.Color = *patch.Color
	}
	if patch.Icon != nil {
		form.Icon = *patch.Icon
	}
	form = validation.NormalizeCategoryForm(form)

	if form.Name != category.Name {
		duplicate, err := s.categories.FindByNameFold(ctx, form.Name)
		if err != nil {
			return nil, err
		}
		if duplicate != nil && duplicate.ID != id {
			return nil, ErrDuplicateName
		}
	}

	category.Name = form.Name
	category.Color = form.Color
	category.Icon = form.Icon

	if issues := validation.ValidateCategory(*category); !issues.OK() {
		return nil, validationErr(issues)
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes an empty, non-default category. It fails with
// ErrDefaultCategoryProtected for seeded categories and with
// CategoryInUseError when any task, archived included, still
// references it; archived tasks keep their reference and must not be
// left dangling.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if category.IsDefault {
		return ErrDefaultCategoryProtected
	}

	total, err := s.tasks.CountAllByCategory(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		active, err := s.tasks.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		return &CategoryInUseError{Count: int(active), Archived: int(total - active)}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infow("category deleted", "id", id, "name", category.Name)
	return nil
}

// DeleteWithReassignment repoints every referencing task to the
// target category, then deletes the source, in one transaction.
// Either both steps are visible afterwards or neither is.
func (s *CategoryService) DeleteWithReassignment(ctx context.Context, id, targetID string) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if category.IsDefault {
		return ErrDefaultCategoryProtected
	}
	if _, err := s.categories.GetByID(ctx, targetID); err != nil {
		return asNotFound(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		categories := repository.NewCategoryRepository(tx)
		if err := tasks.ReassignCategory(ctx, id, targetID); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete category with reassignment: %w", err)
	}
	s.log.Infow("category deleted with reassignment", "id", id, "target", targetID)
	return nil
}

// Reorder assigns order = position+1 for the supplied permutation.
// The id list must be exactly the existing id set.
func (s *CategoryService) Reorder(ctx context.Context, orderedIDs []string) error {
	existing, err := s.categories.List(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(existing))
	for _, category := range existing {
		known[category.ID] = true
	}
	if len(orderedIDs) != len(existing) {
		var issues validation.Issues
		issues.Add("categoryIds", "expected %d category ids, got %d", len(existing), len(orderedIDs))
		return validationErr(issues)
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			var issues validation.Issues
			issues.Add("categoryIds", "unknown category id %q", id)
			return validationErr(issues)
		}
		if seen[id] {
			var issues validation.Issues
			issues.Add("categoryIds", "duplicate category id %q", id)
			return validationErr(issues)
		}
		seen[id] = true
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repository.NewCategoryRepository(tx)
		for i, id := range orderedIDs {
			if err := categories.UpdateOrder(ctx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

// WithTaskCounts returns every category with its non-archived task
// count and the overdue subset per the recurrence engine. This is a
// full scan per category; fine at personal-tracker scale.
func (s *CategoryService) WithTaskCounts(ctx context.Context, now time.Time) ([]model.CategoryWithTaskCount, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	counted := make([]model.CategoryWithTaskCount, 0, len(categories))
	for _, category := range categories {
		tasks, err := s.tasks.ListByCategory(ctx, category.ID, false)
		if err != nil {
			return nil, err
		}
		overdue := 0
		for _, task := range tasks {
			if recurrence.IsOverdue(task, now) {
				overdue++
			}
		}
		counted = append(counted, model.CategoryWithTaskCount{
			Category:         category,
			TaskCount:        len(tasks),
			OverdueTaskCount: overdue,
		})
	}
	return counted, nil
}

// EnsureDefaults seeds the ten default categories exactly once, on
// first run against an empty table.
func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.categories.CreateAll(ctx, newDefaultCategories()); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}
	s.log.Infow("default categories seeded")
	return nil
}

// ResetToDefaults wipes all categories and tasks and reseeds, in one
// transaction.
func (s *CategoryService) ResetToDefaults(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		categories := repository.NewCategoryRepository(tx)
		if err := tasks.DeleteAll(ctx); err != nil {
			return err
		}
		if err := categories.DeleteAll(ctx); err != nil {
			return err
		}
		return categories.CreateAll(ctx, newDefaultCategories())
	})
	if err != nil {
		return fmt.Errorf("reset categories: %w", err)
	}
	s.log.Infow("categories reset to defaults")
	return nil
}
