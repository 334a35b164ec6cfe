package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"howlongsince/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// CreateAll inserts categories in bulk. Used by first-run seeding and
// the reset flow.
func (r *CategoryRepository) CreateAll(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return fmt.Errorf("create categories: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// GetByID returns gorm.ErrRecordNotFound when the category does not exist.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNameFold looks a category up by case-insensitive name match.
// Returns nil without error when no category matches.
func (r *CategoryRepository) FindByNameFold(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find category by name: %w", err)
	}
}

// List returns all categories by ascending sort order.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// MaxOrder returns the highest sort order in use, or 0 when the table
// is empty.
func (r *CategoryRepository) MaxOrder(ctx context.Context) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("MAX(sort_order)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("max category order: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// UpdateOrder rewrites the sort order of a single category.
func (r *CategoryRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	if err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Update("sort_order", order).Error; err != nil {
		return fmt.Errorf("update category order: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteAll clears the category table. Used by the reset flow.
func (r *CategoryRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	return nil
}
