package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"howlongsince/internal/validation"
)

var (
	// ErrNotFound means the operation targeted a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName means a category with the same name already exists.
	ErrDuplicateName = errors.New("a category with this name already exists")
	// ErrDefaultCategoryProtected blocks deletion of seeded categories.
	ErrDefaultCategoryProtected = errors.New("default categories cannot be deleted")
)

// ValidationError carries the field-level issues that blocked a write.
type ValidationError struct {
	Issues validation.Issues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Issues)
}

func validationErr(issues validation.Issues) error {
	return &ValidationError{Issues: issues}
}

// CategoryInUseError blocks deleting a category that any task still
// references. Count is the non-archived reference count; Archived
// counts the archived references, which block deletion too since a
// restored task must land in an existing category.
type CategoryInUseError struct {
	Count    int
	Archived int
}

func (e *CategoryInUseError) Error() string {
	switch {
	case e.Count == 0 && e.Archived > 0:
		return fmt.Sprintf("category is still referenced by %d archived tasks", e.Archived)
	case e.Archived > 0:
		return fmt.Sprintf("category is still referenced by %d tasks and %d archived tasks", e.Count, e.Archived)
	default:
		return fmt.Sprintf("category is still referenced by %d tasks", e.Count)
	}
}

// ImportStructureError means the top-level import payload failed the
// interchange schema and the whole import was rejected.
type ImportStructureError struct {
	Cause error
}

func (e *ImportStructureError) Error() string {
	return fmt.Sprintf("invalid export data format: %v", e.Cause)
}

func (e *ImportStructureError) Unwrap() error { return e.Cause }

// asNotFound translates the store's missing-record error into the
// service taxonomy; everything else passes through untouched.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
