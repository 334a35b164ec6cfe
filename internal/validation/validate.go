package validation

import (
	"regexp"
	"unicode/utf8"

	"howlongsince/internal/model"
)

const (
	maxTaskNameLen     = 128
	maxDescriptionLen  = 512
	maxNotesLen        = 512
	maxCategoryNameLen = 50
)

var colorPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

// ValidateTask checks a complete task record.
func ValidateTask(t model.Task) Issues {
	var issues Issues
	if t.ID == "" {
		issues.Add("id", "task id is required")
	}
	checkTaskFields(&issues, t.Name, t.Description, t.Notes, t.CategoryID)
	checkFrequency(&issues, t.ExpectedFrequency)
	checkCommitment(&issues, t.TimeCommitment)
	if t.CreatedAt.IsZero() {
		issues.Add("createdAt", "creation time is required")
	}
	return issues
}

// ValidateTaskForm checks user-supplied task fields; id and creation
// time are service-assigned and therefore not expected here.
func ValidateTaskForm(f model.TaskForm) Issues {
	var issues Issues
	checkTaskFields(&issues, f.Name, f.Description, f.Notes, f.CategoryID)
	checkFrequency(&issues, f.ExpectedFrequency)
	checkCommitment(&issues, f.TimeCommitment)
	return issues
}

// ValidateCategory checks a complete category record.
func ValidateCategory(c model.Category) Issues {
	var issues Issues
	if c.ID == "" {
		issues.Add("id", "category id is required")
	}
	checkCategoryFields(&issues, c.Name, c.Color)
	if c.Order < 0 {
		issues.Add("order", "order must not be negative")
	}
	return issues
}

// ValidateCategoryForm checks user-supplied category fields.
func ValidateCategoryForm(f model.CategoryForm) Issues {
	var issues Issues
	checkCategoryFields(&issues, f.Name, f.Color)
	return issues
}

// ValidateSettings checks the settings row, including enum membership
// for view mode, theme, and text size.
func ValidateSettings(s model.AppSettings) Issues {
	var issues Issues
	if s.ID == "" {
		issues.Add("id", "settings id is required")
	}
	switch s.CurrentView {
	case model.ViewCategory, model.ViewTime:
	default:
		issues.Add("currentView", "unknown view mode %q", s.CurrentView)
	}
	switch s.Theme {
	case model.ThemeLight, model.ThemeDark, model.ThemeSystem:
	default:
		issues.Add("theme", "unknown theme %q", s.Theme)
	}
	switch s.TextSize {
	case model.TextDefault, model.TextLarge, model.TextLarger:
	default:
		issues.Add("textSize", "unknown text size %q", s.TextSize)
	}
	return issues
}

func checkTaskFields(issues *Issues, name, description, notes, categoryID string) {
	if name == "" {
		issues.Add("name", "task name is required")
	} else if utf8.RuneCountInString(name) > maxTaskNameLen {
		issues.Add("name", "task name must be %d characters or less", maxTaskNameLen)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		issues.Add("description", "description must be %d characters or less", maxDescriptionLen)
	}
	if utf8.RuneCountInString(notes) > maxNotesLen {
		issues.Add("notes", "notes must be %d characters or less", maxNotesLen)
	}
	if categoryID == "" {
		issues.Add("categoryId", "a category is required")
	}
}

func checkCategoryFields(issues *Issues, name, color string) {
	if name == "" {
		issues.Add("name", "category name is required")
	} else if utf8.RuneCountInString(name) > maxCategoryNameLen {
		issues.Add("name", "category name must be %d characters or less", maxCategoryNameLen)
	}
	if !colorPattern.MatchString(color) {
		issues.Add("color", "invalid color format, use hex format like #FF0000")
	}
}

func checkFrequency(issues *Issues, f *model.ExpectedFrequency) {
	if f == nil {
		return
	}
	if f.Value <= 0 {
		issues.Add("expectedFrequency.value", "frequency value must be a positive integer")
	}
	if !model.ValidFrequencyUnit(f.Unit) {
		issues.Add("expectedFrequency.unit", "unknown frequency unit %q", f.Unit)
	}
}

func checkCommitment(issues *Issues, c *model.TimeCommitment) {
	if c == nil {
		return
	}
	if !model.ValidTimeCommitment(*c) {
		issues.Add("timeCommitment", "unknown time commitment %q", *c)
	}
}
