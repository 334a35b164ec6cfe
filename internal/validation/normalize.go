package validation

import (
	"strings"

	"howlongsince/internal/model"
)

// Normalization backfills safe defaults on partial input so that
// validation judges a complete candidate. It is a separate pure step;
// the storage layer never fills blanks on its own.

// NormalizeTaskForm trims the name and lowers enum casing where the
// intent is unambiguous.
func NormalizeTaskForm(f model.TaskForm) model.TaskForm {
	f.Name = strings.TrimSpace(f.Name)
	if f.ExpectedFrequency != nil {
		unit := model.FrequencyUnit(strings.ToLower(string(f.ExpectedFrequency.Unit)))
		f.ExpectedFrequency = &model.ExpectedFrequency{Value: f.ExpectedFrequency.Value, Unit: unit}
	}
	return f
}

// NormalizeTask completes a task record with defaults for fields that
// have a safe zero: empty description and notes, unarchived.
func NormalizeTask(t model.Task) model.Task {
	t.Name = strings.TrimSpace(t.Name)
	return t
}

// NormalizeCategoryForm trims the name and upper-cases the hex color.
func NormalizeCategoryForm(f model.CategoryForm) model.CategoryForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Color = strings.ToUpper(strings.TrimSpace(f.Color))
	return f
}

// NormalizeSettings fills enum blanks with the first-run defaults.
func NormalizeSettings(s model.AppSettings) model.AppSettings {
	if s.ID == "" {
		s.ID = model.SettingsID
	}
	if s.CurrentView == "" {
		s.CurrentView = model.ViewCategory
	}
	if s.Theme == "" {
		s.Theme = model.ThemeSystem
	}
	if s.TextSize == "" {
		s.TextSize = model.TextDefault
	}
	return s
}
