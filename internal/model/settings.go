package model

import "time"

// SettingsID is the fixed key of the single settings row.
const SettingsID = "default"

// ViewMode selects how the task list is grouped.
type ViewMode string

const (
	ViewCategory ViewMode = "category"
	ViewTime     ViewMode = "time"
)

// Theme is the user's colour scheme preference. ThemeSystem defers to
// the display environment.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// TextSize scales the interface text.
type TextSize string

const (
	TextDefault TextSize = "default"
	TextLarge   TextSize = "large"
	TextLarger  TextSize = "larger"
)

// AppSettings is the single-row application configuration. It is
// created once with defaults and only ever updated afterwards.
type AppSettings struct {
	ID                  string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	LastBackupDate      *time.Time `json:"lastBackupDate"`
	CurrentView         ViewMode   `gorm:"type:varchar(10)" json:"currentView"`
	Theme               Theme      `gorm:"type:varchar(10)" json:"theme"`
	TextSize            TextSize   `gorm:"type:varchar(10)" json:"textSize"`
	HighContrast        bool       `gorm:"default:false" json:"highContrast"`
	ReducedMotion       bool       `gorm:"default:false" json:"reducedMotion"`
	OnboardingCompleted bool       `gorm:"default:false" json:"onboardingCompleted"`
}

// DefaultSettings returns the settings row as created at first run.
func DefaultSettings() AppSettings {
	return AppSettings{
		ID:          SettingsID,
		CurrentView: ViewCategory,
		Theme:       ThemeSystem,
		TextSize:    TextDefault,
	}
}
