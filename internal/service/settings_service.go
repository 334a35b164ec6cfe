package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"howlongsince/internal/model"
	"howlongsince/internal/repository"
	"howlongsince/internal/validation"
)

// backupReminderAfter is how stale a backup may get before the
// reminder fires.
const backupReminderAfter = 14 * 24 * time.Hour

// EnvironmentProbe reports the display environment's preferences.
// Resolving a "system" setting against the host is a capability the
// caller injects, not logic this service owns.
type EnvironmentProbe interface {
	PrefersDark() bool
	PrefersReducedMotion() bool
}

// NoopProbe is the probe used when no display environment exists,
// e.g. under tests or the CLI. It prefers light and full motion.
type NoopProbe struct{}

func (NoopProbe) PrefersDark() bool          { return false }
func (NoopProbe) PrefersReducedMotion() bool { return false }

// SettingsPatch updates fields of the single settings row; nil
// pointers leave the field untouched.
type SettingsPatch struct {
	LastBackupDate      *time.Time
	ClearLastBackup     bool
	CurrentView         *model.ViewMode
	Theme               *model.Theme
	TextSize            *model.TextSize
	HighContrast        *bool
	ReducedMotion       *bool
	OnboardingCompleted *bool
}

// SettingsService manages the single-row app configuration.
type SettingsService struct {
	settings *repository.SettingsRepository
	probe    EnvironmentProbe
	log      *zap.SugaredLogger
}

func NewSettingsService(settings *repository.SettingsRepository, probe EnvironmentProbe, log *zap.SugaredLogger) *SettingsService {
	if probe == nil {
		probe = NoopProbe{}
	}
	return &SettingsService{settings: settings, probe: probe, log: log}
}

// Get returns the settings row, creating it with defaults on first read.
func (s *SettingsService) Get(ctx context.Context) (*model.AppSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := model.DefaultSettings()
	if err := s.settings.Create(ctx, &defaults); err != nil {
		return nil, err
	}
	s.log.Infow("default settings created")
	return &defaults, nil
}

// Update merges the patch onto the current row, validates, and
// persists. The row id is fixed and cannot be changed.
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (*model.AppSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.ClearLastBackup {
		settings.LastBackupDate = nil
	} else if patch.LastBackupDate != nil {
		settings.LastBackupDate = patch.LastBackupDate
	}
	if patch.CurrentView != nil {
		settings.CurrentView = *patch.CurrentView
	}
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.TextSize != nil {
		settings.TextSize = *patch.TextSize
	}
	if patch.HighContrast != nil {
		settings.HighContrast = *patch.HighContrast
	}
	if patch.ReducedMotion != nil {
		settings.ReducedMotion = *patch.ReducedMotion
	}
	if patch.OnboardingCompleted != nil {
		settings.OnboardingCompleted = *patch.OnboardingCompleted
	}
	settings.ID = model.SettingsID

	if issues := validation.ValidateSettings(*settings); !issues.OK() {
		return nil, validationErr(issues)
	}
	if err := s.settings.Put(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetTheme stores the colour scheme preference.
func (s *SettingsService) SetTheme(ctx context.Context, theme model.Theme) error {
	_, err := s.Update(ctx, SettingsPatch{Theme: &theme})
	return err
}

// SetTextSize stores the text scaling preference.
func (s *SettingsService) SetTextSize(ctx context.Context, size model.TextSize) error {
	_, err := s.Update(ctx, SettingsPatch{TextSize: &size})
	return err
}

// SetCurrentView stores the list grouping mode.
func (s *SettingsService) SetCurrentView(ctx context.Context, view model.ViewMode) error {
	_, err := s.Update(ctx, SettingsPatch{CurrentView: &view})
	return err
}

// SetHighContrast stores the high-contrast flag.
func (s *SettingsService) SetHighContrast(ctx context.Context, enabled bool) error {
	_, err := s.Update(ctx, SettingsPatch{HighContrast: &enabled})
	return err
}

// SetReducedMotion stores the reduced-motion flag.
func (s *SettingsService) SetReducedMotion(ctx context.Context, enabled bool) error {
	_, err := s.Update(ctx, SettingsPatch{ReducedMotion: &enabled})
	return err
}

// CompleteOnboarding marks onboarding as done.
func (s *SettingsService) CompleteOnboarding(ctx context.Context) error {
	done := true
	_, err := s.Update(ctx, SettingsPatch{OnboardingCompleted: &done})
	return err
}

// UpdateLastBackup records when the data was last exported.
func (s *SettingsService) UpdateLastBackup(ctx context.Context, at time.Time) error {
	_, err := s.Update(ctx, SettingsPatch{LastBackupDate: &at})
	return err
}

// ShouldShowBackupReminder is true when the data has never been
// backed up or the last backup is more than fourteen days old.
func (s *SettingsService) ShouldShowBackupReminder(ctx context.Context, now time.Time) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if settings.LastBackupDate == nil {
		return true, nil
	}
	return now.Sub(*settings.LastBackupDate) > backupReminderAfter, nil
}

// EffectiveTheme resolves a "system" theme against the environment
// probe; explicit light/dark pass through.
func (s *SettingsService) EffectiveTheme(ctx context.Context) (model.Theme, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings.Theme != model.ThemeSystem {
		return settings.Theme, nil
	}
	if s.probe.PrefersDark() {
		return model.ThemeDark, nil
	}
	return model.ThemeLight, nil
}

// EffectiveReducedMotion is true when either the user or the
// environment asks for reduced motion.
func (s *SettingsService) EffectiveReducedMotion(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.ReducedMotion || s.probe.PrefersReducedMotion(), nil
}

// Import replaces the settings row with externally supplied values,
// pinning the fixed id.
func (s *SettingsService) Import(ctx context.Context, incoming model.AppSettings) error {
	incoming = validation.NormalizeSettings(incoming)
	incoming.ID = model.SettingsID
	if issues := validation.ValidateSettings(incoming); !issues.OK() {
		return validationErr(issues)
	}
	return s.settings.Put(ctx, &incoming)
}
