package driving

import "github.com/custodia-labs/bismuth/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Reset removes every stored setting so defaults apply again.
	Reset() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
