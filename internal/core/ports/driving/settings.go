package driving

import "github.com/cardforge-labs/cardforge-cli/internal/core/domain"

// SettingsService manages persisted application settings.
type SettingsService interface {
	// Get returns the current settings, falling back to defaults for
	// missing or invalid stored values.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting by its dotted key.
	Set(key, value string) error

	// Save persists a complete settings struct.
	Save(settings *domain.AppSettings) error
}
