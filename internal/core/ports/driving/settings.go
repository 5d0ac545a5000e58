package driving

import "github.com/custodia-labs/bizlens-cli/internal/core/domain"

// SettingsService manages persisted client settings.
type SettingsService interface {
	// Get returns the persisted settings merged over defaults.
	Get() (*domain.ClientSettings, error)

	// Set validates and persists a single setting.
	Set(key, value string) error

	// Unset removes a persisted setting, restoring its default.
	Unset(key string) error

	// Keys returns every supported setting key.
	Keys() []string

	// Path returns where settings are stored.
	Path() string
}
