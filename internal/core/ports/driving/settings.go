package driving

import "github.com/custodia-labs/photoreport-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a single dot-notation key and persists it.
	// The resulting settings are validated before anything is written.
	Set(key, value string) error

	// Override applies a value for the current process only.
	// It is validated like Set but never written to the config store.
	Override(key, value string) error

	// Reset removes a stored key so its default applies again.
	Reset(key string) error

	// Validate checks the current settings can produce a layout.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the settable keys in display order.
	Keys() []string

	// List returns every key with its effective and default value.
	List() ([]domain.Setting, error)
}
