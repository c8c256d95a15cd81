package driven

// ConfigStore reads and writes user settings. Keys use dot notation that
// mirrors the TOML tables, e.g. "page.margin" or "grid.columns".
//
// Typed getters return the zero value when a key is missing or holds a
// value of the wrong kind; the settings service then falls back to its
// defaults. GetFloat also accepts integers, because hand-edited files
// often write "margin = 15".
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set and Delete persist immediately. Deleting a key restores its
	// default.
	Set(key string, value any) error
	Delete(key string) error

	Save() error
	Load() error

	// Path is the backing file, or ":memory:".
	Path() string
}
