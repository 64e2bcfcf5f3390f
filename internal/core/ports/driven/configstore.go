package driven

// ConfigStore holds flat, dot-separated settings such as
// "search.snippet_context" or "storage.data_dir".
//
// Typed getters return the zero value when a key is missing or holds a value
// of another type; use Get to tell the two apart.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key so readers fall back to their defaults.
	// Deleting a missing key is not an error.
	Delete(key string) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage, replacing what is in memory.
	Load() error

	// Path returns where the configuration lives, for diagnostics.
	Path() string
}
