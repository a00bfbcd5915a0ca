package storage

// Config holds configuration for document storage.
type Config struct {
	// Atomic stages writes in a temporary file and renames it over the target.
	Atomic bool `mapstructure:"atomic" default:"true"`
}
