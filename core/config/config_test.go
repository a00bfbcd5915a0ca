package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, 2, cfg.Document.Indent)
	assert.True(t, cfg.Storage.Atomic)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DOCUMENT_INDENT", "4")
	t.Setenv("STORAGE_ATOMIC", "false")

	cfg, err := LoadConfig(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Document.Indent)
	assert.False(t, cfg.Storage.Atomic)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	cfg, err := LoadConfig(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Flags(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")

	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("log-level", "INFO", "")
		fs.String("log-format", "console", "")
		return fs
	}

	t.Run("ChangedFlagWins", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--log-level", "DEBUG"}))

		cfg, err := LoadConfig(t.TempDir(), flags)
		require.NoError(t, err)
		assert.Equal(t, "DEBUG", cfg.Log.Level)
	})

	t.Run("UnchangedFlagKeepsEnvironment", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse(nil))

		cfg, err := LoadConfig(t.TempDir(), flags)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", cfg.Log.Level)
	})
}
