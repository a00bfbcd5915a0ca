package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"DEBUG", zapcore.DebugLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"WARNING", zapcore.WarnLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"CRITICAL", zapcore.FatalLevel, false},
		{"TRACE", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := New(&Config{Level: "LOUD"})
		assert.Error(t, err)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, err := New(&Config{Level: "INFO", Format: "xml"})
		assert.Error(t, err)
	})

	t.Run("LevelFiltersEntries", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "log.txt")
		l, err := New(&Config{Level: "WARNING", Format: "console", Output: out})
		require.NoError(t, err)

		l.Info("quiet entry")
		l.Warn("loud entry")
		_ = l.Sync()

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "quiet entry")
		assert.Contains(t, string(data), "loud entry")
		assert.Contains(t, string(data), "WARN")
	})

	t.Run("DebugUsesCapitalLevel", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "log.txt")
		l, err := New(&Config{Level: "DEBUG", Format: "console", Output: out})
		require.NoError(t, err)

		l.Debug("loading document")
		_ = l.Sync()

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "DEBUG")
		assert.Contains(t, string(data), "loading document")
	})
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := WithRunID(zap.New(core), "run-1")
	l.Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "run-1", logs.All()[0].ContextMap()["run_id"])

	base := zap.NewNop()
	assert.Same(t, base, WithRunID(base, ""))
}
