package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	names := []string{
		"POLYGON_LOG_LEVEL", "POLYGON_LOG_FORMAT", "POLYGON_WIDTH", "POLYGON_HEIGHT",
		"POLYGON_TITLE", "POLYGON_PROFILE", "WGPU_LOG_LEVEL", "WGPU_FORCE_FALLBACK_ADAPTER",
	}

	for _, name := range names {
		t.Setenv(name, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := configFromEnv()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, conf.LogLevel)
	assert.Equal(t, "text", conf.LogFormat)
	assert.Empty(t, conf.WGPULogLevel)
	assert.Equal(t, 800, conf.Window.Width)
	assert.Equal(t, 600, conf.Window.Height)
	assert.Equal(t, "polygon", conf.Window.Title)
	assert.False(t, conf.Window.Profile)
	assert.False(t, conf.Host.ForceFallbackAdapter)
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("POLYGON_LOG_LEVEL", "debug")
	t.Setenv("POLYGON_LOG_FORMAT", "JSON")
	t.Setenv("POLYGON_WIDTH", "1280")
	t.Setenv("POLYGON_HEIGHT", "720")
	t.Setenv("POLYGON_TITLE", "pentagon")
	t.Setenv("POLYGON_PROFILE", "1")
	t.Setenv("WGPU_LOG_LEVEL", "warn")
	t.Setenv("WGPU_FORCE_FALLBACK_ADAPTER", "1")

	conf, err := configFromEnv()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.Equal(t, "json", conf.LogFormat)
	assert.Equal(t, "warn", conf.WGPULogLevel)
	assert.Equal(t, 1280, conf.Window.Width)
	assert.Equal(t, 720, conf.Window.Height)
	assert.Equal(t, "pentagon", conf.Window.Title)
	assert.True(t, conf.Window.Profile)
	assert.True(t, conf.Host.ForceFallbackAdapter)
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"POLYGON_LOG_LEVEL":  "loud",
		"POLYGON_LOG_FORMAT": "xml",
		"POLYGON_WIDTH":      "wide",
		"POLYGON_HEIGHT":     "-10",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(name, value)

			_, err := configFromEnv()
			assert.ErrorContains(t, err, name)
		})
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer

	conf := config{LogFormat: "json", LogLevel: slog.LevelWarn}
	logger := conf.logger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("width", 800))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, float64(800), record["width"])
}

func TestLoadDotEnvWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, loadDotEnv())
}
