package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[application]
editor = true

[window]
backend = "headless"
max_frames = 120
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Application.Editor)
	assert.Equal(t, "Resonance", cfg.Application.Name)
	assert.Equal(t, "headless", cfg.Window.Backend)
	assert.Equal(t, 120, cfg.Window.MaxFrames)
	assert.Equal(t, 16*time.Millisecond, cfg.Window.FrameTime)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "[window]\nbackend = \"vulkan\"\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "vulkan")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
