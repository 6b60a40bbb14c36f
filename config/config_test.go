package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "empathy-mirror", cfg.Pipeline.Name)
	assert.Equal(t, 50*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, 4, cfg.Camera.ClassifyEvery)
	assert.Equal(t, 8*time.Second, cfg.ListenTimeout())
	assert.Equal(t, 500, cfg.Session.HistoryLimit)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Audio.Calibrate)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirror.yaml")
	body := []byte(`
pipeline:
  log_level: debug
camera:
  frame_interval_ms: 100
  classify_every: 2
services:
  face:
    url: http://face:9000
session:
  history_limit: 50
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Pipeline.LogLvl)
	assert.Equal(t, 100*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, 2, cfg.Camera.ClassifyEvery)
	assert.Equal(t, "http://face:9000", cfg.Services.Face.URL)
	assert.Equal(t, 50, cfg.Session.HistoryLimit)
	// Untouched keys keep their defaults.
	assert.Equal(t, "http://localhost:9003", cfg.Services.Speech.URL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MIRROR_SERVER_ADDR", ":9999")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero-classify-every", "camera:\n  classify_every: 0\n"},
		{"negative-interval", "camera:\n  frame_interval_ms: -5\n"},
		{"zero-history", "session:\n  history_limit: 0\n"},
		{"empty-face-url", "services:\n  face:\n    url: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mirror.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestHTTPTimeoutCoversListenWindow(t *testing.T) {
	cfg := &Root{}
	cfg.Audio.ListenTimeoutMS = 60000
	cfg.HTTPWaitS = 30
	assert.Greater(t, cfg.HTTPTimeout(), cfg.ListenTimeout())
}
