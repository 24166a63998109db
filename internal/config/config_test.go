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
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8765", cfg.Anki.URL)
	assert.Equal(t, 6, cfg.Anki.Version)
	assert.Equal(t, 30*time.Second, cfg.Anki.Timeout)
	assert.Equal(t, "8080", cfg.Preview.Port)
	assert.Equal(t, ".", cfg.Export.Dir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ankictl.yaml")
	content := `
anki:
  url: http://localhost:9999
  timeout: 5s
preview:
  port: "9090"
export:
  dir: /tmp/exports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Anki.URL)
	assert.Equal(t, 5*time.Second, cfg.Anki.Timeout)
	assert.Equal(t, "9090", cfg.Preview.Port)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, 6, cfg.Anki.Version)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ankictl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anki:\n  url: http://from-file:1\n"), 0o644))

	t.Setenv("ANKI_CONNECT_URL", "http://from-env:2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.Anki.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults are valid", func(*Config) {}, true},
		{"empty url", func(c *Config) { c.Anki.URL = "" }, false},
		{"zero version", func(c *Config) { c.Anki.Version = 0 }, false},
		{"negative timeout", func(c *Config) { c.Anki.Timeout = -time.Second }, false},
		{"zero media rate", func(c *Config) { c.Anki.MediaRate = 0 }, false},
		{"empty preview port", func(c *Config) { c.Preview.Port = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
