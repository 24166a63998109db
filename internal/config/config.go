package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures; loading is handled by
// viper in loader.go.

// Config holds all ankictl settings.
type Config struct {
	Anki    AnkiSettings    `mapstructure:"anki"`
	Preview PreviewSettings `mapstructure:"preview"`
	Export  ExportSettings  `mapstructure:"export"`
}

// AnkiSettings configures the AnkiConnect endpoint.
type AnkiSettings struct {
	URL     string        `mapstructure:"url"`
	Version int           `mapstructure:"version"`
	Timeout time.Duration `mapstructure:"timeout"`

	// Media download pacing, requests per second and burst.
	MediaRate  float64 `mapstructure:"mediaRate"`
	MediaBurst int     `mapstructure:"mediaBurst"`
}

// PreviewSettings configures the local preview server.
type PreviewSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// ExportSettings configures where export directories are created.
type ExportSettings struct {
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Anki: AnkiSettings{
			URL:        "http://127.0.0.1:8765",
			Version:    6,
			Timeout:    30 * time.Second,
			MediaRate:  20,
			MediaBurst: 5,
		},
		Preview: PreviewSettings{
			Host:            "127.0.0.1",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Export: ExportSettings{
			Dir: ".",
		},
	}
}

// Validate checks settings no command can run without.
func (c *Config) Validate() error {
	if c.Anki.URL == "" {
		return fmt.Errorf("anki.url must not be empty")
	}
	if c.Anki.Version <= 0 {
		return fmt.Errorf("anki.version must be positive, got %d", c.Anki.Version)
	}
	if c.Anki.Timeout <= 0 {
		return fmt.Errorf("anki.timeout must be positive, got %s", c.Anki.Timeout)
	}
	if c.Anki.MediaRate <= 0 {
		return fmt.Errorf("anki.mediaRate must be positive, got %f", c.Anki.MediaRate)
	}
	if c.Preview.Port == "" {
		return fmt.Errorf("preview.port must not be empty")
	}
	return nil
}
