package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration with viper.
// Priority order: environment variables > config file > defaults.
// configPath selects an explicit file; when empty, ankictl.yaml is
// searched for in the working directory and ~/.config/ankictl.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("ankictl")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ankictl")
	}

	v.SetEnvPrefix("ANKICTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Short aliases alongside the prefixed forms, so both
	// ANKICTL_ANKI_URL and ANKI_CONNECT_URL work.
	v.BindEnv("anki.url", "ANKI_CONNECT_URL")
	v.BindEnv("preview.port", "PORT")

	defaults := Default()
	v.SetDefault("anki.url", defaults.Anki.URL)
	v.SetDefault("anki.version", defaults.Anki.Version)
	v.SetDefault("anki.timeout", defaults.Anki.Timeout)
	v.SetDefault("anki.mediaRate", defaults.Anki.MediaRate)
	v.SetDefault("anki.mediaBurst", defaults.Anki.MediaBurst)
	v.SetDefault("preview.host", defaults.Preview.Host)
	v.SetDefault("preview.port", defaults.Preview.Port)
	v.SetDefault("preview.readTimeout", defaults.Preview.ReadTimeout)
	v.SetDefault("preview.writeTimeout", defaults.Preview.WriteTimeout)
	v.SetDefault("preview.shutdownTimeout", defaults.Preview.ShutdownTimeout)
	v.SetDefault("export.dir", defaults.Export.Dir)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !strings.Contains(err.Error(), "no such file or directory") {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
