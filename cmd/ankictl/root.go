package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"ankictl/internal/anki"
	"ankictl/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "ankictl",
	Short:         "Export, browse and reorganize Anki flashcards over AnkiConnect",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to ankictl.yaml")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newClient(cfg *config.Config) *anki.Client {
	return anki.New(anki.Options{
		URL:        cfg.Anki.URL,
		Version:    cfg.Anki.Version,
		Timeout:    cfg.Anki.Timeout,
		MediaRate:  rate.Limit(cfg.Anki.MediaRate),
		MediaBurst: cfg.Anki.MediaBurst,
	})
}

// signalContext is the lifetime of a command: canceled on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}
