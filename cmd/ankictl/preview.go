package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ankictl/internal/preview"
)

var (
	previewPort    string
	previewCleanup bool
)

var previewCmd = &cobra.Command{
	Use:   "preview DIR",
	Short: "Serve an existing export directory over local HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if previewPort != "" {
			cfg.Preview.Port = previewPort
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		srv := preview.New(cfg.Preview, args[0], previewCleanup)
		fmt.Printf("Serving %s at %s — press Ctrl+C to stop\n", args[0], srv.URL())
		return srv.Serve(ctx)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewPort, "port", "", "server port (overrides config)")
	previewCmd.Flags().BoolVar(&previewCleanup, "cleanup", false, "delete the directory after serving")
	rootCmd.AddCommand(previewCmd)
}
