package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List all decks and subdecks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		decks, err := newClient(cfg).DeckNames(ctx)
		if err != nil {
			return err
		}
		if len(decks) == 0 {
			fmt.Println("No decks found.")
			return nil
		}

		fmt.Println("Available decks:")
		for _, deck := range decks {
			fmt.Printf("- %s\n", deck)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decksCmd)
}
