package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ankictl/internal/clone"
)

var (
	cloneDeck    string
	cloneShuffle bool
	cloneSeed    int64
)

var cloneCmd = &cobra.Command{
	Use:   "clone TAG...",
	Short: "Duplicate notes carrying ALL given tags into a target deck",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		fmt.Println("Matching notes that have ALL of these tags:")
		for _, tag := range args {
			fmt.Printf("- %s\n", tag)
		}

		res, err := clone.New(newClient(cfg)).Run(ctx, clone.Options{
			Tags:       args,
			TargetDeck: cloneDeck,
			Shuffle:    cloneShuffle,
			Seed:       cloneSeed,
		})
		if err != nil {
			return err
		}
		if res.MatchedCards == 0 {
			fmt.Println("No notes found matching all tags.")
			return nil
		}

		fmt.Printf("Matched %d cards (%d unique notes); added %d notes to %q\n",
			res.MatchedCards, res.Notes, res.Added, cloneDeck)
		return nil
	},
}

func init() {
	cloneCmd.Flags().StringVar(&cloneDeck, "deck", "", "target deck for the cloned notes (required)")
	cloneCmd.Flags().BoolVar(&cloneShuffle, "shuffle", false, "shuffle notes before cloning")
	cloneCmd.Flags().Int64Var(&cloneSeed, "seed", 0, "shuffle seed for reproducible order (0 = random)")
	cloneCmd.MarkFlagRequired("deck")
	rootCmd.AddCommand(cloneCmd)
}
