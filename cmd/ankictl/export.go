package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ankictl/internal/anki"
	"ankictl/internal/export"
)

var (
	exportDeck string
	exportTag  string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a deck or a tag's cards to a static HTML document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (exportDeck == "") == (exportTag == "") {
			return fmt.Errorf("exactly one of --deck or --tag is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		query := anki.DeckQuery(exportDeck)
		label := exportDeck
		if exportTag != "" {
			query = anki.TagQuery(exportTag)
			label = exportTag
		}

		client := newClient(cfg)
		cards, notes, err := fetchCards(ctx, client, query)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Printf("No cards found for %q.\n", label)
			return nil
		}

		dir := exportOut
		if dir == "" {
			dir = filepath.Join(cfg.Export.Dir, export.DirName(label))
		}

		res, err := export.New(client).Export(ctx, dir, label, cards, notes)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d cards (%d notes, %d media files) to %s\n",
			res.CardCount, res.NoteCount, res.MediaCount, res.IndexPath)
		return nil
	},
}

// fetchCards resolves a query into full card records plus the unique
// notes behind them.
func fetchCards(ctx context.Context, client *anki.Client, query string) ([]*anki.Card, []*anki.Note, error) {
	cardIDs, err := client.FindCards(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if len(cardIDs) == 0 {
		return nil, nil, nil
	}

	cards, err := client.CardsInfo(ctx, cardIDs)
	if err != nil {
		return nil, nil, err
	}

	noteIDs, err := client.CardsToNotes(ctx, cardIDs)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[int64]bool, len(noteIDs))
	unique := noteIDs[:0]
	for _, id := range noteIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	notes, err := client.NotesInfo(ctx, unique)
	if err != nil {
		return nil, nil, err
	}
	return cards, notes, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportDeck, "deck", "", "deck to export (includes subdecks)")
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "tag to export across all decks")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default derived from the deck or tag)")
	rootCmd.AddCommand(exportCmd)
}
