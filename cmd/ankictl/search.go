package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ankictl/internal/anki"
	"ankictl/internal/export"
	"ankictl/internal/hierarchy"
	"ankictl/internal/preview"
)

var (
	searchTerms   string
	searchDeck    string
	searchServe   bool
	searchPort    string
	searchCleanup bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search cards by terms and export the hits to HTML",
	Long: `Search matches each term against card text, tags, and deck names,
exports the hits to a static HTML document, and can serve the result
over a local preview server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		terms := splitTerms(searchTerms)
		if len(terms) == 0 {
			return fmt.Errorf("--terms must name at least one search term")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if searchPort != "" {
			cfg.Preview.Port = searchPort
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		client := newClient(cfg)

		fmt.Printf("Searching terms: %s\n", strings.Join(terms, ", "))
		cards, notes, err := fetchCards(ctx, client, anki.TermsQuery(terms))
		if err != nil {
			return err
		}

		if searchDeck != "" {
			cards = filterByTopDeck(cards, searchDeck)
			notes = notesForCards(cards, notes)
		}
		if len(cards) == 0 {
			fmt.Println("No matching cards found.")
			return nil
		}
		fmt.Printf("Found %d matching cards\n", len(cards))

		if tags := uniqueTags(notes); len(tags) > 0 {
			fmt.Println("Tags on matching notes:")
			for _, tag := range tags {
				fmt.Printf("- %s\n", tag)
			}
		}

		label := strings.ToLower(strings.Join(terms, "_"))
		dir := filepath.Join(cfg.Export.Dir, export.DirName(label))

		res, err := export.New(client).Export(ctx, dir, strings.Join(terms, ", "), cards, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d cards to %s\n", res.CardCount, res.IndexPath)

		if !searchServe {
			return nil
		}

		srv := preview.New(cfg.Preview, res.Dir, searchCleanup)
		fmt.Printf("Serving at %s — press Ctrl+C to stop\n", srv.URL())
		return srv.Serve(ctx)
	},
}

func splitTerms(raw string) []string {
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// filterByTopDeck keeps cards whose top-level deck matches name.
func filterByTopDeck(cards []*anki.Card, name string) []*anki.Card {
	var kept []*anki.Card
	for _, c := range cards {
		top, _, _ := strings.Cut(c.DeckName, hierarchy.Separator)
		if top == name {
			kept = append(kept, c)
		}
	}
	return kept
}

// notesForCards drops notes none of the remaining cards belong to.
func notesForCards(cards []*anki.Card, notes []*anki.Note) []*anki.Note {
	wanted := make(map[int64]bool, len(cards))
	for _, c := range cards {
		wanted[c.Note] = true
	}
	var kept []*anki.Note
	for _, n := range notes {
		if wanted[n.NoteID] {
			kept = append(kept, n)
		}
	}
	return kept
}

func uniqueTags(notes []*anki.Note) []string {
	set := make(map[string]bool)
	for _, n := range notes {
		for _, t := range n.Tags {
			set[t] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func init() {
	searchCmd.Flags().StringVar(&searchTerms, "terms", "", "comma-separated search terms (required)")
	searchCmd.Flags().StringVar(&searchDeck, "deck", "", "keep only cards under this top-level deck")
	searchCmd.Flags().BoolVar(&searchServe, "serve", false, "serve the export over local HTTP afterwards")
	searchCmd.Flags().StringVar(&searchPort, "port", "", "preview server port (overrides config)")
	searchCmd.Flags().BoolVar(&searchCleanup, "cleanup", false, "delete the export directory after serving")
	searchCmd.MarkFlagRequired("terms")
	rootCmd.AddCommand(searchCmd)
}
