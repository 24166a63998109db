// Package export renders a card hierarchy into a single self-contained
// searchable HTML document, with referenced media downloaded alongside
// it and a YAML manifest of the underlying notes.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"ankictl/internal/anki"
	"ankictl/internal/hierarchy"
)

// MediaFetcher retrieves one file from the media collection by name.
// *anki.Client satisfies it.
type MediaFetcher interface {
	RetrieveMediaFile(ctx context.Context, filename string) ([]byte, error)
}

// Exporter renders exports. It is safe to reuse across exports.
type Exporter struct {
	fetcher MediaFetcher
	policy  *bluemonday.Policy
	strip   *bluemonday.Policy
}

// Result summarizes a finished export.
type Result struct {
	Dir        string
	IndexPath  string
	CardCount  int
	NoteCount  int
	MediaCount int
}

// New creates an Exporter that downloads media through fetcher.
func New(fetcher MediaFetcher) *Exporter {
	policy := bluemonday.UGCPolicy().
		AllowElements("img").
		AllowAttrs("src", "alt").OnElements("img")
	policy.AllowRelativeURLs(true)

	return &Exporter{
		fetcher: fetcher,
		policy:  policy,
		strip:   bluemonday.StrictPolicy(),
	}
}

// DirName derives a filesystem-safe export directory name from a deck
// name, tag, or search label.
func DirName(name string) string {
	safe := strings.ReplaceAll(name, hierarchy.Separator, "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return "export_" + safe
}

// Export writes index.html, css/styles.css, media files, and notes.yaml
// under dir, grouping cards by their deck hierarchy. The same input
// always produces byte-identical index.html. The document is written to
// a temp file and renamed into place last, so an aborted run never
// leaves a half-written index.html.
func (e *Exporter) Export(ctx context.Context, dir, title string, cards []*anki.Card, notes []*anki.Note) (*Result, error) {
	mediaDir := filepath.Join(dir, "media")
	cssDir := filepath.Join(dir, "css")
	for _, d := range []string{dir, mediaDir, cssDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Join(cssDir, "styles.css"), []byte(stylesCSS), 0o644); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}

	media := newMediaStore(e.fetcher, mediaDir)

	// Sort by card ID up front so grouping and rendering are stable.
	sorted := make([]*anki.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CardID < sorted[j].CardID })

	tree := hierarchy.BuildCards(sorted, func(c *anki.Card) string { return c.DeckName })

	page, err := e.buildPage(ctx, title, tree, media)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	indexPath := filepath.Join(dir, "index.html")
	tmpPath := indexPath + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmpPath, indexPath); err != nil {
		return nil, fmt.Errorf("finalize document: %w", err)
	}

	if err := writeManifest(filepath.Join(dir, "notes.yaml"), sorted, notes); err != nil {
		return nil, err
	}

	return &Result{
		Dir:        dir,
		IndexPath:  indexPath,
		CardCount:  len(sorted),
		NoteCount:  len(notes),
		MediaCount: media.fetched,
	}, nil
}
