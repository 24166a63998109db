package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ankictl/internal/anki"
)

var srcPattern = regexp.MustCompile(`src="([^"]+)"`)

// mediaStore downloads referenced media files into the export's media
// directory, deduplicating by filename across cards.
type mediaStore struct {
	fetcher MediaFetcher
	dir     string
	saved   map[string]string // source ref -> relative path, "" when unavailable
	fetched int
}

func newMediaStore(fetcher MediaFetcher, dir string) *mediaStore {
	return &mediaStore{
		fetcher: fetcher,
		dir:     dir,
		saved:   make(map[string]string),
	}
}

// localize downloads every src="..." reference in the fragment and
// rewrites the references to relative media/ paths. References whose
// payload is missing or not an image are left untouched.
func (m *mediaStore) localize(ctx context.Context, fragment string) (string, error) {
	for _, match := range srcPattern.FindAllStringSubmatch(fragment, -1) {
		ref := match[1]
		rel, err := m.fetch(ctx, ref)
		if err != nil {
			return "", err
		}
		if rel != "" {
			fragment = strings.ReplaceAll(fragment, ref, rel)
		}
	}
	return fragment, nil
}

func (m *mediaStore) fetch(ctx context.Context, ref string) (string, error) {
	if rel, ok := m.saved[ref]; ok {
		return rel, nil
	}

	// Anki references media by base filename, even when the card HTML
	// carries a path prefix.
	name := filepath.Base(ref)

	data, err := m.fetcher.RetrieveMediaFile(ctx, name)
	if errors.Is(err, anki.ErrMediaNotFound) {
		log.Printf("warning: media %q not in collection, reference kept as-is", name)
		m.saved[ref] = ""
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("retrieve media %q: %w", name, err)
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		m.saved[ref] = ""
		return "", nil
	}

	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("save media %q: %w", name, err)
	}
	m.fetched++

	rel := "media/" + name
	m.saved[ref] = rel
	return rel, nil
}
