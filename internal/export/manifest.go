package export

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"ankictl/internal/anki"
)

// manifestNote is one entry of the notes.yaml sidecar, the
// machine-readable companion to the rendered document.
type manifestNote struct {
	NoteID    int64           `yaml:"noteId"`
	ModelName string          `yaml:"modelName"`
	DeckName  string          `yaml:"deckName,omitempty"`
	Tags      []string        `yaml:"tags"`
	Fields    []manifestField `yaml:"fields"`
}

type manifestField struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func writeManifest(path string, cards []*anki.Card, notes []*anki.Note) error {
	// A note's deck is taken from the first card that carries it.
	deckOf := make(map[int64]string)
	for _, c := range cards {
		if _, ok := deckOf[c.Note]; !ok {
			deckOf[c.Note] = c.DeckName
		}
	}

	entries := make([]manifestNote, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, manifestNote{
			NoteID:    n.NoteID,
			ModelName: n.ModelName,
			DeckName:  deckOf[n.NoteID],
			Tags:      n.Tags,
			Fields:    orderedFields(n.Fields),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].NoteID < entries[j].NoteID })

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func orderedFields(fields map[string]anki.Field) []manifestField {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, fj := fields[names[i]], fields[names[j]]
		if fi.Order != fj.Order {
			return fi.Order < fj.Order
		}
		return names[i] < names[j]
	})

	out := make([]manifestField, 0, len(names))
	for _, name := range names {
		out = append(out, manifestField{Name: name, Value: fields[name].Value})
	}
	return out
}
