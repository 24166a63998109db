// Package clone duplicates every note carrying a required set of tags
// into a target deck, without touching the source notes.
package clone

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"ankictl/internal/anki"
)

var (
	ErrNoTags       = errors.New("at least one tag is required")
	ErrNoTargetDeck = errors.New("a target deck name is required")
)

// api is the slice of the AnkiConnect client the cloner needs.
// *anki.Client satisfies it.
type api interface {
	FindCards(ctx context.Context, query string) ([]int64, error)
	CardsToNotes(ctx context.Context, cardIDs []int64) ([]int64, error)
	NotesInfo(ctx context.Context, noteIDs []int64) ([]*anki.Note, error)
	DeckNames(ctx context.Context) ([]string, error)
	CreateDeck(ctx context.Context, name string) error
	AddNotes(ctx context.Context, notes []anki.NewNote) ([]int64, error)
}

// Options controls one clone run. Tags use AND semantics: a note must
// carry every one of them to be selected.
type Options struct {
	Tags       []string
	TargetDeck string
	Shuffle    bool
	Seed       int64 // 0 means a fresh seed per run
}

// Result summarizes a finished clone run.
type Result struct {
	MatchedCards int
	Notes        int
	Added        int
}

// Cloner issues the read and write requests of a clone run.
type Cloner struct {
	client api
}

func New(client api) *Cloner {
	return &Cloner{client: client}
}

// Run selects, optionally shuffles, and duplicates the matching notes.
// A run that matches nothing is not an error; the Result reports zero
// matches and no writes are issued.
func (c *Cloner) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Tags) == 0 {
		return nil, ErrNoTags
	}
	if opts.TargetDeck == "" {
		return nil, ErrNoTargetDeck
	}

	cardIDs, err := c.client.FindCards(ctx, anki.TagQuery(opts.Tags...))
	if err != nil {
		return nil, err
	}
	if len(cardIDs) == 0 {
		return &Result{}, nil
	}

	noteIDs, err := c.client.CardsToNotes(ctx, cardIDs)
	if err != nil {
		return nil, err
	}
	notes, err := c.client.NotesInfo(ctx, uniqueIDs(noteIDs))
	if err != nil {
		return nil, err
	}

	if opts.Shuffle {
		shuffleNotes(notes, opts.Seed)
	}

	if err := c.ensureDeck(ctx, opts.TargetDeck); err != nil {
		return nil, err
	}

	clones := buildClones(notes, opts.TargetDeck)
	added, err := c.client.AddNotes(ctx, clones)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, id := range added {
		if id != 0 {
			count++
		}
	}
	return &Result{MatchedCards: len(cardIDs), Notes: len(notes), Added: count}, nil
}

func (c *Cloner) ensureDeck(ctx context.Context, name string) error {
	decks, err := c.client.DeckNames(ctx)
	if err != nil {
		return err
	}
	for _, d := range decks {
		if d == name {
			return nil
		}
	}
	return c.client.CreateDeck(ctx, name)
}

// buildClones converts notes into addNotes payloads for the target
// deck. When two clones would be field-identical, the second and later
// ones get a hidden counter marker appended to their first non-empty
// field, so no two notes in the destination share identical fields.
func buildClones(notes []*anki.Note, targetDeck string) []anki.NewNote {
	seen := make(map[string]int)

	clones := make([]anki.NewNote, 0, len(notes))
	for _, note := range notes {
		fields := make(map[string]string, len(note.Fields))
		for name, f := range note.Fields {
			fields[name] = f.Value
		}

		fp := fingerprint(note.ModelName, fields)
		if n := seen[fp]; n > 0 {
			markField(fields, fieldOrder(note.Fields), n)
		}
		seen[fp]++

		clones = append(clones, anki.NewNote{
			DeckName:  targetDeck,
			ModelName: note.ModelName,
			Fields:    fields,
			Tags:      note.Tags,
			Options:   anki.DuplicateOptions{AllowDuplicate: true, DuplicateScope: "deck"},
		})
	}
	return clones
}

// markField appends an invisible disambiguation marker to the first
// non-empty field, falling back to the first field of an all-empty note.
func markField(fields map[string]string, order []string, n int) {
	marker := fmt.Sprintf(`<span style="display:none">&#8204;%d</span>`, n)
	for _, name := range order {
		if fields[name] != "" {
			fields[name] += marker
			return
		}
	}
	if len(order) > 0 {
		fields[order[0]] = marker
	}
}

func fieldOrder(fields map[string]anki.Field) []string {
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
	return names
}

func fingerprint(model string, fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(model)
	for _, name := range names {
		b.WriteByte(0)
		b.WriteString(name)
		b.WriteByte(0)
		b.WriteString(fields[name])
	}
	return b.String()
}

func shuffleNotes(notes []*anki.Note, seed int64) {
	r := rand.New(rand.NewSource(seed))
	if seed == 0 {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	for i := len(notes) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		notes[i], notes[j] = notes[j], notes[i]
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
