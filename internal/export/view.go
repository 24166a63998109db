package export

import (
	"context"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"ankictl/internal/anki"
	"ankictl/internal/hierarchy"
)

// hiddenFieldNames are fields already shown as the card front and never
// rendered as click-to-reveal extras.
var hiddenFieldNames = map[string]bool{
	"front":    true,
	"question": true,
}

type pageView struct {
	Title string
	Tree  []*nodeView
}

type nodeView struct {
	Name     string
	Children []*nodeView
	Cards    []*cardView
}

type cardView struct {
	ID      int64
	Answer  template.HTML
	Extras  []*extraView
	TagLine string
	Search  string
}

type extraView struct {
	DomID string
	Name  string
	Body  template.HTML
}

func (e *Exporter) buildPage(ctx context.Context, title string, tree *hierarchy.Node, media *mediaStore) (*pageView, error) {
	children, err := e.buildNodes(ctx, tree, media)
	if err != nil {
		return nil, err
	}
	return &pageView{Title: title, Tree: children}, nil
}

func (e *Exporter) buildNodes(ctx context.Context, node *hierarchy.Node, media *mediaStore) ([]*nodeView, error) {
	views := make([]*nodeView, 0, len(node.Children))
	for _, name := range node.ChildNames() {
		child := node.Children[name]

		cards := make([]*cardView, 0, len(child.Cards))
		for _, card := range child.Cards {
			cv, err := e.buildCard(ctx, card, media)
			if err != nil {
				return nil, err
			}
			cards = append(cards, cv)
		}

		grandchildren, err := e.buildNodes(ctx, child, media)
		if err != nil {
			return nil, err
		}

		views = append(views, &nodeView{Name: name, Cards: cards, Children: grandchildren})
	}
	return views, nil
}

func (e *Exporter) buildCard(ctx context.Context, card *anki.Card, media *mediaStore) (*cardView, error) {
	answer, err := media.localize(ctx, card.Answer)
	if err != nil {
		return nil, err
	}
	answer = e.policy.Sanitize(answer)

	extras, err := e.buildExtras(ctx, card, answer, media)
	if err != nil {
		return nil, err
	}

	tags := card.Tags
	if len(tags) == 0 {
		tags = []string{"-"}
	}

	return &cardView{
		ID:      card.CardID,
		Answer:  template.HTML(answer),
		Extras:  extras,
		TagLine: strings.Join(tags, ", "),
		Search:  e.searchText(card, answer),
	}, nil
}

// buildExtras turns the card's remaining non-empty fields into
// click-to-reveal sections, skipping front-of-card fields and content
// already visible in the answer.
func (e *Exporter) buildExtras(ctx context.Context, card *anki.Card, answer string, media *mediaStore) ([]*extraView, error) {
	names := make([]string, 0, len(card.Fields))
	for name := range card.Fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		fi, fj := card.Fields[names[i]], card.Fields[names[j]]
		if fi.Order != fj.Order {
			return fi.Order < fj.Order
		}
		return names[i] < names[j]
	})

	var extras []*extraView
	for _, name := range names {
		value := strings.TrimSpace(card.Fields[name].Value)
		if value == "" || hiddenFieldNames[strings.ToLower(name)] || strings.Contains(answer, value) {
			continue
		}

		body, err := media.localize(ctx, value)
		if err != nil {
			return nil, err
		}
		extras = append(extras, &extraView{
			DomID: fmt.Sprintf("%d-%d", card.CardID, len(extras)),
			Name:  name,
			Body:  template.HTML(e.policy.Sanitize(body)),
		})
	}
	return extras, nil
}

// searchText builds the lowercased haystack the client-side filter
// matches against: visible text, tags, and deck name.
func (e *Exporter) searchText(card *anki.Card, answer string) string {
	parts := []string{card.DeckName, strings.Join(card.Tags, " "), e.strip.Sanitize(answer)}
	return strings.ToLower(strings.Join(parts, " "))
}
