package anki

import (
	"fmt"
	"strings"
)

// DeckQuery selects every card in a deck (including its subdecks).
func DeckQuery(deck string) string {
	return fmt.Sprintf("deck:%q", deck)
}

// TagQuery selects cards carrying every one of the given tags. Anki
// joins bare terms conjunctively, so a card missing any tag is excluded.
func TagQuery(tags ...string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("tag:%q", tag))
	}
	return strings.Join(parts, " ")
}

// TermsQuery selects cards where any term appears in the card text, in a
// tag, or in a deck name.
func TermsQuery(terms []string) string {
	parts := make([]string, 0, 3*len(terms))
	for _, term := range terms {
		parts = append(parts,
			fmt.Sprintf("%q", term),
			fmt.Sprintf("tag:*%s*", term),
			fmt.Sprintf("deck:*%s*", term),
		)
	}
	return strings.Join(parts, " or ")
}
