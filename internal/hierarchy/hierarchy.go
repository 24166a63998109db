// Package hierarchy builds nested trees out of Anki's path-like deck and
// tag names ("Parent::Child::Grandchild").
package hierarchy

import (
	"sort"
	"strings"

	"ankictl/internal/anki"
)

// Separator is Anki's hierarchy separator for both decks and tags.
const Separator = "::"

// Node is one level of a deck or tag hierarchy. Cards holds the cards
// attached directly at this node, not those of its descendants.
type Node struct {
	Name     string
	Children map[string]*Node
	Cards    []*anki.Card
}

// New returns an empty root node.
func New() *Node {
	return &Node{Children: make(map[string]*Node)}
}

// Insert walks the path segment by segment, creating nodes as needed,
// and returns the terminal node. Nodes with identical segment names at
// the same depth merge. An empty segment becomes a literal empty-named
// child.
func (n *Node) Insert(path string) *Node {
	cur := n
	for _, seg := range strings.Split(path, Separator) {
		child, ok := cur.Children[seg]
		if !ok {
			child = &Node{Name: seg, Children: make(map[string]*Node)}
			cur.Children[seg] = child
		}
		cur = child
	}
	return cur
}

// Attach inserts the path and appends the card at its terminal node.
func (n *Node) Attach(path string, card *anki.Card) {
	terminal := n.Insert(path)
	terminal.Cards = append(terminal.Cards, card)
}

// Lookup follows the given segments and returns the node they name, or
// nil when any segment is absent. Lookup with no segments returns n.
func (n *Node) Lookup(segments ...string) *Node {
	cur := n
	for _, seg := range segments {
		child, ok := cur.Children[seg]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

// ChildNames returns the node's child segment names in sorted order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Walk visits every descendant of n in preorder, children in sorted
// order. The root itself is not visited; its children are at depth 0.
func (n *Node) Walk(fn func(depth int, node *Node)) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(int, *Node)) {
	for _, name := range n.ChildNames() {
		child := n.Children[name]
		fn(depth, child)
		child.walk(depth+1, fn)
	}
}

// Build constructs a tree from bare paths (deck names, tag names).
func Build(paths []string) *Node {
	root := New()
	for _, p := range paths {
		root.Insert(p)
	}
	return root
}

// BuildCards constructs a tree from cards, filing each card under the
// path pathOf derives from it.
func BuildCards(cards []*anki.Card, pathOf func(*anki.Card) string) *Node {
	root := New()
	for _, c := range cards {
		root.Attach(pathOf(c), c)
	}
	return root
}
