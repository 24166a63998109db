package hierarchy

import (
	"reflect"
	"testing"

	"ankictl/internal/anki"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		paths        []string
		wantChildren []string
	}{
		{
			name:         "empty input produces childless root",
			paths:        nil,
			wantChildren: []string{},
		},
		{
			name:         "shared prefix merges",
			paths:        []string{"A::B", "A::C"},
			wantChildren: []string{"A"},
		},
		{
			name:         "distinct roots stay separate",
			paths:        []string{"A", "B", "A::B"},
			wantChildren: []string{"A", "B"},
		},
		{
			name:         "empty segment becomes a literal child",
			paths:        []string{"A::::B"},
			wantChildren: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Build(tt.paths)
			if got := root.ChildNames(); !reflect.DeepEqual(got, tt.wantChildren) {
				t.Errorf("ChildNames() = %v, want %v", got, tt.wantChildren)
			}
		})
	}
}

func TestSiblingsMergeUnderSharedParent(t *testing.T) {
	root := Build([]string{"A::B", "A::C"})

	a := root.Lookup("A")
	if a == nil {
		t.Fatal("node A not found")
	}
	if got := a.ChildNames(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("children of A = %v, want [B C]", got)
	}
}

func TestEmptySegmentIsLiteralChild(t *testing.T) {
	root := Build([]string{"A::::B"})
	if root.Lookup("A", "", "B") == nil {
		t.Error("expected path A -> \"\" -> B to exist")
	}
}

func TestAttachReachableBySegmentPath(t *testing.T) {
	cardB := &anki.Card{CardID: 1, DeckName: "A::B"}
	cardC := &anki.Card{CardID: 2, DeckName: "A::C"}

	root := BuildCards([]*anki.Card{cardB, cardC}, func(c *anki.Card) string {
		return c.DeckName
	})

	b := root.Lookup("A", "B")
	if b == nil {
		t.Fatal("node A::B not found")
	}
	if len(b.Cards) != 1 || b.Cards[0] != cardB {
		t.Errorf("cards at A::B = %v, want exactly cardB", b.Cards)
	}

	c := root.Lookup("A", "C")
	if c == nil {
		t.Fatal("node A::C not found")
	}
	if len(c.Cards) != 1 || c.Cards[0] != cardC {
		t.Errorf("cards at A::C = %v, want exactly cardC", c.Cards)
	}

	// Nothing attaches at the intermediate node.
	if a := root.Lookup("A"); len(a.Cards) != 0 {
		t.Errorf("cards at A = %v, want none", a.Cards)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	paths := []string{"A::B", "A::C", "X", "A::B::D", "", "A::::B"}

	first := Build(paths)
	second := Build(paths)

	if !reflect.DeepEqual(first, second) {
		t.Error("building twice from the same input must yield structurally identical trees")
	}
}

func TestWalkVisitsSortedPreorder(t *testing.T) {
	root := Build([]string{"B::Y", "A", "B::X"})

	type visit struct {
		depth int
		name  string
	}
	var got []visit
	root.Walk(func(depth int, node *Node) {
		got = append(got, visit{depth, node.Name})
	})

	want := []visit{
		{0, "A"},
		{0, "B"},
		{1, "X"},
		{1, "Y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk order = %v, want %v", got, want)
	}
}

func TestLookupMissingPath(t *testing.T) {
	root := Build([]string{"A::B"})
	if root.Lookup("A", "Z") != nil {
		t.Error("Lookup of an absent path must return nil")
	}
	if root.Lookup() != root {
		t.Error("Lookup with no segments must return the receiver")
	}
}
