package browse

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ankictl/internal/hierarchy"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func testTree() *hierarchy.Node {
	return hierarchy.Build([]string{
		"Anatomy::Head",
		"Anatomy::Thorax",
		"Chemistry",
		"Immuno::Cells::B",
		"Immuno::Cells::T",
	})
}

func TestCursorMovesAndClamps(t *testing.T) {
	m := NewModel(testTree())

	// Three top-level entries: Anatomy, Chemistry, Immuno.
	m = press(t, m, "down", "down")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	m = press(t, m, "down")
	if m.cursor != 2 {
		t.Errorf("cursor past last sibling = %d, want clamped at 2", m.cursor)
	}

	m = press(t, m, "up", "up", "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor before first sibling = %d, want clamped at 0", m.cursor)
	}
}

func TestDescendAndAscend(t *testing.T) {
	m := NewModel(testTree())

	m = press(t, m, "enter") // into Anatomy
	if got := strings.Join(m.path, "/"); got != "Anatomy" {
		t.Fatalf("path = %q, want Anatomy", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor after descend = %d, want 0", m.cursor)
	}

	m = press(t, m, "esc")
	if len(m.path) != 0 {
		t.Errorf("path after ascend = %v, want root", m.path)
	}
}

func TestDescendIntoLeafIsNoop(t *testing.T) {
	m := NewModel(testTree())

	m = press(t, m, "down", "enter") // Chemistry has no children
	if len(m.path) != 0 {
		t.Errorf("descending into a leaf moved the path: %v", m.path)
	}
}

func TestAscendAtRootIsNoop(t *testing.T) {
	m := press(t, NewModel(testTree()), "esc", "esc")
	if len(m.path) != 0 {
		t.Errorf("ascending at root moved the path: %v", m.path)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := NewModel(testTree())
		var msg tea.Msg = key(k)
		if k == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s did not quit", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s produced %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestScrollWindowFollowsCursor(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	m := NewModel(hierarchy.Build(paths))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: chromeLines + 3})
	m = next.(Model)

	m = press(t, m, "down", "down", "down", "down") // cursor 4, window of 3
	if m.offset != 2 {
		t.Errorf("offset = %d, want 2 so the cursor stays visible", m.offset)
	}

	view := m.View()
	if !strings.Contains(view, "> e") {
		t.Errorf("view does not show the cursor row:\n%s", view)
	}
	if strings.Contains(view, "  a\n") {
		t.Errorf("view still shows rows scrolled off the top:\n%s", view)
	}

	m = press(t, m, "up", "up", "up", "up")
	if m.offset != 0 {
		t.Errorf("offset after scrolling back = %d, want 0", m.offset)
	}
}

func TestViewShowsPath(t *testing.T) {
	m := NewModel(testTree())
	if !strings.Contains(m.View(), "Top Level") {
		t.Error("root view must label the top level")
	}

	m = press(t, m, "down", "down", "enter", "enter") // Immuno -> Cells
	if !strings.Contains(m.View(), "Immuno::Cells") {
		t.Errorf("view does not show the joined path:\n%s", m.View())
	}
}
