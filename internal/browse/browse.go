// Package browse is an interactive terminal browser for a tag
// hierarchy: drill down with enter, back out with esc, quit with q.
package browse

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ankictl/internal/hierarchy"
)

var (
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

const chromeLines = 3 // path header, help line, blank spacer

// Model is the browser state: the node the user is looking at (as a
// segment path from the root), a cursor within its sorted children, and
// a scroll offset keeping the cursor visible.
type Model struct {
	root   *hierarchy.Node
	path   []string
	cursor int
	offset int
	height int
}

// NewModel creates a browser over the given tree.
func NewModel(root *hierarchy.Node) Model {
	return Model{root: root, height: 24}
}

// Run owns the terminal for the lifetime of the browser. Raw mode is
// acquired and restored by the bubbletea program on every exit path,
// including errors and panics.
func Run(root *hierarchy.Node) error {
	_, err := tea.NewProgram(NewModel(root), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// current returns the node the cursor level lists children of. The
// path only ever holds segments that exist, so lookup cannot miss.
func (m Model) current() *hierarchy.Node {
	return m.root.Lookup(m.path...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.current().ChildNames())-1 {
				m.cursor++
			}

		case "enter", "right", "l":
			names := m.current().ChildNames()
			if m.cursor < len(names) {
				child := m.current().Children[names[m.cursor]]
				if len(child.Children) > 0 {
					m.path = append(m.path, names[m.cursor])
					m.cursor = 0
					m.offset = 0
				}
			}

		case "esc", "left", "h", "backspace":
			if len(m.path) > 0 {
				m.path = m.path[:len(m.path)-1]
				m.cursor = 0
				m.offset = 0
			}
		}
		m.clampScroll()
	}
	return m, nil
}

// clampScroll keeps the cursor inside the visible window.
func (m *Model) clampScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) visibleRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) View() string {
	var b strings.Builder

	location := "Top Level"
	if len(m.path) > 0 {
		location = strings.Join(m.path, hierarchy.Separator)
	}
	b.WriteString(pathStyle.Render("Path: ") + pathStyle.Render(location) + "\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate · enter expand · esc collapse · q quit") + "\n\n")

	names := m.current().ChildNames()
	end := m.offset + m.visibleRows()
	if end > len(names) {
		end = len(names)
	}
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+names[i]) + "\n")
		} else {
			b.WriteString("  " + names[i] + "\n")
		}
	}

	return b.String()
}
