// Package modal is a filterable pick list drawn over the report canvas.
package modal

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals an item was chosen.
type ActionSelect struct{ Item Item }

// Item is a single entry in the list. Value carries whatever the caller
// needs back on selection (a section ID, a width).
type Item struct {
	Name  string
	Desc  string
	Value any
}

// Colors holds the theme colors for the modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

const debounceDelay = 120 * time.Millisecond

// debounceMsg is sent after the debounce timer fires.
type debounceMsg struct{ seq int }

// Model is a filter input above a list of items.
type Model struct {
	Title string

	all      []Item
	items    []Item
	query    []rune
	selected int
	seq      int

	colors Colors
}

// New creates a modal listing items. selected is the initially highlighted
// index.
func New(title string, items []Item, selected int, colors Colors) Model {
	m := Model{Title: title, all: items, items: items, colors: colors}
	if selected >= 0 && selected < len(items) {
		m.selected = selected
	}
	return m
}

// Items returns the currently visible (filtered) items.
func (m *Model) Items() []Item { return m.items }

// Selected returns the index of the highlighted visible item.
func (m *Model) Selected() int { return m.selected }

// HandleMsg processes a tea.Msg and returns an optional Action.
// The second return is a tea.Cmd the parent must dispatch (for debounce).
func (m *Model) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case debounceMsg:
		if msg.seq == m.seq {
			m.applyFilter()
		}
	}
	return nil, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (Action, tea.Cmd) {
	switch msg.Keystroke() {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		if len(m.items) == 0 {
			return nil, nil
		}
		return ActionSelect{Item: m.items[m.selected]}, nil
	case "up", "shift+tab":
		if m.selected > 0 {
			m.selected--
		}
		return nil, nil
	case "down", "tab":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return nil, nil
	case "backspace":
		if len(m.query) == 0 {
			return nil, nil
		}
		m.query = m.query[:len(m.query)-1]
		m.seq++
		return nil, m.debounceCmd()
	case "ctrl+u":
		m.query = nil
		m.seq++
		return nil, m.debounceCmd()
	}

	if msg.Text != "" {
		m.query = append(m.query, []rune(msg.Text)...)
		m.seq++
		return nil, m.debounceCmd()
	}
	return nil, nil
}

func (m *Model) debounceCmd() tea.Cmd {
	seq := m.seq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// applyFilter keeps items whose name or description contains the query,
// case-insensitively.
func (m *Model) applyFilter() {
	q := strings.ToLower(string(m.query))
	m.selected = 0
	if q == "" {
		m.items = m.all
		return
	}
	m.items = nil
	for _, it := range m.all {
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Desc), q) {
			m.items = append(m.items, it)
		}
	}
}

// View renders the modal centered in an appWidth x appHeight area.
func (m *Model) View(appWidth, appHeight int) string {
	w := min(max(appWidth*60/100, 30), appWidth)
	innerW := max(w-4, 10)
	listHeight := max(min(len(m.all), appHeight-6), 1)

	bg := lipgloss.Color(m.colors.Bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).Background(bg)
	sel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	lines := []string{
		m.Title,
		"> " + string(m.query) + lipgloss.NewStyle().Reverse(true).Render(" "),
		dim.Render(strings.Repeat("─", innerW)),
	}

	scrollOff := 0
	if m.selected >= listHeight {
		scrollOff = m.selected - listHeight + 1
	}
	for i := scrollOff; i < len(m.items) && i-scrollOff < listHeight; i++ {
		it := m.items[i]
		if i == m.selected {
			lines = append(lines, sel.Render(padRight(it.Name, innerW)))
			continue
		}
		line := it.Name
		if it.Desc != "" {
			line += dim.Render("  " + it.Desc)
		}
		lines = append(lines, line)
	}
	if len(m.items) == 0 {
		lines = append(lines, dim.Render("no matches"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(m.colors.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
