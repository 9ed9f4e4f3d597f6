package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"github.com/xonecas/dvlayout/internal/resize"
	"github.com/xonecas/dvlayout/internal/tui/modal"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Grow   key.Binding
	Shrink key.Binding
	Width  key.Binding
	Jump   key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Grow:   key.NewBinding(key.WithKeys("]", "ctrl+right"), key.WithHelp("]", "wider")),
		Shrink: key.NewBinding(key.WithKeys("[", "ctrl+left"), key.WithHelp("[", "narrower")),
		Width:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "width")),
		Jump:   key.NewBinding(key.WithKeys("ctrl+f", "/"), key.WithHelp("/", "find")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+shift+c", "y"), key.WithHelp("y", "copy")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Shrink, k.Grow, k.Width, k.Jump, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Jump},
		{k.Shrink, k.Grow, k.Width},
		{k.Copy, k.Quit},
	}
}

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		cmd := m.quitCmd()
		return *m, cmd, true
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Grow):
		m.stepWidth(1)
	case key.Matches(msg, m.keys.Shrink):
		m.stepWidth(-1)
	case key.Matches(msg, m.keys.Width):
		m.openWidthPicker()
	case key.Matches(msg, m.keys.Jump):
		m.openJumpPicker()
	case key.Matches(msg, m.keys.Copy):
		return *m, m.copySelection(), true
	default:
		return Model{}, nil, false
	}
	cmd := m.applyCommits()
	return *m, cmd, true
}

func (m *Model) moveFocus(dir int) {
	n := len(m.panes)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+dir)%n + n) % n
}

// stepWidth moves the focused section to the adjacent snap point.
func (m *Model) stepWidth(dir int) {
	p := m.focusedPane()
	if p == nil || p.ctrl.IsDragging() {
		return
	}
	next := resize.Step(p.ctrl.Width(), p.ctrl.SnapPoints(), dir)
	if next == p.ctrl.Width() {
		return
	}
	p.ctrl.SetWidthExternal(next)
}

func (m *Model) focusedPane() *pane {
	if m.focus < 0 || m.focus >= len(m.panes) {
		return nil
	}
	return m.panes[m.focus]
}

// openWidthPicker commits any live drag first: the picker swallows mouse
// events, so the release would never reach the controller.
func (m *Model) openWidthPicker() {
	m.endDrag()
	p := m.focusedPane()
	if p == nil {
		return
	}
	var items []modal.Item
	selected := 0
	for i, w := range p.ctrl.SnapPoints() {
		if w == p.ctrl.Width() {
			selected = i
		}
		items = append(items, modal.Item{Name: fmt.Sprintf("%g%%", w), Value: w})
	}
	if len(items) == 0 {
		return
	}
	sec, _ := m.rep.Section(p.section)
	picker := modal.New("Width of "+sec.Title, items, selected, modalColors)
	m.picker, m.pickerKind = &picker, pickWidth
}

func (m *Model) openJumpPicker() {
	m.endDrag()
	items := make([]modal.Item, 0, len(m.rep.Sections))
	for i, sec := range m.rep.Sections {
		items = append(items, modal.Item{
			Name:  sec.Title,
			Desc:  fmt.Sprintf("%s · %d%%", sec.Kind.Label(), sec.Width),
			Value: i,
		})
	}
	picker := modal.New("Go to section", items, m.focus, modalColors)
	m.picker, m.pickerKind = &picker, pickJump
}

// handlePicker routes a message to the open picker and applies its action.
func (m *Model) handlePicker(msg tea.Msg) (Model, tea.Cmd) {
	action, cmd := m.picker.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.picker = nil
	case modal.ActionSelect:
		m.picker = nil
		switch m.pickerKind {
		case pickJump:
			if i, ok := a.Item.Value.(int); ok {
				m.focus = i
				m.scrollToFocus()
			}
		case pickWidth:
			if w, ok := a.Item.Value.(float64); ok {
				if p := m.focusedPane(); p != nil && !p.ctrl.IsDragging() {
					p.ctrl.SetWidthExternal(w)
				}
			}
		}
		return *m, tea.Batch(cmd, m.applyCommits())
	}
	return *m, cmd
}
