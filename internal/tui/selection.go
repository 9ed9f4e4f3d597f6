package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ---------------------------------------------------------------------------
// Selection and clipboard
// ---------------------------------------------------------------------------

// selPos is a position on the flowed canvas (line includes scrolled rows).
type selPos struct {
	line int
	col  int
}

// selection is a stream selection over canvas text.
type selection struct {
	anchor selPos
	active selPos
}

func (s *selection) empty() bool { return s.anchor == s.active }

// ordered returns the selection endpoints in reading order.
func (s *selection) ordered() (selPos, selPos) {
	a, b := s.anchor, s.active
	if b.line < a.line || (b.line == a.line && b.col < a.col) {
		return b, a
	}
	return a, b
}

// copySelection copies the selected canvas text to the clipboard via OSC 52.
func (m *Model) copySelection() tea.Cmd {
	text := m.selectedText()
	if text == "" {
		return nil
	}
	return tea.SetClipboard(text)
}

// selectedText returns the plain text under the selection.
func (m *Model) selectedText() string {
	sel := m.host.sel
	if sel == nil || sel.empty() {
		return ""
	}
	_, plain := m.renderCanvas()
	if len(plain) == 0 {
		return ""
	}
	s, e := sel.ordered()
	e.line = min(e.line, len(plain)-1)

	var sb strings.Builder
	for i := max(s.line, 0); i <= e.line; i++ {
		runes := []rune(plain[i])
		start, end := 0, len(runes)
		if i == s.line {
			start = min(s.col, len(runes))
		}
		if i == e.line {
			end = min(e.col, len(runes))
		}
		if start < end {
			sb.WriteString(strings.TrimRight(string(runes[start:end]), " "))
		}
		if i < e.line {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// highlightLine renders a canvas line with the selected span highlighted.
// Returns styled unchanged when the line is outside the selection.
func (m Model) highlightLine(styled, plain string, lineIdx int, bgFill lipgloss.Style) string {
	sel := m.host.sel
	if sel == nil || sel.empty() {
		return styled
	}
	s, e := sel.ordered()
	if lineIdx < s.line || lineIdx > e.line {
		return styled
	}

	runes := []rune(plain)
	selStart, selEnd := 0, len(runes)
	if lineIdx == s.line {
		selStart = s.col
	}
	if lineIdx == e.line {
		selEnd = e.col
	}
	selStart = max(selStart, 0)
	selEnd = min(selEnd, len(runes))
	if selStart >= selEnd {
		return styled
	}

	var sb strings.Builder
	if before := string(runes[:selStart]); before != "" {
		sb.WriteString(bgFill.Render(before))
	}
	sb.WriteString(m.styles.Selection.Render(string(runes[selStart:selEnd])))
	if after := string(runes[selEnd:]); after != "" {
		sb.WriteString(bgFill.Render(after))
	}
	return sb.String()
}
