package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/dvlayout/internal/report"
	"github.com/xonecas/dvlayout/internal/resize"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	if m.picker != nil {
		content = m.picker.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	v.WindowTitle = "dvlayout · " + m.rep.Name
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}
	bgFill := m.styles.BgFill
	var b strings.Builder

	m.renderHeader(&b, bgFill)

	styled, plain := m.renderCanvas()
	pad := bgFill.Render(strings.Repeat(" ", canvasPadX))
	for row := 0; row < m.canvasHeight(); row++ {
		idx := m.scroll + row
		b.WriteString(pad)
		if idx < len(styled) {
			b.WriteString(m.highlightLine(styled[idx], plain[idx], idx, bgFill))
		} else {
			b.WriteString(bgFill.Render(strings.Repeat(" ", m.host.canvasWidth)))
		}
		b.WriteString(pad)
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b, bgFill)
	return b.String()
}

func (m Model) renderHeader(b *strings.Builder, bgFill lipgloss.Style) {
	title := m.styles.Header.Render(" " + m.rep.Name)
	count := m.styles.Muted.Render(fmt.Sprintf("  %d sections", len(m.rep.Sections)))
	writeFitted(b, title+count, m.width, bgFill)
	b.WriteByte('\n')
}

// renderCanvas draws every flowed section. Each line is exactly canvasWidth
// cells; plain carries the same text without styling for selection and copy.
func (m Model) renderCanvas() (styled, plain []string) {
	cw := m.host.canvasWidth
	placements := m.placements()
	if cw <= 0 || len(placements) == 0 {
		return nil, nil
	}

	// Group placements into bands; Flow emits them band by band, left to right.
	var bands [][]report.Placement
	for _, p := range placements {
		if n := len(bands); n > 0 && bands[n-1][0].Rect.Min.Y == p.Rect.Min.Y {
			bands[n-1] = append(bands[n-1], p)
			continue
		}
		bands = append(bands, []report.Placement{p})
	}

	for _, band := range bands {
		for line := 0; line < sectionRows; line++ {
			var sb, pb strings.Builder
			for _, p := range band {
				s, t := m.renderSectionLine(p, line)
				sb.WriteString(s)
				pb.WriteString(t)
			}
			s, t := fitLine(sb.String(), pb.String(), cw, m.styles.BgFill)
			styled = append(styled, s)
			plain = append(plain, t)
		}
	}
	return styled, plain
}

// renderSectionLine draws one line of a section box. The right border
// column is the drag handle.
func (m Model) renderSectionLine(p report.Placement, line int) (styled, plain string) {
	i := p.Index
	w := p.Rect.Dx()
	inner := max(w-2, 0)
	ctrl := m.panes[i].ctrl
	sec := m.rep.Sections[i]

	border := m.styles.Border
	if i == m.focus {
		border = m.styles.Selected
	}
	handle, handleChar := m.styles.Handle, "│"
	if i == m.focus {
		handle = border
	}
	if ctrl.IsDragging() && m.host.cursor == resize.CursorResize {
		handle, handleChar = m.styles.HandleLive, "┃"
	}

	switch line {
	case 0:
		edge := "╭" + strings.Repeat("─", inner) + "╮"
		return border.Render(edge), edge
	case sectionRows - 1:
		edge := "╰" + strings.Repeat("─", inner) + "╯"
		return border.Render(edge), edge
	}

	var text string
	textStyle := m.styles.Text
	switch line {
	case 1:
		text = " " + sec.Title
	case 2:
		text = " " + sec.Kind.Label() + " · " + widthLabel(ctrl)
		textStyle = m.styles.Muted
		if ctrl.IsDragging() {
			textStyle = m.styles.Preview
		}
	}
	text = fitPlain(text, inner)
	return border.Render("│") + textStyle.Render(text) + handle.Render(handleChar),
		"│" + text + handleChar
}

func widthLabel(c *resize.Controller) string {
	if c.IsDragging() {
		return fmt.Sprintf("%g%% → %g%%", c.Width(), c.DisplayWidth())
	}
	return fmt.Sprintf("%g%%", c.Width())
}

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder, bgFill lipgloss.Style) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	var leftParts []string
	if p := m.focusedPane(); p != nil {
		sec, _ := m.rep.Section(p.section)
		leftParts = append(leftParts, m.styles.StatusText.Render(fmt.Sprintf(" %s %g%%", sec.Title, p.ctrl.Width())))
	}
	if m.host.cursor == resize.CursorResize && m.dragging >= 0 {
		leftParts = append(leftParts, m.styles.HandleLive.Render(fmt.Sprintf("↔ %g%%", m.panes[m.dragging].ctrl.DisplayWidth())))
	}
	if m.status != "" {
		style := m.styles.StatusText
		if m.statusErr {
			style = m.styles.Error
		}
		leftParts = append(leftParts, style.Render(m.status))
	}
	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))
	right := m.help.ShortHelpView(m.keys.ShortHelp())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		writeFitted(b, left, m.width, bgFill)
		return
	}
	b.WriteString(left)
	b.WriteString(bgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(bgFill.Render(" "))
}

// fitPlain truncates or pads unstyled text to exactly w cells.
func fitPlain(s string, w int) string {
	if lipgloss.Width(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	if n := lipgloss.Width(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

// fitLine truncates or pads a styled line and its plain twin to w cells.
func fitLine(styled, plain string, w int, bgFill lipgloss.Style) (string, string) {
	if lipgloss.Width(plain) > w {
		styled = ansi.Truncate(styled, w, "")
		plain = ansi.Truncate(plain, w, "")
	}
	if n := lipgloss.Width(plain); n < w {
		styled += bgFill.Render(strings.Repeat(" ", w-n))
		plain += strings.Repeat(" ", w-n)
	}
	return styled, plain
}

// writeFitted writes a styled line truncated or padded to width.
func writeFitted(b *strings.Builder, s string, width int, bgFill lipgloss.Style) {
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	b.WriteString(s)
	if n := lipgloss.Width(s); n < width {
		b.WriteString(bgFill.Render(strings.Repeat(" ", width-n)))
	}
}
