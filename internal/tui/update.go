package tui

import (
	"fmt"
	"image"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/report"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Focus lost: a release may never arrive, end the drag here -----------
	case tea.BlurMsg:
		if m.dragging >= 0 {
			log.Debug().Int("section", m.dragging).Msg("window blurred mid-drag, ending drag")
			m.endDrag()
		}
		return m, m.applyCommits()

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		if m.picker != nil {
			return m, nil
		}
		return m.handleMouse(msg)

	// -- Persistence results -------------------------------------------------
	case widthSavedMsg:
		m.handleWidthSaved(msg)
		return m, nil
	}

	if m.picker != nil {
		return m.handlePicker(msg)
	}

	if kp, ok := msg.(tea.KeyPressMsg); ok {
		if mdl, cmd, handled := m.handleKeyPress(kp); handled {
			return mdl, cmd
		}
	}
	return m, nil
}

// handleResize applies a window size change and re-derives the canvas width.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.host.termWidth = m.width
	m.host.canvasWidth = max(0, m.width-2*canvasPadX)
	m.clampScroll()
}

func (m *Model) handleWidthSaved(msg widthSavedMsg) {
	sec, _ := m.rep.Section(msg.section)
	if msg.err != nil {
		log.Error().Err(msg.err).Str("section", msg.section.String()).Int("width", msg.width).Msg("persist section width")
		m.status, m.statusErr = "save failed: "+msg.err.Error(), true
		return
	}
	m.status, m.statusErr = fmt.Sprintf("saved %s at %d%%", sec.Title, msg.width), false
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// placements flows the sections at their displayed widths, so a live drag
// reflows the canvas with the preview.
func (m Model) placements() []report.Placement {
	widths := make([]float64, len(m.panes))
	for i, p := range m.panes {
		widths[i] = p.ctrl.DisplayWidth()
	}
	return report.Flow(widths, m.host.canvasWidth, sectionRows)
}

func (m Model) canvasHeight() int {
	return max(0, m.height-headerRows-statusRows)
}

// canvasRows is the total height of the flowed canvas.
func (m Model) canvasRows() int {
	rows := 0
	for _, p := range m.placements() {
		rows = max(rows, p.Rect.Max.Y)
	}
	return rows
}

// screenRect converts a canvas rectangle to screen coordinates.
func (m Model) screenRect(r image.Rectangle) image.Rectangle {
	return r.Add(image.Pt(canvasPadX, headerRows-m.scroll))
}

// inCanvas reports whether a screen row belongs to the canvas viewport.
func (m Model) inCanvas(y int) bool {
	return y >= headerRows && y < headerRows+m.canvasHeight()
}

// handleAt returns the section whose drag handle (right border column) is
// under the screen cell x, y, or -1.
func (m Model) handleAt(x, y int) int {
	if !m.inCanvas(y) {
		return -1
	}
	for _, p := range m.placements() {
		r := m.screenRect(p.Rect)
		if x == r.Max.X-1 && y >= r.Min.Y && y < r.Max.Y {
			return p.Index
		}
	}
	return -1
}

// sectionAt returns the section under the screen cell x, y, or -1.
func (m Model) sectionAt(x, y int) int {
	if !m.inCanvas(y) {
		return -1
	}
	for _, p := range m.placements() {
		if (image.Pt(x, y)).In(m.screenRect(p.Rect)) {
			return p.Index
		}
	}
	return -1
}

func (m *Model) clampScroll() {
	maxScroll := max(0, m.canvasRows()-m.canvasHeight())
	m.scroll = min(max(m.scroll, 0), maxScroll)
}

// scrollToFocus scrolls the canvas so the focused section is visible.
func (m *Model) scrollToFocus() {
	for _, p := range m.placements() {
		if p.Index != m.focus {
			continue
		}
		h := m.canvasHeight()
		if p.Rect.Min.Y < m.scroll {
			m.scroll = p.Rect.Min.Y
		} else if p.Rect.Max.Y > m.scroll+h {
			m.scroll = p.Rect.Max.Y - h
		}
	}
	m.clampScroll()
}
