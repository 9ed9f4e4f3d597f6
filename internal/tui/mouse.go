package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/resize"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

// NewMouseFilter rate-limits wheel and motion events to one per interval.
// Pass to tea.WithFilter. Never drops clicks or releases.
func NewMouseFilter(interval time.Duration) func(tea.Model, tea.Msg) tea.Msg {
	var last time.Time
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		switch msg.(type) {
		case tea.MouseWheelMsg, tea.MouseMotionMsg:
			now := time.Now()
			if now.Sub(last) < interval {
				return nil
			}
			last = now
		}
		return msg
	}
}

// ---------------------------------------------------------------------------
// Mouse handling: drag handles first, then focus, selection, scroll.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func point(x, y int) resize.Point {
	return resize.Point{X: float64(x), Y: float64(y)}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)

	// --- Handle drag --------------------------------------------------------
	if m.handleDrag(msg, x, y) {
		return m, m.applyCommits()
	}

	// --- Focus + text selection ---------------------------------------------
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button == tea.MouseLeft {
			m.handleCanvasClick(x, y)
		}
	case tea.MouseMotionMsg:
		if m.selecting && ev.Button == tea.MouseLeft {
			m.extendSelection(x, y)
		}
	case tea.MouseReleaseMsg:
		m.finishSelection()
	case tea.MouseWheelMsg:
		m.handleWheel(ev)
	}
	return m, nil
}

// handleDrag tracks handle click/release and processes drag motion.
// Returns true if the event was consumed by a drag.
func (m *Model) handleDrag(msg tea.MouseMsg, x, y int) bool {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return false
		}
		i := m.handleAt(x, y)
		if i < 0 {
			return false
		}
		m.beginDrag(i, x, y)
		return true

	case tea.MouseMotionMsg:
		if m.dragging < 0 {
			return false
		}
		if ev.Button == tea.MouseNone {
			// Button is up but no release was delivered.
			log.Debug().Int("section", m.dragging).Msg("motion without button mid-drag, ending drag")
			m.endDrag()
			return true
		}
		m.panes[m.dragging].ctrl.UpdateDrag(point(x, y))
		return true

	case tea.MouseReleaseMsg:
		if m.dragging < 0 {
			return false
		}
		// Motion may have been throttled; the release position is the last word.
		m.panes[m.dragging].ctrl.UpdateDrag(point(x, y))
		m.endDrag()
		return true
	}
	return false
}

func (m *Model) beginDrag(i, x, y int) {
	if m.dragging >= 0 && m.dragging != i {
		m.endDrag()
	}
	m.focus = i
	m.selecting = false
	m.dragging = i
	m.panes[i].ctrl.BeginDrag(point(x, y))
}

func (m *Model) endDrag() {
	if m.dragging < 0 {
		return
	}
	i := m.dragging
	m.dragging = -1
	m.panes[i].ctrl.EndDrag()
}

// handleCanvasClick focuses the clicked section and anchors a selection.
func (m *Model) handleCanvasClick(x, y int) {
	if i := m.sectionAt(x, y); i >= 0 {
		m.focus = i
	}
	m.host.sel = nil
	m.selecting = false
	if m.host.selectionSuppressed || !m.inCanvas(y) {
		return
	}
	p := m.canvasPos(x, y)
	m.host.sel = &selection{anchor: p, active: p}
	m.selecting = true
}

func (m *Model) extendSelection(x, y int) {
	if m.host.selectionSuppressed || m.host.sel == nil {
		m.selecting = false
		return
	}
	m.host.sel.active = m.canvasPos(x, y)
}

func (m *Model) finishSelection() {
	m.selecting = false
	if m.host.sel != nil && m.host.sel.empty() {
		m.host.sel = nil
	}
}

func (m *Model) handleWheel(ev tea.MouseWheelMsg) {
	switch ev.Button {
	case tea.MouseWheelUp:
		m.scroll -= 2
	case tea.MouseWheelDown:
		m.scroll += 2
	}
	m.clampScroll()
}

// canvasPos converts a screen cell to a canvas line and column.
func (m Model) canvasPos(x, y int) selPos {
	line := min(max(y-headerRows+m.scroll, 0), max(m.canvasRows()-1, 0))
	col := min(max(x-canvasPadX, 0), m.host.canvasWidth)
	return selPos{line: line, col: col}
}
