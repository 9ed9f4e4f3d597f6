package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/report"
	"github.com/xonecas/dvlayout/internal/resize"
)

type savedWidth struct {
	section uuid.UUID
	width   int
}

type fakeStore struct {
	mu    sync.Mutex
	saved []savedWidth
	err   error
}

func (s *fakeStore) UpdateSectionWidth(_ context.Context, id uuid.UUID, width int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, savedWidth{id, width})
	return s.err
}

// newTestModel builds a two-section report (50% + 50%) on a 102x30 terminal,
// so the canvas is exactly 100 cells and one cell is one percent.
func newTestModel(t *testing.T) (Model, *fakeStore) {
	t.Helper()
	quietLogs(t)
	rep := report.New("Test report")
	if _, err := rep.AddSection(report.KindBar, "Revenue", 50); err != nil {
		t.Fatal(err)
	}
	if _, err := rep.AddSection(report.KindText, "Notes", 50); err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{}
	m := New(Options{
		Report:     rep,
		Store:      store,
		SnapPoints: report.AllowedWidths,
		MinWidth:   25,
		MaxWidth:   100,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 102, Height: 30})
	return m, store
}

func quietLogs(t *testing.T) {
	t.Helper()
	prev := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = prev })
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// drain runs cmd, unwrapping batches, and feeds results back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	default:
		var next tea.Cmd
		m, next = update(t, m, msg)
		m = drain(t, m, next)
	}
	return m
}

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func drag(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func release(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}
}

// First section spans screen columns 1..50; its handle is column 50.
const firstHandleX, handleY = 50, 2

func TestHandleAt(t *testing.T) {
	m, _ := newTestModel(t)
	tests := []struct {
		x, y int
		want int
	}{
		{firstHandleX, handleY, 0},
		{100, handleY, 1},
		{firstHandleX - 1, handleY, -1},
		{firstHandleX, 0, -1}, // header row
		{firstHandleX, 1 + sectionRows, -1},
	}
	for _, tt := range tests {
		if got := m.handleAt(tt.x, tt.y); got != tt.want {
			t.Errorf("handleAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDragCommitsAndPersists(t *testing.T) {
	m, store := newTestModel(t)
	id := m.rep.Sections[0].ID

	m, _ = update(t, m, click(firstHandleX, handleY))
	if m.dragging != 0 {
		t.Fatalf("dragging = %d, want 0", m.dragging)
	}
	m, _ = update(t, m, drag(firstHandleX+22, handleY))
	if got := m.panes[0].ctrl.DisplayWidth(); got != 75 {
		t.Fatalf("preview = %v, want 75", got)
	}
	if got := m.rep.Sections[0].Width; got != 50 {
		t.Fatalf("report width changed mid-drag: %d", got)
	}

	m, cmd := update(t, m, release(firstHandleX+22, handleY))
	if m.dragging != -1 {
		t.Fatalf("dragging = %d after release", m.dragging)
	}
	if got := m.rep.Sections[0].Width; got != 75 {
		t.Fatalf("report width = %d, want 75", got)
	}
	m = drain(t, m, cmd)

	if len(store.saved) != 1 || store.saved[0] != (savedWidth{id, 75}) {
		t.Fatalf("saved = %+v, want one write of 75", store.saved)
	}
	if m.statusErr || !strings.Contains(m.status, "75%") {
		t.Errorf("status = %q (err %v)", m.status, m.statusErr)
	}
}

func TestReleaseUsesReleasePosition(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, click(firstHandleX, handleY))
	// Motion was throttled away; only the release carries the final position.
	m, _ = update(t, m, release(firstHandleX-24, handleY))
	if got := m.rep.Sections[0].Width; got != 25 {
		t.Fatalf("width = %d, want 25", got)
	}
}

func TestNoOpDragDoesNotPersist(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = update(t, m, click(firstHandleX, handleY))
	m, _ = update(t, m, drag(firstHandleX+5, handleY)) // 55 snaps back to 50
	m, cmd := update(t, m, release(firstHandleX+5, handleY))
	if cmd != nil {
		m = drain(t, m, cmd)
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved = %+v, want none", store.saved)
	}
	if got := m.rep.Sections[0].Width; got != 50 {
		t.Fatalf("width = %d, want 50", got)
	}
}

func TestDragSuppressesSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, click(10, handleY))
	m, _ = update(t, m, drag(20, handleY))
	if m.host.sel == nil {
		t.Fatal("expected a selection before dragging")
	}

	m, _ = update(t, m, click(firstHandleX, handleY))
	if !m.host.selectionSuppressed {
		t.Fatal("selection not suppressed during drag")
	}
	if m.host.sel != nil {
		t.Fatal("selection not cleared on drag start")
	}
	if m.host.cursor != resize.CursorResize {
		t.Fatalf("cursor = %v, want resize", m.host.cursor)
	}

	m, _ = update(t, m, release(firstHandleX, handleY))
	if m.host.selectionSuppressed {
		t.Fatal("selection still suppressed after release")
	}
	if m.host.cursor != resize.CursorDefault {
		t.Fatalf("cursor = %v, want default", m.host.cursor)
	}
}

func TestOrphanedDragEnds(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"blur", tea.BlurMsg{}},
		{"motion without button", tea.MouseMotionMsg{X: firstHandleX + 30, Y: handleY, Button: tea.MouseNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestModel(t)
			m, _ = update(t, m, click(firstHandleX, handleY))
			m, _ = update(t, m, drag(firstHandleX+25, handleY))

			m, cmd := update(t, m, tt.msg)
			m = drain(t, m, cmd)
			if m.dragging != -1 || m.panes[0].ctrl.IsDragging() {
				t.Fatal("drag still active")
			}
			if m.host.selectionSuppressed {
				t.Fatal("selection still suppressed")
			}
			if got := m.rep.Sections[0].Width; got != 75 {
				t.Fatalf("width = %d, want 75 (last preview)", got)
			}
			if len(store.saved) != 1 {
				t.Fatalf("saved = %+v", store.saved)
			}
		})
	}
}

func TestStepWidthKeys(t *testing.T) {
	m, store := newTestModel(t)

	m, cmd := update(t, m, tea.KeyPressMsg{Code: ']', Text: "]"})
	m = drain(t, m, cmd)
	if got := m.rep.Sections[0].Width; got != 75 {
		t.Fatalf("after ] width = %d, want 75", got)
	}

	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != 1 {
		t.Fatalf("focus = %d, want 1", m.focus)
	}
	m, cmd = update(t, m, tea.KeyPressMsg{Code: '[', Text: "["})
	m = drain(t, m, cmd)
	if got := m.rep.Sections[1].Width; got != 25 {
		t.Fatalf("after [ width = %d, want 25", got)
	}
	if len(store.saved) != 2 {
		t.Fatalf("saved = %+v, want 2 writes", store.saved)
	}
}

func TestSaveErrorShownInStatus(t *testing.T) {
	m, store := newTestModel(t)
	store.err = errors.New("disk full")

	m, cmd := update(t, m, tea.KeyPressMsg{Code: ']', Text: "]"})
	m = drain(t, m, cmd)
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Fatalf("status = %q (err %v)", m.status, m.statusErr)
	}
}

func TestQuitDiscardsActiveDrag(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = update(t, m, click(firstHandleX, handleY))
	m, _ = update(t, m, drag(firstHandleX+25, handleY))

	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.panes[0].ctrl.IsDragging() {
		t.Fatal("drag survived quit")
	}
	if m.host.selectionSuppressed {
		t.Fatal("selection still suppressed after quit")
	}
	if m.dragging != -1 {
		t.Fatalf("returned model still dragging section %d", m.dragging)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command did not quit")
	}
	if got := m.rep.Sections[0].Width; got != 50 || len(store.saved) != 0 {
		t.Fatalf("width = %d saved = %+v, want discarded drag", got, store.saved)
	}
}

func TestMouseIgnoredWhilePickerOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyPressMsg{Code: 'w', Text: "w"})
	if m.picker == nil {
		t.Fatal("width picker not open")
	}
	m, _ = update(t, m, click(firstHandleX, handleY))
	if m.dragging != -1 {
		t.Fatal("drag started under picker")
	}
}

func TestPickerCommitsActiveDrag(t *testing.T) {
	for _, k := range []rune{'w', '/'} {
		t.Run(string(k), func(t *testing.T) {
			m, store := newTestModel(t)
			m, _ = update(t, m, click(firstHandleX, handleY))
			m, _ = update(t, m, drag(firstHandleX+25, handleY))

			m, cmd := update(t, m, tea.KeyPressMsg{Code: k, Text: string(k)})
			if m.picker == nil {
				t.Fatal("picker not open")
			}
			if m.dragging != -1 || m.panes[0].ctrl.IsDragging() {
				t.Fatal("drag still active under picker")
			}
			if m.host.selectionSuppressed || m.host.cursor != resize.CursorDefault {
				t.Fatal("surface not restored when picker opened")
			}
			m = drain(t, m, cmd)
			if got := m.rep.Sections[0].Width; got != 75 {
				t.Fatalf("width = %d, want 75", got)
			}
			if len(store.saved) != 1 {
				t.Fatalf("saved = %+v, want one write", store.saved)
			}

			// The release lands while the picker is open and is ignored.
			m, _ = update(t, m, release(firstHandleX+25, handleY))
			if m.panes[0].ctrl.IsDragging() {
				t.Fatal("drag restarted")
			}
		})
	}
}

func TestWidthPickerAppliesAfterDrag(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = update(t, m, click(firstHandleX, handleY))
	m, _ = update(t, m, drag(firstHandleX+25, handleY))
	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'w', Text: "w"})
	m = drain(t, m, cmd)

	// Picker highlights the committed 75%; move down to 100% and choose it.
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drain(t, m, cmd)
	if m.picker != nil {
		t.Fatal("picker still open")
	}
	if got := m.rep.Sections[0].Width; got != 100 {
		t.Fatalf("width = %d, want 100", got)
	}
	if len(store.saved) != 2 {
		t.Fatalf("saved = %+v, want two writes", store.saved)
	}
}

func TestMouseFilterThrottlesMotionOnly(t *testing.T) {
	f := NewMouseFilter(time.Hour)
	if f(nil, drag(1, 1)) == nil {
		t.Fatal("first motion dropped")
	}
	if f(nil, drag(2, 1)) != nil {
		t.Fatal("second motion not throttled")
	}
	if f(nil, click(3, 1)) == nil {
		t.Fatal("click dropped")
	}
	if f(nil, release(3, 1)) == nil {
		t.Fatal("release dropped")
	}
}

func TestViewRendersSectionsAndPreview(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.renderContent()
	for _, want := range []string{"Test report", "Revenue", "Notes", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, click(firstHandleX, handleY))
	m, _ = update(t, m, drag(firstHandleX+25, handleY))
	if out := m.renderContent(); !strings.Contains(out, "50% → 75%") {
		t.Errorf("view missing live preview label")
	}
}

func TestSelectedTextCopiesCanvas(t *testing.T) {
	m, _ := newTestModel(t)
	// Title row of the first section is canvas line 1, screen row 2.
	m, _ = update(t, m, click(3, 2))
	m, _ = update(t, m, drag(10, 2))
	m, _ = update(t, m, release(10, 2))
	if got := m.selectedText(); got != "Revenue" {
		t.Fatalf("selectedText = %q, want %q", got, "Revenue")
	}
}
