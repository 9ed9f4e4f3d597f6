// Package tui is the Bubble Tea report layout editor. Each report section
// has a drag handle on its right border; dragging it resizes the section
// through a resize.Controller.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/help"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/report"
	"github.com/xonecas/dvlayout/internal/resize"
	"github.com/xonecas/dvlayout/internal/tui/modal"
)

const (
	headerRows  = 1
	statusRows  = 2 // separator + status bar
	sectionRows = 5
	canvasPadX  = 1
)

// WidthStore persists committed section widths.
type WidthStore interface {
	UpdateSectionWidth(ctx context.Context, sectionID uuid.UUID, width int) error
}

// Options configures a Model.
type Options struct {
	Report *report.Report
	Store  WidthStore

	SnapPoints             []float64
	MinWidth, MaxWidth     float64
	FallbackContainerWidth float64
}

// pane binds a section to its resize controller.
type pane struct {
	section uuid.UUID
	ctrl    *resize.Controller
}

// pickerKind says what a picker selection applies to.
type pickerKind int

const (
	pickJump pickerKind = iota
	pickWidth
)

// Model is the application model.
type Model struct {
	width  int
	height int

	rep    *report.Report
	store  WidthStore
	panes  []*pane
	host   *host
	ctx    context.Context
	cancel context.CancelFunc

	focus    int // selected section index
	dragging int // section index with an active drag, -1 when idle
	scroll   int // canvas rows scrolled off the top

	selecting bool // left button held on the canvas, extending host.sel

	picker     *modal.Model
	pickerKind pickerKind

	status    string
	statusErr bool

	keys   keyMap
	help   help.Model
	styles Styles
}

// New builds the model for opts.Report, one controller per section.
func New(opts Options) Model {
	h := &host{}
	ctx, cancel := context.WithCancel(context.Background())

	rep := opts.Report
	if rep == nil {
		rep = report.New("Untitled report")
	}

	m := Model{
		rep:      rep,
		store:    opts.Store,
		host:     h,
		ctx:      ctx,
		cancel:   cancel,
		dragging: -1,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
	}
	for _, sec := range rep.Sections {
		m.panes = append(m.panes, newPane(sec, h, opts))
	}
	return m
}

func newPane(sec report.Section, h *host, opts Options) *pane {
	p := &pane{section: sec.ID}
	logger := log.Logger.With().Str("section", sec.ID.String()).Logger()
	p.ctrl = resize.New(resize.Options{
		InitialWidth:           float64(sec.Width),
		MinWidth:               opts.MinWidth,
		MaxWidth:               opts.MaxWidth,
		SnapPoints:             opts.SnapPoints,
		Container:              h,
		Ancestor:               h.terminal(),
		FallbackContainerWidth: opts.FallbackContainerWidth,
		Surface:                h,
		Logger:                 &logger,
		OnResize: func(w float64) {
			h.commits = append(h.commits, commit{section: sec.ID, width: int(w)})
		},
	})
	return p
}

// Init initializes the TUI (required by BubbleTea)
func (m Model) Init() tea.Cmd {
	return nil
}

// Report returns the report being edited.
func (m Model) Report() *report.Report { return m.rep }

// closeAll tears down every controller so no drag outlives the program.
func (m *Model) closeAll() {
	for _, p := range m.panes {
		p.ctrl.Close()
	}
	m.dragging = -1
}
