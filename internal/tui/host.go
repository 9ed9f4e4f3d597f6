package tui

import (
	"sync"

	"github.com/google/uuid"
	"github.com/xonecas/dvlayout/internal/resize"
)

// host is the state resize controllers call back into. Model is copied on
// every Update, so anything a callback touches lives behind this pointer.
type host struct {
	termWidth   int
	canvasWidth int

	selectionSuppressed bool
	sel                 *selection
	cursor              resize.Cursor

	commits  []commit
	inflight sync.WaitGroup
}

// commit is a width the owner has to persist.
type commit struct {
	section uuid.UUID
	width   int
}

func (h *host) SuppressSelection() {
	h.selectionSuppressed = true
	h.sel = nil
}

func (h *host) RestoreSelection() { h.selectionSuppressed = false }

func (h *host) SetCursor(c resize.Cursor) { h.cursor = c }

// Width reports the canvas width, the percentage basis for a drag.
func (h *host) Width() int { return h.canvasWidth }

// terminal measures the whole terminal, used when the canvas is unmeasured.
func (h *host) terminal() resize.Measurer {
	return resize.MeasurerFunc(func() int { return h.termWidth })
}

// takeCommits drains the pending commits.
func (h *host) takeCommits() []commit {
	out := h.commits
	h.commits = nil
	return out
}
