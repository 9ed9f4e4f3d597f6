// Package resize turns pointer drags on a panel handle into a bounded,
// snapped panel width.
//
// A Controller is Idle until BeginDrag, Dragging until EndDrag. While
// dragging it exposes a live preview through DisplayWidth; the committed
// width only changes when the drag ends on a different value, or when the
// owner calls SetWidthExternal.
package resize

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Defaults applied by New.
const (
	DefaultMinWidth = 25
	DefaultMaxWidth = 100
)

// DefaultSnapPoints are the section widths offered by the report builder.
var DefaultSnapPoints = []float64{25, 50, 75, 100}

// Options configures a Controller.
type Options struct {
	// InitialWidth is the starting committed width. Zero starts at MaxWidth.
	InitialWidth float64
	// MinWidth and MaxWidth bound every width. When both are zero the
	// package defaults apply. MinWidth <= MaxWidth is the caller's job.
	MinWidth float64
	MaxWidth float64
	// SnapPoints are the candidate widths. Points outside [MinWidth,
	// MaxWidth] are ignored. Empty disables snapping.
	SnapPoints []float64
	// OnResize is called with the committed width after a drag that changed
	// it, and after every SetWidthExternal.
	OnResize func(width float64)

	// Container is measured first, then Ancestor, then
	// FallbackContainerWidth (DefaultContainerWidth when unset).
	Container              Measurer
	Ancestor               Measurer
	FallbackContainerWidth float64

	Surface Surface
	Logger  *zerolog.Logger
	Now     func() time.Time
}

// Controller owns one panel's width and at most one drag session.
// It is not safe for concurrent use; feed it from a single event loop.
type Controller struct {
	state State
	geom  Geometry

	onResize  func(float64)
	container Measurer
	ancestor  Measurer
	fallback  float64

	guard dragGuard
	now   func() time.Time
	log   zerolog.Logger
}

// New builds an idle Controller from opts.
func New(opts Options) *Controller {
	lo, hi := opts.MinWidth, opts.MaxWidth
	if lo == 0 && hi == 0 {
		lo, hi = DefaultMinWidth, DefaultMaxWidth
	}
	initial := opts.InitialWidth
	if initial == 0 {
		initial = hi
	}
	surface := opts.Surface
	if surface == nil {
		surface = nopSurface{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := log.Logger.With().Str("component", "resize").Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Controller{
		state: Idle(Clamp(initial, lo, hi)),
		geom: Geometry{
			Min:        lo,
			Max:        hi,
			SnapPoints: withinBounds(opts.SnapPoints, lo, hi),
		},
		onResize:  opts.OnResize,
		container: opts.Container,
		ancestor:  opts.Ancestor,
		fallback:  opts.FallbackContainerWidth,
		guard:     dragGuard{surface: surface},
		now:       now,
		log:       logger,
	}
}

// BeginDrag starts a drag session anchored at p. A second call while a
// session is active re-anchors it.
func (c *Controller) BeginDrag(p Point) {
	if c.state.Dragging {
		c.log.Debug().Float64("x", p.X).Msg("re-anchoring active drag")
	}
	c.guard.acquire()
	c.state = c.state.Begin(c.input(p))
	c.log.Debug().Float64("width", c.state.Width).Float64("x", p.X).Msg("drag started")
}

// UpdateDrag moves the preview to follow p. No-op when idle.
func (c *Controller) UpdateDrag(p Point) {
	if !c.state.Dragging {
		return
	}
	g := c.geom
	g.ContainerWidth = c.ContainerWidth()
	c.state = c.state.Update(c.input(p), g)
}

// EndDrag closes the session, committing the preview if it differs from the
// committed width. It reports whether a commit happened. No-op when idle.
func (c *Controller) EndDrag() bool {
	if !c.state.Dragging {
		return false
	}
	defer c.guard.release()

	var changed bool
	c.state, changed = c.state.End()
	if !changed {
		c.log.Debug().Float64("width", c.state.Width).Msg("drag ended without change")
		return false
	}
	c.log.Info().Float64("width", c.state.Width).Msg("drag committed")
	c.notify()
	return true
}

// SetWidthExternal overrides the committed width outside a drag. The value
// is clamped but not snapped, and OnResize always fires.
func (c *Controller) SetWidthExternal(width float64) {
	c.state.Width = Clamp(width, c.geom.Min, c.geom.Max)
	c.log.Debug().Float64("requested", width).Float64("width", c.state.Width).Msg("external width set")
	c.notify()
}

// Close tears the controller down. An active session is discarded without
// committing and the Surface is restored. Safe to call more than once.
func (c *Controller) Close() {
	if c.state.Dragging {
		c.log.Debug().Float64("preview", c.state.Preview).Msg("discarding drag on close")
		c.state = Idle(c.state.Width)
	}
	c.guard.release()
}

// DisplayWidth is the width to render: the preview while dragging, the
// committed width otherwise.
func (c *Controller) DisplayWidth() float64 { return c.state.Display() }

// Width is the committed width.
func (c *Controller) Width() float64 { return c.state.Width }

// IsDragging reports whether a drag session is active.
func (c *Controller) IsDragging() bool { return c.state.Dragging }

// State returns a snapshot of the state machine.
func (c *Controller) State() State { return c.state }

// SnapPoints returns the in-bounds snap points in their configured order.
func (c *Controller) SnapPoints() []float64 {
	return append([]float64(nil), c.geom.SnapPoints...)
}

// Bounds returns the configured minimum and maximum width.
func (c *Controller) Bounds() (lo, hi float64) { return c.geom.Min, c.geom.Max }

// ContainerWidth measures the percentage basis for pointer deltas.
func (c *Controller) ContainerWidth() float64 {
	return measure(c.fallback, c.container, c.ancestor)
}

func (c *Controller) input(p Point) Input {
	return Input{Point: p, At: c.now()}
}

func (c *Controller) notify() {
	if c.onResize != nil {
		c.onResize(c.state.Width)
	}
}
