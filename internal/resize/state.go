package resize

import (
	"math"
	"time"
)

// Point is a pointer position in host units (terminal cells for the TUI).
type Point struct {
	X, Y float64
}

// Input is a timestamped pointer sample fed to the state machine.
type Input struct {
	Point
	At time.Time
}

// Geometry is everything Update needs to turn a pointer delta into a width.
type Geometry struct {
	Min, Max       float64
	SnapPoints     []float64
	ContainerWidth float64
}

// State is the Idle/Dragging machine behind a Controller. Transitions are
// pure: each returns a new State and never touches the receiver.
//
// Anchor, AnchorWidth and Preview are only meaningful while Dragging.
type State struct {
	Width float64

	Dragging    bool
	Anchor      Input
	AnchorWidth float64
	Preview     float64
}

// Idle returns a state with no drag session, committed at width.
func Idle(width float64) State { return State{Width: width} }

// Begin starts a drag session anchored at in. Calling it on a state that is
// already dragging re-anchors the session at the current committed width.
func (s State) Begin(in Input) State {
	s.Dragging = true
	s.Anchor = in
	s.AnchorWidth = s.Width
	s.Preview = s.Width
	return s
}

// Update recomputes the preview for the pointer at in. Idle states are
// returned unchanged.
func (s State) Update(in Input, g Geometry) State {
	if !s.Dragging {
		return s
	}
	cw := g.ContainerWidth
	if !(cw > 0) || math.IsInf(cw, 0) {
		cw = DefaultContainerWidth
	}
	delta := (in.X - s.Anchor.X) / cw * 100
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		delta = 0
	}
	raw := roundHalfUp(s.AnchorWidth + delta)
	s.Preview = Snap(Clamp(raw, g.Min, g.Max), g.SnapPoints)
	return s
}

// End closes the session. The preview is committed only when it differs from
// the committed width; the bool reports whether that happened. Idle states
// are returned unchanged with false.
func (s State) End() (State, bool) {
	if !s.Dragging {
		return s, false
	}
	changed := s.Preview != s.Width
	if changed {
		s.Width = s.Preview
	}
	return Idle(s.Width), changed
}

// Display is the width a consumer should render: the preview while dragging,
// the committed width otherwise.
func (s State) Display() float64 {
	if s.Dragging {
		return s.Preview
	}
	return s.Width
}
