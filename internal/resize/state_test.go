package resize

import (
	"testing"
	"time"
)

func at(x float64) Input {
	return Input{Point: Point{X: x}, At: time.Unix(0, 0)}
}

var quarterGeometry = Geometry{
	Min:            25,
	Max:            100,
	SnapPoints:     []float64{25, 50, 75, 100},
	ContainerWidth: 400,
}

func TestStateTransitionsArePure(t *testing.T) {
	idle := Idle(50)
	dragging := idle.Begin(at(0))

	if idle.Dragging {
		t.Fatal("Begin mutated the receiver")
	}
	moved := dragging.Update(at(100), quarterGeometry)
	if dragging.Preview != 50 {
		t.Fatalf("Update mutated the receiver: preview %v", dragging.Preview)
	}
	if moved.Preview != 75 {
		t.Fatalf("preview = %v, want 75", moved.Preview)
	}

	ended, changed := moved.End()
	if !changed || ended.Width != 75 || ended.Dragging {
		t.Errorf("End = %+v, %v", ended, changed)
	}
	if !moved.Dragging || moved.Width != 50 {
		t.Error("End mutated the receiver")
	}
}

func TestStateIdleTransitions(t *testing.T) {
	idle := Idle(50)
	if got := idle.Update(at(300), quarterGeometry); got != idle {
		t.Errorf("Update on idle = %+v", got)
	}
	got, changed := idle.End()
	if changed || got != idle {
		t.Errorf("End on idle = %+v, %v", got, changed)
	}
}

func TestStateEndClearsSession(t *testing.T) {
	s := Idle(50).Begin(at(7)).Update(at(20), quarterGeometry)
	ended, _ := s.End()
	if ended != Idle(ended.Width) {
		t.Errorf("session residue after End: %+v", ended)
	}
	if ended.Display() != ended.Width {
		t.Errorf("Display %v != Width %v", ended.Display(), ended.Width)
	}
}

func TestStateUpdateZeroContainer(t *testing.T) {
	g := quarterGeometry
	g.ContainerWidth = 0
	g.SnapPoints = nil
	s := Idle(50).Begin(at(0)).Update(at(160), g)
	if s.Preview != 70 {
		t.Errorf("preview = %v, want 70", s.Preview)
	}
}
