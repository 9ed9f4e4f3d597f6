package resize

// Cursor is the pointer style the host shows.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorResize
)

func (c Cursor) String() string {
	switch c {
	case CursorResize:
		return "resize"
	default:
		return "default"
	}
}

// Surface is the host-global UI state a drag has to take over: text
// selection and the pointer cursor.
type Surface interface {
	SuppressSelection()
	RestoreSelection()
	SetCursor(Cursor)
}

type nopSurface struct{}

func (nopSurface) SuppressSelection() {}
func (nopSurface) RestoreSelection()  {}
func (nopSurface) SetCursor(Cursor)   {}

// dragGuard pairs one Surface acquisition with exactly one release.
type dragGuard struct {
	surface Surface
	held    bool
}

func (g *dragGuard) acquire() {
	if g.held {
		return
	}
	g.surface.SuppressSelection()
	g.surface.SetCursor(CursorResize)
	g.held = true
}

func (g *dragGuard) release() {
	if !g.held {
		return
	}
	g.held = false
	defer g.surface.RestoreSelection()
	g.surface.SetCursor(CursorDefault)
}
