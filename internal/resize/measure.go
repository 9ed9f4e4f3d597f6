package resize

import "math"

// DefaultContainerWidth is used when no container can be measured.
const DefaultContainerWidth = 800

// Measurer reports the width of the container a panel lives in.
type Measurer interface {
	Width() int
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func() int

func (f MeasurerFunc) Width() int { return f() }

// measure returns the first positive width among sources, then fallback,
// then DefaultContainerWidth. The result is always finite and positive.
func measure(fallback float64, sources ...Measurer) float64 {
	for _, m := range sources {
		if m == nil {
			continue
		}
		if w := m.Width(); w > 0 {
			return float64(w)
		}
	}
	if fallback > 0 && !math.IsInf(fallback, 0) {
		return fallback
	}
	return DefaultContainerWidth
}
