package resize

import "math"

// Snap returns the entry of points nearest to v. When two entries are equally
// near, the one that appears first in points wins. An empty set returns v.
func Snap(v float64, points []float64) float64 {
	if len(points) == 0 {
		return v
	}
	best := points[0]
	bestDist := math.Abs(best - v)
	for _, p := range points[1:] {
		if d := math.Abs(p - v); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// Clamp bounds v to [lo, hi]. The upper bound is applied first, so a
// misconfigured range with lo > hi always yields lo. NaN yields lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Step returns the snap point adjacent to v in direction dir (+1 for the next
// larger point, -1 for the next smaller one). points need not be sorted. When
// no point lies in that direction v is returned unchanged.
func Step(v float64, points []float64, dir int) float64 {
	out := v
	found := false
	for _, p := range points {
		switch {
		case dir > 0 && p > v && (!found || p < out):
			out, found = p, true
		case dir < 0 && p < v && (!found || p > out):
			out, found = p, true
		}
	}
	return out
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// withinBounds keeps the points that lie inside [lo, hi], preserving order.
func withinBounds(points []float64, lo, hi float64) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p >= lo && p <= hi && !math.IsNaN(p) {
			out = append(out, p)
		}
	}
	return out
}
