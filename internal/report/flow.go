package report

import (
	"image"
	"math"
)

// MinCellWidth is the narrowest a section is ever drawn, in cells.
const MinCellWidth = 3

// Placement is a section's rectangle on the canvas.
type Placement struct {
	Index int
	Rect  image.Rectangle
}

// Flow packs widths (percent) into rows of totalWidth cells, each rowHeight
// tall. A row takes sections while their summed percent stays at or under
// 100. When a row sums to exactly 100 its last section absorbs the rounding
// remainder so the row spans totalWidth.
func Flow(widths []float64, totalWidth, rowHeight int) []Placement {
	out := make([]Placement, 0, len(widths))
	var row []int
	sum := 0.0
	y := 0

	flush := func() {
		if len(row) == 0 {
			return
		}
		x := 0
		for i, idx := range row {
			w := cells(widths[idx], totalWidth)
			if i == len(row)-1 && sum == 100 {
				w = max(MinCellWidth, totalWidth-x)
			}
			out = append(out, Placement{Index: idx, Rect: image.Rect(x, y, x+w, y+rowHeight)})
			x += w
		}
		y += rowHeight
		row, sum = row[:0], 0
	}

	for i, w := range widths {
		if len(row) > 0 && sum+w > 100 {
			flush()
		}
		row = append(row, i)
		sum += w
	}
	flush()
	return out
}

// cells converts a percentage of totalWidth into whole cells.
func cells(pct float64, totalWidth int) int {
	return max(MinCellWidth, int(math.Floor(pct*float64(totalWidth)/100+0.5)))
}
