package canvas

import (
	"math"

	"sensor-playground/internal/config"
	"sensor-playground/internal/gesture"
)

// Bounds returns the pixel region a ball may occupy on a canvas of
// cols x rows cells. The far edge maps onto the last cell.
func Bounds(cols, rows int) gesture.Bounds {
	return gesture.Bounds{
		Width:  float64(max(cols-1, 0)) * config.CellWidthPx,
		Height: float64(max(rows-1, 0)) * config.CellHeightPx,
	}
}

// CellOf converts a pixel position to the cell containing it, clamped to
// the canvas.
func CellOf(p gesture.Point, cols, rows int) (col, row int) {
	col = int(math.Floor(p.X / config.CellWidthPx))
	row = int(math.Floor(p.Y / config.CellHeightPx))
	return clampInt(col, 0, cols-1), clampInt(row, 0, rows-1)
}

// CellCenter returns the pixel position of a cell's centre.
func CellCenter(col, row int) gesture.Point {
	return gesture.Point{
		X: (float64(col) + 0.5) * config.CellWidthPx,
		Y: (float64(row) + 0.5) * config.CellHeightPx,
	}
}

// CellDelta converts a movement in cells to a movement in pixels.
func CellDelta(dcol, drow int) (dx, dy float64) {
	return float64(dcol) * config.CellWidthPx, float64(drow) * config.CellHeightPx
}

// InBall reports whether the cell's centre lies within radius pixels of the
// ball centre.
func InBall(col, row int, ball gesture.Point, radius float64) bool {
	c := CellCenter(col, row)
	return math.Hypot(c.X-ball.X, c.Y-ball.Y) <= radius
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
