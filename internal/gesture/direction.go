// Package gesture turns raw drag deltas into a clamped ball position and an
// 8-way direction label, and keeps the per-screen gesture log.
package gesture

import "math"

// Direction is one of the eight compass labels a drag can resolve to.
// The zero value means the drag could not be classified.
type Direction string

const (
	DirNone        Direction = ""
	DirRight       Direction = "right"
	DirBottomRight Direction = "bottom-right"
	DirBottom      Direction = "bottom"
	DirBottomLeft  Direction = "bottom-left"
	DirLeft        Direction = "left"
	DirTopLeft     Direction = "top-left"
	DirTop         Direction = "top"
	DirTopRight    Direction = "top-right"
)

// Sensitivity scales raw drag deltas before they move the ball.
const Sensitivity = 0.25

// Point is a position in device pixels. +y points down.
type Point struct {
	X, Y float64
}

// Bounds is the size of the region the ball may move in.
type Bounds struct {
	Width, Height float64
}

// sector is a half-open angle range [lo, hi) in degrees.
type sector struct {
	lo, hi float64
	dir    Direction
}

// sectors is evaluated in order; the first match wins. "left" straddles the
// ±180° seam so it appears twice.
var sectors = []sector{
	{-22.5, 22.5, DirRight},
	{22.5, 67.5, DirBottomRight},
	{67.5, 112.5, DirBottom},
	{112.5, 157.5, DirBottomLeft},
	{157.5, math.Inf(1), DirLeft},
	{math.Inf(-1), -157.5, DirLeft},
	{-157.5, -112.5, DirTopLeft},
	{-112.5, -67.5, DirTop},
	{-67.5, -22.5, DirTopRight},
}

// Angle returns the drag angle in degrees, in [-180, 180].
// atan2(0, 0) is 0, so a zero delta points right.
func Angle(dx, dy float64) float64 {
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// Classify buckets an angle in degrees into one of the eight sectors.
// It returns DirNone for values no sector contains (NaN).
func Classify(deg float64) Direction {
	for _, s := range sectors {
		if deg >= s.lo && deg < s.hi {
			return s.dir
		}
	}
	return DirNone
}

// ClassifyDelta is Classify(Angle(dx, dy)).
func ClassifyDelta(dx, dy float64) Direction {
	return Classify(Angle(dx, dy))
}

// Clamp saturates p to [0, b.Width] x [0, b.Height].
func Clamp(p Point, b Bounds) Point {
	return Point{
		X: clampAxis(p.X, b.Width),
		Y: clampAxis(p.Y, b.Height),
	}
}

func clampAxis(v, bound float64) float64 {
	if bound < 0 || math.IsNaN(bound) {
		bound = 0
	}
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > bound:
		return bound
	}
	return v
}

// Step applies one drag sample to pos. The delta is scaled by Sensitivity
// before moving; the direction uses the unscaled delta. A non-finite delta
// leaves the position where it was.
func Step(pos Point, dx, dy float64, b Bounds) (Point, Direction) {
	dir := ClassifyDelta(dx, dy)
	if !finite(dx) || !finite(dy) {
		return Clamp(pos, b), dir
	}
	next := Point{
		X: pos.X + dx*Sensitivity,
		Y: pos.Y + dy*Sensitivity,
	}
	return Clamp(next, b), dir
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
