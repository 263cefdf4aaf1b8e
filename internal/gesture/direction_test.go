package gesture

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDelta_Cardinals(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Direction
	}{
		{0, 0, DirRight},
		{1, 0, DirRight},
		{0, 1, DirBottom},
		{-1, 0, DirLeft},
		{0, -1, DirTop},
		{1, 1, DirBottomRight},
		{-1, 1, DirBottomLeft},
		{-1, -1, DirTopLeft},
		{1, -1, DirTopRight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyDelta(tt.dx, tt.dy), "delta (%v, %v)", tt.dx, tt.dy)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		deg  float64
		want Direction
	}{
		{-22.5, DirRight},
		{22.5, DirBottomRight},
		{math.Nextafter(22.5, 0), DirRight},
		{67.5, DirBottom},
		{112.5, DirBottomLeft},
		{157.5, DirLeft},
		{-157.5, DirTopLeft},
		{-112.5, DirTop},
		{-67.5, DirTopRight},
		{math.Nextafter(-22.5, -90), DirTopRight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.deg), "angle %v", tt.deg)
	}
}

func TestClassify_LeftWrapsAcrossSeam(t *testing.T) {
	for _, deg := range []float64{157.5, 160, 179.9, 180, -180, -179.9, -160, math.Nextafter(-157.5, -180)} {
		assert.Equal(t, DirLeft, Classify(deg), "angle %v", deg)
	}
}

func TestClassify_CoversEveryAngle(t *testing.T) {
	for deg := -180.0; deg <= 180.0; deg += 0.25 {
		matches := 0
		for _, s := range sectors {
			if deg >= s.lo && deg < s.hi {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "angle %v must fall in exactly one sector", deg)
	}
}

func TestClassify_NaNIsUnclassified(t *testing.T) {
	assert.Equal(t, DirNone, Classify(math.NaN()))
	assert.Equal(t, DirNone, ClassifyDelta(math.NaN(), 1))
}

func TestAngle_NegativeXAxis(t *testing.T) {
	assert.InDelta(t, 180.0, Angle(-1, 0), 1e-9)
	assert.InDelta(t, -180.0, Angle(-1, math.Copysign(0, -1)), 1e-9)
}

func TestClamp_Saturates(t *testing.T) {
	b := Bounds{Width: 300, Height: 200}

	assert.Equal(t, Point{0, 0}, Clamp(Point{-5, -1}, b))
	assert.Equal(t, Point{300, 200}, Clamp(Point{301, 999}, b))
	assert.Equal(t, Point{300, 0}, Clamp(Point{300, 0}, b))
}

func TestClamp_Idempotent(t *testing.T) {
	b := Bounds{Width: 300, Height: 200}
	in := Point{120.5, 33}

	assert.Equal(t, in, Clamp(in, b))
	assert.Equal(t, Clamp(Clamp(Point{-3, 450}, b), b), Clamp(Point{-3, 450}, b))
}

func TestClamp_NegativeBoundCollapsesToZero(t *testing.T) {
	assert.Equal(t, Point{0, 0}, Clamp(Point{10, 10}, Bounds{Width: -1, Height: -1}))
}

func TestStep_ScalesDeltaBySensitivity(t *testing.T) {
	pos, dir := Step(Point{100, 150}, 40, -8, Bounds{Width: 1000, Height: 1000})

	assert.Equal(t, Point{110, 148}, pos)
	assert.Equal(t, DirRight, dir)
}

func TestStep_StaysInBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	b := Bounds{Width: 320, Height: 240}
	pos := Point{100, 150}

	for i := 0; i < 5000; i++ {
		dx := (r.Float64() - 0.5) * 4000
		dy := (r.Float64() - 0.5) * 4000
		pos, _ = Step(pos, dx, dy, b)

		assert.GreaterOrEqual(t, pos.X, 0.0)
		assert.LessOrEqual(t, pos.X, b.Width)
		assert.GreaterOrEqual(t, pos.Y, 0.0)
		assert.LessOrEqual(t, pos.Y, b.Height)
	}
}

func TestStep_NonFiniteDeltaKeepsPosition(t *testing.T) {
	b := Bounds{Width: 320, Height: 240}

	pos, dir := Step(Point{10, 20}, math.NaN(), 3, b)
	assert.Equal(t, Point{10, 20}, pos)
	assert.Equal(t, DirNone, dir)

	pos, _ = Step(Point{10, 20}, math.Inf(1), 0, b)
	assert.Equal(t, Point{10, 20}, pos)
}
