package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sensor-playground/internal/gesture"
)

// headings maps drag labels to compass headings in radians, 0 = top of the
// screen, increasing clockwise.
var headings = map[gesture.Direction]float64{
	gesture.DirTop:         0,
	gesture.DirTopRight:    math.Pi / 4,
	gesture.DirRight:       math.Pi / 2,
	gesture.DirBottomRight: 3 * math.Pi / 4,
	gesture.DirBottom:      math.Pi,
	gesture.DirBottomLeft:  5 * math.Pi / 4,
	gesture.DirLeft:        3 * math.Pi / 2,
	gesture.DirTopLeft:     7 * math.Pi / 4,
}

// Heading returns the compass heading for a drag label.
func Heading(d gesture.Direction) (float64, bool) {
	h, ok := headings[d]
	return h, ok
}

// RenderCompass renders a ring with T/R/B/L markers and, when dir is set, an
// arrow pointing the way the ball last moved.
func RenderCompass(width, height int, dir gesture.Direction) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
		isArrow[i] = make([]bool, width)
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3) // horizontal radius in columns
	ry := math.Max(fcy-1.5, 2) // vertical radius in rows

	// Ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if inGrid(width, height, col, row) && grid[row][col] == ' ' {
			grid[row][col] = ringChar(a)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Edge markers
	setGrid(grid, width, height, cx, cy-int(math.Round(ry))-1, 'T')
	setGrid(grid, width, height, cx, cy+int(math.Round(ry))+1, 'B')
	setGrid(grid, width, height, cx+int(math.Round(rx))+1, cy, 'R')
	setGrid(grid, width, height, cx-int(math.Round(rx))-1, cy, 'L')
	setGrid(grid, width, height, cx, cy, '+')

	if a, ok := Heading(dir); ok {
		sinA, cosA := math.Sin(a), math.Cos(a)
		shaftSteps := int(math.Max(rx, ry))
		tipCol, tipRow := cx, cy
		for s := 1; s <= shaftSteps; s++ {
			t := float64(s) / float64(shaftSteps) * 0.8
			col := int(math.Round(fcx + t*rx*sinA))
			row := int(math.Round(fcy - t*ry*cosA))
			if inGrid(width, height, col, row) {
				grid[row][col] = shaftChar(a)
				isArrow[row][col] = true
				tipCol, tipRow = col, row
			}
		}
		grid[tipRow][tipCol] = arrowTip(a)
		isArrow[tipRow][tipCol] = true
	}

	arrowSty := lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorGreen)
	markSty := lipgloss.NewStyle().Foreground(ColorLightGreen).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch == 'T' || ch == 'B' || ch == 'L' || ch == 'R' || ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func inGrid(w, h, col, row int) bool {
	return col >= 0 && col < w && row >= 0 && row < h
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if inGrid(w, h, col, row) {
		grid[row][col] = ch
	}
}

// sector8 returns the 45° sector index of a heading, 0 = top.
func sector8(a float64) int {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}

func ringChar(a float64) byte {
	return [8]byte{'-', '\\', '|', '/', '-', '\\', '|', '/'}[sector8(a)]
}

func shaftChar(a float64) byte {
	return [8]byte{'|', '/', '-', '\\', '|', '/', '-', '\\'}[sector8(a)]
}

func arrowTip(a float64) byte {
	return [8]byte{'^', '/', '>', '\\', 'v', '/', '<', '\\'}[sector8(a)]
}
