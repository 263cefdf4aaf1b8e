// Package canvas draws the gesture playground: a dotted field with the
// draggable ball on top.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sensor-playground/internal/config"
	"sensor-playground/internal/gesture"
)

var (
	colorField = lipgloss.Color("#90EE90")
	colorDot   = lipgloss.Color("#5FAF5F")
	colorBall  = lipgloss.Color("#FF0000")
	colorTitle = lipgloss.Color("#000000")

	styleField = lipgloss.NewStyle().Background(colorField)
	styleDot   = lipgloss.NewStyle().Background(colorField).Foreground(colorDot)
	styleBall  = lipgloss.NewStyle().Background(colorField).Foreground(colorBall).Bold(true)
	styleHeld  = lipgloss.NewStyle().Background(colorBall).Foreground(colorBall)
	styleTitle = lipgloss.NewStyle().Background(colorField).Foreground(colorTitle).Bold(true)
)

const title = "Gesture Playground"

// Render draws a cols x rows canvas with the ball at pos. While dragging the
// ball is drawn solid.
func Render(cols, rows int, pos gesture.Point, dragging bool) string {
	if cols < 1 || rows < 1 {
		return ""
	}

	ballCol, ballRow := CellOf(pos, cols, rows)

	titleRow := rows / 2
	titleCol := (cols - len(title)) / 2
	showTitle := titleCol >= 0

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			isBall := (col == ballCol && row == ballRow) || InBall(col, row, pos, config.BallRadius)
			switch {
			case isBall && dragging:
				sb.WriteString(styleHeld.Render("█"))
			case isBall:
				sb.WriteString(styleBall.Render("●"))
			case showTitle && row == titleRow && col >= titleCol && col < titleCol+len(title):
				sb.WriteString(styleTitle.Render(string(title[col-titleCol])))
			case col%4 == 0 && row%2 == 0:
				sb.WriteString(styleDot.Render("·"))
			default:
				sb.WriteString(styleField.Render(" "))
			}
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
