package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sensor-playground/internal/gesture"
)

const compassHeight = 7

// RenderGestureLog renders the log panel: a compass showing the last drag
// direction, then entries newest first. recent must already be in that
// order; total is the full log length.
func RenderGestureLog(recent []string, total int, last gesture.Direction, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 3 {
		innerH = 3
	}

	header := []string{
		StylePanelTitle.Render(fmt.Sprintf("GESTURE LOG [%d]", total)),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	// Compass only when it leaves room for a few entries
	if innerH-len(header) >= compassHeight+3 {
		compassW := min(innerW, compassHeight*3)
		if c := RenderCompass(compassW, compassHeight, last); c != "" {
			pad := strings.Repeat(" ", max(0, (innerW-compassW)/2))
			for _, l := range strings.Split(c, "\n") {
				header = append(header, pad+l)
			}
		}
	}

	space := innerH - len(header)
	var body []string
	if len(recent) == 0 {
		body = append(body, "", StyleHelp.Render(" Drag the ball or double tap"))
	}
	for i, e := range recent {
		if len(body) >= space {
			break
		}
		e = truncate(e, innerW)
		if i == 0 {
			body = append(body, StyleLogEntryNewest.Render(e))
			continue
		}
		body = append(body, StyleLogEntry.Render(e))
	}

	all := fitLines(append(header, body...), innerH)
	return StyleLogPanel.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width < 1 {
		return ""
	}
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
