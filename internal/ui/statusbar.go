package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. demo selects the mode tag.
func RenderStatusBar(width int, demo bool, info string) string {
	mode := StyleStatusLive.Render("[LIVE]")
	if demo {
		mode = StyleStatusDemo.Render("[DEMO]")
	}

	content := mode + " " + info

	gap := width - lipgloss.Width(content) - 2
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
