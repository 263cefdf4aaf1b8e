package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sensor-playground/internal/config"
)

// MenuKey is one key hint in the menu bar, rendered as [K]label.
type MenuKey struct {
	Key, Label string
}

// RenderMenuBar renders the top menu bar with the screen title on the right.
func RenderMenuBar(width int, screenTitle string, keys []MenuKey) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.Key+"]") + StyleMenuLabel.Render(k.Label))
	}

	left := StyleMenuKey.Render(title) + menu.String()
	right := StyleMenuLabel.Render(screenTitle) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
