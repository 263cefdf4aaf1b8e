package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the menu bar, body and status bar.
func ComposeLayout(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// JoinPanels places two panels side by side or one above the other.
func JoinPanels(first, second string, vertical bool) string {
	if vertical {
		return lipgloss.JoinVertical(lipgloss.Left, first, second)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, first, second)
}
