package ui

import "github.com/charmbracelet/lipgloss"

// Playground palette
var (
	ColorLightGreen   = lipgloss.Color("#90EE90")
	ColorGreen        = lipgloss.Color("#3CB371")
	ColorDarkGreen    = lipgloss.Color("#1E5631")
	ColorGray         = lipgloss.Color("#808080")
	ColorLightGray    = lipgloss.Color("#C0C0C0")
	ColorBlack        = lipgloss.Color("#000000")
	ColorWhite        = lipgloss.Color("#FFFFFF")
	ColorRed          = lipgloss.Color("#FF0000")
	ColorBorderBright = lipgloss.Color("#90EE90")
	ColorBorderNorm   = lipgloss.Color("#3CB371")
	ColorWarning      = lipgloss.Color("#FFAA00")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorDarkGreen).
			Foreground(ColorLightGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorLightGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorLightGray)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorDarkGreen).
			Foreground(ColorLightGray).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorLightGreen).
			Bold(true)

	StyleStatusDemo = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorLightGreen).
			Bold(true).
			Padding(0, 1)

	StyleSection = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorLightGray)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorLightGreen).
			Bold(true)

	StyleButton = lipgloss.NewStyle().
			Background(ColorGreen).
			Foreground(ColorBlack).
			Bold(true).
			Padding(0, 2)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleLogPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	StyleLogEntry = lipgloss.NewStyle().
			Foreground(ColorWhite)

	StyleLogEntryNewest = lipgloss.NewStyle().
				Foreground(ColorLightGreen).
				Bold(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorGray)

	StyleSpark = lipgloss.NewStyle().
			Foreground(ColorGreen)
)
