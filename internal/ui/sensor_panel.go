package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SensorView is everything the sensors screen shows.
type SensorView struct {
	Owner           string
	City            string
	State           string
	Temperature     float64
	Pressure        float64
	HasTemp         bool // false: no sensor has reported yet
	HasPressure     bool
	TempHistory     []float64
	PressureHistory []float64
}

// GestureButtonLine is the content line (below the panel's top border) the
// GESTURE PLAYGROUND button is drawn on.
const GestureButtonLine = 13

const gestureButtonLabel = "GESTURE PLAYGROUND"

// RenderSensorPanel renders the sensors screen body.
func RenderSensorPanel(v SensorView, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("SENSORS PLAYGROUND")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))

	field := func(label, value string) string {
		return StyleLabel.Render(fmt.Sprintf("  %-14s", label)) + StyleValue.Render(value)
	}

	lines := []string{
		centerLine(title, innerW),
		sep,
		"",
		field("Name:", v.Owner),
		"",
		StyleSection.Render("Location:"),
		field("City:", v.City),
		field("State:", v.State),
		"",
		StyleSection.Render("Sensor Data:"),
		field("Temperature:", fmt.Sprintf("%.1f °C", v.Temperature)) + noReading(v.HasTemp),
		field("Air Pressure:", fmt.Sprintf("%.2f hPa", v.Pressure)) + noReading(v.HasPressure),
		"",
		centerLine(StyleButton.Render(gestureButtonLabel), innerW),
		"",
	}

	// History sparklines when there is room
	sparkW := innerW - 20
	if sparkW >= 10 && height-2 >= len(lines)+2 {
		lines = append(lines,
			StyleLabel.Render(fmt.Sprintf("  %-14s", "Temp trend:"))+StyleSpark.Render(renderSparkline(v.TempHistory, sparkW)),
			StyleLabel.Render(fmt.Sprintf("  %-14s", "Press. trend:"))+StyleSpark.Render(renderSparkline(v.PressureHistory, sparkW)),
		)
	}

	lines = fitLines(lines, height-2)
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func noReading(has bool) string {
	if has {
		return ""
	}
	return StyleHelp.Render("  (no sensor)")
}

func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// fitLines pads or truncates lines to exactly n entries. lipgloss Height()
// only sets a minimum, so overflow has to be cut here.
func fitLines(lines []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Take last `width` values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	rng := maxV - minV
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
