// Package sensors polls ambient temperature and pressure and publishes
// readings to the UI as Bubble Tea messages.
package sensors

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind distinguishes the sensors the playground listens to.
type Kind int

const (
	KindTemperature Kind = iota
	KindPressure
)

func (k Kind) String() string {
	switch k {
	case KindPressure:
		return "pressure"
	default:
		return "temperature"
	}
}

// Unit returns the display unit for readings of this kind.
func (k Kind) Unit() string {
	if k == KindPressure {
		return "hPa"
	}
	return "°C"
}

// ReadingMsg is sent via Sender.Send whenever a sensor reports a value.
type ReadingMsg struct {
	Kind   Kind
	Value  float64 // °C or hPa
	At     time.Time
	Source string // "bmp280", "demo", ...
}

// Sender is the subset of *tea.Program sources need.
type Sender interface {
	Send(msg tea.Msg)
}

// Source produces readings until stopped.
type Source interface {
	Start(p Sender) error
	Stop()
}
