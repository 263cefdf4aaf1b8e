package app

import (
	"fmt"
	"math"
	"time"

	"sensor-playground/internal/canvas"
	"sensor-playground/internal/config"
	"sensor-playground/internal/gesture"
	"sensor-playground/internal/ui"
)

const (
	menuH   = 1
	statusH = 1
)

// gestureLayout is the size of the two gesture panels, borders included.
type gestureLayout struct {
	canvasW, canvasH int
	logW, logH       int
	vertical         bool
}

// layoutGesture splits the body between canvas and log. The split follows
// the screen's shape in pixels: portrait stacks them, landscape puts them
// side by side.
func (m AppModel) layoutGesture() gestureLayout {
	w := max(m.width, 20)
	bodyH := max(m.height-menuH-statusH, 8)

	var l gestureLayout
	l.vertical = float64(bodyH)*config.CellHeightPx > float64(w)*config.CellWidthPx
	if l.vertical {
		l.canvasW, l.logW = w, w
		l.canvasH = max(int(float64(bodyH)*(1-config.LogPanelRatio)), 4)
		l.logH = max(bodyH-l.canvasH, 3)
		return l
	}
	l.canvasH, l.logH = bodyH, bodyH
	l.canvasW = max(int(float64(w)*(1-config.LogPanelRatio)), 10)
	l.logW = max(w-l.canvasW, 12)
	return l
}

// canvasCells is the drawable canvas area inside the panel border.
func (l gestureLayout) canvasCells() (cols, rows int) {
	return max(l.canvasW-2, 1), max(l.canvasH-2, 1)
}

func (m AppModel) canvasBounds() gesture.Bounds {
	if m.width == 0 || m.height == 0 {
		// Size unknown until the first WindowSizeMsg.
		return gesture.Bounds{Width: math.Inf(1), Height: math.Inf(1)}
	}
	return canvas.Bounds(m.layoutGesture().canvasCells())
}

// inCanvas reports whether a terminal cell lies on the canvas. The canvas
// panel sits at the top left of the body, one cell in from its border.
func (m AppModel) inCanvas(x, y int) bool {
	cols, rows := m.layoutGesture().canvasCells()
	left, top := 1, menuH+1
	return x >= left && x < left+cols && y >= top && y < top+rows
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing playground..."
	}
	if m.screen == ScreenGesture && m.shared.session != nil {
		return m.viewGesture()
	}
	return m.viewSensors()
}

func (m AppModel) viewSensors() string {
	snap := m.shared.store.Snapshot()

	menu := ui.RenderMenuBar(m.width, "Sensors Playground", []ui.MenuKey{
		{Key: "G", Label: "esture playground"},
		{Key: "Q", Label: "uit"},
	})

	body := ui.RenderSensorPanel(ui.SensorView{
		Owner:           config.OwnerName,
		City:            m.city,
		State:           m.state,
		Temperature:     snap.Temperature,
		HasTemp:         snap.HasTemp,
		HasPressure:     snap.HasPressure,
		Pressure:        snap.Pressure,
		TempHistory:     snap.TempHistory,
		PressureHistory: snap.PressureHistory,
	}, m.width, max(m.height-menuH-statusH, 8))

	updated := "never"
	if !snap.Updated.IsZero() {
		updated = formatAge(m.clock.Since(snap.Updated))
	}
	info := fmt.Sprintf("Readings: %s  Location: %s, %s", updated, m.city, m.state)

	return ui.ComposeLayout(menu, body, ui.RenderStatusBar(m.width, m.demo, info))
}

func (m AppModel) viewGesture() string {
	s := m.shared.session
	l := m.layoutGesture()
	cols, rows := l.canvasCells()

	menu := ui.RenderMenuBar(m.width, "Gesture Playground", []ui.MenuKey{
		{Key: "ESC", Label: " back"},
		{Key: "Q", Label: "uit"},
	})

	canvasPanel := ui.RenderCanvasPanel(l.canvasW, l.canvasH,
		canvas.Render(cols, rows, s.Position(), s.Dragging()), s.Dragging())
	logPanel := ui.RenderGestureLog(s.Recent(l.logH), s.Len(), s.LastDirection(), l.logW, l.logH)
	body := ui.JoinPanels(canvasPanel, logPanel, l.vertical)

	pos, b := s.Position(), s.Bounds()
	last := string(s.LastDirection())
	if last == "" {
		last = "-"
	}
	info := fmt.Sprintf("Ball: %.0f,%.0f px  Area: %.0fx%.0f px  Entries: %d  Last: %s",
		pos.X, pos.Y, b.Width, b.Height, s.Len(), last)

	return ui.ComposeLayout(menu, body, ui.RenderStatusBar(m.width, m.demo, info))
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm ago", int(d.Minutes()))
}
