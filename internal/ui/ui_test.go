package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-playground/internal/gesture"
)

func TestHeading_AllDirections(t *testing.T) {
	h, ok := Heading(gesture.DirRight)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, h, 1e-9)

	h, ok = Heading(gesture.DirBottom)
	require.True(t, ok)
	assert.InDelta(t, math.Pi, h, 1e-9)

	_, ok = Heading(gesture.DirNone)
	assert.False(t, ok)
}

func TestArrowTip_FollowsScreenDirections(t *testing.T) {
	tests := map[gesture.Direction]byte{
		gesture.DirTop:    '^',
		gesture.DirRight:  '>',
		gesture.DirBottom: 'v',
		gesture.DirLeft:   '<',
	}
	for d, want := range tests {
		h, _ := Heading(d)
		assert.Equal(t, string(want), string(arrowTip(h)), "direction %s", d)
	}
}

func TestRenderCompass(t *testing.T) {
	out := RenderCompass(21, 7, gesture.DirRight)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 7)
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "T")

	assert.NotContains(t, RenderCompass(21, 7, gesture.DirNone), ">")
	assert.Empty(t, RenderCompass(5, 3, gesture.DirTop))
}

func TestRenderGestureLog_NewestFirstAndClamped(t *testing.T) {
	recent := []string{"third", "second", "first"}
	out := RenderGestureLog(recent, 3, gesture.DirLeft, 40, 30)

	assert.Contains(t, out, "GESTURE LOG [3]")
	assert.Less(t, strings.Index(out, "third"), strings.Index(out, "second"))
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
	assert.Equal(t, 30, lipgloss.Height(out))
}

func TestRenderGestureLog_Empty(t *testing.T) {
	out := RenderGestureLog(nil, 0, gesture.DirNone, 40, 8)
	assert.Contains(t, out, "Drag the ball")
	assert.Equal(t, 8, lipgloss.Height(out))
}

func TestRenderSensorPanel(t *testing.T) {
	out := RenderSensorPanel(SensorView{
		Owner:       "Evan Tomak",
		City:        "Bloomington",
		State:       "Indiana",
		Temperature: 21.46,
		Pressure:    1013.254,
		HasTemp:     true,
		HasPressure: true,
		TempHistory: []float64{20, 21, 22},
	}, 60, 24)

	assert.Contains(t, out, "Bloomington")
	assert.Contains(t, out, "Indiana")
	assert.Contains(t, out, "21.5 °C")
	assert.Contains(t, out, "1013.25 hPa")
	assert.Contains(t, out, gestureButtonLabel)
	assert.NotContains(t, out, "(no sensor)")
	assert.Equal(t, 24, lipgloss.Height(out))

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1+GestureButtonLine], gestureButtonLabel)
}

func TestRenderSensorPanel_MissingSensorReadsZero(t *testing.T) {
	out := RenderSensorPanel(SensorView{Owner: "Evan Tomak", HasTemp: true, Temperature: 19}, 60, 24)

	lines := strings.Split(out, "\n")
	var temp, press string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Temperature:"):
			temp = l
		case strings.Contains(l, "Air Pressure:"):
			press = l
		}
	}
	assert.Contains(t, temp, "19.0 °C")
	assert.NotContains(t, temp, "(no sensor)")
	assert.Contains(t, press, "0.00 hPa")
	assert.Contains(t, press, "(no sensor)")
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁▅█", renderSparkline([]float64{0, 0.6, 1}, 10))
	assert.Equal(t, "▁▁", renderSparkline([]float64{5, 5}, 10))
	assert.Len(t, []rune(renderSparkline([]float64{1, 2, 3, 4, 5}, 3)), 3)
	assert.Empty(t, renderSparkline(nil, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
