package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-playground/internal/config"
	"sensor-playground/internal/gesture"
	"sensor-playground/internal/location"
	"sensor-playground/internal/sensors"
)

type fakePublisher struct {
	mu       sync.Mutex
	readings []sensors.ReadingMsg
	places   []location.PlaceMsg
	gestures []string
	err      error
}

func (p *fakePublisher) PublishReading(r sensors.ReadingMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readings = append(p.readings, r)
	return p.err
}

func (p *fakePublisher) PublishPlace(msg location.PlaceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.places = append(p.places, msg)
	return p.err
}

func (p *fakePublisher) PublishGesture(entry string, _ gesture.Point, _ time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gestures = append(p.gestures, entry)
	return p.err
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// newGestureModel returns a model on the gesture screen of a 120x40
// terminal: a 58x36 cell canvas starting at column 1, row 2.
func newGestureModel(t *testing.T, clock clockwork.Clock, pub Publisher) AppModel {
	t.Helper()
	m := New(Options{Clock: clock, Publisher: pub})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, key("g"))
	require.Equal(t, ScreenGesture, m.Screen())
	require.NotNil(t, m.Session())
	return m
}

func TestParseScreen(t *testing.T) {
	s, err := ParseScreen("gesture")
	require.NoError(t, err)
	assert.Equal(t, ScreenGesture, s)

	s, err = ParseScreen("")
	require.NoError(t, err)
	assert.Equal(t, ScreenSensors, s)

	_, err = ParseScreen("radar")
	assert.Error(t, err)
}

func TestNew_StartsPending(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, ScreenSensors, m.Screen())
	assert.Nil(t, m.Session())
	assert.Contains(t, m.View(), config.PlaceholderPending)
	assert.Contains(t, m.View(), "0.0 °C")
}

func TestUpdate_ReadingAndPlace(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, sensors.ReadingMsg{Kind: sensors.KindTemperature, Value: 22.4, At: time.Now()})
	m, _ = update(t, m, sensors.ReadingMsg{Kind: sensors.KindPressure, Value: 1008.5, At: time.Now()})
	m, _ = update(t, m, location.PlaceMsg{City: "Bloomington", State: "Indiana"})

	view := m.View()
	assert.Contains(t, view, "22.4 °C")
	assert.Contains(t, view, "1008.50 hPa")
	assert.Contains(t, view, "Bloomington")
	assert.Contains(t, view, "Indiana")
}

func TestUpdate_DragMovesBallAndLogs(t *testing.T) {
	m := newGestureModel(t, clockwork.NewFakeClock(), nil)
	s := m.Session()
	assert.Equal(t, gesture.Point{X: config.StartX, Y: config.StartY}, s.Position())

	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	m, _ = update(t, m, mouse(tea.MouseActionMotion, 14, 10))

	assert.Equal(t, gesture.Point{X: 108, Y: 150}, s.Position())
	assert.True(t, s.Dragging())
	assert.Equal(t, []string{"You moved the object to the right."}, s.Entries())

	m, _ = update(t, m, mouse(tea.MouseActionMotion, 14, 8))
	assert.Equal(t, gesture.Point{X: 108, Y: 142}, s.Position())
	assert.Equal(t, "You moved the object to the top.", s.Recent(1)[0])

	m, _ = update(t, m, mouse(tea.MouseActionRelease, 14, 8))
	assert.False(t, s.Dragging())

	// Motion without a press does nothing.
	_, _ = update(t, m, mouse(tea.MouseActionMotion, 30, 30))
	assert.Equal(t, 2, s.Len())
}

func TestUpdate_DragClampsToCanvas(t *testing.T) {
	m := newGestureModel(t, clockwork.NewFakeClock(), nil)
	s := m.Session()

	m, _ = update(t, m, mouse(tea.MouseActionPress, 2, 3))
	for x := 3; x < 59; x++ {
		m, _ = update(t, m, mouse(tea.MouseActionMotion, x, 3))
	}
	for i := 0; i < 50; i++ {
		m, _ = update(t, m, mouse(tea.MouseActionMotion, 58, 3))
		m, _ = update(t, m, mouse(tea.MouseActionMotion, 1, 3))
		m, _ = update(t, m, mouse(tea.MouseActionMotion, 58, 3))
	}

	b := s.Bounds()
	assert.GreaterOrEqual(t, s.Position().X, 0.0)
	assert.LessOrEqual(t, s.Position().X, b.Width)
	_ = m
}

func TestUpdate_DoubleTap(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newGestureModel(t, clock, nil)
	s := m.Session()

	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 10, 10))
	clock.Advance(200 * time.Millisecond)
	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 10, 10))

	assert.Equal(t, []string{gesture.DoubleTapEntry}, s.Entries())

	clock.Advance(gesture.DoubleTapWindow)
	_, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	assert.Equal(t, 1, s.Len())
}

func TestUpdate_PressOutsideCanvasIgnored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newGestureModel(t, clock, nil)
	s := m.Session()

	m, _ = update(t, m, mouse(tea.MouseActionPress, 100, 10))
	m, _ = update(t, m, mouse(tea.MouseActionPress, 100, 10))
	_, _ = update(t, m, mouse(tea.MouseActionMotion, 104, 10))

	assert.Zero(t, s.Len())
	assert.Equal(t, gesture.Point{X: config.StartX, Y: config.StartY}, s.Position())
}

func TestUpdate_ReopenStartsFreshSession(t *testing.T) {
	m := newGestureModel(t, clockwork.NewFakeClock(), nil)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	m, _ = update(t, m, mouse(tea.MouseActionMotion, 12, 10))
	require.Equal(t, 1, m.Session().Len())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenSensors, m.Screen())
	assert.Nil(t, m.Session())

	m, _ = update(t, m, key("g"))
	assert.Zero(t, m.Session().Len())
	assert.Equal(t, gesture.Point{X: config.StartX, Y: config.StartY}, m.Session().Position())
}

func TestUpdate_ButtonClickOpensGesture(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, mouse(tea.MouseActionPress, 40, 3))
	assert.Equal(t, ScreenSensors, m.Screen())

	m, _ = update(t, m, mouse(tea.MouseActionPress, 40, 15))
	assert.Equal(t, ScreenGesture, m.Screen())
}

func TestUpdate_ResizeReclampsBall(t *testing.T) {
	m := newGestureModel(t, clockwork.NewFakeClock(), nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})

	s := m.Session()
	b := s.Bounds()
	assert.LessOrEqual(t, s.Position().X, b.Width)
	assert.LessOrEqual(t, s.Position().Y, b.Height)
}

func TestUpdate_PublishesEvents(t *testing.T) {
	pub := &fakePublisher{}
	m := newGestureModel(t, clockwork.NewFakeClock(), pub)

	_, cmd := update(t, m, sensors.ReadingMsg{Kind: sensors.KindTemperature, Value: 20})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	_, cmd = update(t, m, location.PlaceMsg{City: "Bloomington", State: "Indiana"})
	require.NotNil(t, cmd)
	cmd()

	m, cmd = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	assert.Nil(t, cmd, "a single tap logs nothing")
	_, cmd = update(t, m, mouse(tea.MouseActionMotion, 10, 12))
	require.NotNil(t, cmd)
	cmd()

	assert.Len(t, pub.readings, 1)
	assert.Len(t, pub.places, 1)
	assert.Equal(t, []string{"You moved the object to the bottom."}, pub.gestures)
}

func TestUpdate_PublishErrorBecomesMessage(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	m := New(Options{Publisher: pub})

	m, cmd := update(t, m, sensors.ReadingMsg{Kind: sensors.KindPressure, Value: 1000})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, PublishErrMsg{}, msg)

	_, cmd = update(t, m, msg)
	assert.Nil(t, cmd)
}

func TestView_GestureScreen(t *testing.T) {
	m := newGestureModel(t, clockwork.NewFakeClock(), nil)
	m, _ = update(t, m, mouse(tea.MouseActionPress, 10, 10))
	m, _ = update(t, m, mouse(tea.MouseActionMotion, 6, 10))

	view := m.View()
	assert.Contains(t, view, "Gesture Playground")
	assert.Contains(t, view, "GESTURE LOG [1]")
	assert.Contains(t, view, "You moved the object to the left.")
}

func TestLayoutGesture_Orientation(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.False(t, m.layoutGesture().vertical)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 60})
	l := m.layoutGesture()
	assert.True(t, l.vertical)
	assert.Equal(t, 58, l.canvasH+l.logH)
}

// programSender delivers like tea.Program.Send: unbuffered, and dropped once
// the program has exited.
type programSender struct {
	msgs chan tea.Msg
	done chan struct{}
}

func newProgramSender() *programSender {
	return &programSender{msgs: make(chan tea.Msg), done: make(chan struct{})}
}

func (p *programSender) Send(msg tea.Msg) {
	select {
	case p.msgs <- msg:
	case <-p.done:
	}
}

func within(t *testing.T, d time.Duration, what string, fn func()) {
	t.Helper()
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		fn()
	}()
	select {
	case <-finished:
	case <-time.After(d):
		t.Fatalf("%s did not return within %s", what, d)
	}
}

func TestQuit_DoesNotWaitOnBlockedSource(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sender := newProgramSender()
	src := sensors.NewMockSource(21, 1013, time.Second, clock, 1)
	require.NoError(t, src.Start(sender))

	m := New(Options{Clock: clock, Sensors: src})
	for i := 0; i < 2; i++ {
		m, _ = update(t, m, <-sender.msgs)
	}

	// The next tick leaves the poller blocked in Send: nothing drains it
	// while Update runs.
	clock.Advance(time.Second)

	var cmd tea.Cmd
	within(t, 2*time.Second, "Update(q)", func() {
		_, cmd = m.Update(key("q"))
	})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// Once the program has exited, Send returns and Stop can join.
	close(sender.done)
	within(t, 2*time.Second, "Stop", m.Stop)
	within(t, 2*time.Second, "second Stop", m.Stop)
}
