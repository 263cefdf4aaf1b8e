package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"sensor-playground/internal/canvas"
	"sensor-playground/internal/config"
	"sensor-playground/internal/gesture"
	"sensor-playground/internal/location"
	"sensor-playground/internal/sensors"
	"sensor-playground/internal/ui"
)

// Screen selects which playground is shown.
type Screen int

const (
	ScreenSensors Screen = iota
	ScreenGesture
)

// ParseScreen maps a --screen flag value to a Screen.
func ParseScreen(s string) (Screen, error) {
	switch s {
	case "", "sensors":
		return ScreenSensors, nil
	case "gesture":
		return ScreenGesture, nil
	}
	return 0, fmt.Errorf("unknown screen %q (want sensors or gesture)", s)
}

// Publisher mirrors playground events elsewhere. *telemetry.Publisher
// implements it.
type Publisher interface {
	PublishReading(r sensors.ReadingMsg) error
	PublishPlace(msg location.PlaceMsg) error
	PublishGesture(entry string, pos gesture.Point, at time.Time) error
}

// Options configures a new AppModel.
type Options struct {
	Demo      bool
	Screen    Screen
	Clock     clockwork.Clock
	Logger    *slog.Logger
	Sensors   sensors.Source    // nil: readings stay at 0
	Locator   *location.Locator // nil: location stays pending
	Publisher Publisher         // nil: nothing is published
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store     *sensors.Store
	session   *gesture.Session
	sensors   sensors.Source
	locator   *location.Locator
	publisher Publisher
}

// drag tracks the pointer between mouse events on the canvas.
type drag struct {
	active bool
	col    int
	row    int
}

// AppModel is the root Bubble Tea model for the playground.
type AppModel struct {
	width  int
	height int

	screen Screen
	demo   bool
	city   string
	state  string
	drag   drag

	clock  clockwork.Clock
	logger *slog.Logger
	shared *shared
}

// New creates a new AppModel.
func New(opts Options) AppModel {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := AppModel{
		demo:   opts.Demo,
		city:   config.PlaceholderPending,
		state:  config.PlaceholderPending,
		clock:  opts.Clock,
		logger: opts.Logger,
		shared: &shared{
			store:     sensors.NewStore(config.HistorySize),
			sensors:   opts.Sensors,
			locator:   opts.Locator,
			publisher: opts.Publisher,
		},
	}
	if opts.Screen == ScreenGesture {
		m = m.openGesture()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if s := m.shared.session; s != nil {
			s.SetBounds(m.canvasBounds())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.screen == ScreenGesture {
			return m.handleGestureMouse(msg)
		}
		return m.handleSensorsMouse(msg)

	case TickMsg:
		return m, tickCmd()

	case sensors.ReadingMsg:
		m.shared.store.Update(msg)
		return m, m.publish(func(p Publisher) error { return p.PublishReading(msg) })

	case location.PlaceMsg:
		m.city = msg.City
		m.state = msg.State
		return m, m.publish(func(p Publisher) error { return p.PublishPlace(msg) })

	case PublishErrMsg:
		m.logger.Warn("telemetry publish failed", "error", msg.Err)
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		// Sources may be blocked in Send until the program exits; main
		// stops them after Run returns.
		return m, tea.Quit

	case "g", "G", "enter":
		if m.screen == ScreenSensors {
			return m.openGesture(), nil
		}

	case "esc", "backspace":
		if m.screen == ScreenGesture {
			return m.closeGesture(), nil
		}
	}

	return m, nil
}

// openGesture starts a fresh gesture session; each visit to the screen is
// its own session with its own log.
func (m AppModel) openGesture() AppModel {
	m.screen = ScreenGesture
	m.drag = drag{}
	m.shared.session = gesture.NewSession(
		gesture.Point{X: config.StartX, Y: config.StartY},
		m.canvasBounds(),
		m.logger.With("screen", "gesture"),
	)
	return m
}

func (m AppModel) closeGesture() AppModel {
	m.screen = ScreenSensors
	m.drag = drag{}
	m.shared.session = nil
	return m
}

func (m AppModel) handleSensorsMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	// menu bar + panel border + content line
	if msg.Y == 2+ui.GestureButtonLine {
		return m.openGesture(), nil
	}
	return m, nil
}

func (m AppModel) handleGestureMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	s := m.shared.session
	if s == nil {
		return m, nil
	}
	before := s.Len()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inCanvas(msg.X, msg.Y) {
			return m, nil
		}
		s.Tap(m.clock.Now())
		m.drag = drag{active: true, col: msg.X, row: msg.Y}

	case tea.MouseActionMotion:
		if !m.drag.active {
			return m, nil
		}
		dcol, drow := msg.X-m.drag.col, msg.Y-m.drag.row
		m.drag.col, m.drag.row = msg.X, msg.Y
		if dcol == 0 && drow == 0 {
			return m, nil
		}
		s.Drag(canvas.CellDelta(dcol, drow))

	case tea.MouseActionRelease:
		if m.drag.active {
			m.drag.active = false
			s.EndDrag()
		}
	}

	return m, m.publishNewEntries(before)
}

// publishNewEntries publishes log entries appended since the log had n
// entries.
func (m AppModel) publishNewEntries(n int) tea.Cmd {
	s := m.shared.session
	if m.shared.publisher == nil || s.Len() == n {
		return nil
	}
	entries := s.Entries()[n:]
	pos := s.Position()
	at := m.clock.Now()
	return m.publish(func(p Publisher) error {
		for _, e := range entries {
			if err := p.PublishGesture(e, pos, at); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m AppModel) publish(fn func(Publisher) error) tea.Cmd {
	pub := m.shared.publisher
	if pub == nil {
		return nil
	}
	return func() tea.Msg {
		if err := fn(pub); err != nil {
			return PublishErrMsg{Err: err}
		}
		return nil
	}
}

// StartSources starts the sensor source and locator. Must be called before
// p.Run().
func (m *AppModel) StartSources(p *tea.Program) error {
	if m.shared.sensors != nil {
		if err := m.shared.sensors.Start(p); err != nil {
			return fmt.Errorf("start sensors: %w", err)
		}
	}
	if m.shared.locator != nil {
		if err := m.shared.locator.Start(p); err != nil {
			return fmt.Errorf("start locator: %w", err)
		}
	}
	return nil
}

// Stop halts background sources and waits for them to finish. Call it after
// the program has exited, never from Update.
func (m AppModel) Stop() {
	if m.shared.sensors != nil {
		m.shared.sensors.Stop()
	}
	if m.shared.locator != nil {
		m.shared.locator.Stop()
	}
}

// Session returns the active gesture session, or nil on the sensors screen.
func (m AppModel) Session() *gesture.Session {
	return m.shared.session
}

// Screen returns the screen being shown.
func (m AppModel) Screen() Screen {
	return m.screen
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
