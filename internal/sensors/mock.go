package sensors

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
)

// MockSource generates drifting temperature and pressure for demo mode.
type MockSource struct {
	baseTemp     float64
	basePressure float64
	interval     time.Duration
	clock        clockwork.Clock
	rng          *rand.Rand

	program Sender
	cancel  context.CancelFunc
	done    chan struct{}
	t       float64
}

// NewMockSource creates a mock source centred on the given values.
func NewMockSource(baseTemp, basePressure float64, interval time.Duration, clock clockwork.Clock, seed int64) *MockSource {
	return &MockSource{
		baseTemp:     baseTemp,
		basePressure: basePressure,
		interval:     interval,
		clock:        clock,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Start begins emitting readings.
func (s *MockSource) Start(p Sender) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		poll(ctx, s.clock, s.interval, s.emit)
	}()
	return nil
}

func (s *MockSource) emit(now time.Time) {
	s.t += s.interval.Seconds()

	// Slow sinusoidal drift + noise
	temp := s.baseTemp + 1.5*math.Sin(s.t*0.05) + (s.rng.Float64()-0.5)*0.2
	pressure := s.basePressure + 2.0*math.Sin(s.t*0.01+1) + (s.rng.Float64()-0.5)*0.3

	s.program.Send(ReadingMsg{Kind: KindTemperature, Value: round(temp, 1), At: now, Source: "demo"})
	s.program.Send(ReadingMsg{Kind: KindPressure, Value: round(pressure, 2), At: now, Source: "demo"})
}

// Stop halts the mock source.
func (s *MockSource) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
