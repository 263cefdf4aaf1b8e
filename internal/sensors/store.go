package sensors

import (
	"sync"
	"time"
)

// Snapshot is a copy of the latest sensor state.
type Snapshot struct {
	Temperature     float64
	Pressure        float64
	HasTemp         bool
	HasPressure     bool
	Updated         time.Time
	TempHistory     []float64
	PressureHistory []float64
}

// Store holds the latest temperature and pressure plus a short history of
// each. Unreported values read as 0.
type Store struct {
	mu       sync.RWMutex
	latest   map[Kind]float64
	updated  time.Time
	history  map[Kind]*History
	capacity int
}

// NewStore creates a store keeping capacity readings per sensor.
func NewStore(capacity int) *Store {
	return &Store{
		latest:   make(map[Kind]float64),
		history:  make(map[Kind]*History),
		capacity: capacity,
	}
}

// Update records a reading.
func (s *Store) Update(msg ReadingMsg) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[msg.Kind] = msg.Value
	if msg.At.After(s.updated) {
		s.updated = msg.At
	}

	h, ok := s.history[msg.Kind]
	if !ok {
		h = NewHistory(s.capacity)
		s.history[msg.Kind] = h
	}
	h.Push(msg.Value)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Updated: s.updated}
	snap.Temperature, snap.HasTemp = s.latest[KindTemperature]
	snap.Pressure, snap.HasPressure = s.latest[KindPressure]
	if h, ok := s.history[KindTemperature]; ok {
		snap.TempHistory = h.Values()
	}
	if h, ok := s.history[KindPressure]; ok {
		snap.PressureHistory = h.Values()
	}
	return snap
}
