package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PlaceMsg is sent once the playground's city and state are known.
type PlaceMsg struct {
	City  string
	State string
	Fix   Fix
}

// ErrNoAddress is returned when the geocoder knows nothing about a fix.
var ErrNoAddress = errors.New("no address for position")

// Sender is the subset of *tea.Program the locator needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Locator resolves the current position to a place once and reports it.
type Locator struct {
	fixes    FixSource
	geocoder Geocoder
	timeout  time.Duration
	unknown  string
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewLocator creates a locator. Fields the geocoder leaves blank are
// reported as unknown.
func NewLocator(fixes FixSource, geocoder Geocoder, timeout time.Duration, unknown string, logger *slog.Logger) *Locator {
	return &Locator{
		fixes:    fixes,
		geocoder: geocoder,
		timeout:  timeout,
		unknown:  unknown,
		logger:   logger,
	}
}

// Resolve waits for a fix and reverse geocodes it.
func (l *Locator) Resolve(ctx context.Context) (PlaceMsg, error) {
	fix, err := l.fixes.Fix(ctx)
	if err != nil {
		return PlaceMsg{}, fmt.Errorf("position fix: %w", err)
	}

	gctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	place, err := l.geocoder.ReverseGeocode(gctx, fix.Latitude, fix.Longitude)
	if err != nil {
		return PlaceMsg{}, fmt.Errorf("reverse geocode: %w", err)
	}
	if place.Empty() {
		return PlaceMsg{}, ErrNoAddress
	}

	msg := PlaceMsg{City: place.City, State: place.State, Fix: fix}
	if msg.City == "" {
		msg.City = l.unknown
	}
	if msg.State == "" {
		msg.State = l.unknown
	}
	return msg, nil
}

// Start resolves in the background and sends a PlaceMsg on success. Failures
// are logged and leave the UI showing its pending placeholder.
func (l *Locator) Start(p Sender) error {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		msg, err := l.Resolve(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				l.logger.Error("error fetching location", "error", err)
			}
			return
		}
		l.logger.Info("location resolved", "city", msg.City, "state", msg.State)
		p.Send(msg)
	}()
	return nil
}

// Stop cancels a lookup in progress.
func (l *Locator) Stop() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
		l.cancel = nil
	}
}
