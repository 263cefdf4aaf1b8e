package gesture

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DoubleTapWindow is the maximum gap between two presses that counts as a
// double tap. A gap of exactly DoubleTapWindow does not.
const DoubleTapWindow = 500 * time.Millisecond

// DoubleTapEntry is appended to the log on every double tap.
const DoubleTapEntry = "You double tapped."

// MoveEntry formats the log entry for a classified drag.
func MoveEntry(d Direction) string {
	return fmt.Sprintf("You moved the object to the %s.", d)
}

// Session is the state of one gesture screen: ball position, drag flag,
// last tap time and the gesture log. It is not safe for concurrent use; the
// UI loop owns it.
type Session struct {
	pos      Point
	bounds   Bounds
	dragging bool
	lastTap  time.Time
	lastDir  Direction
	entries  []string
	logger   *slog.Logger
}

// NewSession creates a session with the ball at start, clamped to b.
func NewSession(start Point, b Bounds, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		pos:    Clamp(start, b),
		bounds: b,
		logger: logger,
	}
}

// Position returns the current ball position.
func (s *Session) Position() Point { return s.pos }

// Bounds returns the current movement region.
func (s *Session) Bounds() Bounds { return s.bounds }

// LastDirection returns the label of the most recent classified drag.
func (s *Session) LastDirection() Direction { return s.lastDir }

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// SetBounds replaces the movement region (e.g. on resize) and pulls the
// ball back inside it.
func (s *Session) SetBounds(b Bounds) {
	s.bounds = b
	s.pos = Clamp(s.pos, b)
}

// Drag applies one drag sample and logs the move when it classifies.
func (s *Session) Drag(dx, dy float64) Direction {
	s.dragging = true

	pos, dir := Step(s.pos, dx, dy, s.bounds)
	s.pos = pos

	s.logger.Debug("pan offset", "dx", dx, "dy", dy)
	s.logger.Debug("direction", "direction", string(dir), "x", pos.X, "y", pos.Y)

	if dir != DirNone {
		s.lastDir = dir
		s.append(MoveEntry(dir))
	}
	return dir
}

// EndDrag marks the current drag as finished.
func (s *Session) EndDrag() {
	s.dragging = false
}

// Tap records a pointer-down at the given time and reports whether it
// completed a double tap.
func (s *Session) Tap(at time.Time) bool {
	double := false
	if !s.lastTap.IsZero() {
		gap := at.Sub(s.lastTap)
		double = gap >= 0 && gap < DoubleTapWindow
	}
	s.lastTap = at

	if double {
		s.append(DoubleTapEntry)
	}
	return double
}

func (s *Session) append(entry string) {
	s.entries = append(s.entries, entry)
	s.logger.Debug("gesture log updated", "entry", entry, "size", len(s.entries))
}

// Len returns the number of log entries.
func (s *Session) Len() int { return len(s.entries) }

// Entries returns the gesture log in insertion order.
func (s *Session) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Recent returns up to n log entries, most recent first. n <= 0 means all.
func (s *Session) Recent(n int) []string {
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]string, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out
}
