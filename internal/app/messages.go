package app

import "time"

// TickMsg refreshes time-dependent parts of the view.
type TickMsg time.Time

// PublishErrMsg reports a failed telemetry publish.
type PublishErrMsg struct {
	Err error
}
