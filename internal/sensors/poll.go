package sensors

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// poll calls fn once immediately and then on every tick until ctx is done.
func poll(ctx context.Context, clock clockwork.Clock, interval time.Duration, fn func(now time.Time)) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	fn(clock.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.Chan():
			fn(now)
		}
	}
}
