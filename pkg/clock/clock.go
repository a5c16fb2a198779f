// Package clock drives control ticks at a fixed cadence.
package clock

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Run calls tick immediately and then every interval until ctx is done.
// A tick always runs to completion before the next one starts.
func Run(ctx context.Context, interval time.Duration, tick func()) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Timed runs ticks for duration and then calls stop. stop is also called when
// ctx is cancelled first, in which case ctx's error is returned.
func Timed(ctx context.Context, interval, duration time.Duration, tick, stop func()) error {
	runCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	err := Run(runCtx, interval, tick)
	stop()

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil
	}
	return err
}
