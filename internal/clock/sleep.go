// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"math/rand/v2"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jittered spreads d by up to ±fraction of its length so that several pollers
// started together do not hit the same upstream at the same instant.
// fraction is clamped to [0, 1].
func Jittered(d time.Duration, fraction float64) time.Duration {
	if d <= 0 || fraction <= 0 {
		return d
	}
	if fraction > 1 {
		fraction = 1
	}
	spread := float64(d) * fraction
	offset := (rand.Float64()*2 - 1) * spread
	return d + time.Duration(offset)
}
