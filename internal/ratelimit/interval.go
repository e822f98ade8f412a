// Package ratelimit paces calls to external APIs.
package ratelimit

import (
	"context"
	"time"
)

// Interval enforces a fixed minimum delay between successive calls.
// The first Wait returns immediately; each later Wait blocks until the
// delay since the previous call has elapsed or the context ends.
// Waiting is timer-based, never busy.
type Interval struct {
	delay time.Duration
	last  time.Time
	now   func() time.Time
}

// NewInterval creates a pacer with the given minimum delay between calls.
func NewInterval(delay time.Duration) *Interval {
	return &Interval{delay: delay, now: time.Now}
}

// Wait blocks until the minimum delay since the previous Wait has
// elapsed. It returns the context error if the context ends first.
func (i *Interval) Wait(ctx context.Context) error {
	if i.delay > 0 && !i.last.IsZero() {
		remaining := i.delay - i.now().Sub(i.last)
		if remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	i.last = i.now()
	return ctx.Err()
}
