package ratelimit

import (
	"context"
	"time"
)

// DefaultInterval is the floor between consecutive request dispatches
// against the osu! API. The API tolerates roughly one request per second
// sustained; 1.5s keeps the tracker well clear of that.
const DefaultInterval = 1500 * time.Millisecond

// Limiter enforces a minimum interval between dispatches. The interval is
// measured from the start of one dispatch to the start of the next, not
// from completion, and it advances on failed requests too: Wait stamps the
// dispatch time when it returns, regardless of what the caller does next.
//
// A Limiter is owned by a single client instance and is not safe for
// concurrent use; passes are serialized by construction.
type Limiter struct {
	interval time.Duration
	last     time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Limiter with the given minimum interval.
// A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the minimum interval since the previous dispatch has
// elapsed, then records the new dispatch time. The first call never blocks.
// It returns early with the context's error if ctx is cancelled while
// waiting; in that case the dispatch time is not advanced.
func (l *Limiter) Wait(ctx context.Context) error {
	if !l.last.IsZero() {
		elapsed := l.now().Sub(l.last)
		if elapsed < l.interval {
			if err := l.sleep(ctx, l.interval-elapsed); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
