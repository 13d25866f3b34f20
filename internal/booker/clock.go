package booker

import (
	"context"
	"time"
)

// Clock is the scheduler's time source. Injecting it lets tests drive the
// transition logic without waiting for real midnight.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type fixedClock struct {
	systemClock
	now time.Time
}

// FixedClock pins Now to a single instant (the fake_date override) while
// keeping real sleeps.
func FixedClock(now time.Time) Clock { return fixedClock{now: now} }

func (c fixedClock) Now() time.Time { return c.now }
