package usecase

import (
	"time"
)

var baseTime = time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)

// clock is a settable time source for usecases under test.
type clock struct {
	t time.Time
}

func newClock() *clock {
	return &clock{t: baseTime}
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
