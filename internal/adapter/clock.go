package adapter

import "time"

// Clock is the time source for visibility timeouts, deferral windows and
// head caching. Tests drive it with mocks.MockClock.
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	After(d time.Duration) <-chan time.Time
}

type wallClock struct{}

// NewClock returns the wall clock
func NewClock() Clock {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
