package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// InZone pins every reading of the wrapped clock to loc, so calendar-date
// arithmetic downstream agrees on what "today" is.
type InZone struct {
	Clock
	loc *time.Location
}

func NewInZone(c Clock, loc *time.Location) *InZone {
	if loc == nil {
		loc = time.UTC
	}
	return &InZone{Clock: c, loc: loc}
}

func (c *InZone) Now() time.Time {
	return c.Clock.Now().In(c.loc)
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
