package chrono

import "time"

// API abstracts the wall clock so output that embeds a timestamp (the HTML
// report header) stays deterministic under test.
type API interface {
	Now() time.Time
}

// StandardImpl reads the system clock in local time.
type StandardImpl struct{}

func (StandardImpl) Now() time.Time {
	return time.Now()
}

// FixedImpl always reports the same instant.
type FixedImpl struct {
	Time time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.Time
}
