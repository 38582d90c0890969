// Package clock provides an injectable time source so that services
// classifying appointments against "now" stay deterministic in tests.
package clock

import "time"

// Clock is the single "now" provider consumed by the domain services.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// At is a convenience constructor for tests: At("2025-06-01", "10:00")
// panics on unparsable input, which is acceptable in test setup.
func At(date, hhmm string) Fixed {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		panic(err)
	}
	return Fixed{T: t}
}

// Today formats a clock's current date as ISO "2006-01-02".
func Today(c Clock) string {
	return c.Now().Format("2006-01-02")
}
