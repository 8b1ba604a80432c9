// Package clock abstracts the current time so that date arithmetic on loans
// can be exercised against fixed points in time.
package clock

import "time"

// Clock supplies the current instant and the current calendar date.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// Real is a Clock backed by the system time in UTC.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Today returns the current date truncated to UTC midnight.
func (Real) Today() time.Time {
	return Midnight(time.Now().UTC())
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

// NewFixed returns a Fixed clock pinned to the given instant.
func NewFixed(instant time.Time) Fixed {
	return Fixed{Instant: instant}
}

func (f Fixed) Now() time.Time { return f.Instant }

func (f Fixed) Today() time.Time { return Midnight(f.Instant) }

// Midnight truncates an instant to UTC midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
