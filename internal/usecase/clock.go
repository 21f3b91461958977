package usecase

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock devolve sempre o instante atual em UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
