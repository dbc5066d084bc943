package clock

import "time"

// Clock supplies the current instant. Services read it once per request so
// every time comparison within one call sees the same snapshot.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock frozen at t. Intended for tests.
func Fixed(t time.Time) Clock {
	return fixedClock(t)
}

type fixedClock time.Time

func (f fixedClock) Now() time.Time {
	return time.Time(f)
}
