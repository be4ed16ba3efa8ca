package pattern

import "time"

// TimeReference selects the calendar a timestamp is broken down in.
type TimeReference uint8

const (
	// Local renders wall-clock fields in the process time zone (time.Local)
	Local TimeReference = iota
	// UTC renders wall-clock fields in UTC; %z is always +00:00
	UTC
)

// String returns "local" or "utc"
func (r TimeReference) String() string {
	if r == UTC {
		return "utc"
	}
	return "local"
}

// Breakdown is the calendar/clock decomposition of one timestamp.
// Month and Weekday are 0-based (January and Sunday are 0).
type Breakdown struct {
	Year    int
	Month   int
	Day     int
	Weekday int
	Hour    int
	Minute  int
	Second  int
	// Offset is the zone offset east of UTC in seconds, read from the zone
	// the breakdown was computed in.
	Offset int
}

// BreakDown converts t to calendar fields in the given reference.
func BreakDown(t time.Time, ref TimeReference) Breakdown {
	if ref == UTC {
		t = t.UTC()
	} else {
		t = t.Local()
	}
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	_, offset := t.Zone()
	return Breakdown{
		Year:    year,
		Month:   int(month) - 1,
		Day:     day,
		Weekday: int(t.Weekday()),
		Hour:    hour,
		Minute:  minute,
		Second:  second,
		Offset:  offset,
	}
}

// Fraction returns how many units have elapsed within the current second
// of t, for unit time.Millisecond, time.Microsecond or time.Nanosecond.
// The result is always in [0, time.Second/unit): it is derived from the
// normalized nanosecond-of-second, never from a signed epoch count, so
// timestamps before 1970 or past 2262 cannot produce a negative remainder.
func Fraction(t time.Time, unit time.Duration) int {
	if unit <= 0 {
		unit = time.Nanosecond
	}
	return t.Nanosecond() / int(unit)
}
