package wish

import (
	"fmt"
	"time"
)

// WallTimeLayout is the canonical textual form of a WallTime. There is
// deliberately no zone designator in it.
const WallTimeLayout = "2006-01-02T15:04"

// WallTime is a local wall-clock reading: the literal date and time the
// user chose, with no timezone attached. It is never converted across
// zones; persisting and re-reading a WallTime yields the same clock value
// regardless of where the process runs.
type WallTime struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
}

// NewWallTime builds a WallTime from calendar fields. Out-of-range fields
// are normalized the same way time.Date normalizes them (e.g. Feb 30
// becomes Mar 1 or 2).
func NewWallTime(year int, month time.Month, day, hour, minute int) WallTime {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return fromTime(t)
}

// ParseWallTime parses the canonical "2006-01-02T15:04" form. A bare date
// "2006-01-02" is accepted and reads as midnight.
func ParseWallTime(s string) (WallTime, error) {
	if t, err := time.Parse(WallTimeLayout, s); err == nil {
		return fromTime(t), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return WallTime{}, fmt.Errorf("invalid wall-clock time %q (use %s)", s, WallTimeLayout)
	}
	return fromTime(t), nil
}

// WallTimeNow captures the current local clock reading as a WallTime.
// This is the only place the host clock enters the wall-clock world.
func WallTimeNow() WallTime {
	return fromTime(time.Now())
}

func fromTime(t time.Time) WallTime {
	return WallTime{
		year:   t.Year(),
		month:  t.Month(),
		day:    t.Day(),
		hour:   t.Hour(),
		minute: t.Minute(),
	}
}

// ref returns the wall-clock fields pinned to UTC purely as an arithmetic
// scratch value. The location carries no meaning and never leaks out.
func (w WallTime) ref() time.Time {
	return time.Date(w.year, w.month, w.day, w.hour, w.minute, 0, 0, time.UTC)
}

// IsZero reports whether w is the zero WallTime (no value entered).
func (w WallTime) IsZero() bool {
	return w == WallTime{}
}

func (w WallTime) Year() int         { return w.year }
func (w WallTime) Month() time.Month { return w.month }
func (w WallTime) Day() int          { return w.day }
func (w WallTime) Hour() int         { return w.hour }
func (w WallTime) Minute() int       { return w.minute }

// String renders the canonical persistable form.
func (w WallTime) String() string {
	return w.ref().Format(WallTimeLayout)
}

// MarshalText emits the canonical layout, so a WallTime serializes as a
// plain "2006-01-02T15:04" string in JSON rather than an opaque struct.
// The zero WallTime marshals to an empty string.
func (w WallTime) MarshalText() ([]byte, error) {
	if w.IsZero() {
		return nil, nil
	}
	return []byte(w.String()), nil
}

// UnmarshalText parses the canonical layout; an empty input yields the
// zero WallTime.
func (w *WallTime) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*w = WallTime{}
		return nil
	}
	t, err := ParseWallTime(string(b))
	if err != nil {
		return err
	}
	*w = t
	return nil
}

// Date returns the same calendar day with the clock zeroed.
func (w WallTime) Date() WallTime {
	return WallTime{year: w.year, month: w.month, day: w.day}
}

// Compare orders two wall-clock readings: -1 if w is earlier than o,
// 0 if equal, +1 if later.
func (w WallTime) Compare(o WallTime) int {
	return w.ref().Compare(o.ref())
}

func (w WallTime) Before(o WallTime) bool { return w.Compare(o) < 0 }
func (w WallTime) After(o WallTime) bool  { return w.Compare(o) > 0 }
func (w WallTime) Equal(o WallTime) bool  { return w.Compare(o) == 0 }

// AddDays advances by whole calendar days.
func (w WallTime) AddDays(n int) WallTime {
	return fromTime(w.ref().AddDate(0, 0, n))
}

// AddMonths advances by whole calendar months, clamping the day of month
// to the length of the target month (Jan 31 + 1 month = Feb 28 or 29).
// This is the documented month-end policy for recurring events; the
// rollover behavior of time.AddDate is intentionally not used here.
func (w WallTime) AddMonths(n int) WallTime {
	// First day of the target month, then clamp the day.
	first := time.Date(w.year, w.month, 1, w.hour, w.minute, 0, 0, time.UTC).AddDate(0, n, 0)
	day := w.day
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return WallTime{year: first.Year(), month: first.Month(), day: day, hour: w.hour, minute: w.minute}
}

// AddYears advances by whole calendar years with the same clamping rule,
// so Feb 29 lands on Feb 28 in non-leap years.
func (w WallTime) AddYears(n int) WallTime {
	return w.AddMonths(12 * n)
}

// AddMinutes advances the clock by n minutes, rolling dates as needed.
func (w WallTime) AddMinutes(n int) WallTime {
	return fromTime(w.ref().Add(time.Duration(n) * time.Minute))
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
