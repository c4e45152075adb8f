package wish

import (
	"strconv"
	"strings"
)

// Recurrence is the canonical encoding of how often a wish repeats.
// It is the only recurrence representation the projector accepts; every
// legacy encoding is mapped onto it by NormalizeRecurrence at the system
// boundary.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Legacy integer encodings found in older records. Ordinals 1-4 and
// day-intervals {1, 7, 30, 365} are disjoint, so a single table covers both.
var legacyIntRecurrence = map[int64]Recurrence{
	1:   RecurrenceDaily, // ordinal 1 and 1-day interval agree
	2:   RecurrenceWeekly,
	3:   RecurrenceMonthly,
	4:   RecurrenceYearly,
	7:   RecurrenceWeekly,
	30:  RecurrenceMonthly,
	365: RecurrenceYearly,
}

// NormalizeRecurrence maps any accepted historical encoding onto the
// canonical Recurrence. Accepted inputs:
//
//   - canonical tokens: "none", "daily", "weekly", "monthly", "yearly"
//     (case-insensitive, surrounding whitespace ignored)
//   - legacy ordinal integers 1-4 (daily, weekly, monthly, yearly)
//   - legacy interval-in-days integers 1, 7, 30, 365
//   - either integer form as a decimal string (older TEXT columns)
//
// Anything else degrades to RecurrenceNone with ok=false. An unrecognized
// recurrence must never be treated as "repeat forever", so the fallback is
// always the non-repeating value. The function itself never logs; callers
// at the store and tool boundaries surface the degradation.
func NormalizeRecurrence(raw any) (Recurrence, bool) {
	switch v := raw.(type) {
	case Recurrence:
		return normalizeToken(string(v))
	case string:
		return normalizeToken(v)
	case int:
		return normalizeInt(int64(v))
	case int32:
		return normalizeInt(int64(v))
	case int64:
		return normalizeInt(v)
	case float64:
		// JSON numbers arrive as float64; only whole values can match.
		if v == float64(int64(v)) {
			return normalizeInt(int64(v))
		}
	}
	return RecurrenceNone, false
}

func normalizeToken(s string) (Recurrence, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return Recurrence(s), true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return normalizeInt(n)
	}
	if s == "" {
		// Absent is not a data-quality problem, just a one-off wish.
		return RecurrenceNone, true
	}
	return RecurrenceNone, false
}

func normalizeInt(n int64) (Recurrence, bool) {
	if r, ok := legacyIntRecurrence[n]; ok {
		return r, true
	}
	if n == 0 {
		return RecurrenceNone, true
	}
	return RecurrenceNone, false
}

// Valid reports whether r is one of the five canonical values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}
