package wish

import "fmt"

// DefaultMaxProjectionSteps caps how many times the projector will advance
// the recurrence cursor for a single wish, regardless of window size. It is
// a safety valve against a corrupted base date or recurrence value, not a
// tuning knob; callers may override it through configuration.
const DefaultMaxProjectionSteps = 1000

// Occurrence is one concrete calendar instance of a wish inside a
// requested window. Virtual occurrences are produced purely for rendering
// and are never persisted.
type Occurrence struct {
	WishID int64 `json:"wish_id"`

	// Key deterministically identifies this instance ("<id>@<walltime>")
	// so a presentation layer can key it stably across renders.
	Key string `json:"key"`

	Time    WallTime `json:"time"`
	Virtual bool     `json:"virtual"`

	RecipientName string    `json:"recipient_name"`
	EventType     EventType `json:"event_type"`
	EventName     string    `json:"event_name"`
}

// ProjectionResult carries the in-window occurrences of one wish, in
// ascending time order, and whether the step ceiling cut the expansion
// short. Truncation is a data-quality signal for the caller to log, never
// an error.
type ProjectionResult struct {
	Occurrences []Occurrence
	Truncated   bool
}

// Project expands a single stored wish into every occurrence falling
// inside the inclusive window [start, end]. It is a pure function of its
// inputs: no side effects, safe to call repeatedly and concurrently.
//
// The base time itself is emitted (non-virtual) when it is in-window; each
// later repetition is a virtual occurrence. Cursor advancement uses
// calendar-aware WallTime arithmetic, so month and year steps respect
// variable month lengths via the documented clamp-to-end-of-month policy.
// maxSteps <= 0 selects DefaultMaxProjectionSteps.
func Project(w ScheduledWish, start, end WallTime, maxSteps int) ProjectionResult {
	var res ProjectionResult
	if end.Before(start) {
		return res
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxProjectionSteps
	}

	cursor := w.Scheduled
	if inWindow(cursor, start, end) {
		res.Occurrences = append(res.Occurrences, w.occurrenceAt(cursor, false))
	}

	rec, _ := NormalizeRecurrence(w.Recurrence)
	if rec == RecurrenceNone {
		return res
	}

	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			res.Truncated = true
			return res
		}
		cursor = advance(cursor, rec)
		if cursor.After(end) {
			return res
		}
		if inWindow(cursor, start, end) {
			res.Occurrences = append(res.Occurrences, w.occurrenceAt(cursor, true))
		}
	}
}

func (w ScheduledWish) occurrenceAt(t WallTime, virtual bool) Occurrence {
	return Occurrence{
		WishID:        w.ID,
		Key:           OccurrenceKey(w.ID, t),
		Time:          t,
		Virtual:       virtual,
		RecipientName: w.RecipientName,
		EventType:     w.EventType,
		EventName:     w.EventName,
	}
}

// OccurrenceKey derives the stable per-instance identifier for a wish
// occurring at t.
func OccurrenceKey(wishID int64, t WallTime) string {
	return fmt.Sprintf("%d@%s", wishID, t)
}

func advance(t WallTime, rec Recurrence) WallTime {
	switch rec {
	case RecurrenceDaily:
		return t.AddDays(1)
	case RecurrenceWeekly:
		return t.AddDays(7)
	case RecurrenceMonthly:
		return t.AddMonths(1)
	case RecurrenceYearly:
		return t.AddYears(1)
	}
	return t
}

func inWindow(t, start, end WallTime) bool {
	return !t.Before(start) && !t.After(end)
}
