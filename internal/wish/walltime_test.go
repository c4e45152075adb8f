package wish

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseWallTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "full form", input: "2024-03-10T09:30", want: "2024-03-10T09:30"},
		{name: "bare date reads as midnight", input: "2024-03-10", want: "2024-03-10T00:00"},
		{name: "rfc3339 with zone rejected", input: "2024-03-10T09:30:00Z", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWallTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWallTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseWallTime(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestWallTimeRoundTrip(t *testing.T) {
	// The wall-clock contract: String and ParseWallTime must round-trip the
	// exact clock reading with no zone math involved.
	orig := NewWallTime(2025, time.December, 31, 23, 59)

	parsed, err := ParseWallTime(orig.String())
	if err != nil {
		t.Fatalf("ParseWallTime(%q) error = %v", orig.String(), err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("round trip changed value: %s -> %s", orig, parsed)
	}
}

func TestWallTimeAddMonths_ClampsMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		from WallTime
		n    int
		want string
	}{
		{name: "jan 31 to feb clamps", from: NewWallTime(2025, time.January, 31, 12, 0), n: 1, want: "2025-02-28T12:00"},
		{name: "jan 31 to feb leap year", from: NewWallTime(2024, time.January, 31, 12, 0), n: 1, want: "2024-02-29T12:00"},
		{name: "jan 31 to march keeps 31", from: NewWallTime(2025, time.January, 31, 12, 0), n: 2, want: "2025-03-31T12:00"},
		{name: "mid-month untouched", from: NewWallTime(2025, time.January, 15, 8, 45), n: 1, want: "2025-02-15T08:45"},
		{name: "year boundary", from: NewWallTime(2025, time.December, 31, 0, 0), n: 1, want: "2026-01-31T00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddMonths(tt.n).String(); got != tt.want {
				t.Errorf("%s.AddMonths(%d) = %s, want %s", tt.from, tt.n, got, tt.want)
			}
		})
	}
}

func TestWallTimeAddYears_LeapDay(t *testing.T) {
	feb29 := NewWallTime(2024, time.February, 29, 10, 0)

	if got := feb29.AddYears(1).String(); got != "2025-02-28T10:00" {
		t.Errorf("AddYears(1) = %s, want 2025-02-28T10:00", got)
	}
	if got := feb29.AddYears(4).String(); got != "2028-02-29T10:00" {
		t.Errorf("AddYears(4) = %s, want 2028-02-29T10:00", got)
	}
}

func TestWallTimeCompare(t *testing.T) {
	a := NewWallTime(2024, time.June, 1, 9, 0)
	b := NewWallTime(2024, time.June, 1, 9, 1)

	if !a.Before(b) || b.Before(a) {
		t.Errorf("expected %s < %s", a, b)
	}
	if !a.Equal(a) {
		t.Errorf("expected %s == itself", a)
	}
	if !b.After(a) {
		t.Errorf("expected %s > %s", b, a)
	}
}

// A WallTime must cross JSON boundaries as its canonical string, not as
// an opaque struct: tool responses carry scheduled_time and occurrence
// time fields that a presentation layer reads directly.
func TestWallTimeJSON(t *testing.T) {
	w := ScheduledWish{
		ID:            7,
		RecipientName: "Ana Maria",
		EventType:     EventBirthday,
		EventName:     "Ana's Birthday",
		Scheduled:     NewWallTime(2026, time.March, 10, 9, 0),
		Recurrence:    RecurrenceYearly,
		Status:        StatusScheduled,
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal(ScheduledWish) error = %v", err)
	}
	if !strings.Contains(string(data), `"scheduled_time":"2026-03-10T09:00"`) {
		t.Errorf("scheduled_time not serialized as a wall-clock string: %s", data)
	}

	var back ScheduledWish
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !back.Scheduled.Equal(w.Scheduled) {
		t.Errorf("round trip changed scheduled time: %s -> %s", w.Scheduled, back.Scheduled)
	}

	occ := w.occurrenceAt(w.Scheduled.AddYears(1), true)
	data, err = json.Marshal(occ)
	if err != nil {
		t.Fatalf("Marshal(Occurrence) error = %v", err)
	}
	if !strings.Contains(string(data), `"time":"2027-03-10T09:00"`) {
		t.Errorf("occurrence time not serialized as a wall-clock string: %s", data)
	}
}

func TestWallTimeTextZero(t *testing.T) {
	var zero WallTime
	b, err := zero.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if len(b) != 0 {
		t.Errorf("zero WallTime marshaled to %q, want empty", b)
	}

	var back WallTime
	if err := back.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) error = %v", err)
	}
	if !back.IsZero() {
		t.Errorf("empty text unmarshaled to %s, want zero", back)
	}

	if err := back.UnmarshalText([]byte("not a time")); err == nil {
		t.Error("UnmarshalText accepted garbage")
	}
}

func TestWallTimeIsZero(t *testing.T) {
	var zero WallTime
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if NewWallTime(2024, time.January, 1, 0, 0).IsZero() {
		t.Error("real value should not report IsZero")
	}
}
