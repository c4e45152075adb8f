package calendar

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

type fakeLister struct {
	wishes []wish.ScheduledWish
	err    error
}

func (f *fakeLister) ListWishes(ctx context.Context, statusFilter wish.Status) ([]wish.ScheduledWish, error) {
	return f.wishes, f.err
}

func wt(s string) wish.WallTime {
	t, err := wish.ParseWallTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangeMergesAndSorts(t *testing.T) {
	lister := &fakeLister{wishes: []wish.ScheduledWish{
		{
			ID: 1, RecipientName: "Ana", EventType: wish.EventBirthday,
			EventName: "Ana's Birthday", Scheduled: wt("2026-01-08T09:00"),
			Recurrence: wish.RecurrenceWeekly,
		},
		{
			ID: 2, RecipientName: "Ben", EventType: wish.EventCustom,
			EventName: "Standup", Scheduled: wt("2026-01-08T09:00"),
			Recurrence: wish.RecurrenceNone,
		},
		{
			ID: 3, RecipientName: "Zoe", EventType: wish.EventFestival,
			EventName: "Lights", Scheduled: wt("2026-01-03T18:00"),
			Recurrence: wish.RecurrenceNone,
		},
	}}

	view := New(lister, 0)
	got, err := view.Range(context.Background(), wt("2026-01-01T00:00"), wt("2026-01-31T23:59"))
	if err != nil {
		t.Fatalf("Range() = %v", err)
	}

	// Weekly wish 1 lands on Jan 8, 15, 22, 29, interleaved with the
	// one-offs; Jan 3 comes first, then the tie on Jan 8 breaks by key.
	wantKeys := []string{
		"3@2026-01-03T18:00",
		"1@2026-01-08T09:00",
		"2@2026-01-08T09:00",
		"1@2026-01-15T09:00",
		"1@2026-01-22T09:00",
		"1@2026-01-29T09:00",
	}
	if len(got) != len(wantKeys) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(wantKeys), got)
	}
	for i, want := range wantKeys {
		if got[i].Key != want {
			t.Errorf("occurrence[%d].Key = %q, want %q", i, got[i].Key, want)
		}
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Time.Compare(got[j].Time) < 0 }) {
		t.Error("occurrences not in ascending time order")
	}
	if got[0].Virtual {
		t.Error("a base occurrence came back marked virtual")
	}
	if !got[3].Virtual {
		t.Error("a projected repetition came back unmarked")
	}
}

func TestRangeStoreError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db locked")}
	view := New(lister, 0)
	if _, err := view.Range(context.Background(), wt("2026-01-01T00:00"), wt("2026-01-31T23:59")); err == nil {
		t.Fatal("Range() = nil, want error")
	}
}

func TestRangeTruncationDoesNotFail(t *testing.T) {
	// A daily wish over a long window with a tiny step ceiling truncates;
	// the render still succeeds with the occurrences reached so far.
	lister := &fakeLister{wishes: []wish.ScheduledWish{{
		ID: 1, RecipientName: "Ana", EventType: wish.EventCustom,
		EventName: "Checkin", Scheduled: wt("2026-01-01T08:00"),
		Recurrence: wish.RecurrenceDaily,
	}}}

	view := New(lister, 5)
	got, err := view.Range(context.Background(), wt("2026-01-01T00:00"), wt("2026-12-31T23:59"))
	if err != nil {
		t.Fatalf("Range() = %v", err)
	}
	if len(got) != 6 { // base plus five advances
		t.Errorf("len = %d, want 6", len(got))
	}
}

func TestMonth(t *testing.T) {
	lister := &fakeLister{wishes: []wish.ScheduledWish{{
		ID: 1, RecipientName: "Ana", EventType: wish.EventBirthday,
		EventName: "Ana's Birthday", Scheduled: wt("2024-03-10T09:00"),
		Recurrence: wish.RecurrenceYearly,
	}}}

	view := New(lister, 0)
	got, err := view.Month(context.Background(), 2026, time.March)
	if err != nil {
		t.Fatalf("Month() = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Time.String() != "2026-03-10T09:00" || !got[0].Virtual {
		t.Errorf("got %+v", got[0])
	}

	empty, err := view.Month(context.Background(), 2026, time.February)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("February returned %+v", empty)
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		start string
		end   string
	}{
		{2026, time.January, "2026-01-01T00:00", "2026-01-31T23:59"},
		{2026, time.February, "2026-02-01T00:00", "2026-02-28T23:59"},
		{2024, time.February, "2024-02-01T00:00", "2024-02-29T23:59"},
		{2026, time.December, "2026-12-01T00:00", "2026-12-31T23:59"},
	}

	for _, tt := range tests {
		start, end := MonthRange(tt.year, tt.month)
		if start.String() != tt.start || end.String() != tt.end {
			t.Errorf("MonthRange(%d, %s) = [%s, %s], want [%s, %s]",
				tt.year, tt.month, start, end, tt.start, tt.end)
		}
	}
}
