package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "wishbook.db"), filepath.Join(dir, "media"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testWish() wish.ScheduledWish {
	return wish.ScheduledWish{
		RecipientName: "Ana Maria",
		Platform:      wish.PlatformNone,
		EventType:     wish.EventBirthday,
		EventName:     "Ana's Birthday",
		Scheduled:     wish.NewWallTime(2026, time.March, 10, 9, 0),
		Recurrence:    wish.RecurrenceYearly,
		Status:        wish.StatusDraft,
	}
}

func TestCreateAndGetWish(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateWish(ctx, testWish())
	if err != nil {
		t.Fatalf("CreateWish() = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateWish() assigned no id")
	}
	if created.Status != wish.StatusScheduled {
		t.Errorf("Status = %q, want scheduled after create", created.Status)
	}

	got, err := st.GetWish(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetWish() = %v", err)
	}
	if got.RecipientName != "Ana Maria" || got.EventName != "Ana's Birthday" {
		t.Errorf("GetWish() = %+v", got)
	}
	if got.Recurrence != wish.RecurrenceYearly {
		t.Errorf("Recurrence = %q, want yearly", got.Recurrence)
	}
}

func TestCreateWishValidates(t *testing.T) {
	st := newTestStore(t)

	w := testWish()
	w.EventName = "   "
	if _, err := st.CreateWish(context.Background(), w); err == nil {
		t.Error("CreateWish accepted a whitespace-only event name")
	}

	w = testWish()
	w.Scheduled = wish.WallTime{}
	if _, err := st.CreateWish(context.Background(), w); err == nil {
		t.Error("CreateWish accepted a zero scheduled time")
	}

	w = testWish()
	w.Platform = wish.PlatformEmail
	w.RecipientContact = "not-an-address"
	if _, err := st.CreateWish(context.Background(), w); err == nil {
		t.Error("CreateWish accepted a malformed email address")
	}
}

// The scheduled time is a wall-clock string end to end: what goes in is
// byte for byte what comes out, whatever the host timezone is.
func TestWallClockRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	times := []string{
		"2026-03-10T09:00",
		"2025-12-31T23:59",
		"2024-02-29T00:00",
	}
	for _, s := range times {
		t.Run(s, func(t *testing.T) {
			w := testWish()
			var err error
			w.Scheduled, err = wish.ParseWallTime(s)
			if err != nil {
				t.Fatal(err)
			}

			created, err := st.CreateWish(ctx, w)
			if err != nil {
				t.Fatalf("CreateWish() = %v", err)
			}
			got, err := st.GetWish(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetWish() = %v", err)
			}
			if got.Scheduled.String() != s {
				t.Errorf("round trip %q -> %q", s, got.Scheduled)
			}
		})
	}
}

// Rows written by older versions may hold ordinal or day-interval
// recurrence encodings; reading them yields canonical tokens.
func TestScanNormalizesLegacyRecurrence(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		column string
		want   wish.Recurrence
	}{
		{"3", wish.RecurrenceMonthly},
		{"365", wish.RecurrenceYearly},
		{"WEEKLY", wish.RecurrenceWeekly},
		{" daily ", wish.RecurrenceDaily},
		{"", wish.RecurrenceNone},
		{"fortnightly", wish.RecurrenceNone},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			now := time.Now().UTC().Format(time.RFC3339)
			res, err := st.db.ExecContext(ctx, `
				INSERT INTO scheduled_wishes (recipient_name, event_type, event_name,
					scheduled_time, recurrence, status, created_at, updated_at)
				VALUES ('Ana Maria', 'birthday', 'Legacy row', '2026-03-10T09:00', ?, 'scheduled', ?, ?)
			`, tt.column, now, now)
			if err != nil {
				t.Fatal(err)
			}
			id, _ := res.LastInsertId()

			got, err := st.GetWish(ctx, id)
			if err != nil {
				t.Fatalf("GetWish() = %v", err)
			}
			if got.Recurrence != tt.want {
				t.Errorf("Recurrence = %q, want %q", got.Recurrence, tt.want)
			}
		})
	}
}

func TestListWishesOrderAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	later := testWish()
	later.EventName = "Later event"
	later.Scheduled = wish.NewWallTime(2026, time.June, 1, 12, 0)
	earlier := testWish()
	earlier.EventName = "Earlier event"
	earlier.Scheduled = wish.NewWallTime(2026, time.January, 1, 12, 0)

	if _, err := st.CreateWish(ctx, later); err != nil {
		t.Fatal(err)
	}
	created, err := st.CreateWish(ctx, earlier)
	if err != nil {
		t.Fatal(err)
	}

	all, err := st.ListWishes(ctx, "")
	if err != nil {
		t.Fatalf("ListWishes() = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].EventName != "Earlier event" {
		t.Errorf("first row is %q, want scheduled-time order", all[0].EventName)
	}

	if err := st.UpdateStatus(ctx, created.ID, wish.StatusSent); err != nil {
		t.Fatalf("UpdateStatus() = %v", err)
	}
	sent, err := st.ListWishes(ctx, wish.StatusSent)
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 1 || sent[0].ID != created.ID {
		t.Errorf("status filter returned %+v", sent)
	}
}

func TestUpdateStatusMissing(t *testing.T) {
	st := newTestStore(t)
	if err := st.UpdateStatus(context.Background(), 42, wish.StatusSent); err == nil {
		t.Error("UpdateStatus on a missing wish = nil, want error")
	}
}

func TestDeleteWish(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateWish(ctx, testWish())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteWish(ctx, created.ID); err != nil {
		t.Fatalf("DeleteWish() = %v", err)
	}
	if _, err := st.GetWish(ctx, created.ID); err == nil {
		t.Error("GetWish after delete = nil, want error")
	}
	if err := st.DeleteWish(ctx, created.ID); err == nil {
		t.Error("second DeleteWish = nil, want error")
	}
}

func TestContacts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.AddContact(ctx, wish.Contact{Name: "Zoe", Platform: wish.PlatformEmail, Address: "zoe@example.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddContact(ctx, wish.Contact{Name: "Ana", Platform: wish.PlatformNone}); err != nil {
		t.Fatal(err)
	}

	contacts, err := st.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts() = %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("len = %d, want 2", len(contacts))
	}
	if contacts[0].Name != "Ana" {
		t.Errorf("first contact %q, want name order", contacts[0].Name)
	}
	if contacts[1].Address != "zoe@example.com" {
		t.Errorf("Address = %q", contacts[1].Address)
	}
}

func TestSaveAndResolveMedia(t *testing.T) {
	st := newTestStore(t)

	src := filepath.Join(t.TempDir(), "card.png")
	if err := os.WriteFile(src, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	ref, err := st.SaveMedia(src)
	if err != nil {
		t.Fatalf("SaveMedia() = %v", err)
	}
	if filepath.Ext(ref) != ".png" {
		t.Errorf("ref %q lost the extension", ref)
	}

	p, err := st.MediaPath(ref)
	if err != nil {
		t.Fatalf("MediaPath() = %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png bytes" {
		t.Errorf("media content = %q", data)
	}

	if _, err := st.MediaPath("../escape.png"); err == nil {
		t.Error("MediaPath accepted a ref that escapes the media dir")
	}
	if _, err := st.MediaPath("no-such-ref.png"); err == nil {
		t.Error("MediaPath resolved a missing ref")
	}
}
