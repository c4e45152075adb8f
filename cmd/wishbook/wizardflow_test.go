package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/ui"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wizard"
)

type failingStore struct {
	err error
}

func (s *failingStore) CreateWish(ctx context.Context, w wish.ScheduledWish) (*wish.ScheduledWish, error) {
	return nil, s.err
}

// feedStdin replaces os.Stdin with a pipe carrying the given input, so the
// selector takes its non-TTY numbered-input path.
func feedStdin(t *testing.T, input string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString(input); err != nil {
		t.Fatal(err)
	}
	w.Close()

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		r.Close()
	})
}

func previewFlow(t *testing.T, st wizard.Submitter) *flow {
	t.Helper()
	wz := wizard.New(nil, st)

	d := wz.Draft()
	d.RecipientName = "Ana Maria"
	d.Platform = wish.PlatformNone
	if err := wz.Apply(wizard.ActionNext); err != nil {
		t.Fatal(err)
	}
	d.EventType = wish.EventBirthday
	d.EventName = "Ana's Birthday"
	d.Scheduled = wish.NewWallTime(2026, time.March, 10, 9, 0)
	if err := wz.Apply(wizard.ActionNext); err != nil {
		t.Fatal(err)
	}
	wz.SetContent("Happy birthday!")
	if err := wz.Apply(wizard.ActionNext); err != nil {
		t.Fatal(err)
	}

	return &flow{
		cfg:       &config.Config{},
		formatter: ui.NewFormatter(false),
		spinner:   ui.NewSpinner(false),
		wz:        wz,
	}
}

// A transient store failure on Submit must keep the session alive on the
// Preview step with the draft intact, so the user can retry.
func TestStepPreviewStoreFailureIsRetryable(t *testing.T) {
	f := previewFlow(t, &failingStore{err: errors.New("disk full")})
	feedStdin(t, "1\n") // choose Submit

	done, err := f.stepPreview()
	if err != nil {
		t.Fatalf("stepPreview() error = %v, want the failure absorbed", err)
	}
	if done {
		t.Fatal("stepPreview() reported done after a failed submit")
	}
	if f.wz.Step() != wizard.StepPreview {
		t.Errorf("Step() = %v, want StepPreview", f.wz.Step())
	}
	if d := f.wz.Draft(); d.EventName != "Ana's Birthday" || d.Content != "Happy birthday!" {
		t.Errorf("submit failure discarded draft data: %+v", d)
	}
}

func TestParseReminderDays(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: " 2 ", want: 2},
		{input: "two", wantErr: true},
		{input: "", wantErr: true},
		{input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseReminderDays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseReminderDays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseReminderDays(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
