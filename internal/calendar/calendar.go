// Package calendar is the window-query glue between stored wishes and a
// rendered view. It lists base records, expands each one through the
// occurrence projector and merges the results; it is the only place
// projection happens, and stores never hand out projected occurrences.
package calendar

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

// WishLister is the slice of the store the calendar needs.
type WishLister interface {
	ListWishes(ctx context.Context, statusFilter wish.Status) ([]wish.ScheduledWish, error)
}

// View answers window queries over a wish store.
type View struct {
	store    WishLister
	maxSteps int
}

// New builds a View. maxSteps caps projection advances per wish; zero
// selects the projector's built-in ceiling.
func New(store WishLister, maxSteps int) *View {
	return &View{store: store, maxSteps: maxSteps}
}

// Range returns every occurrence of every wish inside the inclusive
// window [start, end], ascending by time with the occurrence key as tie
// order. Truncated projections are reported on stderr as a data-quality
// signal and never fail the render.
func (v *View) Range(ctx context.Context, start, end wish.WallTime) ([]wish.Occurrence, error) {
	wishes, err := v.store.ListWishes(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load wishes: %w", err)
	}

	var out []wish.Occurrence
	for _, w := range wishes {
		res := wish.Project(w, start, end, v.maxSteps)
		if res.Truncated {
			fmt.Fprintf(os.Stderr, "Warning: projection for wish %d truncated at the step ceiling\n", w.ID)
		}
		out = append(out, res.Occurrences...)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Time.Compare(out[j].Time); c != 0 {
			return c < 0
		}
		return out[i].Key < out[j].Key
	})

	return out, nil
}

// Month returns the occurrences of one calendar month.
func (v *View) Month(ctx context.Context, year int, month time.Month) ([]wish.Occurrence, error) {
	start, end := MonthRange(year, month)
	return v.Range(ctx, start, end)
}

// MonthRange builds the inclusive wall-clock window covering a month.
func MonthRange(year int, month time.Month) (wish.WallTime, wish.WallTime) {
	start := wish.NewWallTime(year, month, 1, 0, 0)
	end := start.AddMonths(1).AddMinutes(-1)
	return start, end
}
