// Package wizard implements the guided multi-step flow that turns user
// input into a valid ScheduledWish. Progress is an explicit finite-state
// machine: named steps, a transition table keyed by (step, action), and a
// single draft value threaded through every transition. A failed gate
// returns a short human-readable reason and leaves both step and draft
// untouched; backward navigation never validates and never discards data.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/greeting"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

// Step is a named wizard state.
type Step int

const (
	StepSelect Step = iota
	StepEvent
	StepMessage
	StepPreview
)

func (s Step) String() string {
	switch s {
	case StepSelect:
		return "select"
	case StepEvent:
		return "event"
	case StepMessage:
		return "message"
	case StepPreview:
		return "preview"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Action is a user-driven transition request.
type Action int

const (
	// ActionNext advances to the following step after its gate passes.
	ActionNext Action = iota
	// ActionNextSilent advances past the Message step without generated
	// content, for when generation is running in the background.
	ActionNextSilent
	// ActionBack returns to the previous step without validation.
	ActionBack
)

var (
	// ErrGenerationInFlight gates duplicate generation requests.
	ErrGenerationInFlight = errors.New("a greeting is already being generated")
	// ErrNoTransition marks an action the current step does not support.
	ErrNoTransition = errors.New("not available on this step")
)

// GateError is a recoverable validation failure: the short reason shown to
// the user. The wizard stays on the current step and the draft keeps every
// entered value.
type GateError struct {
	Step   Step
	Reason string
}

func (e *GateError) Error() string { return e.Reason }

func gateFail(step Step, format string, args ...any) error {
	return &GateError{Step: step, Reason: fmt.Sprintf(format, args...)}
}

// Draft accumulates user input across steps. It is owned exclusively by
// one wizard instance; abandoning the wizard drops it with nothing
// persisted.
type Draft struct {
	Contact          *wish.Contact // chosen from the directory, or nil
	RecipientName    string        // manual entry when no contact is chosen
	RecipientContact string
	Platform         wish.Platform

	EventType wish.EventType
	EventName string
	Scheduled wish.WallTime

	RecurrenceRaw any // normalized no later than the store boundary
	ReminderDays  int
	AutoSend      bool

	Content  string
	MediaRef string
}

// recipientName resolves the effective recipient regardless of how they
// were chosen.
func (d *Draft) recipientName() string {
	if d.Contact != nil {
		return d.Contact.Name
	}
	return d.RecipientName
}

// Submitter persists a finished draft. Implemented by the SQLite store;
// kept narrow so tests can fake it.
type Submitter interface {
	CreateWish(ctx context.Context, w wish.ScheduledWish) (*wish.ScheduledWish, error)
}

// Generator produces greeting text. Implemented by greeting.Provider.
type Generator interface {
	Generate(ctx context.Context, req greeting.Request) (*greeting.Response, error)
}

// Wizard drives one draft through the Select -> Event -> Message ->
// Preview flow. It is not safe for concurrent use; each instance belongs
// to a single interactive session.
type Wizard struct {
	step       Step
	draft      Draft
	generating bool

	gen      Generator
	store    Submitter
	nowDelay int // minutes added to "now" by ScheduleNow
}

// scheduleNowDelayMinutes is the small fixed offset ScheduleNow adds to
// the current clock so the record is never scheduled in the past.
const scheduleNowDelayMinutes = 2

// New builds a wizard over the given collaborators.
func New(gen Generator, store Submitter) *Wizard {
	return &Wizard{gen: gen, store: store, nowDelay: scheduleNowDelayMinutes}
}

// Step reports the current step.
func (wz *Wizard) Step() Step { return wz.step }

// Draft exposes the draft for rendering and mutation between transitions.
func (wz *Wizard) Draft() *Draft { return &wz.draft }

// Generating reports whether a generation call is in flight.
func (wz *Wizard) Generating() bool { return wz.generating }

// gate validates one step's inputs. The table below is the single place
// forward-navigation rules live.
type gate func(d *Draft) error

var gates = map[Step]gate{
	StepSelect:  gateSelect,
	StepEvent:   gateEvent,
	StepMessage: gateMessage,
	StepPreview: gatePreview,
}

func gateSelect(d *Draft) error {
	if d.Contact == nil {
		if !wish.ValidRecipientName(d.RecipientName) {
			return gateFail(StepSelect, "choose a contact or enter a recipient name (letters and spaces, 2-50 characters)")
		}
	}
	if d.Platform.RequiresContact() {
		addr := d.RecipientContact
		if d.Contact != nil && addr == "" {
			addr = d.Contact.Address
		}
		if err := d.Platform.ValidateContact(addr); err != nil {
			return gateFail(StepSelect, "%v", err)
		}
	}
	return nil
}

func gateEvent(d *Draft) error {
	if !d.EventType.Valid() {
		return gateFail(StepEvent, "choose an event type")
	}
	if !wish.ValidEventName(d.EventName) {
		return gateFail(StepEvent, "event name must contain at least one letter or digit")
	}
	if d.Scheduled.IsZero() {
		return gateFail(StepEvent, "pick a date and time for the event")
	}
	if d.ReminderDays < 0 || d.ReminderDays > wish.MaxReminderDays {
		return gateFail(StepEvent, "reminder lead must be between 0 and %d days", wish.MaxReminderDays)
	}
	return nil
}

func gateMessage(d *Draft) error {
	if d.Content == "" {
		return gateFail(StepMessage, "generate or write a greeting before previewing")
	}
	return nil
}

// gatePreview re-runs the earlier gates as a defense against stale state,
// then requires the greeting text.
func gatePreview(d *Draft) error {
	if err := gateSelect(d); err != nil {
		return err
	}
	if err := gateEvent(d); err != nil {
		return err
	}
	if d.Content == "" {
		return gateFail(StepPreview, "the greeting text is empty")
	}
	return nil
}

// transition maps (step, action) to the next step and the gate that must
// pass first. A nil gate means the move is unconditional.
type transition struct {
	next  Step
	check gate
}

var transitions = map[Step]map[Action]transition{
	StepSelect: {
		ActionNext: {next: StepEvent, check: gateSelect},
	},
	StepEvent: {
		ActionNext: {next: StepMessage, check: gateEvent},
		ActionBack: {next: StepSelect},
	},
	StepMessage: {
		ActionNext:       {next: StepPreview, check: gateMessage},
		ActionNextSilent: {next: StepPreview},
		ActionBack:       {next: StepEvent},
	},
	StepPreview: {
		ActionBack: {next: StepMessage},
	},
}

// Apply performs one transition. On a gate failure the returned error is a
// *GateError and the wizard does not move.
func (wz *Wizard) Apply(action Action) error {
	tr, ok := transitions[wz.step][action]
	if !ok {
		return fmt.Errorf("%s: %w", wz.step, ErrNoTransition)
	}
	if tr.check != nil {
		if err := tr.check(&wz.draft); err != nil {
			return err
		}
	}
	wz.step = tr.next
	return nil
}

// SetContent overwrites the greeting text, e.g. after the user edits the
// generated draft by hand.
func (wz *Wizard) SetContent(text string) { wz.draft.Content = text }

// Generate calls the external greeting collaborator and stores the result
// on the draft. Re-entry while a call is in flight is refused so the UI
// can disable duplicate submission. A provider failure leaves the draft
// untouched and is retryable.
func (wz *Wizard) Generate(ctx context.Context, tone, extraDetails string, length greeting.Length) error {
	if wz.generating {
		return ErrGenerationInFlight
	}
	if wz.gen == nil {
		return errors.New("no greeting provider configured")
	}

	wz.generating = true
	defer func() { wz.generating = false }()

	resp, err := wz.gen.Generate(ctx, greeting.Request{
		Occasion:      string(wz.draft.EventType),
		OccasionName:  wz.draft.EventName,
		RecipientName: wz.draft.recipientName(),
		Tone:          tone,
		ExtraDetails:  extraDetails,
		Length:        length,
	})
	if err != nil {
		return fmt.Errorf("greeting generation failed: %w", err)
	}

	wz.draft.Content = resp.Text
	return nil
}

// Submit finalizes the draft. It defensively re-validates the Select and
// Event gates and requires greeting content, then hands the Draft record
// to the store. No partial record is ever submitted.
func (wz *Wizard) Submit(ctx context.Context) (*wish.ScheduledWish, error) {
	if err := gatePreview(&wz.draft); err != nil {
		return nil, err
	}
	return wz.submit(ctx)
}

// ScheduleNow bypasses the Message and Preview steps: it schedules the
// wish a couple of minutes from the current clock reading. The Select and
// Event gates still apply in full; this is not a way around missing
// recipient or event data.
func (wz *Wizard) ScheduleNow(ctx context.Context) (*wish.ScheduledWish, error) {
	if err := gateSelect(&wz.draft); err != nil {
		return nil, err
	}
	// The action supplies the time itself, so the Event gate runs against
	// a probe copy; the draft is only touched once both gates pass.
	probe := wz.draft
	probe.Scheduled = wish.WallTimeNow().AddMinutes(wz.nowDelay)
	if err := gateEvent(&probe); err != nil {
		return nil, err
	}
	wz.draft.Scheduled = probe.Scheduled
	return wz.submit(ctx)
}

func (wz *Wizard) submit(ctx context.Context) (*wish.ScheduledWish, error) {
	if wz.store == nil {
		return nil, errors.New("no store configured")
	}

	d := &wz.draft
	rec, known := wish.NormalizeRecurrence(d.RecurrenceRaw)
	if !known {
		// Fail-soft by contract: an unrecognized encoding never repeats.
		rec = wish.RecurrenceNone
	}

	contact := d.RecipientContact
	if d.Contact != nil && contact == "" {
		contact = d.Contact.Address
	}

	record := wish.ScheduledWish{
		RecipientName:    d.recipientName(),
		RecipientContact: contact,
		Platform:         d.Platform,
		EventType:        d.EventType,
		EventName:        d.EventName,
		Scheduled:        d.Scheduled,
		Recurrence:       rec,
		ReminderDays:     d.ReminderDays,
		AutoSend:         d.AutoSend,
		Content:          d.Content,
		MediaRef:         d.MediaRef,
		Status:           wish.StatusDraft,
	}
	if record.Platform == "" {
		record.Platform = wish.PlatformNone
	}

	created, err := wz.store.CreateWish(ctx, record)
	if err != nil {
		// Draft state is preserved; the user can retry without re-entering.
		return nil, fmt.Errorf("could not save the wish: %w", err)
	}
	return created, nil
}
