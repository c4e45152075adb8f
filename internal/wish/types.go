package wish

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"
	"unicode"
)

// EventType classifies the occasion a wish is attached to.
type EventType string

const (
	EventBirthday    EventType = "birthday"
	EventAnniversary EventType = "anniversary"
	EventFestival    EventType = "festival"
	EventCustom      EventType = "custom"
)

// EventTypes lists the selectable occasion types in display order.
var EventTypes = []EventType{EventBirthday, EventAnniversary, EventFestival, EventCustom}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventBirthday, EventAnniversary, EventFestival, EventCustom:
		return true
	}
	return false
}

// Platform is the delivery channel for a wish. Only some platforms need a
// recipient address.
type Platform string

const (
	PlatformNone     Platform = "none" // calendar-only, no delivery address
	PlatformEmail    Platform = "email"
	PlatformTelegram Platform = "telegram"
)

// RequiresContact reports whether the platform needs a recipient address.
func (p Platform) RequiresContact() bool {
	return p == PlatformEmail || p == PlatformTelegram
}

var telegramHandleRe = regexp.MustCompile(`^@?[A-Za-z0-9_]{5,32}$`)

// ValidateContact checks that addr is syntactically plausible for the
// platform. Platforms without an address requirement accept anything.
func (p Platform) ValidateContact(addr string) error {
	switch p {
	case PlatformEmail:
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("%q is not a valid email address", addr)
		}
	case PlatformTelegram:
		if !telegramHandleRe.MatchString(addr) {
			return fmt.Errorf("%q is not a valid telegram handle", addr)
		}
	}
	return nil
}

// Status is the lifecycle state of a stored wish. The wizard only ever
// produces the Draft->Scheduled transition; Sent and Failed belong to the
// delivery side.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
)

// ScheduledWish is the canonical schedulable record. One row per wish;
// recurring wishes are expanded into occurrences at render time and never
// duplicated in storage.
type ScheduledWish struct {
	ID               int64      `json:"id"`
	RecipientName    string     `json:"recipient_name"`
	RecipientContact string     `json:"recipient_contact,omitempty"`
	Platform         Platform   `json:"platform"`
	EventType        EventType  `json:"event_type"`
	EventName        string     `json:"event_name"`
	Scheduled        WallTime   `json:"scheduled_time"`
	Recurrence       Recurrence `json:"recurrence"`
	ReminderDays     int        `json:"reminder_days_before"`
	AutoSend         bool       `json:"auto_send"`
	Content          string     `json:"content,omitempty"`
	MediaRef         string     `json:"media_ref,omitempty"`
	Status           Status     `json:"status"`

	// Bookkeeping only; scheduling never reads these.
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// MaxReminderDays bounds the reminder lead time.
const MaxReminderDays = 2

// ValidEventName reports whether name is usable as an event name: it must
// contain at least one letter or digit, so whitespace- or punctuation-only
// names are rejected while purely numeric names like "2025" pass.
func ValidEventName(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var recipientNameRe = regexp.MustCompile(`^[\p{L} ]{2,50}$`)

// ValidRecipientName reports whether name is an acceptable manually entered
// recipient name: letters and spaces, length 2-50.
func ValidRecipientName(name string) bool {
	return recipientNameRe.MatchString(name)
}

// Validate checks the record-level invariants a wish must satisfy before
// it may reach the store.
func (w *ScheduledWish) Validate() error {
	if w.RecipientName == "" {
		return fmt.Errorf("recipient name is required")
	}
	if !w.EventType.Valid() {
		return fmt.Errorf("unknown event type %q", w.EventType)
	}
	if !ValidEventName(w.EventName) {
		return fmt.Errorf("event name must contain at least one letter or digit")
	}
	if w.Scheduled.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if !w.Recurrence.Valid() {
		return fmt.Errorf("recurrence %q is not canonical", w.Recurrence)
	}
	if w.ReminderDays < 0 || w.ReminderDays > MaxReminderDays {
		return fmt.Errorf("reminder lead must be between 0 and %d days", MaxReminderDays)
	}
	if w.Platform.RequiresContact() {
		if err := w.Platform.ValidateContact(w.RecipientContact); err != nil {
			return err
		}
	}
	return nil
}

// Contact is a read-only entry from the external contact directory. The
// wizard only needs to pick one; contact management itself lives elsewhere.
type Contact struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`
	Address  string   `json:"address,omitempty"`
}
