package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	StepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")). // Light purple
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Soft green
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dim gray

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Italic(true)

	VirtualStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)
)

// Formatter renders wishbook output with an optional plain-text fallback
// when color is disabled.
type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) FormatTitle(title string) string {
	if f.colored {
		return TitleStyle.Render(title)
	}
	return title
}

// FormatStep renders the wizard's step banner, e.g. "Step 2/4 — Event".
func (f *Formatter) FormatStep(number, total int, name string) string {
	banner := fmt.Sprintf("Step %d/%d: %s", number, total, name)
	if f.colored {
		return StepStyle.Render(banner)
	}
	return banner
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render("✓ ") + msg
	}
	return "✓ " + msg
}

func (f *Formatter) FormatHint(msg string) string {
	if f.colored {
		return HintStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) field(label, value string) string {
	if f.colored {
		return "  " + LabelStyle.Render(label+": ") + ValueStyle.Render(value)
	}
	return "  " + label + ": " + value
}

// FormatWish renders a stored wish as a detail card.
func (f *Formatter) FormatWish(w *wish.ScheduledWish) string {
	lines := []string{
		f.field("Recipient", w.RecipientName),
		f.field("Event", fmt.Sprintf("%s (%s)", w.EventName, w.EventType)),
		f.field("When", w.Scheduled.String()),
		f.field("Repeats", string(w.Recurrence)),
	}
	if w.Platform != wish.PlatformNone && w.Platform != "" {
		lines = append(lines, f.field("Deliver via", fmt.Sprintf("%s to %s", w.Platform, w.RecipientContact)))
	}
	if w.ReminderDays > 0 {
		lines = append(lines, f.field("Remind", fmt.Sprintf("%d day(s) before", w.ReminderDays)))
	}
	if w.MediaRef != "" {
		lines = append(lines, f.field("Attachment", w.MediaRef))
	}
	lines = append(lines, f.field("Status", string(w.Status)))
	return strings.Join(lines, "\n")
}

// FormatWishRow renders one line of the list view.
func (f *Formatter) FormatWishRow(w *wish.ScheduledWish) string {
	row := fmt.Sprintf("#%-4d %s  %-9s %-22s %s", w.ID, w.Scheduled, w.Recurrence, truncate(w.EventName, 22), w.RecipientName)
	if f.colored && w.Status != wish.StatusScheduled {
		return LabelStyle.Render(row + "  [" + string(w.Status) + "]")
	}
	if w.Status != wish.StatusScheduled {
		return row + "  [" + string(w.Status) + "]"
	}
	return row
}

// FormatOccurrenceRow renders one calendar line; projected repetitions are
// marked so they read differently from the stored base date.
func (f *Formatter) FormatOccurrenceRow(o wish.Occurrence) string {
	marker := " "
	if o.Virtual {
		marker = "↻"
	}
	row := fmt.Sprintf("%s %s  %-22s %s", marker, o.Time, truncate(o.EventName, 22), o.RecipientName)
	if f.colored && o.Virtual {
		return VirtualStyle.Render(row)
	}
	return row
}

// FormatDraftSummary renders the preview card shown on the wizard's last
// step.
func (f *Formatter) FormatDraftSummary(recipient, eventName string, eventType wish.EventType, when wish.WallTime, recurrence string, autoSend bool) string {
	send := "manual approval"
	if autoSend {
		send = "automatic"
	}
	lines := []string{
		f.field("Recipient", recipient),
		f.field("Event", fmt.Sprintf("%s (%s)", eventName, eventType)),
		f.field("When", when.String()),
		f.field("Repeats", recurrence),
		f.field("Delivery", send),
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
