package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/greeting"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/store"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/ui"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wizard"
)

const totalSteps = 4

// flow drives one wizard session in the terminal. All state lives on the
// wizard's draft; abandoning the session (Ctrl+C/Ctrl+D) discards it.
type flow struct {
	cfg       *config.Config
	st        *store.Store
	formatter *ui.Formatter
	spinner   *ui.Spinner
	rl        *readline.Instance
	wz        *wizard.Wizard
}

func runWizard(cfg *config.Config, st *store.Store, formatter *ui.Formatter) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize input: %w", err)
	}
	defer rl.Close()

	// A missing API key should not block scheduling; generation simply
	// reports a retryable failure when requested.
	var gen greeting.Provider
	if err := cfg.Validate(); err == nil {
		gen, err = greeting.NewProvider(cfg.GetProviderConfig())
		if err != nil {
			fmt.Println(formatter.FormatHint("Greeting generation unavailable: " + err.Error()))
		}
	} else {
		fmt.Println(formatter.FormatHint("Greeting generation unavailable: " + err.Error()))
	}
	if gen != nil {
		defer gen.Close()
	}

	f := &flow{
		cfg:       cfg,
		st:        st,
		formatter: formatter,
		spinner:   ui.NewSpinner(cfg.UI.ColoredOutput),
		rl:        rl,
		wz:        wizard.New(gen, st),
	}

	fmt.Println(formatter.FormatTitle("Schedule a wish"))
	fmt.Println()

	return f.run()
}

func (f *flow) run() error {
	for {
		var err error
		switch f.wz.Step() {
		case wizard.StepSelect:
			err = f.stepSelect()
		case wizard.StepEvent:
			err = f.stepEvent()
		case wizard.StepMessage:
			err = f.stepMessage()
		case wizard.StepPreview:
			done, perr := f.stepPreview()
			if done {
				return perr
			}
			err = perr
		}

		if err != nil {
			if errors.Is(err, errDone) {
				return nil
			}
			if isAbort(err) {
				fmt.Println(f.formatter.FormatHint("Wizard cancelled, nothing was saved."))
				return nil
			}
			return err
		}
	}
}

// gateRetry prints a gate failure and keeps the user on the step; any
// other error aborts the flow.
func (f *flow) gateRetry(err error) (retry bool, fatal error) {
	if err == nil {
		return false, nil
	}
	var gateErr *wizard.GateError
	if errors.As(err, &gateErr) {
		fmt.Println(f.formatter.FormatError(gateErr))
		fmt.Println()
		return true, nil
	}
	return false, err
}

func (f *flow) stepSelect() error {
	fmt.Println(f.formatter.FormatStep(1, totalSteps, "Recipient"))

	draft := f.wz.Draft()

	contacts, err := f.st.ListContacts(context.Background())
	if err != nil {
		return err
	}

	options := make([]ui.SelectorOption, 0, len(contacts)+1)
	for _, c := range contacts {
		desc := string(c.Platform)
		if c.Address != "" {
			desc += " " + c.Address
		}
		options = append(options, ui.SelectorOption{Label: c.Name, Description: desc})
	}
	options = append(options, ui.SelectorOption{Label: "Someone else", Description: "enter a name manually"})

	idx, err := ui.NewSelector("Who is this wish for?", options, f.cfg.UI.ColoredOutput).Run()
	if err != nil {
		return err
	}

	if idx < len(contacts) {
		c := contacts[idx]
		draft.Contact = &c
		draft.Platform = c.Platform
	} else {
		draft.Contact = nil
		name, err := f.prompt("Recipient name: ")
		if err != nil {
			return err
		}
		draft.RecipientName = name

		platforms := []ui.SelectorOption{
			{Label: "none", Description: "calendar only"},
			{Label: "email"},
			{Label: "telegram"},
		}
		pidx, err := ui.NewSelector("Deliver the wish via:", platforms, f.cfg.UI.ColoredOutput).Run()
		if err != nil {
			return err
		}
		draft.Platform = wish.Platform(platforms[pidx].Label)

		if draft.Platform.RequiresContact() {
			addr, err := f.prompt(fmt.Sprintf("Recipient %s address: ", draft.Platform))
			if err != nil {
				return err
			}
			draft.RecipientContact = addr
		}
	}

	if retry, fatal := f.gateRetry(f.wz.Apply(wizard.ActionNext)); retry || fatal != nil {
		return fatal
	}
	fmt.Println()
	return nil
}

func (f *flow) stepEvent() error {
	fmt.Println(f.formatter.FormatStep(2, totalSteps, "Event"))

	draft := f.wz.Draft()

	types := make([]ui.SelectorOption, len(wish.EventTypes))
	for i, t := range wish.EventTypes {
		types[i] = ui.SelectorOption{Label: string(t)}
	}
	tidx, err := ui.NewSelector("What kind of event?", types, f.cfg.UI.ColoredOutput).Run()
	if err != nil {
		return err
	}
	draft.EventType = wish.EventTypes[tidx]

	name, err := f.promptDefault("Event name: ", draft.EventName)
	if err != nil {
		return err
	}
	draft.EventName = name

	fmt.Println(f.formatter.FormatHint("  " + wallTimeHint))
	whenStr, err := f.promptDefault("When: ", formatMaybe(draft.Scheduled))
	if err != nil {
		return err
	}
	if when, perr := parseWallInput(whenStr); perr != nil {
		fmt.Println(f.formatter.FormatError(perr))
		fmt.Println()
		return nil // stay on this step
	} else {
		draft.Scheduled = when
	}

	recs := []ui.SelectorOption{
		{Label: "none", Description: "one-off"},
		{Label: "daily"},
		{Label: "weekly"},
		{Label: "monthly"},
		{Label: "yearly"},
	}
	ridx, err := ui.NewSelector("How often does it repeat?", recs, f.cfg.UI.ColoredOutput).Run()
	if err != nil {
		return err
	}
	draft.RecurrenceRaw = recs[ridx].Label

	daysStr, err := f.promptDefault("Remind how many days before (0-2): ", "0")
	if err != nil {
		return err
	}
	days, perr := parseReminderDays(daysStr)
	if perr != nil {
		fmt.Println(f.formatter.FormatError(perr))
		fmt.Println()
		return nil // stay on this step
	}
	draft.ReminderDays = days

	auto, err := f.promptYesNo("Send automatically without approval?", false)
	if err != nil {
		return err
	}
	draft.AutoSend = auto

	if retry, fatal := f.gateRetry(f.wz.Apply(wizard.ActionNext)); retry || fatal != nil {
		return fatal
	}
	fmt.Println()
	return nil
}

func (f *flow) stepMessage() error {
	fmt.Println(f.formatter.FormatStep(3, totalSteps, "Message"))

	draft := f.wz.Draft()
	if draft.Content != "" {
		fmt.Println(ui.RenderMarkdown(draft.Content))
		fmt.Println()
	}

	options := []ui.SelectorOption{
		{Label: "Generate", Description: "let the model write a greeting"},
		{Label: "Write it myself"},
		{Label: "Attach media", Description: "photo or card image"},
		{Label: "Continue", Description: "on to preview"},
		{Label: "Schedule now", Description: "skip preview, send a couple of minutes from now"},
		{Label: "Back"},
	}

	idx, err := ui.NewSelector("Greeting message:", options, f.cfg.UI.ColoredOutput).Run()
	if err != nil {
		return err
	}

	switch options[idx].Label {
	case "Generate":
		return f.generate()

	case "Write it myself":
		text, err := f.promptMultiline()
		if err != nil {
			return err
		}
		f.wz.SetContent(text)

	case "Attach media":
		path, err := f.prompt("Path to file: ")
		if err != nil {
			return err
		}
		ref, serr := f.st.SaveMedia(path)
		if serr != nil {
			fmt.Println(f.formatter.FormatError(serr))
			fmt.Println()
			return nil
		}
		draft.MediaRef = ref
		fmt.Println(f.formatter.FormatSuccess("Attached " + ref))
		fmt.Println()

	case "Continue":
		if retry, fatal := f.gateRetry(f.wz.Apply(wizard.ActionNext)); retry || fatal != nil {
			return fatal
		}
		fmt.Println()

	case "Schedule now":
		return f.scheduleNow()

	case "Back":
		return f.wz.Apply(wizard.ActionBack)
	}

	return nil
}

func (f *flow) generate() error {
	tone, err := f.promptDefault("Tone (warm/funny/formal): ", f.cfg.Greeting.DefaultTone)
	if err != nil {
		return err
	}
	details, err := f.prompt("Anything to mention (optional): ")
	if err != nil {
		return err
	}

	f.spinner.Start("Writing a greeting...")
	genErr := f.wz.Generate(context.Background(), tone, details, greeting.LengthMedium)
	if genErr != nil {
		f.spinner.StopWithError(genErr.Error())
		fmt.Println(f.formatter.FormatHint("You can retry; nothing you entered was lost."))
		fmt.Println()
		return nil
	}
	f.spinner.StopWithMessage("Greeting ready")
	fmt.Println()
	return nil
}

func (f *flow) scheduleNow() error {
	created, err := f.wz.ScheduleNow(context.Background())
	if retry, fatal := f.gateRetry(err); retry || fatal != nil {
		return fatal
	}
	fmt.Println(f.formatter.FormatSuccess(fmt.Sprintf("Wish #%d scheduled for %s", created.ID, created.Scheduled)))
	return errDone
}

func (f *flow) stepPreview() (bool, error) {
	fmt.Println(f.formatter.FormatStep(4, totalSteps, "Preview"))

	draft := f.wz.Draft()
	recipient := draft.RecipientName
	if draft.Contact != nil {
		recipient = draft.Contact.Name
	}
	recurrence := "none"
	if r, ok := wish.NormalizeRecurrence(draft.RecurrenceRaw); ok {
		recurrence = string(r)
	}
	fmt.Println(f.formatter.FormatDraftSummary(recipient, draft.EventName, draft.EventType, draft.Scheduled, recurrence, draft.AutoSend))
	fmt.Println()
	if draft.Content != "" {
		fmt.Println(ui.RenderMarkdown(draft.Content))
		fmt.Println()
	}

	options := []ui.SelectorOption{
		{Label: "Submit"},
		{Label: "Edit message"},
		{Label: "Back"},
	}
	idx, err := ui.NewSelector("Everything look right?", options, f.cfg.UI.ColoredOutput).Run()
	if err != nil {
		return false, err
	}

	switch options[idx].Label {
	case "Submit":
		f.spinner.Start("Saving...")
		created, serr := f.wz.Submit(context.Background())
		if serr != nil {
			var gateErr *wizard.GateError
			if errors.As(serr, &gateErr) {
				f.spinner.Stop()
				fmt.Println(f.formatter.FormatError(gateErr))
			} else {
				// A store failure is retryable; the draft stays intact.
				f.spinner.StopWithError(serr.Error())
				fmt.Println(f.formatter.FormatHint("You can retry; nothing you entered was lost."))
			}
			fmt.Println()
			return false, nil
		}
		f.spinner.StopWithMessage(fmt.Sprintf("Wish #%d scheduled for %s", created.ID, created.Scheduled))
		return true, nil

	case "Edit message", "Back":
		return false, f.wz.Apply(wizard.ActionBack)
	}
	return false, nil
}

// errDone signals a successful early exit (ScheduleNow).
var errDone = errors.New("done")

func isAbort(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt ||
		(err != nil && err.Error() == "cancelled")
}

func (f *flow) prompt(label string) (string, error) {
	f.rl.SetPrompt(label)
	line, err := f.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (f *flow) promptDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s[%s] ", label, def)
	}
	s, err := f.prompt(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func (f *flow) promptYesNo(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	s, err := f.prompt(fmt.Sprintf("%s [%s] ", label, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

// promptMultiline reads greeting text until a lone "." line.
func (f *flow) promptMultiline() (string, error) {
	fmt.Println(f.formatter.FormatHint("Type the greeting; finish with a single '.' on its own line."))
	var lines []string
	for {
		f.rl.SetPrompt("… ")
		line, err := f.rl.Readline()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}

// parseReminderDays rejects non-numeric input outright; the range check
// belongs to the step gate.
func parseReminderDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number of days", s)
	}
	return n, nil
}

func formatMaybe(t wish.WallTime) string {
	if t.IsZero() {
		return ""
	}
	return t.String()
}
