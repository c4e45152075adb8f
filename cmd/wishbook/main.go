// Command wishbook is an interactive CLI for scheduling personal wish
// events: birthdays, anniversaries and custom occasions, one-off or
// recurring. A guided wizard captures the wish, a SQLite store keeps one
// record per wish, and the calendar view projects recurring wishes into
// any month without duplicating storage.
//
// Usage:
//
//	wishbook                  Run the scheduling wizard
//	wishbook list             List stored wishes
//	wishbook calendar [YYYY-MM]  Show a month of occurrences
//	wishbook --help           Show help
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/calendar"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/store"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/ui"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, st, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	cmd := "wizard"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "wizard":
		if err := runWizard(cfg, st, formatter); err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
	case "list":
		if err := runList(st, formatter); err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
	case "calendar":
		month := ""
		if len(args) > 1 {
			month = args[1]
		}
		if err := runCalendar(cfg, st, formatter, month); err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

func setup() (*config.Config, *store.Store, error) {
	configPath := os.Getenv("WISHBOOK_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.Open(cfg.Storage.DBPath, cfg.Storage.MediaDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return cfg, st, nil
}

func runList(st *store.Store, formatter *ui.Formatter) error {
	wishes, err := st.ListWishes(context.Background(), "")
	if err != nil {
		return err
	}

	if len(wishes) == 0 {
		fmt.Println("No wishes scheduled yet. Run `wishbook` to add one.")
		return nil
	}

	fmt.Println(formatter.FormatTitle("Scheduled wishes"))
	for i := range wishes {
		fmt.Println(formatter.FormatWishRow(&wishes[i]))
	}
	return nil
}

func runCalendar(cfg *config.Config, st *store.Store, formatter *ui.Formatter, month string) error {
	now := time.Now()
	year, m := now.Year(), now.Month()

	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return fmt.Errorf("invalid month %q (use YYYY-MM)", month)
		}
		year, m = t.Year(), t.Month()
	}

	view := calendar.New(st, cfg.Calendar.MaxProjectionSteps)
	occurrences, err := view.Month(context.Background(), year, m)
	if err != nil {
		return err
	}

	fmt.Println(formatter.FormatTitle(fmt.Sprintf("Wishes for %s %d", m, year)))
	if len(occurrences) == 0 {
		fmt.Println("Nothing this month.")
		return nil
	}
	for _, o := range occurrences {
		fmt.Println(formatter.FormatOccurrenceRow(o))
	}
	fmt.Println(formatter.FormatHint("↻ marks a projected repetition of a recurring wish"))
	return nil
}

func printHelp() {
	fmt.Println(`Wishbook - schedule personal wishes and greetings

USAGE:
    wishbook                     Run the scheduling wizard
    wishbook list                List stored wishes
    wishbook calendar [YYYY-MM]  Show a month of occurrences (default: current month)
    wishbook --help              Show this help

ENVIRONMENT:
    WISHBOOK_CONFIG    Path to config file (default: ~/.wishbook/config.yaml)
    DEEPSEEK_API_KEY   API key for greeting generation

The wizard walks through four steps: pick a recipient, describe the
event, generate or write the greeting, then preview and submit. Times
are wall-clock values: the clock reading you enter is the clock reading
that is stored, in any timezone.`)
}

// wallTimeHint is shown whenever the wizard asks for a date and time.
const wallTimeHint = "format 2006-01-02T15:04 (or 2006-01-02 for midnight)"

func parseWallInput(s string) (wish.WallTime, error) {
	return wish.ParseWallTime(s)
}
