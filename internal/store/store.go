// Package store provides SQLite-backed persistence for scheduled wishes.
// It is the system boundary where recurrence encodings are normalized:
// canonical on write, defensively again on read, so the projector never
// sees a raw legacy value.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

// Store provides SQLite-backed storage for wishes and the read-only
// contact directory.
type Store struct {
	db       *sql.DB
	mediaDir string
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// schema exists. mediaDir may be empty if media attachments are unused.
func Open(dbPath, mediaDir string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, mediaDir: mediaDir}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scheduled_wishes (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			recipient_name      TEXT    NOT NULL,
			recipient_contact   TEXT    NOT NULL DEFAULT '',
			platform            TEXT    NOT NULL DEFAULT 'none',
			event_type          TEXT    NOT NULL,
			event_name          TEXT    NOT NULL,
			scheduled_time      TEXT    NOT NULL,
			recurrence          TEXT    NOT NULL DEFAULT 'none',
			reminder_days       INTEGER NOT NULL DEFAULT 0,
			auto_send           INTEGER NOT NULL DEFAULT 0,
			content             TEXT    NOT NULL DEFAULT '',
			media_ref           TEXT    NOT NULL DEFAULT '',
			status              TEXT    NOT NULL DEFAULT 'scheduled',
			created_at          TEXT    NOT NULL,
			updated_at          TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			platform TEXT NOT NULL DEFAULT 'none',
			address  TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const wishColumns = `id, recipient_name, recipient_contact, platform, event_type, event_name,
	scheduled_time, recurrence, reminder_days, auto_send, content, media_ref, status,
	created_at, updated_at`

// CreateWish persists a Draft record and returns it with the assigned id
// and Scheduled status. The scheduled time is stored as the literal
// wall-clock string; no timezone conversion happens on this path.
func (s *Store) CreateWish(ctx context.Context, w wish.ScheduledWish) (*wish.ScheduledWish, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wish: %w", err)
	}

	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	w.Status = wish.StatusScheduled

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scheduled_wishes (recipient_name, recipient_contact, platform, event_type,
			event_name, scheduled_time, recurrence, reminder_days, auto_send, content,
			media_ref, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, w.RecipientName, w.RecipientContact, string(w.Platform), string(w.EventType),
		w.EventName, w.Scheduled.String(), string(w.Recurrence), w.ReminderDays,
		boolToInt(w.AutoSend), w.Content, w.MediaRef, string(w.Status),
		w.CreatedAt.Format(time.RFC3339), w.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert wish: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}
	w.ID = id

	return &w, nil
}

// ListWishes returns all base records ordered by scheduled time. It never
// returns projected occurrences; expansion belongs to the calendar layer.
// Pass an empty status to list all.
func (s *Store) ListWishes(ctx context.Context, statusFilter wish.Status) ([]wish.ScheduledWish, error) {
	var rows *sql.Rows
	var err error

	if statusFilter != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+wishColumns+`
			FROM scheduled_wishes WHERE status = ? ORDER BY scheduled_time ASC
		`, string(statusFilter))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+wishColumns+`
			FROM scheduled_wishes ORDER BY scheduled_time ASC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}
	defer rows.Close()

	return scanWishes(rows)
}

// GetWish returns a single wish by id.
func (s *Store) GetWish(ctx context.Context, id int64) (*wish.ScheduledWish, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+wishColumns+`
		FROM scheduled_wishes WHERE id = ?
	`, id)

	w, err := scanWish(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wish %d not found", id)
		}
		return nil, fmt.Errorf("failed to get wish: %w", err)
	}
	return w, nil
}

// UpdateStatus moves a wish through its lifecycle. The Scheduled->Sent and
// Scheduled->Failed transitions belong to the external delivery side; the
// store just records them.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status wish.Status) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := s.db.ExecContext(ctx, `
		UPDATE scheduled_wishes SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), now, id)
	if err != nil {
		return fmt.Errorf("failed to update wish status: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("wish %d not found", id)
	}
	return nil
}

// DeleteWish removes a wish permanently.
func (s *Store) DeleteWish(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scheduled_wishes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("wish %d not found", id)
	}
	return nil
}

// ListContacts returns the contact directory. Contact management is owned
// elsewhere; the wizard only needs to offer a choice.
func (s *Store) ListContacts(ctx context.Context) ([]wish.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, platform, address FROM contacts ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []wish.Contact
	for rows.Next() {
		var c wish.Contact
		var platform string
		if err := rows.Scan(&c.ID, &c.Name, &platform, &c.Address); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.Platform = wish.Platform(platform)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// AddContact seeds the directory. Exposed for import tooling and tests;
// full contact CRUD lives outside this system.
func (s *Store) AddContact(ctx context.Context, c wish.Contact) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (name, platform, address) VALUES (?, ?, ?)
	`, c.Name, string(c.Platform), c.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}
	return result.LastInsertId()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWishes(rows *sql.Rows) ([]wish.ScheduledWish, error) {
	var wishes []wish.ScheduledWish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

func scanWish(row rowScanner) (*wish.ScheduledWish, error) {
	var w wish.ScheduledWish
	var platform, eventType, scheduled, recurrence, status string
	var autoSend int
	var createdAt, updatedAt string

	if err := row.Scan(&w.ID, &w.RecipientName, &w.RecipientContact, &platform, &eventType,
		&w.EventName, &scheduled, &recurrence, &w.ReminderDays, &autoSend,
		&w.Content, &w.MediaRef, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	w.Platform = wish.Platform(platform)
	w.EventType = wish.EventType(eventType)
	w.AutoSend = autoSend != 0
	w.Status = wish.Status(status)

	// The wall-clock string round-trips verbatim.
	t, err := wish.ParseWallTime(scheduled)
	if err != nil {
		return nil, fmt.Errorf("wish %d has a corrupt scheduled_time %q: %w", w.ID, scheduled, err)
	}
	w.Scheduled = t

	// Defensive normalization: the column may hold legacy ordinals or day
	// intervals written by older versions. Unknown tokens degrade to a
	// non-repeating wish rather than failing the read.
	rec, known := wish.NormalizeRecurrence(recurrence)
	if !known {
		fmt.Fprintf(os.Stderr, "Warning: wish %d has unrecognized recurrence %q, treating as non-repeating\n", w.ID, recurrence)
	}
	w.Recurrence = rec

	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	w.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &w, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
