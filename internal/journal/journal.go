package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/migrations"
	"github.com/studiowebux/popfocus/internal/store"
)

// ErrDisabled is returned when the journal was not opened
var ErrDisabled = errors.New("journal is disabled")

const timestampLayout = "2006-01-02 15:04:05.000"

// Entry is one recorded action
type Entry struct {
	ID            int64     `json:"id" yaml:"id"`
	SessionID     uuid.UUID `json:"sessionId" yaml:"sessionId"`
	Seq           uint64    `json:"seq" yaml:"seq"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	Action        string    `json:"action" yaml:"action"`
	EditingBefore string    `json:"editingBefore" yaml:"editingBefore"`
	EditingAfter  string    `json:"editingAfter" yaml:"editingAfter"`
	FocusBefore   string    `json:"focusBefore" yaml:"focusBefore"`
	FocusAfter    string    `json:"focusAfter" yaml:"focusAfter"`
	Diff          string    `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Manager writes journal entries to a SQLite database
type Manager struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the journal database at dbPath
func Open(dbPath string) (*Manager, error) {
	if dbPath == "" {
		return nil, ErrDisabled
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, logger: slog.Default()}, nil
}

// WithLogger sets the logger used by Observer to report write failures
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	if m != nil && logger != nil {
		m.logger = logger
	}
	return m
}

// Record stores one entry
func (m *Manager) Record(ctx context.Context, e Entry) error {
	if m == nil {
		return ErrDisabled
	}

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO journal (
			session_id, seq, timestamp, action,
			editing_before, editing_after, focus_before, focus_after, diff
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.ExecContext(ctx, query,
		e.SessionID.String(),
		int64(e.Seq),
		e.Timestamp.Local().Format(timestampLayout),
		e.Action,
		e.EditingBefore,
		e.EditingAfter,
		e.FocusBefore,
		e.FocusAfter,
		e.Diff,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	return nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (m *Manager) List(ctx context.Context, limit int) ([]Entry, error) {
	if m == nil {
		return nil, ErrDisabled
	}

	query := `
		SELECT id, session_id, seq, timestamp, action,
		       editing_before, editing_after, focus_before, focus_after, diff
		FROM journal
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sessionID, timestamp string
		var seq int64

		err := rows.Scan(
			&e.ID,
			&sessionID,
			&seq,
			&timestamp,
			&e.Action,
			&e.EditingBefore,
			&e.EditingAfter,
			&e.FocusBefore,
			&e.FocusAfter,
			&e.Diff,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.Seq = uint64(seq)
		if id, err := uuid.Parse(sessionID); err == nil {
			e.SessionID = id
		}

		parsed, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			// Try RFC3339 format as fallback
			parsed, _ = time.Parse(time.RFC3339, timestamp)
		}
		e.Timestamp = parsed

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries
func (m *Manager) Count(ctx context.Context) (int, error) {
	if m == nil {
		return 0, ErrDisabled
	}
	var count int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get journal count: %w", err)
	}
	return count, nil
}

// Clear deletes every entry
func (m *Manager) Clear(ctx context.Context) error {
	if m == nil {
		return ErrDisabled
	}
	_, err := m.db.ExecContext(ctx, "DELETE FROM journal")
	if err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m != nil && m.db != nil {
		return m.db.Close()
	}
	return nil
}

// EntryFromChange converts a processed store action into a journal entry
func EntryFromChange(sessionID uuid.UUID, c store.Change[app.State, app.Action]) Entry {
	return Entry{
		SessionID:     sessionID,
		Seq:           c.Seq,
		Timestamp:     time.Now(),
		Action:        store.NameOf(c.Action),
		EditingBefore: c.Before.Child.Editing.String(),
		EditingAfter:  c.After.Child.Editing.String(),
		FocusBefore:   c.Before.Focus.String(),
		FocusAfter:    c.After.Focus.String(),
		Diff:          store.Diff(c.Before, c.After),
	}
}

// Observer returns a store observer that records every processed action
// under sessionID. Write failures are logged; they never reach the store.
func (m *Manager) Observer(sessionID uuid.UUID) func(store.Change[app.State, app.Action]) {
	return func(c store.Change[app.State, app.Action]) {
		if m == nil {
			return
		}
		if err := m.Record(context.Background(), EntryFromChange(sessionID, c)); err != nil {
			m.logger.Error("failed to record journal entry", "seq", c.Seq, "error", err)
		}
	}
}
