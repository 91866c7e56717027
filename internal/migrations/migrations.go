package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add session and action indices to journal",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_journal_session ON journal(session_id, seq);
			CREATE INDEX IF NOT EXISTS idx_journal_action ON journal(action);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_journal_session;
			DROP INDEX IF EXISTS idx_journal_action;
		`,
	},
	{
		Version: 2,
		Name:    "Add diff column to journal",
		Up: `
			ALTER TABLE journal ADD COLUMN diff TEXT NOT NULL DEFAULT '';
		`,
		Down: `
			ALTER TABLE journal DROP COLUMN diff;
		`,
	},
}

// InitSchema creates the base tables as of version 1. Later columns are
// added by AllMigrations.
func InitSchema(db *sql.DB) error {
	schema := `
	-- Action journal
	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		editing_before TEXT NOT NULL,
		editing_after TEXT NOT NULL,
		focus_before TEXT NOT NULL,
		focus_after TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_timestamp ON journal(timestamp DESC);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

// Latest returns the highest version in AllMigrations
func Latest() int {
	latest := 0
	for _, m := range AllMigrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}
