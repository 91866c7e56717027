package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAllMigrations(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != Latest() {
		t.Errorf("version = %d, want %d", version, Latest())
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM journal").Scan(&count); err != nil {
		t.Errorf("journal table missing: %v", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Run(db); err != nil {
			t.Fatalf("Run() pass %d error = %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != len(AllMigrations) {
		t.Errorf("schema_migrations rows = %d, want %d", count, len(AllMigrations))
	}
}

func TestAllMigrations_Ordered(t *testing.T) {
	for i := 1; i < len(AllMigrations); i++ {
		if AllMigrations[i].Version <= AllMigrations[i-1].Version {
			t.Errorf("migration %d out of order after %d", AllMigrations[i].Version, AllMigrations[i-1].Version)
		}
	}
}

func TestRun_UpgradesVersionOneJournal(t *testing.T) {
	db := openTestDB(t)

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO schema_migrations (version, name) VALUES (1, 'v1');
		INSERT INTO journal (session_id, seq, timestamp, action,
			editing_before, editing_after, focus_before, focus_after)
		VALUES ('s', 1, '2026-01-01 00:00:00.000', 'child.gear_tapped', 'none', 'popover', 'none', 'none');
	`); err != nil {
		t.Fatalf("failed to seed v1 database: %v", err)
	}

	if err := Run(db); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	var diff string
	if err := db.QueryRow("SELECT diff FROM journal WHERE seq = 1").Scan(&diff); err != nil {
		t.Fatalf("diff column missing after upgrade: %v", err)
	}
	if diff != "" {
		t.Errorf("diff = %q, want empty default for existing rows", diff)
	}
}
