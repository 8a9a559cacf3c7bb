package loyaltydb

import (
	"os"
	"path/filepath"
	"testing"
)

// newTestDB creates a temporary SQLite database for testing.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.sqlite")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesDatabaseFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "sub", "dir", "test.sqlite")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file should exist after New()")
	}
}

func TestRunMigrations_CreatesAllTables(t *testing.T) {
	db := newTestDB(t)

	tables := []string{"programs", "balances", "ledger_entries"}
	for _, table := range tables {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist: %v", table, err)
		}
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Run migrations again — should not error.
	if err := db.RunMigrations(); err != nil {
		t.Errorf("RunMigrations() second call error = %v", err)
	}
}

func TestRunMigrations_LedgerUniqueIndex(t *testing.T) {
	db := newTestDB(t)

	// Two raw inserts with the same (tenant, program, idempotency_key)
	// must violate the unique constraint.
	_, err := db.Conn().Exec(`
		INSERT INTO ledger_entries (id, tenant_id, customer_id, program_id, points_change, reason, idempotency_key)
		VALUES ('e1', 't1', 'c1', 'p1', 10, 'purchase', 'ord-1')`)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err = db.Conn().Exec(`
		INSERT INTO ledger_entries (id, tenant_id, customer_id, program_id, points_change, reason, idempotency_key)
		VALUES ('e2', 't1', 'c2', 'p1', 20, 'purchase', 'ord-1')`)
	if err == nil {
		t.Fatal("second insert with duplicate idempotency key should fail")
	}
}
