package database

import (
	"context"
	"path/filepath"
	"testing"
)

func schemaVersion(t *testing.T, db *DB) (int, bool) {
	t.Helper()
	var (
		version int
		dirty   bool
	)
	err := db.SQL.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	return version, dirty
}

func TestNewDB(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "menu.db")

	db, err := NewDB(ctx, path)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	if version, dirty := schemaVersion(t, db); version != 1 || dirty {
		t.Errorf("Expected clean schema version 1, got %d (dirty=%v)", version, dirty)
	}
	db.Close()

	t.Run("ReopenIsIdempotent", func(t *testing.T) {
		db, err := NewDB(ctx, path)
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		defer db.Close()

		if version, dirty := schemaVersion(t, db); version != 1 || dirty {
			t.Errorf("Expected clean schema version 1 after reopen, got %d (dirty=%v)", version, dirty)
		}
	})

	t.Run("InMemory", func(t *testing.T) {
		db, err := NewDB(ctx, ":memory:")
		if err != nil {
			t.Fatalf("NewDB(:memory:) failed: %v", err)
		}
		defer db.Close()
		if _, err := db.SQL.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('k', 'v')`); err != nil {
			t.Errorf("Expected kv table to exist: %v", err)
		}
	})
}
