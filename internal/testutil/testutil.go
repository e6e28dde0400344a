// Package testutil provides shared test helpers for setting up vaults
// and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/brackets/internal/index"
	"github.com/starford/brackets/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically
// cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "brackets-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a
// storage.Provider, seeded with the given files.
func TestVault(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(vaultDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}
