package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestReopenExistingCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	again, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := again.Close(); err != nil {
		t.Fatalf("close after reopen: %v", err)
	}
}

func TestOpenRejectsForeignSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("rewrite version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := OpenPath(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}
