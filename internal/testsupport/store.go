package testsupport

import (
	"context"
	"testing"

	"printvault/internal/catalog"
	"printvault/internal/config"
)

// MustOpenStore opens a fresh catalog on the config's database path and
// closes it when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	})
	return store
}

// NewRecord inserts one record with a declared system and category.
func NewRecord(t testing.TB, store *catalog.Store, path, system, category string) *catalog.Record {
	t.Helper()

	record, err := store.NewRecord(context.Background(), path, system, category)
	if err != nil {
		t.Fatalf("insert record %s: %v", path, err)
	}
	return record
}

// SeedRecords inserts bare records for the given paths, in order. Most
// enrichment tests only care about path shape; declared metadata stays empty.
func SeedRecords(t testing.TB, store *catalog.Store, paths ...string) []*catalog.Record {
	t.Helper()

	records := make([]*catalog.Record, 0, len(paths))
	for _, path := range paths {
		records = append(records, NewRecord(t, store, path, "", ""))
	}
	return records
}
