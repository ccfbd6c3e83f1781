package catalog_test

import (
	"context"
	"reflect"
	"testing"

	"printvault/internal/catalog"
	"printvault/internal/testsupport"
	"printvault/internal/vocab"
)

func TestNewRecordDerivesFilenameAndParent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	record := testsupport.NewRecord(t, store, "/archives/GreyLegion/Executioner - uncut", "fantasy_battles", "infantry")
	if record.Filename != "Executioner - uncut" {
		t.Fatalf("filename = %q", record.Filename)
	}
	if record.ParentPath != "/archives/GreyLegion" {
		t.Fatalf("parent_path = %q", record.ParentPath)
	}
	if record.System != "fantasy_battles" || record.Category != "infantry" {
		t.Fatalf("declared fields = %q/%q", record.System, record.Category)
	}
	if record.CreatedAt.IsZero() || record.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set")
	}
}

func TestNewRecordRejectsDuplicatePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.NewRecord(t, store, "/archives/a/model", "", "")
	if _, err := store.NewRecord(context.Background(), "/archives/a/model", "", ""); err == nil {
		t.Fatal("duplicate path must be rejected")
	}
}

func TestListScopes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seeded := testsupport.SeedRecords(t, store, "/a/one", "/a/two", "/b/three")
	first, second, third := seeded[0], seeded[1], seeded[2]

	if err := store.BatchUpdate(ctx, []catalog.RecordUpdate{
		{ID: second.ID, Fields: map[string]any{catalog.FieldDesigner: "grey_legion"}},
	}); err != nil {
		t.Fatalf("BatchUpdate: %v", err)
	}

	all, err := store.List(ctx, catalog.Scope{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 || all[0].ID != first.ID || all[2].ID != third.ID {
		t.Fatalf("unexpected full listing: %d records", len(all))
	}

	missing, err := store.List(ctx, catalog.Scope{MissingField: catalog.FieldDesigner})
	if err != nil {
		t.Fatalf("List missing: %v", err)
	}
	if len(missing) != 2 || missing[0].ID != first.ID || missing[1].ID != third.ID {
		t.Fatalf("missing-designer scope returned %d records", len(missing))
	}

	byID, err := store.List(ctx, catalog.Scope{IDs: []int64{third.ID, first.ID}})
	if err != nil {
		t.Fatalf("List by IDs: %v", err)
	}
	// Listing order is by ID regardless of the requested order.
	if len(byID) != 2 || byID[0].ID != first.ID || byID[1].ID != third.ID {
		t.Fatalf("ID scope returned %d records", len(byID))
	}
}

func TestListRejectsUnknownMissingField(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.List(context.Background(), catalog.Scope{MissingField: "path"}); err == nil {
		t.Fatal("non-enrichable field must be rejected")
	}
}

func TestSiblingsOf(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	seeded := testsupport.SeedRecords(t, store,
		"/archives/pack/model - uncut",
		"/archives/pack/model - cut",
		"/archives/other/model")
	a, b := seeded[0], seeded[1]

	siblings, err := store.SiblingsOf(context.Background(), "/archives/pack")
	if err != nil {
		t.Fatalf("SiblingsOf: %v", err)
	}
	if len(siblings) != 2 || siblings[0].ID != a.ID || siblings[1].ID != b.ID {
		t.Fatalf("siblings = %d records", len(siblings))
	}
}

func TestBatchUpdateRoundTripsFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := testsupport.NewRecord(t, store, "/a/knight", "fantasy_battles", "")
	err := store.BatchUpdate(ctx, []catalog.RecordUpdate{{
		ID: record.ID,
		Fields: map[string]any{
			catalog.FieldCodexUnitName: "executioner",
			catalog.FieldScaleRatio:    32,
			catalog.FieldWarnings:      []string{"cross-scale partner"},
		},
	}})
	if err != nil {
		t.Fatalf("BatchUpdate: %v", err)
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CodexUnitName != "executioner" || got.ScaleRatio != 32 {
		t.Fatalf("fields not persisted: %+v", got)
	}
	if !reflect.DeepEqual(got.Warnings, []string{"cross-scale partner"}) {
		t.Fatalf("warnings = %v", got.Warnings)
	}
	if !got.UpdatedAt.After(record.UpdatedAt) && !got.UpdatedAt.Equal(record.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v -> %v", record.UpdatedAt, got.UpdatedAt)
	}
}

func TestBatchUpdateRejectsUnknownField(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	record := testsupport.NewRecord(t, store, "/a/model", "", "")
	err := store.BatchUpdate(context.Background(), []catalog.RecordUpdate{{
		ID:     record.ID,
		Fields: map[string]any{"path": "/elsewhere"},
	}})
	if err == nil {
		t.Fatal("whitelist must reject non-enrichable columns")
	}
}

func TestStatsCountsMissingFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	one := testsupport.NewRecord(t, store, "/a/one", "", "")
	testsupport.NewRecord(t, store, "/a/two", "", "")

	if err := store.BatchUpdate(ctx, []catalog.RecordUpdate{
		{ID: one.ID, Fields: map[string]any{catalog.FieldFranchise: "sun_empire"}},
	}); err != nil {
		t.Fatalf("BatchUpdate: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("total = %d", stats.Total)
	}
	if stats.MissingField[catalog.FieldFranchise] != 1 {
		t.Fatalf("missing franchise = %d", stats.MissingField[catalog.FieldFranchise])
	}
	if stats.MissingField[catalog.FieldScaleRatio] != 2 {
		t.Fatalf("missing scale_ratio = %d", stats.MissingField[catalog.FieldScaleRatio])
	}
}

func TestSaveVocabConflictsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	report := &vocab.BuildReport{
		Indexed: 4,
		Skipped: []vocab.Conflict{{Domain: vocab.DomainUnit, Key: "", Reason: "empty key"}},
		Conflicts: []vocab.Conflict{
			{Domain: vocab.DomainFaction, Key: "grey_legion", Reason: "duplicate key"},
		},
	}
	if err := store.SaveVocabConflicts(ctx, "run-1", report); err != nil {
		t.Fatalf("SaveVocabConflicts: %v", err)
	}

	conflicts, err := store.VocabConflictsForRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("VocabConflictsForRun: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("conflicts = %d", len(conflicts))
	}
	if conflicts[1].Key != "grey_legion" || conflicts[1].Reason != "duplicate key" {
		t.Fatalf("unexpected conflict: %+v", conflicts[1])
	}

	// A clean report writes nothing.
	if err := store.SaveVocabConflicts(ctx, "run-2", &vocab.BuildReport{Indexed: 9}); err != nil {
		t.Fatalf("SaveVocabConflicts clean: %v", err)
	}
	clean, err := store.VocabConflictsForRun(ctx, "run-2")
	if err != nil {
		t.Fatalf("VocabConflictsForRun clean: %v", err)
	}
	if len(clean) != 0 {
		t.Fatalf("clean run persisted %d conflicts", len(clean))
	}
}
