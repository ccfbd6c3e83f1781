package apply_test

import (
	"context"
	"testing"

	"printvault/internal/apply"
	"printvault/internal/catalog"
	"printvault/internal/testsupport"
)

func TestEngineDryRunReportsWithoutWriting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := testsupport.NewRecord(t, store, "/a/executioner", "fantasy_battles", "")
	var proposal apply.Proposal
	proposal.SetField(catalog.FieldCodexUnitName, "executioner")
	changeset := apply.Compute(record, proposal, false)

	engine := apply.NewEngine(store, nil, 10)
	report, err := engine.Run(ctx, "run-dry", 1, []apply.Changeset{changeset}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.HasChanges() || report.Apply {
		t.Fatalf("report = %+v", report)
	}
	if report.FieldChangeSummary[catalog.FieldCodexUnitName] != 1 {
		t.Fatalf("summary = %v", report.FieldChangeSummary)
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CodexUnitName != "" {
		t.Fatalf("dry run wrote to the store: %q", got.CodexUnitName)
	}
}

func TestEngineApplyPersistsInBatches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	var changesets []apply.Changeset
	ids := make([]int64, 0, 5)
	for _, path := range []string{"/a/one", "/a/two", "/a/three", "/a/four", "/a/five"} {
		record := testsupport.NewRecord(t, store, path, "", "")
		ids = append(ids, record.ID)
		var proposal apply.Proposal
		proposal.SetField(catalog.FieldDesigner, "grey_legion")
		changesets = append(changesets, apply.Compute(record, proposal, false))
	}

	// Batch size 2 forces three commits.
	engine := apply.NewEngine(store, nil, 2)
	report, err := engine.Run(ctx, "run-apply", 5, changesets, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Proposals) != 5 {
		t.Fatalf("proposals = %d", len(report.Proposals))
	}

	for _, id := range ids {
		got, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Designer != "grey_legion" {
			t.Fatalf("record %d not written: %+v", id, got)
		}
	}
}

func TestEngineSecondApplyIsANoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := testsupport.NewRecord(t, store, "/a/model", "", "")
	var proposal apply.Proposal
	proposal.SetField(catalog.FieldFranchise, "sun_empire")

	engine := apply.NewEngine(store, nil, 10)
	first, err := engine.Run(ctx, "run-1", 1, []apply.Changeset{apply.Compute(record, proposal, false)}, true)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if !first.HasChanges() {
		t.Fatal("first run should write")
	}

	refreshed, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	second, err := engine.Run(ctx, "run-2", 1, []apply.Changeset{apply.Compute(refreshed, proposal, false)}, true)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.HasChanges() {
		t.Fatalf("second run proposals = %+v", second.Proposals)
	}
}

func TestEngineDropsEmptyChangesets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	engine := apply.NewEngine(store, nil, 10)
	report, err := engine.Run(context.Background(), "run-empty", 3, []apply.Changeset{{}, {}}, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.HasChanges() || report.TotalExamined != 3 {
		t.Fatalf("report = %+v", report)
	}
}
