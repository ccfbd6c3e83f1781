package apply

import (
	"context"
	"fmt"
	"log/slog"

	"printvault/internal/catalog"
	"printvault/internal/logging"
)

// Report is the structured outcome of one run. Proposals keep record ID
// order so two runs over the same catalog diff cleanly.
type Report struct {
	RunID              string         `json:"run_id"`
	Apply              bool           `json:"apply"`
	TotalExamined      int            `json:"total_examined"`
	Proposals          []Changeset    `json:"proposals"`
	FieldChangeSummary map[string]int `json:"field_change_summary,omitempty"`
}

// HasChanges reports whether any record would be written.
func (r *Report) HasChanges() bool {
	return len(r.Proposals) > 0
}

// Engine persists changesets in fixed-size batches.
type Engine struct {
	store     *catalog.Store
	logger    *slog.Logger
	batchSize int
}

// NewEngine builds an apply engine. A nil logger discards output.
func NewEngine(store *catalog.Store, logger *slog.Logger, batchSize int) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Engine{store: store, logger: logger, batchSize: batchSize}
}

// Run assembles the report from the computed changesets and, in apply mode,
// commits them batch by batch. Dry runs produce the identical report without
// touching the store. A failing batch aborts the run; earlier batches stay
// committed and the error names the batch so the operator can resume.
func (e *Engine) Run(ctx context.Context, runID string, totalExamined int, changesets []Changeset, applyMode bool) (*Report, error) {
	report := &Report{
		RunID:         runID,
		Apply:         applyMode,
		TotalExamined: totalExamined,
	}

	for _, changeset := range changesets {
		if changeset.Empty() {
			continue
		}
		report.Proposals = append(report.Proposals, changeset)
		for _, change := range changeset.Changes {
			if report.FieldChangeSummary == nil {
				report.FieldChangeSummary = make(map[string]int)
			}
			report.FieldChangeSummary[change.Field]++
		}
	}

	if !applyMode || len(report.Proposals) == 0 {
		return report, nil
	}

	for start := 0; start < len(report.Proposals); start += e.batchSize {
		end := start + e.batchSize
		if end > len(report.Proposals) {
			end = len(report.Proposals)
		}
		updates := make([]catalog.RecordUpdate, 0, end-start)
		for _, changeset := range report.Proposals[start:end] {
			updates = append(updates, changeset.Update())
		}
		if err := e.store.BatchUpdate(ctx, updates); err != nil {
			return report, fmt.Errorf("apply batch %d (records %d-%d of %d): %w",
				start/e.batchSize, start, end-1, len(report.Proposals), err)
		}
		e.logger.Debug("batch committed",
			logging.String("run_id", runID),
			logging.Int("batch", start/e.batchSize),
			logging.Int("records", end-start))
	}

	e.logger.Info("apply finished",
		logging.String("run_id", runID),
		logging.Int("records_changed", len(report.Proposals)),
		logging.Int("examined", totalExamined))
	return report, nil
}
