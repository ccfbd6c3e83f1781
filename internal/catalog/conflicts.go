package catalog

import (
	"context"
	"fmt"
	"time"

	"printvault/internal/vocab"
)

// SaveVocabConflicts records the issues from one vocabulary build so
// operators can review them after the run. Earlier reports for other runs
// are kept.
func (s *Store) SaveVocabConflicts(ctx context.Context, runID string, report *vocab.BuildReport) error {
	if report == nil || !report.HasIssues() {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin conflicts tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		for _, group := range [][]vocab.Conflict{report.Skipped, report.Conflicts} {
			for _, conflict := range group {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO vocab_conflicts (run_id, domain, key, reason, created_at)
                     VALUES (?, ?, ?, ?, ?)`,
					runID, string(conflict.Domain), conflict.Key, conflict.Reason, timestamp,
				); err != nil {
					return fmt.Errorf("insert vocab conflict: %w", err)
				}
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit conflicts: %w", err)
		}
		return nil
	})
}

// VocabConflictsForRun returns the persisted build issues for one run.
func (s *Store) VocabConflictsForRun(ctx context.Context, runID string) ([]*VocabConflict, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, domain, key, reason, created_at
         FROM vocab_conflicts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list vocab conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []*VocabConflict
	for rows.Next() {
		var (
			conflict   VocabConflict
			createdRaw string
		)
		if err := rows.Scan(&conflict.ID, &conflict.RunID, &conflict.Domain, &conflict.Key, &conflict.Reason, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			conflict.CreatedAt = created
		}
		conflicts = append(conflicts, &conflict)
	}
	return conflicts, rows.Err()
}
