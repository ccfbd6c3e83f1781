package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Scope filters a record listing. Zero value selects everything.
type Scope struct {
	// IDs restricts the listing to explicit records.
	IDs []int64
	// MissingField selects only records where the named enrichable field is
	// still empty.
	MissingField string
}

// NewRecord inserts a record for a model path. Filename and parent path are
// derived; system and category are declared, never inferred.
func (s *Store) NewRecord(ctx context.Context, path, system, category string) (*Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("record path is empty")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO records (
            path, filename, parent_path, system, category, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		path,
		filepath.Base(path),
		filepath.Dir(path),
		nullableString(system),
		nullableString(category),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a record by identifier. A missing record returns nil, nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// GetByPath fetches a record by its unique path.
func (s *Store) GetByPath(ctx context.Context, path string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE path = ?`, path)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record by path: %w", err)
	}
	return record, nil
}

// List returns records matching the scope in ID order. ID order keeps runs
// deterministic regardless of insertion history.
func (s *Store) List(ctx context.Context, scope Scope) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var (
		clauses []string
		args    []any
	)

	if len(scope.IDs) > 0 {
		clauses = append(clauses, `id IN (`+makePlaceholders(len(scope.IDs))+`)`)
		for _, id := range scope.IDs {
			args = append(args, id)
		}
	}
	if scope.MissingField != "" {
		clause, err := missingFieldClause(scope.MissingField)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SiblingsOf returns every record sharing a parent path, in ID order.
func (s *Store) SiblingsOf(ctx context.Context, parentPath string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE parent_path = ? ORDER BY id`, parentPath)
	if err != nil {
		return nil, fmt.Errorf("list siblings: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// BatchUpdate applies a group of field updates in one transaction. The whole
// batch commits or none of it does.
func (s *Store) BatchUpdate(ctx context.Context, updates []RecordUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin batch tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		for _, update := range updates {
			query, args, err := buildUpdate(update, timestamp)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("update record %d: %w", update.ID, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
		return nil
	})
}

// buildUpdate renders one UPDATE statement from a whitelisted field map.
// Field names are sorted so the generated SQL is stable.
func buildUpdate(update RecordUpdate, timestamp string) (string, []any, error) {
	if len(update.Fields) == 0 {
		return "", nil, fmt.Errorf("record %d: empty update", update.ID)
	}
	fields := make([]string, 0, len(update.Fields))
	for field := range update.Fields {
		if _, ok := fieldColumns[field]; !ok {
			return "", nil, fmt.Errorf("record %d: unknown field %q", update.ID, field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var (
		sets []string
		args []any
	)
	for _, field := range fields {
		sets = append(sets, fieldColumns[field]+` = ?`)
		value := update.Fields[field]
		if field == FieldWarnings {
			encoded, err := encodeWarnings(value)
			if err != nil {
				return "", nil, fmt.Errorf("record %d: %w", update.ID, err)
			}
			value = encoded
		}
		args = append(args, value)
	}
	sets = append(sets, `updated_at = ?`)
	args = append(args, timestamp, update.ID)

	return `UPDATE records SET ` + strings.Join(sets, `, `) + ` WHERE id = ?`, args, nil
}

func encodeWarnings(value any) (any, error) {
	warnings, ok := value.([]string)
	if !ok {
		return nil, fmt.Errorf("warnings value must be []string, got %T", value)
	}
	if len(warnings) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("marshal warnings: %w", err)
	}
	return string(encoded), nil
}

// Stats summarizes record counts and per-field gaps.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{MissingField: make(map[string]int, len(EnrichableFields))}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	for _, field := range EnrichableFields {
		if field == FieldWarnings {
			continue
		}
		clause, err := missingFieldClause(field)
		if err != nil {
			return nil, err
		}
		var count int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records WHERE `+clause).Scan(&count); err != nil {
			return nil, fmt.Errorf("count missing %s: %w", field, err)
		}
		stats.MissingField[field] = count
	}
	return stats, nil
}

func missingFieldClause(field string) (string, error) {
	column, ok := fieldColumns[field]
	if !ok || field == FieldWarnings {
		return "", fmt.Errorf("unknown filter field %q", field)
	}
	switch field {
	case FieldScaleRatio, FieldScaleMM:
		return `(` + column + ` IS NULL OR ` + column + ` = 0)`, nil
	default:
		return `(` + column + ` IS NULL OR ` + column + ` = '')`, nil
	}
}
