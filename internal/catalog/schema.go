package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump it when the schema
// changes; older catalogs must be recreated after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the catalog was written by a different schema
// version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// initSchema runs the idempotent DDL on every open, then stamps a fresh
// catalog with the current version or rejects one stamped differently.
func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: catalog has version %d, expected %d (delete the database and re-add records)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}
