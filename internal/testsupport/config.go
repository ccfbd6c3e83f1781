// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"printvault/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(base, "catalog.db")
	cfg.Paths.VocabDir = filepath.Join(base, "vocab")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	return &cfg
}
