package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteVocabFile drops a vocabulary YAML file into the config's vocab
// directory, creating the directory on first use.
func WriteVocabFile(t testing.TB, dir, name, contents string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir vocab dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write vocab file: %v", err)
	}
	return path
}
