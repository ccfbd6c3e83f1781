package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	vocabDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	vocabDir := filepath.Join(base, "vocab")
	if err := os.MkdirAll(vocabDir, 0o755); err != nil {
		t.Fatalf("mkdir vocab dir: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
database = %q
vocab_dir = %q
log_dir = %q
report_dir = %q
`,
		filepath.Join(base, "catalog.db"),
		vocabDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "reports"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, vocabDir: vocabDir}
}

func (env *cliTestEnv) writeVocab(t *testing.T, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(env.vocabDir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
