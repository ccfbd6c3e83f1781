package main

import (
	"errors"
	"testing"
)

const testUnitVocab = `domain: unit
entries:
  - key: executioner
    display_name: Executioner
    aliases: ["executioner"]
`

func TestEnrichDryRunProposes(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVocab(t, "units.yaml", testUnitVocab)

	if _, _, err := runCLI(t, env, "catalog", "add", "/a/Executioner 32mm"); err != nil {
		t.Fatalf("catalog add: %v", err)
	}

	out, _, err := runCLI(t, env, "enrich")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	requireContains(t, out, "executioner")
	requireContains(t, out, "dry-run")
}

func TestEnrichApplyThenNothingToDo(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVocab(t, "units.yaml", testUnitVocab)

	if _, _, err := runCLI(t, env, "catalog", "add", "/a/Executioner 32mm"); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	if _, _, err := runCLI(t, env, "enrich", "--apply"); err != nil {
		t.Fatalf("enrich --apply: %v", err)
	}

	// A second apply finds nothing left to change.
	_, _, err := runCLI(t, env, "enrich", "--apply")
	if !errors.Is(err, errNothingToDo) {
		t.Fatalf("err = %v, want errNothingToDo", err)
	}

	out, _, err := runCLI(t, env, "catalog", "show", "1")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "executioner")
}

func TestEnrichJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVocab(t, "units.yaml", testUnitVocab)

	if _, _, err := runCLI(t, env, "catalog", "add", "/a/Executioner"); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	out, _, err := runCLI(t, env, "enrich", "--json")
	if err != nil {
		t.Fatalf("enrich --json: %v", err)
	}
	requireContains(t, out, `"run_id"`)
	requireContains(t, out, `"field_change_summary"`)
}

func TestVocabLintReportsCleanVocabulary(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVocab(t, "units.yaml", testUnitVocab)

	out, _, err := runCLI(t, env, "vocab", "lint")
	if err != nil {
		t.Fatalf("vocab lint: %v", err)
	}
	requireContains(t, out, "No issues found")
}

func TestVocabLintFailsOnDuplicateKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeVocab(t, "units.yaml", testUnitVocab)
	env.writeVocab(t, "units_dup.yaml", testUnitVocab)

	out, _, err := runCLI(t, env, "vocab", "lint")
	if err == nil {
		t.Fatal("duplicate keys must fail lint")
	}
	requireContains(t, out, "executioner")
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := env.baseDir + "/generated/config.toml"
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
}
