package main

import "testing"

func TestCatalogAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "catalog", "add",
		"/archives/GreyLegion/Executioner - uncut",
		"--system", "fantasy_battles", "--category", "infantry")
	if err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	requireContains(t, out, "Added record 1")

	out, _, err = runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Executioner - uncut")
}

func TestCatalogListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestCatalogStatusCountsMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "catalog", "add", "/a/model"); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	out, _, err := runCLI(t, env, "catalog", "status")
	if err != nil {
		t.Fatalf("catalog status: %v", err)
	}
	requireContains(t, out, "Records: 1")
	requireContains(t, out, "designer")
}

func TestCatalogShowUnknownRecordFails(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "catalog", "show", "42"); err == nil {
		t.Fatal("show of missing record must fail")
	}
}
