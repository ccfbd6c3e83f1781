package vocab_test

import (
	"reflect"
	"testing"

	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

func TestBuildIndexRegistersPhrases(t *testing.T) {
	idx, report := vocab.BuildIndex([]vocab.Entry{
		{
			Domain:      vocab.DomainUnit,
			Key:         "terminator_assault_squad",
			DisplayName: "Terminator Assault Squad",
			Aliases:     []string{"assault terminators"},
		},
	})
	if report.HasIssues() {
		t.Fatalf("unexpected build issues: %+v", report)
	}
	strong := idx.Phrases(vocab.DomainUnit, vocab.TierStrong)
	for _, phrase := range []string{"terminator assault squad", "assault terminators"} {
		if holders := strong[phrase]; len(holders) != 1 || holders[0] != "terminator_assault_squad" {
			t.Fatalf("phrase %q holders = %v", phrase, holders)
		}
	}
}

func TestBuildIndexSkipsEmptyKey(t *testing.T) {
	idx, report := vocab.BuildIndex([]vocab.Entry{
		{Domain: vocab.DomainDesigner, Key: ""},
		{Domain: vocab.DomainDesigner, Key: "loot_studios"},
	})
	if len(report.Skipped) != 1 {
		t.Fatalf("expected one skipped entry, got %+v", report.Skipped)
	}
	if report.Indexed != 1 {
		t.Fatalf("expected one indexed entry, got %d", report.Indexed)
	}
	if _, ok := idx.Entry(vocab.DomainDesigner, "loot_studios"); !ok {
		t.Fatal("valid entry missing from index")
	}
}

func TestBuildIndexDuplicateKeyFirstWins(t *testing.T) {
	idx, report := vocab.BuildIndex([]vocab.Entry{
		{Domain: vocab.DomainFaction, Key: "flesh_eater_courts", DisplayName: "Flesh-eater Courts"},
		{Domain: vocab.DomainFaction, Key: "flesh_eater_courts", DisplayName: "Duplicate"},
	})
	if len(report.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", report.Conflicts)
	}
	entry, ok := idx.Entry(vocab.DomainFaction, "flesh_eater_courts")
	if !ok || entry.DisplayName != "Flesh-eater Courts" {
		t.Fatalf("first entry should win, got %+v", entry)
	}
}

func TestBuildIndexRecordsAliasCollisions(t *testing.T) {
	idx, report := vocab.BuildIndex([]vocab.Entry{
		{Domain: vocab.DomainUnit, Key: "chaos_knight", Aliases: []string{"knight"}},
		{Domain: vocab.DomainUnit, Key: "imperial_knight", Aliases: []string{"knight"}},
	})
	if len(report.Conflicts) != 1 {
		t.Fatalf("expected collision conflict, got %+v", report.Conflicts)
	}
	// Both candidates stay indexed; resolution happens at scoring time.
	holders := idx.Phrases(vocab.DomainUnit, vocab.TierStrong)["knight"]
	if !reflect.DeepEqual(holders, []string{"chaos_knight", "imperial_knight"}) {
		t.Fatalf("holders = %v", holders)
	}
}

func TestHierarchyInheritance(t *testing.T) {
	idx, _ := vocab.BuildIndex([]vocab.Entry{
		{
			Domain:       vocab.DomainLineage,
			Key:          "elf",
			ExcludeTerms: []string{"dwarf"},
			ContextTags:  []string{"humanoid"},
		},
		{
			Domain:       vocab.DomainLineage,
			Key:          "dark_elf",
			ParentKey:    "elf",
			ExcludeTerms: []string{"high elf"},
		},
	})

	if got := idx.RootPath(vocab.DomainLineage, "dark_elf"); !reflect.DeepEqual(got, []string{"elf", "dark_elf"}) {
		t.Fatalf("RootPath = %v", got)
	}
	if got := idx.FamilyRoot(vocab.DomainLineage, "dark_elf"); got != "elf" {
		t.Fatalf("FamilyRoot = %q", got)
	}
	if got := idx.Excludes(vocab.DomainLineage, "dark_elf"); !reflect.DeepEqual(got, []string{"dwarf", "high elf"}) {
		t.Fatalf("Excludes = %v", got)
	}
	if got := idx.ContextTags(vocab.DomainLineage, "dark_elf"); !reflect.DeepEqual(got, []string{"humanoid"}) {
		t.Fatalf("ContextTags = %v", got)
	}
}

func TestLocalePhrases(t *testing.T) {
	idx, _ := vocab.BuildIndex([]vocab.Entry{
		{
			Domain: vocab.DomainCharacter,
			Key:    "miku",
			LocaleAliases: map[tokenize.Locale][]string{
				tokenize.LocaleJapanese: {"ミク"},
			},
		},
	})
	phrases := idx.LocalePhrases(vocab.DomainCharacter, tokenize.LocaleJapanese)
	if holders := phrases["ミク"]; len(holders) != 1 || holders[0] != "miku" {
		t.Fatalf("locale holders = %v", holders)
	}
	if idx.LocalePhrases(vocab.DomainCharacter, tokenize.LocaleChinese) != nil {
		t.Fatal("expected no zh phrases")
	}
}

func TestKeysWithTagIncludesInherited(t *testing.T) {
	idx, _ := vocab.BuildIndex([]vocab.Entry{
		{Domain: vocab.DomainUnit, Key: "endless_spells", ContextTags: []string{"spell"}},
		{Domain: vocab.DomainUnit, Key: "purple_sun", ParentKey: "endless_spells"},
		{Domain: vocab.DomainUnit, Key: "orc_boy"},
	})
	got := idx.KeysWithTag(vocab.DomainUnit, "spell")
	if !reflect.DeepEqual(got, []string{"endless_spells", "purple_sun"}) {
		t.Fatalf("KeysWithTag = %v", got)
	}
}
