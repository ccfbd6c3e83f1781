package resolve_test

import (
	"reflect"
	"testing"

	"printvault/internal/resolve"
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

func unitIndex(t *testing.T, entries ...vocab.Entry) *vocab.Index {
	t.Helper()
	idx, report := vocab.BuildIndex(entries)
	if len(report.Skipped) > 0 {
		t.Fatalf("fixture entries skipped: %+v", report.Skipped)
	}
	return idx
}

func newResolver(idx *vocab.Index, biases ...resolve.Bias) *resolve.Resolver {
	return resolve.New(idx, resolve.DefaultTuning(), nil, biases...)
}

func TestLongestMatchPrecedence(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "assault_squad", Aliases: []string{"assault squad"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "terminator_assault_squad", Aliases: []string{"terminator assault squad"}},
	)
	stream := tokenize.Tokenize("/heresy/Terminator Assault Squad/body.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "terminator_assault_squad" {
		t.Fatalf("expected terminator_assault_squad accepted, got %+v", result)
	}
	for _, runner := range result.RunnersUp {
		if runner.Key == "assault_squad" {
			t.Fatalf("subsumed phrase candidate survived: %+v", result.RunnersUp)
		}
	}
}

func TestExclusionTermsVetoCandidate(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{
			Domain:       vocab.DomainUnit,
			Key:          "terminator_assault_squad",
			Aliases:      []string{"terminator assault squad"},
			ExcludeTerms: []string{"primaris"},
		},
	)
	stream := tokenize.Tokenize("/marines/Primaris Terminator Assault Squad/body.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted != nil {
		t.Fatalf("excluded candidate was accepted: %+v", result.Accepted)
	}
}

func TestInheritedExclusionVetoesChild(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "space_marines", ExcludeTerms: []string{"chaos"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "assault_squad", ParentKey: "space_marines", Aliases: []string{"assault squad"}},
	)
	stream := tokenize.Tokenize("/models/Chaos Assault Squad/body.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted != nil {
		t.Fatalf("parent exclusion not inherited: %+v", result.Accepted)
	}
}

func TestGenericAliasAloneIsAmbiguous(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "chaos_knight", Aliases: []string{"knight"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "imperial_knight", Aliases: []string{"knight"}},
	)
	stream := tokenize.Tokenize("/downloads/knight/")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted != nil {
		t.Fatalf("bare generic alias must not be accepted, got %+v", result.Accepted)
	}
	if !result.Ambiguous || len(result.RunnersUp) == 0 {
		t.Fatalf("expected ambiguous result with runners-up, got %+v", result)
	}
}

func TestGenericAliasWithCorroborationAccepted(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "imperial_knight", Aliases: []string{"knight", "questoris"}},
	)
	stream := tokenize.Tokenize("/40k/Questoris Knight/armour.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "imperial_knight" {
		t.Fatalf("corroborated generic alias should resolve, got %+v", result)
	}
}

func TestSystemConsistencyBonusBreaksTie(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "aos_executioner", System: "aos", Aliases: []string{"executioner"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "kt_executioner", System: "killteam", Aliases: []string{"executioner"}},
	)
	stream := tokenize.Tokenize("/minis/Executioner/model.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{System: "killteam"})
	if result.Accepted == nil || result.Accepted.Key != "kt_executioner" {
		t.Fatalf("expected system-consistent candidate, got %+v", result)
	}
}

func TestCoAcceptanceOnSharedPhrase(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "aos_executioner", Aliases: []string{"executioner"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "kt_executioner", Aliases: []string{"executioner"}},
	)
	stream := tokenize.Tokenize("/minis/Executioner/model.stl")

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "aos_executioner" {
		t.Fatalf("expected deterministic primary, got %+v", result)
	}
	if len(result.Secondary) != 1 || result.Secondary[0].Key != "kt_executioner" {
		t.Fatalf("expected co-accepted secondary, got %+v", result.Secondary)
	}
}

func TestWeakConsensusAcceptance(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainFranchise, Key: "star_wars", Tier: vocab.TierWeak, Aliases: []string{"jedi", "sith"}},
		vocab.Entry{Domain: vocab.DomainFranchise, Key: "star_trek", Tier: vocab.TierWeak, Aliases: []string{"starfleet"}},
	)
	stream := tokenize.Tokenize("/collection/jedi sith statue/jedi.stl")

	result := newResolver(idx).Resolve(vocab.DomainFranchise, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "star_wars" {
		t.Fatalf("expected weak consensus acceptance, got %+v", result)
	}
	if result.Accepted.Basis != resolve.BasisWeakConsensus {
		t.Fatalf("expected weak_consensus basis, got %q", result.Accepted.Basis)
	}
}

func TestWeakSignalsWithoutLocalCorroborationStayAmbiguous(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainFranchise, Key: "star_wars", Tier: vocab.TierWeak, Aliases: []string{"jedi", "sith"}},
	)
	// Weak hits only in a distant ancestor folder; the local name is opaque.
	stream := tokenize.Tokenize("/jedi sith/archive/batch42/model7.stl")

	result := newResolver(idx).Resolve(vocab.DomainFranchise, stream, resolve.Hints{})
	if result.Accepted != nil {
		t.Fatalf("distant weak hits must not be accepted, got %+v", result.Accepted)
	}
}

func TestSingleWeakSignalInsufficient(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainFranchise, Key: "star_wars", Tier: vocab.TierWeak, Aliases: []string{"jedi"}},
	)
	stream := tokenize.Tokenize("/collection/jedi/statue.stl")

	result := newResolver(idx).Resolve(vocab.DomainFranchise, stream, resolve.Hints{})
	if result.Accepted != nil {
		t.Fatalf("single weak signal must not be accepted, got %+v", result.Accepted)
	}
	if !result.Ambiguous {
		t.Fatalf("expected ambiguous result, got %+v", result)
	}
}

func TestLocaleAliasResolvesForCJKStream(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{
			Domain:        vocab.DomainUnit,
			Key:           "ghoul_patrol",
			LocaleAliases: map[tokenize.Locale][]string{tokenize.LocaleJapanese: {"グール"}},
		},
	)
	stream := tokenize.Tokenize("/アンデッド/グール/model.stl")
	if stream.Locale != tokenize.LocaleJapanese {
		t.Fatalf("fixture stream locale = %q", stream.Locale)
	}

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "ghoul_patrol" {
		t.Fatalf("locale alias should resolve, got %+v", result)
	}
}

func TestLocaleAliasTiePrefersChinese(t *testing.T) {
	// The same phrase curated under both CJK alias sets with equal match
	// counts resolves through the Chinese set.
	idx := unitIndex(t,
		vocab.Entry{
			Domain:        vocab.DomainUnit,
			Key:           "kishi",
			LocaleAliases: map[tokenize.Locale][]string{tokenize.LocaleJapanese: {"骑士"}},
		},
		vocab.Entry{
			Domain:        vocab.DomainUnit,
			Key:           "qishi",
			LocaleAliases: map[tokenize.Locale][]string{tokenize.LocaleChinese: {"骑士"}},
		},
	)
	stream := tokenize.Tokenize("/models/骑士/figure.stl")
	if stream.Locale != tokenize.LocaleChinese {
		t.Fatalf("fixture stream locale = %q", stream.Locale)
	}

	result := newResolver(idx).Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	if result.Accepted == nil || result.Accepted.Key != "qishi" {
		t.Fatalf("expected Chinese alias set to win the tie, got %+v", result)
	}
	for _, runner := range result.RunnersUp {
		if runner.Key == "kishi" {
			t.Fatalf("losing locale's candidate survived: %+v", result.RunnersUp)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "ghoul_king", Aliases: []string{"ghoul king"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "terrorgheist", Aliases: []string{"terrorgeist", "terrorgheist"}, ContextTags: []string{"mount"}},
		vocab.Entry{Domain: vocab.DomainUnit, Key: "zombie_dragon", Aliases: []string{"zombie dragon"}, ContextTags: []string{"mount"}},
	)
	tuning := resolve.DefaultTuning()
	stream := tokenize.Tokenize("/fec/Ghoul King on Terrorgeist/body.stl")

	resolver := resolve.New(idx, tuning, nil, resolve.BiasChain(idx, tuning, resolve.DefaultBiasSwitches())...)
	first := resolver.Resolve(vocab.DomainUnit, stream, resolve.Hints{})
	for i := 0; i < 20; i++ {
		again := resolver.Resolve(vocab.DomainUnit, stream, resolve.Hints{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolution not deterministic:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

func TestEmptyStreamResolvesToNothing(t *testing.T) {
	idx := unitIndex(t,
		vocab.Entry{Domain: vocab.DomainUnit, Key: "orc_boy", Aliases: []string{"orc boy"}},
	)
	result := newResolver(idx).Resolve(vocab.DomainUnit, tokenize.Tokenize(""), resolve.Hints{})
	if result.Accepted != nil || result.Ambiguous {
		t.Fatalf("empty stream should produce empty result, got %+v", result)
	}
}
