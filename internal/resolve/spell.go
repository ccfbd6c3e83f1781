package resolve

import (
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// spellContextTokens mark folders holding spell or manifestation assets
// rather than ordinary units.
var spellContextTokens = map[string]struct{}{
	"spell": {}, "spells": {}, "magic": {}, "manifestation": {},
	"manifestations": {}, "endless": {}, "invocation": {}, "invocations": {},
}

// SpellBias injects a faction's registered spell-category entities when the
// folder context suggests a spell asset, and favors spell entities over
// ordinary units in that context. Injected candidates are never accepted
// without independent text corroboration.
type SpellBias struct {
	index  *vocab.Index
	tuning Tuning
}

func (b *SpellBias) Name() string { return "spell" }

func (b *SpellBias) Apply(domain vocab.Domain, stream tokenize.Stream, hints Hints, candidates []Candidate) []Candidate {
	if !b.detect(stream) {
		return candidates
	}

	adjusted := make([]Candidate, 0, len(candidates)+2)
	present := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		present[candidate.Key] = struct{}{}
		if b.keyHasTag(domain, candidate.Key, "spell") {
			candidate.Score += b.tuning.SpellBoost
		}
		adjusted = append(adjusted, candidate)
	}

	// Spell entities live in the unit domain; resolving any other domain over
	// a spell folder must not pull unit keys into its result. Injection also
	// requires a faction hint, otherwise the spell vocabulary of every
	// faction would flood the list.
	if domain != vocab.DomainUnit || hints.FactionKey == "" {
		return adjusted
	}
	factionTag := "faction:" + hints.FactionKey
	for _, key := range b.index.KeysWithTag(domain, "spell") {
		if _, already := present[key]; already {
			continue
		}
		if !b.keyHasTag(domain, key, factionTag) {
			continue
		}
		present[key] = struct{}{}
		adjusted = append(adjusted, Candidate{
			Domain: domain,
			Key:    key,
			Tier:   vocab.TierWeak,
			Basis:  BasisContextInjected,
			Score:  b.tuning.SpellSeedScore,
		})
	}
	return adjusted
}

func (b *SpellBias) detect(stream tokenize.Stream) bool {
	for _, token := range stream.Tokens {
		if _, ok := spellContextTokens[token]; ok {
			return true
		}
	}
	return false
}

func (b *SpellBias) keyHasTag(domain vocab.Domain, key, tag string) bool {
	for _, t := range b.index.ContextTags(domain, key) {
		if t == tag {
			return true
		}
	}
	return false
}
