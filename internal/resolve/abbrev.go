package resolve

import (
	"strings"

	"printvault/internal/textutil"
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// AbbreviationBias gates two/three-letter sub-faction codes. A short code
// only survives when broader parent-domain vocabulary is independently
// present in the same stream: a "context:<phrase>" tag on the entry, its
// parent's name or aliases, or another family member matched through a
// longer phrase. This keeps unrelated short codes from colliding.
type AbbreviationBias struct {
	index *vocab.Index
}

func (b *AbbreviationBias) Name() string { return "abbreviation" }

func (b *AbbreviationBias) Apply(domain vocab.Domain, stream tokenize.Stream, hints Hints, candidates []Candidate) []Candidate {
	matchedFamilies := make(map[string]struct{})
	for _, candidate := range candidates {
		if !isAbbreviationPhrase(candidate.Phrase) {
			matchedFamilies[b.index.FamilyRoot(domain, candidate.Key)] = struct{}{}
		}
	}

	kept := candidates[:0]
	for _, candidate := range candidates {
		if !isAbbreviationPhrase(candidate.Phrase) {
			kept = append(kept, candidate)
			continue
		}
		if b.gated(domain, candidate, stream, matchedFamilies) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// isAbbreviationPhrase reports whether a matched phrase is a bare short
// letter code (e.g. "bt", "dkok").
func isAbbreviationPhrase(phrase string) bool {
	if phrase == "" || strings.Contains(phrase, " ") {
		return false
	}
	if len(phrase) < 2 || len(phrase) > 3 {
		return false
	}
	for _, r := range phrase {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (b *AbbreviationBias) gated(domain vocab.Domain, candidate Candidate, stream tokenize.Stream, matchedFamilies map[string]struct{}) bool {
	if _, ok := matchedFamilies[b.index.FamilyRoot(domain, candidate.Key)]; ok {
		return true
	}
	for _, tag := range b.index.ContextTags(domain, candidate.Key) {
		if phrase, ok := strings.CutPrefix(tag, "context:"); ok {
			if textutil.ContainsPhrase(stream.Joined, textutil.NormalizePhrase(phrase)) {
				return true
			}
		}
	}
	entry, ok := b.index.Entry(domain, candidate.Key)
	if ok && entry.ParentKey != "" {
		if parent, ok := b.index.Entry(domain, entry.ParentKey); ok {
			phrases := append([]string{parent.Display(), parent.Key}, parent.Aliases...)
			for _, phrase := range phrases {
				normalized := textutil.NormalizePhrase(phrase)
				if normalized != "" && textutil.ContainsPhrase(stream.Joined, normalized) {
					return true
				}
			}
		}
	}
	return false
}
