package resolve

import (
	"strings"

	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// riderRoleTokens are words that mark the humanoid rider side of a
// creature-plus-rider composition. Vocabulary entries can add to the class
// with the "rider" context tag.
var riderRoleTokens = map[string]struct{}{
	"king": {}, "queen": {}, "lord": {}, "prince": {}, "hero": {},
	"champion": {}, "rider": {}, "master": {}, "knight": {},
}

var mountConnectives = []string{"mounted", "riding", "astride"}

// MountBias handles "X on Y" phrasing: it injects the mounted variant of a
// matched unit as an extra candidate, boosts rider-class candidates when
// rider vocabulary precedes the connective, and penalizes bare mounts.
type MountBias struct {
	index  *vocab.Index
	tuning Tuning
}

func (b *MountBias) Name() string { return "mount" }

func (b *MountBias) Apply(domain vocab.Domain, stream tokenize.Stream, hints Hints, candidates []Candidate) []Candidate {
	connectiveAt := b.detect(stream)
	if connectiveAt < 0 {
		return candidates
	}

	present := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		present[candidate.Key] = struct{}{}
	}

	adjusted := make([]Candidate, 0, len(candidates)+2)
	for _, candidate := range candidates {
		if b.hasTag(candidate, "mount") && !b.hasTag(candidate, "mounted") {
			candidate.Score -= b.tuning.MountPenalty
		}
		if b.isRider(candidate, stream, connectiveAt) {
			candidate.Score += b.tuning.RiderBoost
		}
		adjusted = append(adjusted, candidate)
	}

	// The mounted variant of a matched unit is modeled as a child entry
	// tagged "mounted"; seed it below direct matches so it only wins with
	// further support.
	for _, candidate := range candidates {
		for _, child := range b.index.Children(domain, candidate.Key) {
			if _, already := present[child]; already {
				continue
			}
			if !b.keyHasTag(domain, child, "mounted") {
				continue
			}
			present[child] = struct{}{}
			adjusted = append(adjusted, Candidate{
				Domain: domain,
				Key:    child,
				Tier:   vocab.TierWeak,
				Basis:  BasisContextInjected,
				Score:  b.tuning.MountSeedScore,
			})
		}
	}
	return adjusted
}

// detect returns the rune offset of the connective in the joined stream, or
// -1 when no mount phrasing is present.
func (b *MountBias) detect(stream tokenize.Stream) int {
	joined := " " + stream.Joined + " "
	for _, word := range mountConnectives {
		if at := strings.Index(joined, " "+word+" "); at >= 0 {
			return at
		}
	}
	// "X on Y" needs tokens on both sides of the connective.
	if at := strings.Index(joined, " on "); at > 1 && at+4 < len(joined)-1 {
		return at
	}
	return -1
}

// isRider reports whether a candidate represents the rider class: tagged
// "rider", or matched through a phrase containing rider-role vocabulary that
// precedes the connective word in the stream.
func (b *MountBias) isRider(candidate Candidate, stream tokenize.Stream, connectiveAt int) bool {
	if b.hasTag(candidate, "rider") {
		return true
	}
	if candidate.Phrase == "" {
		return false
	}
	for _, token := range strings.Fields(candidate.Phrase) {
		if _, role := riderRoleTokens[token]; !role {
			continue
		}
		joined := " " + stream.Joined + " "
		if at := strings.Index(joined, " "+token+" "); at >= 0 && at < connectiveAt {
			return true
		}
	}
	return false
}

func (b *MountBias) hasTag(candidate Candidate, tag string) bool {
	return b.keyHasTag(candidate.Domain, candidate.Key, tag)
}

func (b *MountBias) keyHasTag(domain vocab.Domain, key, tag string) bool {
	for _, t := range b.index.ContextTags(domain, key) {
		if t == tag {
			return true
		}
	}
	return false
}
