package vocab

import "strings"

// Domain identifies one curated category of entities.
type Domain string

const (
	DomainDesigner  Domain = "designer"
	DomainFranchise Domain = "franchise"
	DomainCharacter Domain = "character"
	DomainLineage   Domain = "lineage"
	DomainFaction   Domain = "faction"
	DomainUnit      Domain = "unit"
)

var allDomains = []Domain{
	DomainDesigner,
	DomainFranchise,
	DomainCharacter,
	DomainLineage,
	DomainFaction,
	DomainUnit,
}

// AllDomains returns the closed, ordered set of known domains.
func AllDomains() []Domain {
	cp := make([]Domain, len(allDomains))
	copy(cp, allDomains)
	return cp
}

// ParseDomain converts a string into a known Domain.
func ParseDomain(value string) (Domain, bool) {
	normalized := Domain(strings.ToLower(strings.TrimSpace(value)))
	for _, domain := range allDomains {
		if domain == normalized {
			return domain, true
		}
	}
	return "", false
}

// Tier is the curator-assigned confidence level of an entry's aliases.
// Strong signals alone can justify acceptance; weak signals require
// corroboration.
type Tier string

const (
	TierStrong Tier = "strong"
	TierWeak   Tier = "weak"
)

// ParseTier converts a string into a known Tier; empty input defaults to
// strong, matching most curated files which only annotate the weak entries.
func ParseTier(value string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(TierStrong):
		return TierStrong, true
	case string(TierWeak):
		return TierWeak, true
	default:
		return "", false
	}
}
