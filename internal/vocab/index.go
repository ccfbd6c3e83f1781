package vocab

import (
	"fmt"
	"sort"

	"printvault/internal/textutil"
	"printvault/internal/tokenize"
)

// Conflict describes an entry or alias the index builder could not accept.
type Conflict struct {
	Domain Domain `json:"domain"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// BuildReport summarizes an index build. Malformed entries never abort the
// build; they are recorded here for operator review.
type BuildReport struct {
	Indexed   int        `json:"indexed"`
	Skipped   []Conflict `json:"skipped,omitempty"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// HasIssues reports whether the build skipped entries or found conflicts.
func (r *BuildReport) HasIssues() bool {
	return r != nil && (len(r.Skipped) > 0 || len(r.Conflicts) > 0)
}

// Index holds the per-domain phrase indices. The curated content is fixed
// after BuildIndex returns, but hierarchy lookups (RootPath, Excludes,
// ContextTags) memoize on first read, so an Index is shared across the
// records of a run yet is not safe for concurrent use.
type Index struct {
	domains map[Domain]*domainIndex
}

type domainIndex struct {
	entries  map[string]*Entry
	keys     []string
	children map[string][]string
	strong   map[string][]string
	weak     map[string][]string
	locale   map[tokenize.Locale]map[string][]string
	// memoized hierarchy walks, filled lazily
	rootPaths map[string][]string
	excludes  map[string][]string
	tags      map[string][]string
}

func newDomainIndex() *domainIndex {
	return &domainIndex{
		entries:   make(map[string]*Entry),
		children:  make(map[string][]string),
		strong:    make(map[string][]string),
		weak:      make(map[string][]string),
		locale:    make(map[tokenize.Locale]map[string][]string),
		rootPaths: make(map[string][]string),
		excludes:  make(map[string][]string),
		tags:      make(map[string][]string),
	}
}

// BuildIndex constructs the immutable phrase indices from curated entries.
func BuildIndex(entries []Entry) (*Index, *BuildReport) {
	idx := &Index{domains: make(map[Domain]*domainIndex)}
	report := &BuildReport{}

	for i := range entries {
		entry := entries[i]
		if entry.Key == "" {
			report.Skipped = append(report.Skipped, Conflict{
				Domain: entry.Domain,
				Reason: "empty canonical key",
			})
			continue
		}
		if _, known := ParseDomain(string(entry.Domain)); !known {
			report.Skipped = append(report.Skipped, Conflict{
				Domain: entry.Domain,
				Key:    entry.Key,
				Reason: fmt.Sprintf("unknown domain %q", entry.Domain),
			})
			continue
		}
		if entry.Tier == "" {
			entry.Tier = TierStrong
		}

		di := idx.domains[entry.Domain]
		if di == nil {
			di = newDomainIndex()
			idx.domains[entry.Domain] = di
		}
		if _, dup := di.entries[entry.Key]; dup {
			// First entry wins; the later one is reported, not indexed.
			report.Conflicts = append(report.Conflicts, Conflict{
				Domain: entry.Domain,
				Key:    entry.Key,
				Reason: "duplicate canonical key",
			})
			continue
		}

		di.entries[entry.Key] = &entry
		di.keys = append(di.keys, entry.Key)
		if entry.ParentKey != "" {
			di.children[entry.ParentKey] = append(di.children[entry.ParentKey], entry.Key)
		}
		report.Indexed++

		phrases := make(map[string]struct{})
		addPhrase := func(raw string) {
			normalized := textutil.NormalizePhrase(raw)
			if normalized == "" {
				return
			}
			phrases[normalized] = struct{}{}
		}
		addPhrase(entry.Display())
		addPhrase(entry.Key)
		for _, alias := range entry.Aliases {
			addPhrase(alias)
		}

		target := di.strong
		if entry.Tier == TierWeak {
			target = di.weak
		}
		for phrase := range phrases {
			if holders := target[phrase]; len(holders) > 0 {
				report.Conflicts = append(report.Conflicts, Conflict{
					Domain: entry.Domain,
					Key:    entry.Key,
					Reason: fmt.Sprintf("alias %q already held by %s", phrase, holders[0]),
				})
			}
			target[phrase] = append(target[phrase], entry.Key)
		}

		for locale, aliases := range entry.LocaleAliases {
			byPhrase := di.locale[locale]
			if byPhrase == nil {
				byPhrase = make(map[string][]string)
				di.locale[locale] = byPhrase
			}
			for _, alias := range aliases {
				normalized := textutil.NormalizePhrase(alias)
				if normalized == "" {
					continue
				}
				byPhrase[normalized] = append(byPhrase[normalized], entry.Key)
			}
		}
	}

	// Candidate lists sort by key so lookups never depend on input order.
	for _, di := range idx.domains {
		sort.Strings(di.keys)
		for _, holders := range di.strong {
			sort.Strings(holders)
		}
		for _, holders := range di.weak {
			sort.Strings(holders)
		}
		for _, byPhrase := range di.locale {
			for _, holders := range byPhrase {
				sort.Strings(holders)
			}
		}
		for _, kids := range di.children {
			sort.Strings(kids)
		}
	}
	return idx, report
}

// Entry returns the indexed entry for a domain key.
func (i *Index) Entry(domain Domain, key string) (*Entry, bool) {
	di := i.domains[domain]
	if di == nil {
		return nil, false
	}
	entry, ok := di.entries[key]
	return entry, ok
}

// Keys returns the sorted canonical keys of a domain.
func (i *Index) Keys(domain Domain) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	cp := make([]string, len(di.keys))
	copy(cp, di.keys)
	return cp
}

// Phrases returns the phrase-to-candidates map for one tier of a domain.
// The returned map is shared and must be treated as read-only.
func (i *Index) Phrases(domain Domain, tier Tier) map[string][]string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	if tier == TierWeak {
		return di.weak
	}
	return di.strong
}

// LocalePhrases returns the locale-gated phrase map for a domain. Read-only.
func (i *Index) LocalePhrases(domain Domain, locale tokenize.Locale) map[string][]string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	return di.locale[locale]
}

// Children returns the sorted child keys of a hierarchy entry.
func (i *Index) Children(domain Domain, key string) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	return di.children[key]
}

// KeysWithTag returns the sorted keys of entries carrying a context tag,
// including tags inherited from parents.
func (i *Index) KeysWithTag(domain Domain, tag string) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	var keys []string
	for _, key := range di.keys {
		for _, t := range i.ContextTags(domain, key) {
			if t == tag {
				keys = append(keys, key)
				break
			}
		}
	}
	return keys
}
