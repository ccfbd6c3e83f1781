package vocab

import (
	"sort"

	"printvault/internal/textutil"
)

const maxHierarchyDepth = 16

// RootPath returns the root-to-leaf key list for a hierarchy entry. The walk
// is memoized on first use; unknown keys return nil. A parent chain deeper
// than maxHierarchyDepth is treated as broken and truncated at the entry.
func (i *Index) RootPath(domain Domain, key string) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	if cached, ok := di.rootPaths[key]; ok {
		return cached
	}
	entry, ok := di.entries[key]
	if !ok {
		return nil
	}

	path := []string{key}
	cur := entry
	for depth := 0; cur.ParentKey != "" && depth < maxHierarchyDepth; depth++ {
		parent, ok := di.entries[cur.ParentKey]
		if !ok {
			break
		}
		path = append([]string{parent.Key}, path...)
		cur = parent
	}
	di.rootPaths[key] = path
	return path
}

// FamilyRoot returns the topmost ancestor key of a hierarchy entry, or the
// key itself for roots and unknown keys.
func (i *Index) FamilyRoot(domain Domain, key string) string {
	path := i.RootPath(domain, key)
	if len(path) == 0 {
		return key
	}
	return path[0]
}

// Excludes returns the normalized exclusion phrases of an entry unioned with
// those of all its ancestors. Memoized after first use.
func (i *Index) Excludes(domain Domain, key string) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	if cached, ok := di.excludes[key]; ok {
		return cached
	}
	set := make(map[string]struct{})
	for _, ancestor := range i.RootPath(domain, key) {
		entry, ok := di.entries[ancestor]
		if !ok {
			continue
		}
		for _, term := range entry.ExcludeTerms {
			normalized := textutil.NormalizePhrase(term)
			if normalized != "" {
				set[normalized] = struct{}{}
			}
		}
	}
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	di.excludes[key] = terms
	return terms
}

// ContextTags returns an entry's context tags unioned with those of all its
// ancestors. Memoized after first use.
func (i *Index) ContextTags(domain Domain, key string) []string {
	di := i.domains[domain]
	if di == nil {
		return nil
	}
	if cached, ok := di.tags[key]; ok {
		return cached
	}
	set := make(map[string]struct{})
	for _, ancestor := range i.RootPath(domain, key) {
		entry, ok := di.entries[ancestor]
		if !ok {
			continue
		}
		for _, tag := range entry.ContextTags {
			if tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	di.tags[key] = tags
	return tags
}
