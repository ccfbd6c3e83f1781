package vocab

import (
	"printvault/internal/textutil"
	"printvault/internal/tokenize"
)

// Entry is one curated entity within a domain.
type Entry struct {
	Domain      Domain
	Key         string
	DisplayName string
	// System is the declared game system, used for the consistency bonus.
	System string
	Tier   Tier
	// Aliases are matchable phrases in addition to the display name.
	Aliases []string
	// LocaleAliases are matched only when the token stream carries the
	// corresponding locale tag. Only hierarchy roots are expected to carry
	// them.
	LocaleAliases map[tokenize.Locale][]string
	// ExcludeTerms veto a match when any of them appears in the stream.
	// Children inherit parent exclusions by union.
	ExcludeTerms []string
	// ContextTags drive bias modules (e.g. "mount", "mounted", "rider",
	// "spell", "generic", "abbr", "faction:<key>").
	ContextTags []string
	// ParentKey links hierarchy entries (faction sub-units, sub-lineages)
	// by stable key rather than by pointer.
	ParentKey string
}

// Display returns the display name, deriving one from the key when the
// curated file omitted it.
func (e Entry) Display() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return textutil.DisplayTitle(e.Key)
}

// HasTag reports whether the entry itself carries a context tag. Inherited
// tags are resolved through Index.ContextTags.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.ContextTags {
		if t == tag {
			return true
		}
	}
	return false
}
