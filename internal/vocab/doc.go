// Package vocab loads curated vocabulary entries and builds the immutable
// phrase indices the resolver matches token streams against.
//
// A vocabulary is split into domains (designer, franchise, character,
// lineage, faction, unit). Each entry carries a stable canonical key,
// curator-assigned signal tier, aliases, locale-specific aliases, exclusion
// terms, context tags, and an optional parent key forming a hierarchy.
// BuildIndex never aborts on malformed entries; skips and conflicts are
// collected in a BuildReport for operator review.
//
// An Index is constructed once per run and is read-only afterwards. Tests
// build fresh indices per case; nothing in this package holds mutable
// process-wide state.
package vocab
