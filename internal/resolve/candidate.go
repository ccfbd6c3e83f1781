package resolve

import "printvault/internal/vocab"

// Basis records how a candidate earned its place in the ranking.
type Basis string

const (
	BasisStrongDirect    Basis = "strong_direct"
	BasisWeakConsensus   Basis = "weak_consensus"
	BasisContextInjected Basis = "context_injected"
)

// Candidate is one scored entity match. Candidates are transient; only the
// accepted result is ever written back to a record.
type Candidate struct {
	Domain vocab.Domain `json:"domain"`
	Key    string       `json:"key"`
	// Phrase is the matched phrase; empty for context-injected candidates.
	Phrase string     `json:"phrase,omitempty"`
	Tier   vocab.Tier `json:"tier"`
	Basis  Basis      `json:"basis"`
	Score  float64    `json:"score"`
}

// Hints carries context already known about the record being resolved.
type Hints struct {
	// System is the record's declared game system, if any.
	System string
	// Category is the record's declared category, if any.
	Category string
	// FactionKey is a faction already resolved or declared for the record;
	// it gates spell-context injection.
	FactionKey string
}

// Result is the outcome of resolving one domain against one token stream.
type Result struct {
	Domain   vocab.Domain `json:"domain"`
	Accepted *Candidate   `json:"accepted,omitempty"`
	// Secondary holds co-accepted candidates: ties on the same matched
	// phrase within the co-acceptance delta (e.g. the same unit name in two
	// systems).
	Secondary []Candidate `json:"secondary,omitempty"`
	// RunnersUp are the next-ranked candidates kept for audit.
	RunnersUp []Candidate `json:"runners_up,omitempty"`
	// Ambiguous is set when candidates existed but none met the acceptance
	// rules.
	Ambiguous bool `json:"ambiguous,omitempty"`
}
