package resolve

import (
	"printvault/internal/tokenize"
	"printvault/internal/vocab"
)

// Bias is a pure post-scoring adjustment. A module that cannot classify the
// context returns its input unchanged; modules never fail and never block
// the rest of the pipeline. Every candidate a module returns must belong to
// the domain being resolved.
type Bias interface {
	Name() string
	Apply(domain vocab.Domain, stream tokenize.Stream, hints Hints, candidates []Candidate) []Candidate
}

// BiasSwitches selects which bias modules a run composes.
type BiasSwitches struct {
	Mount        bool
	Spell        bool
	Abbreviation bool
}

// DefaultBiasSwitches enables every module.
func DefaultBiasSwitches() BiasSwitches {
	return BiasSwitches{Mount: true, Spell: true, Abbreviation: true}
}

// BiasChain builds the enabled modules in their fixed composition order:
// mount, spell, abbreviation.
func BiasChain(index *vocab.Index, tuning Tuning, switches BiasSwitches) []Bias {
	var chain []Bias
	if switches.Mount {
		chain = append(chain, &MountBias{index: index, tuning: tuning})
	}
	if switches.Spell {
		chain = append(chain, &SpellBias{index: index, tuning: tuning})
	}
	if switches.Abbreviation {
		chain = append(chain, &AbbreviationBias{index: index})
	}
	return chain
}
