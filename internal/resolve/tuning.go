package resolve

// Tuning holds the scoring constants. The defaults were settled by trial
// against real archives; treat them as ordering hints and override through
// configuration rather than editing code.
type Tuning struct {
	BaseScore      float64
	LengthBonus    float64
	LengthBonusCap float64
	SystemBonus    float64
	SegmentBonus   float64
	GenericPenalty float64
	// WeakConsensusMin is the weak-signal count an entity family needs when
	// no strong hit exists.
	WeakConsensusMin int
	MaxRunnersUp     int
	// CoAcceptDelta bounds the score gap for co-accepting ties on the same
	// matched phrase.
	CoAcceptDelta float64

	MountSeedScore float64
	RiderBoost     float64
	MountPenalty   float64
	SpellSeedScore float64
	SpellBoost     float64
}

// DefaultTuning returns the default scoring constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseScore:        1.0,
		LengthBonus:      0.25,
		LengthBonusCap:   1.0,
		SystemBonus:      0.5,
		SegmentBonus:     1.5,
		GenericPenalty:   1.25,
		WeakConsensusMin: 2,
		MaxRunnersUp:     5,
		CoAcceptDelta:    0.25,
		MountSeedScore:   0.75,
		RiderBoost:       1.0,
		MountPenalty:     1.0,
		SpellSeedScore:   0.5,
		SpellBoost:       0.75,
	}
}

// genericTokens are bare role words that are ambiguous on their own. A
// single-token match on one of these is penalized unless independent
// corroboration exists in the same stream. Vocabulary entries can extend the
// set per entry with the "generic" context tag.
var genericTokens = map[string]struct{}{
	"knight": {}, "priest": {}, "king": {}, "queen": {}, "lord": {},
	"guard": {}, "warrior": {}, "archer": {}, "hero": {}, "dragon": {},
	"hunter": {}, "mage": {}, "giant": {},
}

// genericSegments are path segments that carry no identity signal; they are
// skipped when looking for the nearest locally-corroborating segment.
var genericSegments = map[string]struct{}{
	"stl": {}, "stls": {}, "files": {}, "file": {}, "supported": {},
	"unsupported": {}, "presupported": {}, "pre supported": {}, "lys": {},
	"obj": {}, "parts": {}, "raw": {}, "printable": {}, "models": {},
	"minis": {}, "miniatures": {},
}
