package pipeline

import (
	"printvault/internal/config"
	"printvault/internal/resolve"
)

// tuningFromConfig overlays configured scoring values on the defaults. Zero
// values keep the built-in constant so a sparse [resolver] section works.
func tuningFromConfig(cfg *config.Config) resolve.Tuning {
	tuning := resolve.DefaultTuning()
	overlay := func(target *float64, value float64) {
		if value != 0 {
			*target = value
		}
	}
	overlay(&tuning.BaseScore, cfg.Resolver.BaseScore)
	overlay(&tuning.LengthBonus, cfg.Resolver.LengthBonus)
	overlay(&tuning.LengthBonusCap, cfg.Resolver.LengthBonusCap)
	overlay(&tuning.SystemBonus, cfg.Resolver.SystemBonus)
	overlay(&tuning.SegmentBonus, cfg.Resolver.SegmentBonus)
	overlay(&tuning.GenericPenalty, cfg.Resolver.GenericPenalty)
	overlay(&tuning.CoAcceptDelta, cfg.Resolver.CoAcceptDelta)
	overlay(&tuning.MountSeedScore, cfg.Resolver.MountSeedScore)
	overlay(&tuning.RiderBoost, cfg.Resolver.RiderBoost)
	overlay(&tuning.MountPenalty, cfg.Resolver.MountPenalty)
	overlay(&tuning.SpellSeedScore, cfg.Resolver.SpellSeedScore)
	overlay(&tuning.SpellBoost, cfg.Resolver.SpellBoost)

	if cfg.Engine.WeakConsensusMin > 0 {
		tuning.WeakConsensusMin = cfg.Engine.WeakConsensusMin
	}
	if cfg.Engine.MaxRunnersUp > 0 {
		tuning.MaxRunnersUp = cfg.Engine.MaxRunnersUp
	}
	return tuning
}

func switchesFromConfig(cfg *config.Config) resolve.BiasSwitches {
	return resolve.BiasSwitches{
		Mount:        cfg.Bias.Mount,
		Spell:        cfg.Bias.Spell,
		Abbreviation: cfg.Bias.Abbreviation,
	}
}
