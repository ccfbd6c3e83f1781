package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	return nil
}

var knownDomains = map[string]struct{}{
	"designer": {}, "franchise": {}, "character": {}, "lineage": {},
	"faction": {}, "unit": {},
}

func (c *Config) validateEngine() error {
	for _, domain := range c.Engine.Domains {
		if _, ok := knownDomains[domain]; !ok {
			return fmt.Errorf("engine.domains: unknown domain %q", domain)
		}
	}
	return nil
}

func (c *Config) validateResolver() error {
	negatives := map[string]float64{
		"resolver.base_score":       c.Resolver.BaseScore,
		"resolver.length_bonus":     c.Resolver.LengthBonus,
		"resolver.length_bonus_cap": c.Resolver.LengthBonusCap,
		"resolver.system_bonus":     c.Resolver.SystemBonus,
		"resolver.segment_bonus":    c.Resolver.SegmentBonus,
		"resolver.generic_penalty":  c.Resolver.GenericPenalty,
		"resolver.co_accept_delta":  c.Resolver.CoAcceptDelta,
		"resolver.mount_seed_score": c.Resolver.MountSeedScore,
		"resolver.rider_boost":      c.Resolver.RiderBoost,
		"resolver.mount_penalty":    c.Resolver.MountPenalty,
		"resolver.spell_seed_score": c.Resolver.SpellSeedScore,
		"resolver.spell_boost":      c.Resolver.SpellBoost,
	}
	for name, value := range negatives {
		if value < 0 {
			return errors.New(name + " must not be negative")
		}
	}
	return nil
}
