package game

import "github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"

// ApplyStatusEffect puts a status effect on the player and applies its stat
// deltas. Deltas are summed naively; the sheet does not track which effect
// contributed what, RemoveStatusEffect simply reverses the catalog numbers.
func (e *Engine) ApplyStatusEffect(playerID, effectID string) (catalog.StatusEffect, error) {
	var applied catalog.StatusEffect
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		eff, ok := e.cat.StatusEffect(effectID)
		if !ok {
			return notFoundf("Effect not found")
		}
		if p.hasEffect(eff.ID) {
			return invalidf("Player already has this effect")
		}
		p.ActiveEffects = append(p.ActiveEffects, eff.ID)
		applyEffectDeltas(p, eff.Effects, 1)
		applied = eff
		return nil
	})
	return applied, err
}

// RemoveStatusEffect clears the effect and reverses its deltas. Removal of
// an effect the player does not have is a no-op, not an error.
func (e *Engine) RemoveStatusEffect(playerID, effectID string) error {
	return e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		had := p.hasEffect(effectID)
		remaining := p.ActiveEffects[:0]
		for _, id := range p.ActiveEffects {
			if id != effectID {
				remaining = append(remaining, id)
			}
		}
		p.ActiveEffects = remaining
		if had {
			if eff, ok := e.cat.StatusEffect(effectID); ok {
				applyEffectDeltas(p, eff.Effects, -1)
			}
		}
		return nil
	})
}

// applyEffectDeltas adds (or, with sign -1, subtracts) an effect's numbers.
// HP floors at zero but is not capped, so removing a damaging effect can
// push a full-health sheet past maxHp; unknown stat keys are skipped.
func applyEffectDeltas(p *Player, deltas map[string]int, sign int) {
	for stat, delta := range deltas {
		if stat == "hp" {
			p.HP += delta * sign
			if p.HP < 0 {
				p.HP = 0
			}
			continue
		}
		if _, ok := p.Stats[stat]; ok {
			p.Stats[stat] += delta * sign
		}
	}
}
