package game

import "github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"

// CraftResult reports a successful craft. Effect mirrors what the craft
// changed so the dashboard can animate it without re-fetching the sheet.
type CraftResult struct {
	Message string         `json:"message"`
	Effect  map[string]any `json:"effect,omitempty"`
}

// Craft validates the full recipe against the player's scrap, then consumes
// ingredients and applies the recipe effect. Validation is front-loaded:
// nothing is consumed unless the whole craft succeeds.
func (e *Engine) Craft(playerID, recipeID string) (CraftResult, error) {
	var res CraftResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		r, ok := e.cat.Recipe(recipeID)
		if !ok {
			return notFoundf("Recipe not found")
		}
		if r.Effect.Kind == catalog.EffectGear && p.hasCrafted(r.ID) {
			return invalidf("%s is already crafted and equipped.", r.Name)
		}
		for _, ing := range r.Ingredients {
			if p.Scrap[ing.Type] < ing.Amount {
				return invalidf("Not enough %s", ing.Type)
			}
		}
		for _, ing := range r.Ingredients {
			p.Scrap[ing.Type] -= ing.Amount
		}
		res, err = applyRecipeEffect(p, r)
		return err
	})
	return res, err
}

func applyRecipeEffect(p *Player, r catalog.Recipe) (CraftResult, error) {
	eff := r.Effect
	switch eff.Kind {
	case catalog.EffectGear:
		for stat, boost := range eff.Stats {
			if _, ok := p.Stats[stat]; ok {
				p.Stats[stat] += boost
			}
		}
		if eff.MaxHP != 0 {
			p.MaxHP += eff.MaxHP
		}
		if eff.HP != 0 {
			p.adjustHP(eff.HP)
		}
		p.CraftedGear = append(p.CraftedGear, r.ID)
		return CraftResult{
			Message: "Crafted " + r.Name + "! " + eff.Text,
			Effect: map[string]any{
				"stats": eff.Stats,
				"maxHp": eff.MaxHP,
				"hp":    eff.HP,
			},
		}, nil

	case catalog.EffectSalvage:
		p.Tabs += eff.Tabs
		return CraftResult{
			Message: "Crafted " + r.Name + "! " + eff.Text,
			Effect:  map[string]any{"tabsGained": eff.Tabs},
		}, nil

	case catalog.EffectHeal:
		before := p.HP
		p.adjustHP(eff.HP)
		return CraftResult{
			Message: "Crafted " + r.Name + "! Restored HP.",
			Effect:  map[string]any{"hpRestored": p.HP - before},
		}, nil

	case catalog.EffectRadAway:
		before := p.Rads
		p.adjustRads(-eff.Rads)
		return CraftResult{
			Message: "Crafted " + r.Name + "! Flushed out radiation.",
			Effect:  map[string]any{"radsRemoved": before - p.Rads},
		}, nil

	case catalog.EffectFeast:
		heal := (p.MaxHP*eff.HealPercent + 99) / 100
		if heal < 1 {
			heal = 1
		}
		before := p.HP
		p.adjustHP(heal)
		negated := eff.NegatedByPerk != "" && p.hasPerk(eff.NegatedByPerk)
		radsAdded := 0
		if !negated {
			radsBefore := p.Rads
			p.adjustRads(eff.Rads)
			radsAdded = p.Rads - radsBefore
		}
		msg := "Crafted " + r.Name + "! Restored HP and gained RADS."
		if negated {
			msg = "Crafted " + r.Name + "! Restored HP with no RAD gain."
		}
		return CraftResult{
			Message: msg,
			Effect: map[string]any{
				"hpRestored": p.HP - before,
				"radsAdded":  radsAdded,
			},
		}, nil

	default:
		return CraftResult{}, configf("No craft effect configured for this recipe.")
	}
}
