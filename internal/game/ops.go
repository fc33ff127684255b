package game

import (
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

func (p *Player) clone() *Player {
	cp := *p
	cp.Stats = cloneIntMap(p.Stats)
	cp.Scrap = cloneIntMap(p.Scrap)
	cp.Inventory = append([]InventoryItem(nil), p.Inventory...)
	cp.ActiveQuests = append([]string(nil), p.ActiveQuests...)
	cp.CompletedQuests = append([]string(nil), p.CompletedQuests...)
	cp.UnlockedPerks = append([]string(nil), p.UnlockedPerks...)
	cp.CraftedGear = append([]string(nil), p.CraftedGear...)
	cp.PurchasedUpgrades = append([]string(nil), p.PurchasedUpgrades...)
	cp.ActiveEffects = append([]string(nil), p.ActiveEffects...)
	if p.ActiveRadio != nil {
		v := *p.ActiveRadio
		cp.ActiveRadio = &v
	}
	if p.ActiveRadioData != nil {
		d := *p.ActiveRadioData
		cp.ActiveRadioData = &d
	}
	if p.Faction != nil {
		v := *p.Faction
		cp.Faction = &v
	}
	if p.Class != nil {
		v := *p.Class
		cp.Class = &v
	}
	return &cp
}

// GetPlayer returns a detached copy of the player's sheet.
func (e *Engine) GetPlayer(playerID string) (*Player, error) {
	var out *Player
	var err error
	e.store.View(func(s *GameState) {
		p, ok := s.Players[playerID]
		if !ok {
			err = notFoundf("Player not found")
			return
		}
		out = p.clone()
	})
	return out, err
}

// PlayerPerks resolves the player's unlocked perk ids against the catalog.
func (e *Engine) PlayerPerks(playerID string) ([]catalog.Perk, error) {
	p, err := e.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	perks := []catalog.Perk{}
	for _, id := range p.UnlockedPerks {
		if perk, ok := e.cat.Perk(id); ok {
			perks = append(perks, perk)
		}
	}
	return perks, nil
}

// PlayerQuarters resolves the player's purchased quarter upgrades.
func (e *Engine) PlayerQuarters(playerID string) ([]catalog.QuarterUpgrade, error) {
	p, err := e.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	upgrades := []catalog.QuarterUpgrade{}
	for _, id := range p.PurchasedUpgrades {
		if upg, ok := e.cat.QuarterUpgrade(id); ok {
			upgrades = append(upgrades, upg)
		}
	}
	return upgrades, nil
}

// SetPlayerField overwrites a single top-level sheet field. This is the
// overseer's blunt instrument: values are written as given, no clamping,
// though progression fields are re-derived so xpToNext stays consistent.
func (e *Engine) SetPlayerField(playerID, field string, value any) (*Player, error) {
	var out *Player
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		switch field {
		case "name":
			v, ok := value.(string)
			if !ok {
				return invalidf("name must be a string")
			}
			p.Name = v
		case "faction", "class":
			var ptr *string
			if value != nil {
				v, ok := value.(string)
				if !ok {
					return invalidf("%s must be a string or null", field)
				}
				ptr = &v
			}
			if field == "faction" {
				p.Faction = ptr
			} else {
				p.Class = ptr
			}
		case "level", "xp", "hp", "maxHp", "rads", "tabs", "pendingPerks":
			num, ok := value.(float64)
			if !ok {
				return invalidf("%s must be a number", field)
			}
			n := int(num)
			switch field {
			case "level":
				p.Level = n
				ensureProgress(p)
			case "xp":
				p.XP = n
			case "hp":
				p.HP = n
			case "maxHp":
				p.MaxHP = n
			case "rads":
				p.Rads = n
			case "tabs":
				p.Tabs = n
			case "pendingPerks":
				p.PendingPerks = n
			}
		default:
			return notFoundf("Player or stat not found")
		}
		out = p.clone()
		return nil
	})
	return out, err
}

// SetStats bulk-overwrites the attribute block. Only known attributes are
// written; unknown keys in the payload are ignored.
func (e *Engine) SetStats(playerID string, stats map[string]int) (*Player, error) {
	var out *Player
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		for stat, v := range stats {
			if _, ok := p.Stats[stat]; ok {
				p.Stats[stat] = v
			}
		}
		out = p.clone()
		return nil
	})
	return out, err
}

// PurchaseUpgrade buys a quarter upgrade with tabs. One purchase each; the
// stat boost, if the upgrade carries one, lands immediately.
func (e *Engine) PurchaseUpgrade(playerID, upgradeID string) (catalog.QuarterUpgrade, error) {
	var bought catalog.QuarterUpgrade
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		upg, ok := e.cat.QuarterUpgrade(upgradeID)
		if !ok {
			return notFoundf("Upgrade not found")
		}
		for _, owned := range p.PurchasedUpgrades {
			if owned == upg.ID {
				return invalidf("Upgrade already purchased")
			}
		}
		if p.Tabs < upg.Cost {
			return invalidf("Need %d tabs, only have %d", upg.Cost, p.Tabs)
		}
		p.Tabs -= upg.Cost
		p.PurchasedUpgrades = append(p.PurchasedUpgrades, upg.ID)
		if upg.Stat != "" && upg.StatBoost != 0 {
			if _, ok := p.Stats[upg.Stat]; ok {
				p.Stats[upg.Stat] += upg.StatBoost
			}
		}
		bought = upg
		return nil
	})
	return bought, err
}

// Reset discards the whole world and reseeds it from the catalog.
func (e *Engine) Reset() error {
	return e.store.Mutate(func(s *GameState) error {
		*s = *NewGameState(e.cat)
		return nil
	})
}
