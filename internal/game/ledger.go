package game

import "sort"

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// adjustHP applies a delta clamped to [0, maxHp].
func (p *Player) adjustHP(delta int) {
	p.HP = clampInt(p.HP+delta, 0, p.MaxHP)
}

// adjustRads applies a delta clamped to [0, 10].
func (p *Player) adjustRads(delta int) {
	p.Rads = clampInt(p.Rads+delta, 0, 10)
}

func (p *Player) hasPerk(id string) bool {
	for _, perk := range p.UnlockedPerks {
		if perk == id {
			return true
		}
	}
	return false
}

func (p *Player) hasCrafted(id string) bool {
	for _, gear := range p.CraftedGear {
		if gear == id {
			return true
		}
	}
	return false
}

func (p *Player) hasEffect(id string) bool {
	for _, eff := range p.ActiveEffects {
		if eff == id {
			return true
		}
	}
	return false
}

// scrapTypes returns the player's scrap keys in stable order so dice-driven
// picks and first-failure errors are deterministic.
func (p *Player) scrapTypes() []string {
	types := make([]string, 0, len(p.Scrap))
	for t := range p.Scrap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func findPlayer(s *GameState, id string) (*Player, error) {
	p, ok := s.Players[id]
	if !ok {
		return nil, notFoundf("Player not found")
	}
	return p, nil
}

// ScrapResult reports a single-type scrap adjustment.
type ScrapResult struct {
	Type   string `json:"type"`
	Amount int    `json:"newAmount"`
}

// AdjustScrap adds delta (possibly negative) to one scrap type. Unknown
// scrap types are rejected; balances may go negative, the overseer is
// trusted to correct mistakes by hand.
func (e *Engine) AdjustScrap(playerID, scrapType string, delta int) (ScrapResult, error) {
	var res ScrapResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		if _, ok := p.Scrap[scrapType]; !ok {
			return notFoundf("Scrap type not found")
		}
		p.Scrap[scrapType] += delta
		res = ScrapResult{Type: scrapType, Amount: p.Scrap[scrapType]}
		return nil
	})
	return res, err
}

// MultiScrapResult reports a bulk scrap grant.
type MultiScrapResult struct {
	TotalGranted int            `json:"totalGranted"`
	Scrap        map[string]int `json:"scrap"`
}

// GrantScrapMulti adds several scrap types at once. Unknown types and
// non-positive amounts are skipped rather than rejected so a partially
// stale dashboard payload still applies the rest.
func (e *Engine) GrantScrapMulti(playerID string, grants map[string]int) (MultiScrapResult, error) {
	var res MultiScrapResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		total := 0
		for scrapType, amount := range grants {
			if amount <= 0 {
				continue
			}
			if _, ok := p.Scrap[scrapType]; !ok {
				continue
			}
			p.Scrap[scrapType] += amount
			total += amount
		}
		res = MultiScrapResult{TotalGranted: total, Scrap: cloneIntMap(p.Scrap)}
		return nil
	})
	return res, err
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
