package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// StartRandomEncounter picks one random encounter and pushes it to every
// player as a radio interrupt that must be resolved before normal traffic
// resumes.
func (e *Engine) StartRandomEncounter() (catalog.Encounter, error) {
	var picked catalog.Encounter
	err := e.store.Mutate(func(s *GameState) error {
		if len(s.RandomEncounters) == 0 {
			return configf("No random encounters configured")
		}
		picked = s.RandomEncounters[e.dice.Intn(len(s.RandomEncounters))]
		for _, p := range s.Players {
			p.ActiveRadio = nil
			p.ActiveRadioData = &RadioData{
				Title:           picked.Title,
				Text:            picked.Text,
				Type:            "encounter",
				EncounterID:     picked.ID,
				RequiresResolve: true,
			}
		}
		return nil
	})
	return picked, err
}

// ResolveResult reports the outcome of an encounter resolution.
type ResolveResult struct {
	Roll      int        `json:"roll,omitempty"`
	Label     string     `json:"label,omitempty"`
	OutcomeID string     `json:"outcomeId,omitempty"`
	Text      string     `json:"text"`
	Radio     *RadioData `json:"radio"`
}

// ResolveEncounter rolls the player's fate for the encounter currently on
// their radio. The resolution style depends on the engine's mode: a uniform
// pick from the outcome table, or a d20 bucketed into severity tiers.
func (e *Engine) ResolveEncounter(playerID string) (ResolveResult, error) {
	var res ResolveResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		if p.ActiveRadioData == nil || !p.ActiveRadioData.RequiresResolve {
			return invalidf("No encounter to resolve")
		}
		switch e.mode {
		case ResolutionD20:
			res = e.resolveD20(p)
		default:
			res, err = e.resolveTable(p)
			if err != nil {
				return err
			}
		}
		p.ActiveRadioData.Text += "\n\nRESOLVED: " + res.Text
		p.ActiveRadioData.RequiresResolve = false
		res.Radio = p.ActiveRadioData
		return nil
	})
	return res, err
}

func (e *Engine) resolveTable(p *Player) (ResolveResult, error) {
	outcomes := e.cat.EncounterOutcomes
	if len(outcomes) == 0 {
		return ResolveResult{}, configf("No encounter outcomes configured")
	}
	o := outcomes[e.dice.Intn(len(outcomes))]
	text := o.Text
	switch o.Kind {
	case catalog.OutcomeHP:
		p.adjustHP(o.Amount)
	case catalog.OutcomeRads:
		p.adjustRads(o.Amount)
	case catalog.OutcomeTabs:
		p.Tabs += o.Amount
	case catalog.OutcomeScrap:
		if scrapType, ok := e.pickScrapType(p); ok {
			p.Scrap[scrapType] += o.Amount
			text += fmt.Sprintf(" (%s +%d)", scrapType, o.Amount)
		} else {
			text += " (NO SCRAP AVAILABLE)"
		}
	case catalog.OutcomeItem:
		p.Inventory = append(p.Inventory, InventoryItem{
			ID:   uuid.NewString(),
			Name: o.Item,
			Qty:  1,
		})
	}
	return ResolveResult{OutcomeID: o.ID, Text: text}, nil
}

func (e *Engine) resolveD20(p *Player) ResolveResult {
	roll := e.dice.Intn(20) + 1
	var label string
	var effects []string

	applyHP := func(delta int) {
		p.adjustHP(delta)
		effects = append(effects, fmt.Sprintf("HP %+d", delta))
	}
	applyRads := func(delta int) {
		p.adjustRads(delta)
		effects = append(effects, fmt.Sprintf("RADS %+d", delta))
	}
	applyTabs := func(delta int) {
		p.Tabs += delta
		if p.Tabs < 0 {
			p.Tabs = 0
		}
		effects = append(effects, fmt.Sprintf("TABS %+d", delta))
	}
	applyScrap := func(amount int) {
		if scrapType, ok := e.pickScrapType(p); ok {
			p.Scrap[scrapType] += amount
			effects = append(effects, fmt.Sprintf("%s +%d", scrapType, amount))
		}
	}

	switch {
	case roll <= 5:
		label = "DANGER"
		applyHP(-2)
		applyRads(2)
	case roll <= 10:
		label = "ROUGH"
		applyHP(-1)
		applyRads(1)
		applyTabs(5)
	case roll <= 15:
		label = "CLEAR"
		applyTabs(10)
		applyScrap(1)
	default:
		label = "LUCKY"
		applyHP(1)
		applyTabs(15)
		applyScrap(2)
	}

	summary := "NO CHANGE"
	if len(effects) > 0 {
		summary = strings.Join(effects, ", ")
	}
	return ResolveResult{
		Roll:  roll,
		Label: label,
		Text:  fmt.Sprintf("%s (roll %d): %s", label, roll, summary),
	}
}

// pickScrapType picks a uniform random scrap type from the player's ledger.
func (e *Engine) pickScrapType(p *Player) (string, bool) {
	types := p.scrapTypes()
	if len(types) == 0 {
		return "", false
	}
	return types[e.dice.Intn(len(types))], true
}
