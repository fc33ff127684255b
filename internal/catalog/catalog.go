// Package catalog holds the static game definitions: quests, perks, status
// effects, recipes, quarter upgrades, radio traffic and random encounters.
// Catalogs are seeded once from an embedded YAML document and never mutated
// by play.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data.yml
var rawData []byte

type Perk struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Desc string `yaml:"desc" json:"desc"`
	Tier int    `yaml:"tier" json:"tier"`
}

type StatusEffect struct {
	ID              string         `yaml:"id" json:"id"`
	Name            string         `yaml:"name" json:"name"`
	Desc            string         `yaml:"desc" json:"desc"`
	Trigger         string         `yaml:"trigger" json:"trigger"`
	Type            string         `yaml:"type" json:"type"`
	Effects         map[string]int `yaml:"effects" json:"effects,omitempty"`
	Recovery        string         `yaml:"recovery" json:"recovery,omitempty"`
	DurationMinutes int            `yaml:"durationMinutes" json:"durationMinutes,omitempty"`
	DurationTurns   int            `yaml:"durationTurns" json:"durationTurns,omitempty"`
	Permanent       bool           `yaml:"permanent" json:"permanent,omitempty"`
	SkipNextTurn    bool           `yaml:"skipNextTurn" json:"skipNextTurn,omitempty"`
}

type Quest struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Desc        string         `yaml:"desc" json:"desc"`
	Category    string         `yaml:"category" json:"category"`
	RewardTabs  int            `yaml:"rewardTabs" json:"rewardTabs"`
	RewardScrap map[string]int `yaml:"rewardScrap" json:"rewardScrap,omitempty"`
	XP          int            `yaml:"xp" json:"xp"`
}

type RandomQuest struct {
	ID     string `yaml:"id" json:"id"`
	Title  string `yaml:"title" json:"title"`
	Desc   string `yaml:"desc" json:"desc"`
	Reward int    `yaml:"reward" json:"reward"`
	XP     int    `yaml:"xp" json:"xp"`
}

// Signal is a radio or broadcast catalog entry.
type Signal struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

type Encounter struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

type Ingredient struct {
	Type   string `yaml:"type" json:"type"`
	Amount int    `yaml:"amount" json:"amount"`
}

type RecipeOutput struct {
	Item string `yaml:"item" json:"item"`
	Qty  int    `yaml:"qty" json:"qty"`
}

// EffectKind discriminates what crafting a recipe does. A recipe whose
// effect kind is empty cannot be crafted: the craft engine reports a
// configuration gap instead of silently producing nothing.
type EffectKind string

const (
	// EffectGear grants permanent stat deltas once; re-crafting is rejected.
	EffectGear EffectKind = "gear"
	// EffectSalvage grants a flat tabs bonus, repeatable.
	EffectSalvage EffectKind = "salvage"
	// EffectHeal restores a fixed amount of HP, clamped to maxHp.
	EffectHeal EffectKind = "heal"
	// EffectRadAway removes a fixed amount of Rads, clamped to 0.
	EffectRadAway EffectKind = "radaway"
	// EffectFeast restores a percentage of maxHp and adds Rads unless the
	// player holds the negating perk.
	EffectFeast EffectKind = "feast"
)

type RecipeEffect struct {
	Kind          EffectKind     `yaml:"kind" json:"kind"`
	Stats         map[string]int `yaml:"stats" json:"stats,omitempty"`
	MaxHP         int            `yaml:"maxHp" json:"maxHp,omitempty"`
	HP            int            `yaml:"hp" json:"hp,omitempty"`
	Tabs          int            `yaml:"tabs" json:"tabs,omitempty"`
	HealPercent   int            `yaml:"healPercent" json:"healPercent,omitempty"`
	Rads          int            `yaml:"rads" json:"rads,omitempty"`
	NegatedByPerk string         `yaml:"negatedByPerk" json:"negatedByPerk,omitempty"`
	Text          string         `yaml:"text" json:"text,omitempty"`
}

type Recipe struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Desc        string       `yaml:"desc" json:"desc"`
	Ingredients []Ingredient `yaml:"ingredients" json:"ingredients"`
	Output      RecipeOutput `yaml:"output" json:"output"`
	Effect      RecipeEffect `yaml:"effect" json:"effect"`
}

type QuarterUpgrade struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	Desc           string `yaml:"desc" json:"desc"`
	Tier           int    `yaml:"tier" json:"tier"`
	Cost           int    `yaml:"cost" json:"cost"`
	Stat           string `yaml:"stat" json:"stat,omitempty"`
	StatBoost      int    `yaml:"statBoost" json:"statBoost,omitempty"`
	HPRecovery     string `yaml:"hpRecovery" json:"hpRecovery,omitempty"`
	InventorySlots int    `yaml:"inventorySlots" json:"inventorySlots,omitempty"`
	SpecialEffect  string `yaml:"specialEffect" json:"specialEffect,omitempty"`
	Effect         string `yaml:"effect" json:"effect"`
}

// OutcomeKind discriminates an encounter-resolution outcome.
type OutcomeKind string

const (
	OutcomeHP    OutcomeKind = "hp"
	OutcomeRads  OutcomeKind = "rads"
	OutcomeTabs  OutcomeKind = "tabs"
	OutcomeScrap OutcomeKind = "scrap"
	OutcomeItem  OutcomeKind = "item"
)

type Outcome struct {
	ID     string      `yaml:"id" json:"id"`
	Text   string      `yaml:"text" json:"text"`
	Kind   OutcomeKind `yaml:"kind" json:"kind"`
	Amount int         `yaml:"amount" json:"amount,omitempty"`
	Item   string      `yaml:"item" json:"item,omitempty"`
}

type Catalog struct {
	Perks             []Perk            `yaml:"perks"`
	StatusEffects     []StatusEffect    `yaml:"statusEffects"`
	Quests            []Quest           `yaml:"quests"`
	RandomQuests      []RandomQuest     `yaml:"randomQuests"`
	RadioSignals      []Signal          `yaml:"radioSignals"`
	BroadcastSignals  []Signal          `yaml:"broadcastSignals"`
	QuestRadioMap     map[string]string `yaml:"questRadioMap"`
	RandomEncounters  []Encounter       `yaml:"randomEncounters"`
	EncounterOutcomes []Outcome         `yaml:"encounterOutcomes"`
	Recipes           []Recipe          `yaml:"recipes"`
	QuarterUpgrades   []QuarterUpgrade  `yaml:"quarterUpgrades"`
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(rawData, &c); err != nil {
		return nil, fmt.Errorf("parse catalog data: %w", err)
	}
	if len(c.Quests) == 0 || len(c.Recipes) == 0 || len(c.Perks) == 0 {
		return nil, fmt.Errorf("catalog data incomplete: %d quests, %d recipes, %d perks",
			len(c.Quests), len(c.Recipes), len(c.Perks))
	}
	for _, o := range c.EncounterOutcomes {
		switch o.Kind {
		case OutcomeHP, OutcomeRads, OutcomeTabs, OutcomeScrap, OutcomeItem:
		default:
			return nil, fmt.Errorf("encounter outcome %s: unknown kind %q", o.ID, o.Kind)
		}
	}
	return &c, nil
}

func (c *Catalog) Quest(id string) (Quest, bool) {
	for _, q := range c.Quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

func (c *Catalog) RandomQuest(id string) (RandomQuest, bool) {
	for _, q := range c.RandomQuests {
		if q.ID == id {
			return q, true
		}
	}
	return RandomQuest{}, false
}

func (c *Catalog) Perk(id string) (Perk, bool) {
	for _, p := range c.Perks {
		if p.ID == id {
			return p, true
		}
	}
	return Perk{}, false
}

func (c *Catalog) StatusEffect(id string) (StatusEffect, bool) {
	for _, e := range c.StatusEffects {
		if e.ID == id {
			return e, true
		}
	}
	return StatusEffect{}, false
}

func (c *Catalog) Recipe(id string) (Recipe, bool) {
	for _, r := range c.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

func (c *Catalog) QuarterUpgrade(id string) (QuarterUpgrade, bool) {
	for _, u := range c.QuarterUpgrades {
		if u.ID == id {
			return u, true
		}
	}
	return QuarterUpgrade{}, false
}

// AllSignals merges the quest-linked radio signals with the ambient
// broadcast catalog, in that order.
func (c *Catalog) AllSignals() []Signal {
	out := make([]Signal, 0, len(c.RadioSignals)+len(c.BroadcastSignals))
	out = append(out, c.RadioSignals...)
	out = append(out, c.BroadcastSignals...)
	return out
}
