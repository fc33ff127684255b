package game

import (
	"encoding/json"
	"fmt"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// Saved snapshots are upgraded in place when loaded. Each step takes a
// state at version n to version n+1; unknown extra fields in old saves are
// dropped by the decoder, which is fine because the panel owns the file.
var migrations = map[int]func(*GameState){
	1: migrateV1,
}

// migrateV1 backfills the progression fields added in version 2.
func migrateV1(s *GameState) {
	for _, p := range s.Players {
		ensureProgress(p)
		if p.PendingPerks < 0 {
			p.PendingPerks = 0
		}
	}
}

// LoadState decodes a saved snapshot, validates its shape and upgrades it
// to the current version. A save without a players mapping is refused so a
// truncated or foreign file cannot wipe the sheets on the next write.
// Catalog sections are refreshed from the embedded catalog; only player
// sheets and the trade ledger survive from the file.
func LoadState(data []byte, cat *catalog.Catalog) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode saved state: %w", err)
	}
	if len(s.Players) == 0 {
		return nil, fmt.Errorf("saved state has no players mapping")
	}
	v := s.Version
	if v < 1 {
		v = 1
	}
	for ; v < CurrentVersion; v++ {
		if step, ok := migrations[v]; ok {
			step(&s)
		}
	}
	s.Version = CurrentVersion
	for _, p := range s.Players {
		normalizePlayer(p)
	}
	if s.Trades == nil {
		s.Trades = []*Trade{}
	}
	s.Perks = cat.Perks
	s.StatusEffects = cat.StatusEffects
	s.Quests = cat.Quests
	s.RandomQuests = cat.RandomQuests
	s.RadioSignals = cat.RadioSignals
	s.BroadcastSignals = cat.BroadcastSignals
	s.QuestRadioMap = cat.QuestRadioMap
	s.RandomEncounters = cat.RandomEncounters
	s.Recipes = cat.Recipes
	s.QuarterUpgrades = cat.QuarterUpgrades
	return &s, nil
}

// normalizePlayer replaces nil collections with empty ones so rules and
// the JSON encoder never have to special-case a hand-edited save.
func normalizePlayer(p *Player) {
	if p.Stats == nil {
		p.Stats = defaultStats()
	}
	if p.Scrap == nil {
		p.Scrap = defaultScrap()
	}
	if p.Inventory == nil {
		p.Inventory = []InventoryItem{}
	}
	if p.ActiveQuests == nil {
		p.ActiveQuests = []string{}
	}
	if p.CompletedQuests == nil {
		p.CompletedQuests = []string{}
	}
	if p.UnlockedPerks == nil {
		p.UnlockedPerks = []string{}
	}
	if p.CraftedGear == nil {
		p.CraftedGear = []string{}
	}
	if p.PurchasedUpgrades == nil {
		p.PurchasedUpgrades = []string{}
	}
	if p.ActiveEffects == nil {
		p.ActiveEffects = []string{}
	}
}
