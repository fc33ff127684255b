// Package game holds the shared world state for the overseer panel and the
// rules engine that mutates it. All mutations go through a Store so that
// HTTP handlers, the auto-saver and the live-update hub see a consistent view.
package game

import (
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// CurrentVersion is stamped into every saved snapshot. Older snapshots are
// upgraded in place when loaded, see migrate.go.
const CurrentVersion = 2

// The two survivors tracked by the panel.
const (
	PlayerLogan = "logan"
	PlayerRylyn = "rylyn"
)

// RadioData is the rich payload shown on a player's pip-boy radio screen.
// Plain catalog signals only set ActiveRadio; encounters and custom overseer
// messages carry a full RadioData instead.
type RadioData struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title"`
	Frequency       string `json:"frequency,omitempty"`
	Text            string `json:"text"`
	Type            string `json:"type,omitempty"`
	EncounterID     string `json:"encounterId,omitempty"`
	RequiresResolve bool   `json:"requiresResolve,omitempty"`
}

// InventoryItem is a consumable granted by encounter outcomes.
type InventoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Trade statuses.
const (
	TradePending  = "pending"
	TradeAccepted = "accepted"
	TradeRejected = "rejected"
)

// Trade is a scrap-for-scrap offer between the two players. Completed trades
// stay in the ledger with their final status.
type Trade struct {
	ID              string         `json:"id"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	OfferingScrap   map[string]int `json:"offeringScrap"`
	RequestingScrap map[string]int `json:"requestingScrap"`
	Status          string         `json:"status"`
	CreatedAt       int64          `json:"createdAt"`
	AcceptedAt      int64          `json:"acceptedAt,omitempty"`
	RejectedAt      int64          `json:"rejectedAt,omitempty"`
}

// Player is the full sheet for one survivor.
type Player struct {
	Name              string          `json:"name"`
	Level             int             `json:"level"`
	XP                int             `json:"xp"`
	XPToNext          int             `json:"xpToNext"`
	HP                int             `json:"hp"`
	MaxHP             int             `json:"maxHp"`
	Rads              int             `json:"rads"`
	Tabs              int             `json:"tabs"`
	Stats             map[string]int  `json:"stats"`
	Scrap             map[string]int  `json:"scrap"`
	Inventory         []InventoryItem `json:"inventory"`
	ActiveQuests      []string        `json:"activeQuests"`
	CompletedQuests   []string        `json:"completedQuests"`
	ActiveRadio       *string         `json:"activeRadio"`
	ActiveRadioData   *RadioData      `json:"activeRadioData"`
	Faction           *string         `json:"faction"`
	Class             *string         `json:"class"`
	UnlockedPerks     []string        `json:"unlockedPerks"`
	PendingPerks      int             `json:"pendingPerks"`
	CraftedGear       []string        `json:"craftedGear"`
	PurchasedUpgrades []string        `json:"purchasedUpgrades"`
	ActiveEffects     []string        `json:"activeEffects"`
}

// GameState is everything the panel persists: both player sheets, the trade
// ledger and a copy of the content catalogs so the dashboard can render
// without a second round trip.
type GameState struct {
	Version          int                     `json:"version"`
	Players          map[string]*Player      `json:"players"`
	Perks            []catalog.Perk          `json:"perks"`
	StatusEffects    []catalog.StatusEffect  `json:"statusEffects"`
	Quests           []catalog.Quest         `json:"quests"`
	RandomQuests     []catalog.RandomQuest   `json:"randomQuests"`
	RadioSignals     []catalog.Signal        `json:"radioSignals"`
	BroadcastSignals []catalog.Signal        `json:"broadcastSignals"`
	QuestRadioMap    map[string]string       `json:"questRadioMap"`
	RandomEncounters []catalog.Encounter     `json:"randomEncounters"`
	Recipes          []catalog.Recipe        `json:"recipes"`
	QuarterUpgrades  []catalog.QuarterUpgrade `json:"quarterUpgrades"`
	Trades           []*Trade                `json:"trades"`
}

func defaultStats() map[string]int {
	return map[string]int{
		"charm":      1,
		"hardiness":  1,
		"agility":    1,
		"perception": 1,
		"politeness": 1,
		"yarns":      1,
	}
}

func defaultScrap() map[string]int {
	return map[string]int{
		"maritimeMetal": 0,
		"syntheticSap":  0,
		"hubCircuitry":  0,
		"plaidScraps":   0,
		"propaneTank":   0,
		"radMeat":       0,
		"spices":        0,
		"cleanWater":    0,
	}
}

func newPlayer(name string) *Player {
	return &Player{
		Name:              name,
		Level:             1,
		XP:                0,
		XPToNext:          xpRequired(1),
		HP:                10,
		MaxHP:             10,
		Rads:              0,
		Tabs:              10,
		Stats:             defaultStats(),
		Scrap:             defaultScrap(),
		Inventory:         []InventoryItem{},
		ActiveQuests:      []string{},
		CompletedQuests:   []string{},
		UnlockedPerks:     []string{},
		CraftedGear:       []string{},
		PurchasedUpgrades: []string{},
		ActiveEffects:     []string{},
	}
}

// NewGameState builds a fresh world: both players at their starting sheets
// and the content catalogs copied in.
func NewGameState(cat *catalog.Catalog) *GameState {
	return &GameState{
		Version: CurrentVersion,
		Players: map[string]*Player{
			PlayerLogan: newPlayer("Logan"),
			PlayerRylyn: newPlayer("Rylyn"),
		},
		Perks:            cat.Perks,
		StatusEffects:    cat.StatusEffects,
		Quests:           cat.Quests,
		RandomQuests:     cat.RandomQuests,
		RadioSignals:     cat.RadioSignals,
		BroadcastSignals: cat.BroadcastSignals,
		QuestRadioMap:    cat.QuestRadioMap,
		RandomEncounters: cat.RandomEncounters,
		Recipes:          cat.Recipes,
		QuarterUpgrades:  cat.QuarterUpgrades,
		Trades:           []*Trade{},
	}
}
