// Package telemetry keeps a short in-memory feed of overseer actions so
// the dashboard can show what just happened at the table.
package telemetry

import "time"

type EventType string

const (
	EventQuestAssigned      EventType = "quest_assigned"
	EventQuestCompleted     EventType = "quest_completed"
	EventSideJobCompleted   EventType = "side_job_completed"
	EventPerkUnlocked       EventType = "perk_unlocked"
	EventPerkRemoved        EventType = "perk_removed"
	EventEffectApplied      EventType = "effect_applied"
	EventEffectRemoved      EventType = "effect_removed"
	EventRecipeCrafted      EventType = "recipe_crafted"
	EventUpgradePurchased   EventType = "upgrade_purchased"
	EventScrapAdjusted      EventType = "scrap_adjusted"
	EventTradeOffered       EventType = "trade_offered"
	EventTradeAccepted      EventType = "trade_accepted"
	EventTradeRejected      EventType = "trade_rejected"
	EventRadioTuned         EventType = "radio_tuned"
	EventBroadcastSent      EventType = "broadcast_sent"
	EventEncounterStarted   EventType = "encounter_started"
	EventEncounterResolved  EventType = "encounter_resolved"
	EventStateReset         EventType = "state_reset"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Player    string    `json:"player,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
