package telemetry

// Stats summarizes a session's events for the dashboard's recap card.
type Stats struct {
	EventCounts     map[EventType]int `json:"event_counts"`
	QuestsCompleted int               `json:"quests_completed"`
	Crafts          int               `json:"crafts"`
	TradesAccepted  int               `json:"trades_accepted"`
	Encounters      int               `json:"encounters"`
	ByPlayer        map[string]int    `json:"by_player"`
}

// CalculateStats folds the event feed into per-session counts.
func CalculateStats(events []Event) Stats {
	stats := Stats{
		EventCounts: make(map[EventType]int),
		ByPlayer:    make(map[string]int),
	}
	for _, e := range events {
		stats.EventCounts[e.Type]++
		if e.Player != "" {
			stats.ByPlayer[e.Player]++
		}
		switch e.Type {
		case EventQuestCompleted, EventSideJobCompleted:
			stats.QuestsCompleted++
		case EventRecipeCrafted:
			stats.Crafts++
		case EventTradeAccepted:
			stats.TradesAccepted++
		case EventEncounterStarted:
			stats.Encounters++
		}
	}
	return stats
}
