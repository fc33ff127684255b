package telemetry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogRecordAndList(t *testing.T) {
	l := NewLog(10)
	l.Record(EventQuestCompleted, "logan", "VAULT: Sanitize Quarters")
	l.Record(EventRecipeCrafted, "rylyn", "STIMPAK")

	events := l.Events(time.Time{})
	assert.Len(t, events, 2)
	assert.Equal(t, 1, events[0].ID)
	assert.Equal(t, EventQuestCompleted, events[0].Type)
	assert.Equal(t, "logan", events[0].Player)
	assert.Equal(t, 2, events[1].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestLogDropsOldestAtLimit(t *testing.T) {
	l := NewLog(3)
	for i := 0; i < 5; i++ {
		l.Record(EventScrapAdjusted, "logan", fmt.Sprintf("adjust %d", i))
	}
	events := l.Events(time.Time{})
	assert.Len(t, events, 3)
	assert.Equal(t, 3, events[0].ID)
	assert.Equal(t, 5, events[2].ID)
}

func TestLogFiltersByType(t *testing.T) {
	l := NewLog(10)
	l.Record(EventQuestCompleted, "logan", "")
	l.Record(EventRecipeCrafted, "logan", "")
	l.Record(EventQuestCompleted, "rylyn", "")

	events := l.Events(time.Time{}, EventQuestCompleted)
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, EventQuestCompleted, e.Type)
	}
}

func TestLogFiltersBySince(t *testing.T) {
	l := NewLog(10)
	l.Record(EventBroadcastSent, "", "b2")
	cut := time.Now().Add(time.Minute)
	assert.Empty(t, l.Events(cut))
}

func TestLogClear(t *testing.T) {
	l := NewLog(10)
	l.Record(EventStateReset, "", "")
	l.Clear()
	assert.Empty(t, l.Events(time.Time{}))

	l.Record(EventStateReset, "", "")
	assert.Equal(t, 1, l.Events(time.Time{})[0].ID)
}

func TestCalculateStats(t *testing.T) {
	events := []Event{
		{Type: EventQuestCompleted, Player: "logan"},
		{Type: EventSideJobCompleted, Player: "logan"},
		{Type: EventRecipeCrafted, Player: "rylyn"},
		{Type: EventRecipeCrafted, Player: "rylyn"},
		{Type: EventTradeAccepted, Player: "rylyn"},
		{Type: EventEncounterStarted},
		{Type: EventBroadcastSent},
	}

	stats := CalculateStats(events)
	assert.Equal(t, 2, stats.QuestsCompleted)
	assert.Equal(t, 2, stats.Crafts)
	assert.Equal(t, 1, stats.TradesAccepted)
	assert.Equal(t, 1, stats.Encounters)
	assert.Equal(t, 2, stats.ByPlayer["logan"])
	assert.Equal(t, 3, stats.ByPlayer["rylyn"])
	assert.Equal(t, 2, stats.EventCounts[EventRecipeCrafted])
	assert.NotContains(t, stats.ByPlayer, "")
}
