package telemetry

import (
	"sync"
	"time"
)

// Log is a bounded in-memory event feed. When full, the oldest events are
// dropped; the panel cares about the current session, not history.
type Log struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	limit  int
}

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = 500
	}
	return &Log{nextID: 1, limit: limit}
}

func (l *Log) Record(eventType EventType, player, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, Event{
		ID:        l.nextID,
		Type:      eventType,
		Player:    player,
		Detail:    detail,
		Timestamp: time.Now(),
	})
	l.nextID++
	if len(l.events) > l.limit {
		l.events = l.events[len(l.events)-l.limit:]
	}
}

// Events returns events at or after since, oldest first. An empty types
// list means every type.
func (l *Log) Events(since time.Time, types ...EventType) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	filter := make(map[EventType]bool, len(types))
	for _, t := range types {
		filter[t] = true
	}

	out := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if e.Timestamp.Before(since) {
			continue
		}
		if len(types) > 0 && !filter[e.Type] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	l.nextID = 1
}
