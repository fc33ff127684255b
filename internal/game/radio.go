package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// TuneRadio points the player's radio at a catalog signal, clearing any
// richer payload that was showing.
func (e *Engine) TuneRadio(playerID, signalID string) error {
	return e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		if !signalExists(s, signalID) {
			return notFoundf("Signal not found")
		}
		id := signalID
		p.ActiveRadio = &id
		p.ActiveRadioData = nil
		return nil
	})
}

func signalExists(s *GameState, id string) bool {
	for _, sig := range s.RadioSignals {
		if sig.ID == id {
			return true
		}
	}
	for _, sig := range s.BroadcastSignals {
		if sig.ID == id {
			return true
		}
	}
	return false
}

// SendRadioMessage pushes a free-form overseer transmission to one player.
func (e *Engine) SendRadioMessage(playerID, message string) (*RadioData, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalidf("Message cannot be empty")
	}
	var data *RadioData
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		id := "custom_" + uuid.NewString()
		data = &RadioData{
			ID:        id,
			Title:     "OVERSEER TRANSMISSION",
			Frequency: "88.5 FM",
			Text:      message,
			Type:      "custom",
		}
		p.ActiveRadio = &id
		p.ActiveRadioData = data
		return nil
	})
	return data, err
}

// BroadcastRandomSignal picks one broadcast signal and tunes every player's
// radio to it.
func (e *Engine) BroadcastRandomSignal() (catalog.Signal, error) {
	var picked catalog.Signal
	err := e.store.Mutate(func(s *GameState) error {
		if len(s.BroadcastSignals) == 0 {
			return configf("No broadcast signals configured")
		}
		picked = s.BroadcastSignals[e.dice.Intn(len(s.BroadcastSignals))]
		for _, p := range s.Players {
			id := picked.ID
			p.ActiveRadio = &id
			p.ActiveRadioData = nil
		}
		return nil
	})
	return picked, err
}
