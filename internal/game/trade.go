package game

import (
	"sort"

	"github.com/google/uuid"
)

// OfferTrade opens a scrap-for-scrap offer from one player to the other.
// Only the offering side is validated now; the requested scrap is checked
// when the recipient accepts.
func (e *Engine) OfferTrade(from, to string, offering, requesting map[string]int) (*Trade, error) {
	var created *Trade
	err := e.store.Mutate(func(s *GameState) error {
		offerer, err := findPlayer(s, from)
		if err != nil {
			return err
		}
		if _, err := findPlayer(s, to); err != nil {
			return err
		}
		if from == to {
			return invalidf("Cannot trade with yourself")
		}
		if err := checkScrapHolding(offerer, offering, "Not enough %s"); err != nil {
			return err
		}
		created = &Trade{
			ID:              "trade-" + uuid.NewString(),
			From:            from,
			To:              to,
			OfferingScrap:   cloneIntMap(offering),
			RequestingScrap: cloneIntMap(requesting),
			Status:          TradePending,
			CreatedAt:       e.now().UnixMilli(),
		}
		s.Trades = append(s.Trades, created)
		return nil
	})
	return created, err
}

// AcceptTrade settles a pending trade. The recipient must still hold the
// requested scrap and the offerer must still hold the offered scrap; either
// side can have spent theirs since the offer was made.
func (e *Engine) AcceptTrade(tradeID, playerID string) (*Trade, error) {
	var accepted *Trade
	err := e.store.Mutate(func(s *GameState) error {
		t := findTrade(s, tradeID)
		if t == nil {
			return notFoundf("Trade not found")
		}
		if t.To != playerID {
			return invalidf("You cannot accept this trade")
		}
		if t.Status != TradePending {
			return invalidf("Trade is no longer pending")
		}
		recipient, err := findPlayer(s, t.To)
		if err != nil {
			return err
		}
		offerer, err := findPlayer(s, t.From)
		if err != nil {
			return err
		}
		if err := checkScrapHolding(recipient, t.RequestingScrap, "Not enough %s to complete trade"); err != nil {
			return err
		}
		if err := checkScrapHolding(offerer, t.OfferingScrap, "Offering player no longer has enough %s"); err != nil {
			return err
		}
		transferScrap(offerer, recipient, t.OfferingScrap)
		transferScrap(recipient, offerer, t.RequestingScrap)
		t.Status = TradeAccepted
		t.AcceptedAt = e.now().UnixMilli()
		accepted = t
		return nil
	})
	return accepted, err
}

// RejectTrade declines a pending trade. Only the recipient can reject.
func (e *Engine) RejectTrade(tradeID, playerID string) (*Trade, error) {
	var rejected *Trade
	err := e.store.Mutate(func(s *GameState) error {
		t := findTrade(s, tradeID)
		if t == nil {
			return notFoundf("Trade not found")
		}
		if t.To != playerID {
			return invalidf("You cannot reject this trade")
		}
		if t.Status != TradePending {
			return invalidf("Trade is no longer pending")
		}
		t.Status = TradeRejected
		t.RejectedAt = e.now().UnixMilli()
		rejected = t
		return nil
	})
	return rejected, err
}

// Trades returns the full trade ledger, newest last.
func (e *Engine) Trades() []*Trade {
	var out []*Trade
	e.store.View(func(s *GameState) {
		out = make([]*Trade, len(s.Trades))
		copy(out, s.Trades)
	})
	return out
}

// PlayerTrades returns every trade the player is a party to.
func (e *Engine) PlayerTrades(playerID string) ([]*Trade, error) {
	var out []*Trade
	var err error
	e.store.View(func(s *GameState) {
		if _, ok := s.Players[playerID]; !ok {
			err = notFoundf("Player not found")
			return
		}
		for _, t := range s.Trades {
			if t.From == playerID || t.To == playerID {
				out = append(out, t)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findTrade(s *GameState, id string) *Trade {
	for _, t := range s.Trades {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// checkScrapHolding verifies the player holds every listed amount. Types are
// checked in sorted order so the reported shortfall is deterministic.
func checkScrapHolding(p *Player, amounts map[string]int, format string) error {
	types := make([]string, 0, len(amounts))
	for t := range amounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		if amounts[t] <= 0 {
			continue
		}
		if p.Scrap[t] < amounts[t] {
			return invalidf(format, t)
		}
	}
	return nil
}

func transferScrap(from, to *Player, amounts map[string]int) {
	for t, amount := range amounts {
		if amount <= 0 {
			continue
		}
		from.Scrap[t] -= amount
		to.Scrap[t] += amount
	}
}
