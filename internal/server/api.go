// Package server wires the rules engine to the HTTP surface the overseer
// dashboard talks to.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/game"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/telemetry"
)

// App holds what the handlers depend on.
type App struct {
	Engine *game.Engine
	Hub    WSHandler
	Log    *telemetry.Log
}

// record is nil-safe so handler tests can run without a feed.
func (a *App) record(t telemetry.EventType, player, detail string) {
	if a.Log != nil {
		a.Log.Record(t, player, detail)
	}
}

// WSHandler is the live-update hub's HTTP face. Kept as an interface so
// handler tests can run without real websockets.
type WSHandler interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeEngineErr maps engine error classes onto HTTP statuses.
func writeEngineErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidRequest), errors.Is(err, game.ErrConfiguration):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// RegisterAPIRoutes attaches every dashboard route to the mux.
func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine

	Handle(mux, rr, "GET /api/game-state", "Full game state", "", func(w http.ResponseWriter, r *http.Request) {
		engine.EnsureProgression()
		data, err := engine.Store().Snapshot()
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(data)
	})

	Handle(mux, rr, "GET /api/player/{player}", "One player's sheet", "", func(w http.ResponseWriter, r *http.Request) {
		p, err := engine.GetPlayer(r.PathValue("player"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	Handle(mux, rr, "GET /api/player/{player}/perks", "Player's unlocked perks, resolved", "", func(w http.ResponseWriter, r *http.Request) {
		perks, err := engine.PlayerPerks(r.PathValue("player"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, perks)
	})

	Handle(mux, rr, "GET /api/player/{player}/quarters", "Player's purchased quarter upgrades", "", func(w http.ResponseWriter, r *http.Request) {
		upgrades, err := engine.PlayerQuarters(r.PathValue("player"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, upgrades)
	})

	Handle(mux, rr, "GET /api/player/{player}/trades", "Trades the player is a party to", "", func(w http.ResponseWriter, r *http.Request) {
		trades, err := engine.PlayerTrades(r.PathValue("player"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		if trades == nil {
			trades = []*game.Trade{}
		}
		writeJSON(w, http.StatusOK, trades)
	})

	Handle(mux, rr, "POST /api/player/{player}/stat/{stat}", "Overwrite one sheet field", `{"value":12}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value any `json:"value"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		p, err := engine.SetPlayerField(r.PathValue("player"), r.PathValue("stat"), body.Value)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "player": p})
	})

	Handle(mux, rr, "POST /api/player/{player}/stats", "Bulk-set the attribute block", `{"stats":{"charm":3,"yarns":2}}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Stats map[string]int `json:"stats"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		p, err := engine.SetStats(r.PathValue("player"), body.Stats)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "player": p})
	})

	Handle(mux, rr, "POST /api/player/{player}/quest", "Assign a quest", `{"questId":"h1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			QuestID string `json:"questId"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := engine.AssignQuest(r.PathValue("player"), body.QuestID); err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventQuestAssigned, r.PathValue("player"), body.QuestID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Quest assigned"})
	})

	Handle(mux, rr, "POST /api/player/{player}/complete-quest", "Complete a quest and pay rewards", `{"questId":"h1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			QuestID string `json:"questId"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := engine.CompleteQuest(r.PathValue("player"), body.QuestID)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventQuestCompleted, r.PathValue("player"), res.Message)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"message":      res.Message,
			"tabsAwarded":  res.TabsAwarded,
			"xpAwarded":    res.XPAwarded,
			"levelsGained": res.LevelsGained,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/complete-random-quest", "Settle a side-job", `{"questId":"rq1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			QuestID string `json:"questId"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := engine.CompleteRandomQuest(r.PathValue("player"), body.QuestID)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventSideJobCompleted, r.PathValue("player"), res.Message)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"message":      res.Message,
			"tabsAwarded":  res.TabsAwarded,
			"xpAwarded":    res.XPAwarded,
			"levelsGained": res.LevelsGained,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/perk/{perkId}", "Spend a perk selection", "", func(w http.ResponseWriter, r *http.Request) {
		perk, err := engine.UnlockPerk(r.PathValue("player"), r.PathValue("perkId"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventPerkUnlocked, r.PathValue("player"), perk.Name)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Unlocked " + perk.Name,
			"perk":    perk,
		})
	})

	Handle(mux, rr, "DELETE /api/player/{player}/perk/{perkId}", "Remove a perk, no refund", "", func(w http.ResponseWriter, r *http.Request) {
		if err := engine.RemovePerk(r.PathValue("player"), r.PathValue("perkId")); err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventPerkRemoved, r.PathValue("player"), r.PathValue("perkId"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Perk removed"})
	})

	Handle(mux, rr, "POST /api/player/{player}/effect/{effectId}", "Apply a status effect", "", func(w http.ResponseWriter, r *http.Request) {
		eff, err := engine.ApplyStatusEffect(r.PathValue("player"), r.PathValue("effectId"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventEffectApplied, r.PathValue("player"), eff.Name)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Applied " + eff.Name,
			"effect":  eff,
		})
	})

	Handle(mux, rr, "DELETE /api/player/{player}/effect/{effectId}", "Clear a status effect", "", func(w http.ResponseWriter, r *http.Request) {
		if err := engine.RemoveStatusEffect(r.PathValue("player"), r.PathValue("effectId")); err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventEffectRemoved, r.PathValue("player"), r.PathValue("effectId"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Effect removed"})
	})

	Handle(mux, rr, "POST /api/player/{player}/scrap/multi", "Grant several scrap types at once", `{"scrapMap":{"spices":2,"radMeat":1}}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ScrapMap map[string]int `json:"scrapMap"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := engine.GrantScrapMulti(r.PathValue("player"), body.ScrapMap)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventScrapAdjusted, r.PathValue("player"), fmt.Sprintf("granted %d scrap", res.TotalGranted))
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"totalGranted": res.TotalGranted,
			"scrap":        res.Scrap,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/scrap/{type}", "Adjust one scrap balance", `{"amount":-2}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount int `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := engine.AdjustScrap(r.PathValue("player"), r.PathValue("type"), body.Amount)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventScrapAdjusted, r.PathValue("player"), fmt.Sprintf("%s %+d", res.Type, body.Amount))
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"type":      res.Type,
			"newAmount": res.Amount,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/craft/{recipeId}", "Craft a recipe", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.Craft(r.PathValue("player"), r.PathValue("recipeId"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventRecipeCrafted, r.PathValue("player"), res.Message)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": res.Message,
			"effect":  res.Effect,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/quarters/{upgradeId}", "Buy a quarter upgrade", "", func(w http.ResponseWriter, r *http.Request) {
		upg, err := engine.PurchaseUpgrade(r.PathValue("player"), r.PathValue("upgradeId"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventUpgradePurchased, r.PathValue("player"), upg.Name)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Purchased " + upg.Name,
			"upgrade": upg,
		})
	})

	Handle(mux, rr, "POST /api/player/{player}/radio", "Tune the player's radio to a signal", `{"radioId":"r5"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RadioID string `json:"radioId"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := engine.TuneRadio(r.PathValue("player"), body.RadioID); err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventRadioTuned, r.PathValue("player"), body.RadioID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Radio tuned"})
	})

	Handle(mux, rr, "POST /api/player/{player}/radio-message", "Send a custom overseer transmission", `{"message":"Stay out of the fog."}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		data, err := engine.SendRadioMessage(r.PathValue("player"), body.Message)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventRadioTuned, r.PathValue("player"), "custom transmission")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "radioData": data})
	})

	Handle(mux, rr, "POST /api/broadcast/random", "Broadcast a random signal to everyone", "", func(w http.ResponseWriter, r *http.Request) {
		sig, err := engine.BroadcastRandomSignal()
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventBroadcastSent, "", sig.Title)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "signal": sig})
	})

	Handle(mux, rr, "POST /api/encounter/random", "Start a random encounter for everyone", "", func(w http.ResponseWriter, r *http.Request) {
		enc, err := engine.StartRandomEncounter()
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventEncounterStarted, "", enc.Title)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "encounter": enc})
	})

	Handle(mux, rr, "POST /api/player/{player}/encounter/resolve", "Roll the player's encounter outcome", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := engine.ResolveEncounter(r.PathValue("player"))
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventEncounterResolved, r.PathValue("player"), res.Text)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": res})
	})

	Handle(mux, rr, "POST /api/player/{player}/trade/offer", "Offer scrap to the other player", `{"toPlayer":"rylyn","offeringScrap":{"spices":1},"requestingScrap":{"cleanWater":2}}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ToPlayer        string         `json:"toPlayer"`
			OfferingScrap   map[string]int `json:"offeringScrap"`
			RequestingScrap map[string]int `json:"requestingScrap"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		t, err := engine.OfferTrade(r.PathValue("player"), body.ToPlayer, body.OfferingScrap, body.RequestingScrap)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventTradeOffered, r.PathValue("player"), t.ID)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Trade offer sent to " + t.To + "!",
			"trade":   t,
		})
	})

	Handle(mux, rr, "POST /api/trade/{tradeId}/accept", "Accept a pending trade", `{"player":"rylyn"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player string `json:"player"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		t, err := engine.AcceptTrade(r.PathValue("tradeId"), body.Player)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventTradeAccepted, body.Player, t.ID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Trade accepted", "trade": t})
	})

	Handle(mux, rr, "POST /api/trade/{tradeId}/reject", "Reject a pending trade", `{"player":"rylyn"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player string `json:"player"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		t, err := engine.RejectTrade(r.PathValue("tradeId"), body.Player)
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventTradeRejected, body.Player, t.ID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Trade rejected", "trade": t})
	})

	// Name kept from the dashboard's first cut; it returns the whole
	// ledger so the UI can show history alongside pending offers.
	Handle(mux, rr, "GET /api/trades/pending", "Full trade ledger", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.Trades())
	})

	Handle(mux, rr, "GET /api/random-quest", "Draw a random side-job", "", func(w http.ResponseWriter, r *http.Request) {
		q, err := engine.RandomSideJob()
		if err != nil {
			writeEngineErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	})

	registerCatalogRoutes(mux, rr, engine)

	Handle(mux, rr, "POST /api/reset", "Reset the whole world to defaults", "", func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Reset(); err != nil {
			writeEngineErr(w, err)
			return
		}
		app.record(telemetry.EventStateReset, "", "")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Game state reset"})
	})

	Handle(mux, rr, "GET /api/activity", "Session activity feed", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Log == nil {
			writeJSON(w, http.StatusOK, []telemetry.Event{})
			return
		}
		writeJSON(w, http.StatusOK, app.Log.Events(time.Time{}))
	})

	Handle(mux, rr, "GET /api/activity/stats", "Session activity summary", "", func(w http.ResponseWriter, r *http.Request) {
		var events []telemetry.Event
		if app.Log != nil {
			events = app.Log.Events(time.Time{})
		}
		writeJSON(w, http.StatusOK, telemetry.CalculateStats(events))
	})

	Handle(mux, rr, "GET /api/routes", "List registered routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	if app.Hub != nil {
		mux.HandleFunc("GET /ws", app.Hub.ServeWS)
	}
}
