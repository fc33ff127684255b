package server

import (
	"net/http"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/game"
)

// registerCatalogRoutes exposes the static content lists the dashboard
// renders its pickers from.
func registerCatalogRoutes(mux *http.ServeMux, rr *RouteRegistry, engine *game.Engine) {
	cat := engine.Catalog()

	Handle(mux, rr, "GET /api/quests", "Quest catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Quests)
	})

	Handle(mux, rr, "GET /api/perks", "Perk catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Perks)
	})

	Handle(mux, rr, "GET /api/status-effects", "Status effect catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.StatusEffects)
	})

	Handle(mux, rr, "GET /api/recipes", "Crafting recipes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Recipes)
	})

	Handle(mux, rr, "GET /api/quarters-shop", "Quarter upgrade shop", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.QuarterUpgrades)
	})

	Handle(mux, rr, "GET /api/radio", "All tunable signals", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.AllSignals())
	})

	Handle(mux, rr, "GET /api/broadcast-signals", "Broadcast signal catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.BroadcastSignals)
	})
}
