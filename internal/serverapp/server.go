// Package serverapp assembles the whole panel: catalog, saved state,
// rules engine, persistence, live updates and the HTTP surface.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/config"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/game"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/httpmw"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/hub"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/ops"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/persist"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/server"
	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
	// Dice overrides the engine's randomness, used by tests.
	Dice game.Dice
}

// App is the assembled panel. Handler is ready to serve; Shutdown must be
// called on the way out so the last state change reaches disk.
type App struct {
	Handler http.Handler
	Engine  *game.Engine
	Saver   *persist.Saver
	Hub     *hub.Hub
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	savePath := opts.Config.SavePath()
	backupDir := filepath.Join(opts.Config.DataDir, "backups")
	if archive, err := ops.BackupSaveFile(savePath, backupDir); err != nil {
		logger.Printf("save backup failed: %v", err)
	} else if archive != "" {
		logger.Printf("backed up save to %s", archive)
		if err := ops.PruneBackups(backupDir, 10); err != nil {
			logger.Printf("prune backups: %v", err)
		}
	}

	data, err := persist.Load(savePath)
	if err != nil {
		return nil, err
	}
	var state *game.GameState
	if data == nil {
		state = game.NewGameState(cat)
		logger.Printf("no save file at %s, starting a fresh world", savePath)
	} else {
		state, err = game.LoadState(data, cat)
		if err != nil {
			return nil, err
		}
		logger.Printf("loaded save file %s", savePath)
	}

	store := game.NewStore(state)
	engine := game.New(game.Options{
		Store:   store,
		Catalog: cat,
		Dice:    opts.Dice,
		Mode:    game.ResolutionMode(opts.Config.EncounterResolution),
	})
	saver := persist.NewSaver(savePath, opts.Config.SaveDebounce(), store.Snapshot, logger)
	h := hub.New(logger)
	store.OnChange(saver.Schedule)
	store.OnChange(h.NotifyStateChanged)
	go h.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "fallout-nova-scotia",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.Snapshot(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "state not serializable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	feed := telemetry.NewLog(500)
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, &server.App{Engine: engine, Hub: h, Log: feed})
	logger.Printf("registered %d api routes", len(rr.List()))

	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
		httpmw.WithAccessLog(logger),
	)

	return &App{Handler: handler, Engine: engine, Saver: saver, Hub: h}, nil
}

// Shutdown writes any pending state change synchronously.
func (a *App) Shutdown() error {
	return a.Saver.Flush()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
