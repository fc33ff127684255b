// Package config reads runtime settings from the environment. Everything
// has a default suitable for running the panel on a laptop at the table.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"5000"`
	// DataDir is where the save file lives. Deployments point this at a
	// mounted volume.
	DataDir string `env:"DATA_VOLUME_PATH" envDefault:"."`
	// SaveDebounceMS is how long after the last state change the save is
	// written.
	SaveDebounceMS int `env:"SAVE_DEBOUNCE_MS" envDefault:"500"`
	// EncounterResolution selects the resolution style: "table" picks
	// uniformly from the outcome table, "d20" rolls severity tiers.
	EncounterResolution string `env:"ENCOUNTER_RESOLUTION" envDefault:"table"`
}

func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.SaveDebounceMS < 0 {
		return nil, fmt.Errorf("SAVE_DEBOUNCE_MS must not be negative: %d", c.SaveDebounceMS)
	}
	switch c.EncounterResolution {
	case "table", "d20":
	default:
		return nil, fmt.Errorf("ENCOUNTER_RESOLUTION must be \"table\" or \"d20\", got %q", c.EncounterResolution)
	}
	return &c, nil
}

// SavePath is the full path of the snapshot file.
func (c *Config) SavePath() string {
	return filepath.Join(c.DataDir, "game-state.json")
}

// SaveDebounce returns the debounce as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}
