package game

import (
	"math/rand"
	"time"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// Dice abstracts randomness so rules can be tested with loaded rolls.
// Intn returns a uniform value in [0, n).
type Dice interface {
	Intn(n int) int
}

type systemDice struct{}

func (systemDice) Intn(n int) int { return rand.Intn(n) }

// Clock abstracts time for trade timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ResolutionMode selects how encounter resolution is rolled.
type ResolutionMode string

const (
	// ResolutionTable picks uniformly from the encounter outcome table.
	ResolutionTable ResolutionMode = "table"
	// ResolutionD20 rolls a d20 and buckets the result into severity tiers.
	ResolutionD20 ResolutionMode = "d20"
)

// Engine applies game rules to the shared state. It owns no goroutines;
// every method is safe for concurrent use because all state access goes
// through the Store.
type Engine struct {
	store *Store
	cat   *catalog.Catalog
	dice  Dice
	clock Clock
	mode  ResolutionMode
}

// Options configures an Engine. Zero-value Dice, Clock and Mode fall back
// to system randomness, wall-clock time and table resolution.
type Options struct {
	Store   *Store
	Catalog *catalog.Catalog
	Dice    Dice
	Clock   Clock
	Mode    ResolutionMode
}

func New(opts Options) *Engine {
	e := &Engine{
		store: opts.Store,
		cat:   opts.Catalog,
		dice:  opts.Dice,
		clock: opts.Clock,
		mode:  opts.Mode,
	}
	if e.dice == nil {
		e.dice = systemDice{}
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if e.mode == "" {
		e.mode = ResolutionTable
	}
	return e
}

// Store exposes the underlying store for snapshotting and change hooks.
func (e *Engine) Store() *Store { return e.store }

// Catalog exposes the static game content.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

func (e *Engine) now() time.Time { return e.clock.Now() }
