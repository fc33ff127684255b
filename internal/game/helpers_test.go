package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

// stubDice replays the given rolls, reduced modulo n so a test can ask for
// any index without caring about table sizes.
type stubDice struct {
	rolls []int
	idx   int
}

func (d *stubDice) Intn(n int) int {
	if len(d.rolls) == 0 {
		return 0
	}
	v := d.rolls[d.idx%len(d.rolls)] % n
	d.idx++
	return v
}

type stubClock struct{ at time.Time }

func (c stubClock) Now() time.Time { return c.at }

var testClockAt = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T, mode ResolutionMode, rolls ...int) *Engine {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	store := NewStore(NewGameState(cat))
	return New(Options{
		Store:   store,
		Catalog: cat,
		Dice:    &stubDice{rolls: rolls},
		Clock:   stubClock{at: testClockAt},
		Mode:    mode,
	})
}

func getPlayer(t *testing.T, e *Engine, id string) *Player {
	t.Helper()
	p, err := e.GetPlayer(id)
	require.NoError(t, err)
	return p
}
