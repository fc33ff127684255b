package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreChangeHooks(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	fired := 0
	e.Store().OnChange(func() { fired++ })

	_, err := e.AdjustScrap(PlayerLogan, "spices", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// A failed mutation does not fire hooks.
	_, err = e.AdjustScrap(PlayerLogan, "bottleCaps", 1)
	require.Error(t, err)
	assert.Equal(t, 1, fired)

	// Reads never fire hooks.
	_, err = e.GetPlayer(PlayerLogan)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestStoreMutateError(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	want := errors.New("nope")
	err := e.Store().Mutate(func(s *GameState) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestSnapshotIsValidJSON(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	data, err := e.Store().Snapshot()
	require.NoError(t, err)

	var s GameState
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, CurrentVersion, s.Version)
	assert.Len(t, s.Players, 2)
	// Empty collections survive the round trip as empty, not null.
	assert.NotNil(t, s.Players[PlayerLogan].ActiveQuests)
	assert.NotNil(t, s.Trades)
}
