package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func TestLoadStateV1Backfill(t *testing.T) {
	cat := testCatalog(t)
	// A version-1 save predates levels entirely.
	save := []byte(`{
		"version": 1,
		"players": {
			"logan": {"name": "Logan", "hp": 7, "maxHp": 10, "tabs": 42},
			"rylyn": {"name": "Rylyn", "hp": 10, "maxHp": 10, "tabs": 3}
		}
	}`)

	s, err := LoadState(save, cat)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, s.Version)

	logan := s.Players["logan"]
	assert.Equal(t, 1, logan.Level)
	assert.Equal(t, 0, logan.XP)
	assert.Equal(t, 5, logan.XPToNext)
	assert.Equal(t, 42, logan.Tabs)
	assert.NotNil(t, logan.Scrap)
	assert.NotNil(t, logan.ActiveQuests)
}

func TestLoadStateCurrentVersionRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	orig := NewGameState(cat)
	orig.Players[PlayerLogan].Tabs = 77
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	s, err := LoadState(data, cat)
	require.NoError(t, err)
	assert.Equal(t, 77, s.Players[PlayerLogan].Tabs)
	assert.Equal(t, CurrentVersion, s.Version)
}

func TestLoadStateRefusesMissingPlayers(t *testing.T) {
	cat := testCatalog(t)

	_, err := LoadState([]byte(`{"version": 2}`), cat)
	assert.Error(t, err)

	_, err = LoadState([]byte(`{"version": 2, "players": {}}`), cat)
	assert.Error(t, err)

	_, err = LoadState([]byte(`not json`), cat)
	assert.Error(t, err)
}

func TestLoadStateRefreshesCatalogs(t *testing.T) {
	cat := testCatalog(t)
	// A save whose embedded catalogs have drifted from the shipped data.
	save := []byte(`{
		"version": 2,
		"players": {"logan": {"name": "Logan", "level": 1, "hp": 10, "maxHp": 10}},
		"quests": [{"id": "stale", "title": "STALE"}]
	}`)

	s, err := LoadState(save, cat)
	require.NoError(t, err)
	assert.Len(t, s.Quests, len(cat.Quests))
	assert.Len(t, s.Recipes, len(cat.Recipes))
	assert.Equal(t, cat.QuestRadioMap, s.QuestRadioMap)
}
