package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func giveScrap(t *testing.T, e *Engine, player string, scrap map[string]int) {
	t.Helper()
	_, err := e.GrantScrapMulti(player, scrap)
	require.NoError(t, err)
}

func TestCraftStimpak(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"syntheticSap": 1})
	_, err := e.SetPlayerField(PlayerLogan, "hp", float64(6))
	require.NoError(t, err)

	res, err := e.Craft(PlayerLogan, "r5")
	require.NoError(t, err)
	assert.Equal(t, "Crafted STIMPAK! Restored HP.", res.Message)
	assert.Equal(t, 4, res.Effect["hpRestored"])

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 10, p.HP)
	assert.Equal(t, 0, p.Scrap["syntheticSap"])
}

func TestCraftHealClampsAtMax(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"syntheticSap": 1})
	_, err := e.SetPlayerField(PlayerLogan, "hp", float64(9))
	require.NoError(t, err)

	res, err := e.Craft(PlayerLogan, "r5")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Effect["hpRestored"])
	assert.Equal(t, 10, getPlayer(t, e, PlayerLogan).HP)
}

func TestCraftInsufficientScrap(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"maritimeMetal": 4})

	// r2 needs 4 maritimeMetal and 2 plaidScraps.
	_, err := e.Craft(PlayerLogan, "r2")
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualError(t, err, "Not enough plaidScraps")

	// Nothing was consumed by the failed craft.
	assert.Equal(t, 4, getPlayer(t, e, PlayerLogan).Scrap["maritimeMetal"])
}

func TestCraftGearOnce(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"maritimeMetal": 4})

	res, err := e.Craft(PlayerLogan, "r1")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Crafted BLUENOSE BAYONET!")

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 2, p.Stats["agility"])
	assert.Equal(t, []string{"r1"}, p.CraftedGear)
	assert.Equal(t, 2, p.Scrap["maritimeMetal"])

	_, err = e.Craft(PlayerLogan, "r1")
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualError(t, err, "BLUENOSE BAYONET is already crafted and equipped.")
	// The rejected re-craft consumed nothing.
	assert.Equal(t, 2, getPlayer(t, e, PlayerLogan).Scrap["maritimeMetal"])
}

func TestCraftGearMaxHPBonus(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"maritimeMetal": 4, "plaidScraps": 2})
	_, err := e.SetPlayerField(PlayerLogan, "hp", float64(7))
	require.NoError(t, err)

	_, err = e.Craft(PlayerLogan, "r2")
	require.NoError(t, err)

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 12, p.MaxHP)
	assert.Equal(t, 9, p.HP)
	assert.Equal(t, 2, p.Stats["hardiness"])
}

func TestCraftSalvage(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"propaneTank": 1, "syntheticSap": 2})

	res, err := e.Craft(PlayerLogan, "r3")
	require.NoError(t, err)
	assert.Equal(t, "Crafted PROPANE POPPER! Salvage blast recovered +15 Tabs.", res.Message)
	assert.Equal(t, 25, getPlayer(t, e, PlayerLogan).Tabs)

	// Salvage recipes are repeatable.
	giveScrap(t, e, PlayerLogan, map[string]int{"propaneTank": 1, "syntheticSap": 2})
	_, err = e.Craft(PlayerLogan, "r3")
	require.NoError(t, err)
	assert.Equal(t, 40, getPlayer(t, e, PlayerLogan).Tabs)
}

func TestCraftFeast(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"radMeat": 1, "spices": 1, "cleanWater": 1})
	_, err := e.SetPlayerField(PlayerLogan, "hp", float64(2))
	require.NoError(t, err)

	res, err := e.Craft(PlayerLogan, "r4")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "gained RADS")
	assert.Equal(t, 5, res.Effect["hpRestored"])
	assert.Equal(t, 10, res.Effect["radsAdded"])

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 7, p.HP)
	assert.Equal(t, 10, p.Rads)
}

func TestCraftFeastLeadBelly(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"radMeat": 1, "spices": 1, "cleanWater": 1})
	_, err := e.SetPlayerField(PlayerLogan, "pendingPerks", float64(1))
	require.NoError(t, err)
	_, err = e.UnlockPerk(PlayerLogan, "p6")
	require.NoError(t, err)
	_, err = e.SetPlayerField(PlayerLogan, "hp", float64(2))
	require.NoError(t, err)

	res, err := e.Craft(PlayerLogan, "r4")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "no RAD gain")
	assert.Equal(t, 0, res.Effect["radsAdded"])
	assert.Equal(t, 0, getPlayer(t, e, PlayerLogan).Rads)
}

func TestCraftRadAway(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	giveScrap(t, e, PlayerLogan, map[string]int{"syntheticSap": 2})
	_, err := e.SetPlayerField(PlayerLogan, "rads", float64(1))
	require.NoError(t, err)

	res, err := e.Craft(PlayerLogan, "r6")
	require.NoError(t, err)
	// Only 1 rad to remove even though the recipe clears 2.
	assert.Equal(t, 1, res.Effect["radsRemoved"])
	assert.Equal(t, 0, getPlayer(t, e, PlayerLogan).Rads)
}

func TestCraftUnknowns(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)

	_, err := e.Craft("ghost", "r5")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.Craft(PlayerLogan, "r999")
	assert.ErrorIs(t, err, ErrNotFound)
}
