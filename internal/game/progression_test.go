package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPRequired(t *testing.T) {
	assert.Equal(t, 5, xpRequired(1))
	assert.Equal(t, 8, xpRequired(2))
	assert.Equal(t, 11, xpRequired(3))
	assert.Equal(t, 32, xpRequired(10))
}

func TestGrantXPLevelsUp(t *testing.T) {
	p := newPlayer("Logan")

	gained := p.grantXP(3)
	assert.Equal(t, 0, gained)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 3, p.XP)

	// 3 + 2 crosses level 1's threshold of 5.
	gained = p.grantXP(2)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 8, p.XPToNext)
	assert.Equal(t, 1, p.PendingPerks)
}

func TestGrantXPMultipleLevels(t *testing.T) {
	p := newPlayer("Rylyn")

	// 5 + 8 = 13 XP clears levels 1 and 2 exactly.
	gained := p.grantXP(13)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 2, p.PendingPerks)
}

func TestCompleteQuest(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	require.NoError(t, e.AssignQuest(PlayerLogan, "h1"))

	res, err := e.CompleteQuest(PlayerLogan, "h1")
	require.NoError(t, err)
	assert.Equal(t, "logan completed VAULT: Sanitize Quarters", res.Message)
	assert.Equal(t, 10, res.TabsAwarded)
	assert.Equal(t, 1, res.XPAwarded)

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 20, p.Tabs)
	assert.Equal(t, 1, p.Scrap["syntheticSap"])
	assert.Equal(t, 1, p.XP)
	assert.Empty(t, p.ActiveQuests)
	assert.Equal(t, []string{"h1"}, p.CompletedQuests)
}

func TestCompleteQuestNotActive(t *testing.T) {
	// The table often settles quests that were never formally assigned.
	e := newTestEngine(t, ResolutionTable)
	_, err := e.CompleteQuest(PlayerRylyn, "h3")
	require.NoError(t, err)

	p := getPlayer(t, e, PlayerRylyn)
	assert.Equal(t, []string{"h3"}, p.CompletedQuests)
	assert.Equal(t, 20, p.Tabs)
}

func TestCompleteQuestTwiceDuplicates(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	_, err := e.CompleteQuest(PlayerLogan, "h1")
	require.NoError(t, err)
	_, err = e.CompleteQuest(PlayerLogan, "h1")
	require.NoError(t, err)

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, []string{"h1", "h1"}, p.CompletedQuests)
	assert.Equal(t, 30, p.Tabs)
}

func TestCompleteQuestErrors(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)

	_, err := e.CompleteQuest("ghost", "h1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.CompleteQuest(PlayerLogan, "no-such-quest")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteRandomQuest(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)

	res, err := e.CompleteRandomQuest(PlayerLogan, "rq1")
	require.NoError(t, err)
	assert.Equal(t, 5, res.TabsAwarded)
	assert.Equal(t, 1, res.XPAwarded)

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, 15, p.Tabs)
	assert.Equal(t, 1, p.XP)
	// Side-jobs do not touch the completed quest list.
	assert.Empty(t, p.CompletedQuests)
}

func TestAssignQuestAutoTunesRadio(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)

	require.NoError(t, e.AssignQuest(PlayerLogan, "q12"))
	p := getPlayer(t, e, PlayerLogan)
	require.NotNil(t, p.ActiveRadio)
	assert.Equal(t, "r5", *p.ActiveRadio)
	assert.Nil(t, p.ActiveRadioData)

	// Quests without a mapped signal leave the radio alone.
	require.NoError(t, e.AssignQuest(PlayerRylyn, "h1"))
	assert.Nil(t, getPlayer(t, e, PlayerRylyn).ActiveRadio)
}

func TestAssignQuestAlreadyActive(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	require.NoError(t, e.AssignQuest(PlayerLogan, "h1"))
	err := e.AssignQuest(PlayerLogan, "h1")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUnlockPerk(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)

	_, err := e.UnlockPerk(PlayerLogan, "p1")
	assert.ErrorIs(t, err, ErrInvalidRequest, "no selections banked yet")

	_, err = e.SetPlayerField(PlayerLogan, "pendingPerks", float64(2))
	require.NoError(t, err)

	perk, err := e.UnlockPerk(PlayerLogan, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", perk.ID)

	_, err = e.UnlockPerk(PlayerLogan, "p1")
	assert.ErrorIs(t, err, ErrInvalidRequest, "already unlocked")

	_, err = e.UnlockPerk(PlayerLogan, "p999")
	assert.ErrorIs(t, err, ErrNotFound)

	p := getPlayer(t, e, PlayerLogan)
	assert.Equal(t, []string{"p1"}, p.UnlockedPerks)
	assert.Equal(t, 1, p.PendingPerks)
}

func TestRemovePerkNoRefund(t *testing.T) {
	e := newTestEngine(t, ResolutionTable)
	_, err := e.SetPlayerField(PlayerLogan, "pendingPerks", float64(1))
	require.NoError(t, err)
	_, err = e.UnlockPerk(PlayerLogan, "p2")
	require.NoError(t, err)

	require.NoError(t, e.RemovePerk(PlayerLogan, "p2"))
	p := getPlayer(t, e, PlayerLogan)
	assert.Empty(t, p.UnlockedPerks)
	assert.Equal(t, 0, p.PendingPerks)

	// Removing a perk the player does not hold is a quiet no-op.
	require.NoError(t, e.RemovePerk(PlayerLogan, "p3"))
}

func TestRandomSideJob(t *testing.T) {
	e := newTestEngine(t, ResolutionTable, 2)
	q, err := e.RandomSideJob()
	require.NoError(t, err)
	assert.Equal(t, "rq3", q.ID)
}
