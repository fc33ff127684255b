package game

import "github.com/andrewmaxsmith/fallout-nova-scotia/internal/catalog"

// xpRequired is the XP needed to go from level to level+1.
func xpRequired(level int) int {
	return 5 + (level-1)*3
}

// ensureProgress backfills progression fields on sheets written before
// leveling existed and recomputes xpToNext after direct overseer edits.
func ensureProgress(p *Player) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	p.XPToNext = xpRequired(p.Level)
}

// EnsureProgression recomputes derived progression fields on every sheet.
// Called before serving the full state so a hand-edited save reads
// consistently. It corrects derived fields only, so the change hooks are
// deliberately not fired; a save nudge on every read would have the
// dashboard re-fetching in a loop.
func (e *Engine) EnsureProgression() {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	for _, p := range e.store.state.Players {
		ensureProgress(p)
	}
}

// grantXP adds xp and resolves any level-ups, banking one perk selection
// per level gained. Returns the number of levels gained.
func (p *Player) grantXP(xp int) int {
	p.XP += xp
	gained := 0
	for p.XP >= xpRequired(p.Level) {
		p.XP -= xpRequired(p.Level)
		p.Level++
		p.PendingPerks++
		gained++
	}
	p.XPToNext = xpRequired(p.Level)
	return gained
}

// QuestResult reports a completed quest.
type QuestResult struct {
	Message      string `json:"message"`
	TabsAwarded  int    `json:"tabsAwarded"`
	XPAwarded    int    `json:"xpAwarded"`
	LevelsGained int    `json:"levelsGained"`
}

// AssignQuest puts a catalog quest on the player's active list. If the
// quest has an associated radio signal the player's radio auto-tunes to it.
func (e *Engine) AssignQuest(playerID, questID string) error {
	return e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		q, ok := e.cat.Quest(questID)
		if !ok {
			return notFoundf("Quest not found")
		}
		for _, active := range p.ActiveQuests {
			if active == q.ID {
				return invalidf("Quest already active")
			}
		}
		p.ActiveQuests = append(p.ActiveQuests, q.ID)
		if radioID, ok := s.QuestRadioMap[q.ID]; ok {
			p.ActiveRadio = &radioID
			p.ActiveRadioData = nil
		}
		return nil
	})
}

// CompleteQuest moves a quest to the completed list and pays out its tabs,
// scrap and XP. Completion is not gated on the quest being active: the
// overseer can settle quests played out entirely at the table.
func (e *Engine) CompleteQuest(playerID, questID string) (QuestResult, error) {
	var res QuestResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		q, ok := e.cat.Quest(questID)
		if !ok {
			return notFoundf("Quest not found")
		}
		remaining := p.ActiveQuests[:0]
		for _, active := range p.ActiveQuests {
			if active != q.ID {
				remaining = append(remaining, active)
			}
		}
		p.ActiveQuests = remaining
		p.CompletedQuests = append(p.CompletedQuests, q.ID)
		p.Tabs += q.RewardTabs
		for scrapType, amount := range q.RewardScrap {
			p.Scrap[scrapType] += amount
		}
		gained := p.grantXP(q.XP)
		res = QuestResult{
			Message:      playerID + " completed " + q.Title,
			TabsAwarded:  q.RewardTabs,
			XPAwarded:    q.XP,
			LevelsGained: gained,
		}
		return nil
	})
	return res, err
}

// CompleteRandomQuest pays out a side-job. Side-jobs have no active list;
// they are handed out verbally and settled here.
func (e *Engine) CompleteRandomQuest(playerID, questID string) (QuestResult, error) {
	var res QuestResult
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		q, ok := e.cat.RandomQuest(questID)
		if !ok {
			return notFoundf("Quest not found")
		}
		p.Tabs += q.Reward
		gained := p.grantXP(q.XP)
		res = QuestResult{
			Message:      playerID + " completed " + q.Title,
			TabsAwarded:  q.Reward,
			XPAwarded:    q.XP,
			LevelsGained: gained,
		}
		return nil
	})
	return res, err
}

// RandomSideJob draws a uniform random side-job from the catalog for the
// overseer to read out.
func (e *Engine) RandomSideJob() (catalog.RandomQuest, error) {
	if len(e.cat.RandomQuests) == 0 {
		return catalog.RandomQuest{}, configf("No random quests configured")
	}
	return e.cat.RandomQuests[e.dice.Intn(len(e.cat.RandomQuests))], nil
}

// UnlockPerk spends one banked perk selection on the given perk.
func (e *Engine) UnlockPerk(playerID, perkID string) (catalog.Perk, error) {
	var unlocked catalog.Perk
	err := e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		perk, ok := e.cat.Perk(perkID)
		if !ok {
			return notFoundf("Perk not found")
		}
		if p.PendingPerks <= 0 {
			return invalidf("No perk selections available")
		}
		if p.hasPerk(perk.ID) {
			return invalidf("Perk already unlocked")
		}
		p.UnlockedPerks = append(p.UnlockedPerks, perk.ID)
		p.PendingPerks--
		unlocked = perk
		return nil
	})
	return unlocked, err
}

// RemovePerk takes a perk off the player's sheet. The spent selection is
// not refunded; removal is an overseer correction, not an undo.
func (e *Engine) RemovePerk(playerID, perkID string) error {
	return e.store.Mutate(func(s *GameState) error {
		p, err := findPlayer(s, playerID)
		if err != nil {
			return err
		}
		remaining := p.UnlockedPerks[:0]
		for _, id := range p.UnlockedPerks {
			if id != perkID {
				remaining = append(remaining, id)
			}
		}
		p.UnlockedPerks = remaining
		return nil
	})
}
