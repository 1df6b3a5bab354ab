// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package challenge

import (
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/jonboulle/clockwork"

	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/models"
)

// Tracker keeps one daily board per player. Boards from a previous day are discarded, never carried forward.
type Tracker struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	random  Rand
	catalog []Definition
	count   int
	boards  map[string]models.ChallengeBoard
}

func NewTracker(clock clockwork.Clock, random Rand, catalog []Definition, count int) *Tracker {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Tracker{
		clock:   clock,
		random:  random,
		catalog: catalog,
		count:   count,
		boards:  make(map[string]models.ChallengeBoard),
	}
}

// DayKey returns the board day for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(constants.DayKeyLayout)
}

// Board returns a copy of playerID's board for today, generating one if needed.
func (t *Tracker) Board(playerID string) models.ChallengeBoard {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.boardUnlocked(playerID, DayKey(t.clock.Now())).Clone()
}

func (t *Tracker) boardUnlocked(playerID, day string) models.ChallengeBoard {
	board, ok := t.boards[playerID]
	if !ok || board.Day != day {
		board = Generate(playerID, day, t.catalog, t.count, t.random)
		t.boards[playerID] = board
	}
	return board
}

// Commit stores an advanced board. It returns false, storing nothing, when the board belongs to a day that is no longer current.
func (t *Tracker) Commit(board models.ChallengeBoard) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.boards[board.PlayerID]
	if !ok || current.Day != board.Day {
		return false
	}
	t.boards[board.PlayerID] = board.Clone()
	return true
}

// Record advances playerID's board with events and returns newly completed challenges.
func (t *Tracker) Record(playerID string, events ...models.ChallengeEvent) []models.DailyChallenge {
	t.mu.Lock()
	defer t.mu.Unlock()

	board := t.boardUnlocked(playerID, DayKey(t.clock.Now())).Clone()
	completed := board.Advance(events...)
	t.boards[playerID] = board
	return completed
}

// Rotate regenerates every tracked board whose day has passed and returns the number regenerated.
func (t *Tracker) Rotate(rootScope *envelope.Scope) int {
	scope := rootScope.NewChildScope("Tracker.Rotate")
	defer scope.Finish()

	t.mu.Lock()
	defer t.mu.Unlock()

	day := DayKey(t.clock.Now())
	stale := pie.Filter(pie.Keys(t.boards), func(playerID string) bool {
		return t.boards[playerID].Day != day
	})
	for _, playerID := range pie.Sort(stale) {
		t.boards[playerID] = Generate(playerID, day, t.catalog, t.count, t.random)
	}

	scope.Log.WithField("day", day).Debugf("rotated %d challenge boards", len(stale))
	return len(stale)
}

// Forget drops playerID's board.
func (t *Tracker) Forget(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.boards, playerID)
}
