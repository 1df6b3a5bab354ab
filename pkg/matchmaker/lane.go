// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/models"
)

// lane is the queue of one match type. Every field except snapshot is guarded by mu.
type lane struct {
	matchType models.MatchType

	mu        sync.Mutex
	waiting   waitingList
	entries   map[string]*models.QueueEntry
	proposals map[string]*models.MatchProposal
	estimator *waitEstimator
	stats     LaneStats

	snapshot atomic.Pointer[LaneSnapshot]
}

func newLane(matchType models.MatchType, estimator *waitEstimator) *lane {
	l := &lane{
		matchType: matchType,
		entries:   make(map[string]*models.QueueEntry),
		proposals: make(map[string]*models.MatchProposal),
		estimator: estimator,
	}
	l.snapshot.Store(&LaneSnapshot{MatchType: matchType, Waiting: []models.QueueEntry{}, PerPosition: estimator.perPosition()})
	return l
}

func (l *lane) lock(scope *envelope.Scope) {
	start := time.Now()
	l.mu.Lock()
	if waited := time.Since(start); waited > constants.LaneLockTimeLimit {
		scope.Log.Warnf("waited %s for the %s lane lock", waited, l.matchType)
	}
}

func (l *lane) unlock() {
	l.mu.Unlock()
}

func (l *lane) enqueue(entry *models.QueueEntry) {
	entry.State = models.EntryWaiting
	entry.ProposalID = ""
	l.entries[entry.ID] = entry
	l.waiting.insert(entry)
}

// drop removes the entry from the lane and marks it with its terminal state.
func (l *lane) drop(entry *models.QueueEntry, state models.EntryState) {
	l.waiting.forget(entry.ID)
	delete(l.entries, entry.ID)
	entry.State = state
}

// expired returns the open proposals past their deadline, oldest deadline first.
func (l *lane) expired(now time.Time) []*models.MatchProposal {
	var result []*models.MatchProposal
	for _, p := range l.proposals {
		if p.IsExpired(now) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ExpiresAt.Equal(result[j].ExpiresAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].ExpiresAt.Before(result[j].ExpiresAt)
	})
	return result
}

// publish swaps in a fresh snapshot. Callers hold mu.
func (l *lane) publish(now time.Time) *LaneSnapshot {
	snapshot := &LaneSnapshot{
		MatchType:     l.matchType,
		Waiting:       l.waiting.copies(),
		OpenProposals: len(l.proposals),
		PerPosition:   l.estimator.perPosition(),
		Stats:         l.stats,
		TakenAt:       now,
	}
	l.snapshot.Store(snapshot)
	return snapshot
}
