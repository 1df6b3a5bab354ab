// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/models"
)

// registry is the cross-lane index: the active entry of every player and the lane owning every
// open proposal. Resolved proposal ids are remembered for a while so late responses can be told
// apart from unknown ids.
type registry struct {
	mu sync.Mutex

	// Index by player_id, one active entry per player
	entriesByPlayer map[string]*models.QueueEntry

	// Index by proposal id to its owning lane
	lanesByProposal map[string]*lane

	resolvedAt map[string]time.Time
}

func newRegistry() *registry {
	return &registry{
		entriesByPlayer: make(map[string]*models.QueueEntry),
		lanesByProposal: make(map[string]*lane),
		resolvedAt:      make(map[string]time.Time),
	}
}

// reserve claims the player's single queue slot for entry.
func (r *registry) reserve(entry *models.QueueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.entriesByPlayer[entry.PlayerID]; exists {
		return eris.Wrapf(models.ErrInvalidState, "player %q already has an active %s entry", entry.PlayerID, existing.MatchType)
	}
	r.entriesByPlayer[entry.PlayerID] = entry
	return nil
}

// release frees the player's slot if it is still held by entryID.
func (r *registry) release(playerID string, entryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.entriesByPlayer[playerID]; ok && current.ID == entryID {
		delete(r.entriesByPlayer, playerID)
	}
}

func (r *registry) entryOf(playerID string) (*models.QueueEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entriesByPlayer[playerID]
	return entry, ok
}

func (r *registry) track(proposalID string, l *lane) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lanesByProposal[proposalID] = l
}

func (r *registry) resolve(proposalID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lanesByProposal, proposalID)
	r.resolvedAt[proposalID] = at
}

// laneOf returns the lane owning an open proposal. resolved is true for a recently resolved id.
func (r *registry) laneOf(proposalID string) (l *lane, resolved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.lanesByProposal[proposalID]; ok {
		return l, false
	}
	_, resolved = r.resolvedAt[proposalID]
	return nil, resolved
}

// forget drops resolved ids older than before and returns how many were dropped.
func (r *registry) forget(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, at := range r.resolvedAt {
		if at.Before(before) {
			delete(r.resolvedAt, id)
			count++
		}
	}
	return count
}

func (r *registry) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entriesByPlayer)
}
