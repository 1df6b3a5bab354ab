// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package playerstore

import (
	"context"
	"sync"

	"github.com/elliotchance/pie/v2"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps players in process. Get hands out the stored record itself, so changes
// made through it are visible to every holder.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]*models.Player
}

func NewMemoryStore(players ...*models.Player) *MemoryStore {
	s := &MemoryStore{players: make(map[string]*models.Player, len(players))}
	for _, p := range players {
		s.players[p.ID] = p
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, playerID string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[playerID]
	if !ok {
		return nil, eris.Wrapf(models.ErrNotFound, "player %q", playerID)
	}
	return player, nil
}

func (s *MemoryStore) Save(ctx context.Context, players ...*models.Player) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "save players")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range players {
		if p == nil || p.ID == "" {
			return eris.Wrap(models.ErrPrecondition, "cannot save a player without id")
		}
	}
	for _, p := range players {
		s.players[p.ID] = p
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := pie.Sort(pie.Keys(s.players))
	return pie.Map(ids, func(id string) *models.Player { return s.players[id] }), nil
}
