// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package playerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/models"
)

const defaultKeyPrefix = "rally"

var _ Store = (*RedisStore)(nil)

// RedisStore keeps each player as a JSON document plus a set of known player ids.
// Get decodes a fresh record on every call.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) playerKey(playerID string) string {
	return fmt.Sprintf("%s:player:%s", s.prefix, playerID)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":players"
}

func (s *RedisStore) Get(ctx context.Context, playerID string) (*models.Player, error) {
	bz, err := s.client.Get(ctx, s.playerKey(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, eris.Wrapf(models.ErrNotFound, "player %q", playerID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "get player %q", playerID)
	}
	return decodePlayer(bz)
}

// Save writes all players in one MULTI/EXEC transaction.
func (s *RedisStore) Save(ctx context.Context, players ...*models.Player) error {
	if len(players) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	for _, p := range players {
		if p == nil || p.ID == "" {
			return eris.Wrap(models.ErrPrecondition, "cannot save a player without id")
		}
		bz, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "encode player %q", p.ID)
		}
		if err = pipe.Set(ctx, s.playerKey(p.ID), bz, 0).Err(); err != nil {
			return eris.Wrap(err, "queue player write")
		}
		if err = pipe.SAdd(ctx, s.indexKey(), p.ID).Err(); err != nil {
			return eris.Wrap(err, "queue player index write")
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrap(err, "save players")
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]*models.Player, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, eris.Wrap(err, "list player ids")
	}
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}
	ids = pie.Sort(ids)

	values, err := s.client.MGet(ctx, pie.Map(ids, s.playerKey)...).Result()
	if err != nil {
		return nil, eris.Wrap(err, "list players")
	}
	players := make([]*models.Player, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// indexed id whose document is gone
			continue
		}
		player, err := decodePlayer([]byte(raw))
		if err != nil {
			return nil, eris.Wrapf(err, "player %q", ids[i])
		}
		players = append(players, player)
	}
	return players, nil
}

func decodePlayer(bz []byte) (*models.Player, error) {
	player := &models.Player{}
	if err := json.Unmarshal(bz, player); err != nil {
		return nil, eris.Wrap(err, "decode player")
	}
	if player.Periods == nil {
		player.Periods = map[string]models.PeriodStats{}
	}
	if player.Achievements == nil {
		player.Achievements = map[string]time.Time{}
	}
	return player, nil
}
