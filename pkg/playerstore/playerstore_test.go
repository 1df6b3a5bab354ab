package playerstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/testsetup"
)

func newRedisStoreForTest(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr(),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test"), s
}

func stores(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStoreForTest(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestStore_SaveGetList(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			players := testsetup.NewPlayers(3, 1000)
			players[1].RecordMatch(true, 11, 0, testsetup.Epoch)
			players[1].Achievements["first_win"] = testsetup.Epoch

			require.NoError(t, store.Save(ctx, players[2], players[0], players[1]))

			got, err := store.Get(ctx, "player-2")
			require.NoError(t, err)
			assert.Equal(t, 1, got.Wins)
			assert.Equal(t, models.PeriodStats{Matches: 1, Wins: 1, PointsScored: 11}, got.Period(testsetup.Epoch))
			assert.True(t, got.Achievements["first_win"].Equal(testsetup.Epoch))

			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "player-1", list[0].ID)
			assert.Equal(t, "player-3", list[2].ID)
		})
	}
}

func TestStore_Errors(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "ghost")
			assert.True(t, eris.Is(err, models.ErrNotFound))

			err = store.Save(ctx, &models.Player{})
			assert.True(t, eris.Is(err, models.ErrPrecondition))
		})
	}
}

func TestMemoryStore_GetSharesRecord(t *testing.T) {
	ctx := context.Background()
	player := models.NewPlayer("p1", "Dink", 1000)
	store := NewMemoryStore(player)

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	got.Rating = 1016
	assert.Equal(t, 1016, player.Rating)
}

func TestRedisStore_GetDecodesFreshRecord(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStoreForTest(t)
	require.NoError(t, store.Save(ctx, &models.Player{ID: "p1", Rating: 1000}))

	first, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	first.Rating = 1200
	second, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1000, second.Rating)
	assert.NotNil(t, second.Periods)

	assert.True(t, server.Exists("test:player:p1"))
	members, err := server.SMembers("test:players")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, members)

	server.Del("test:player:p1")
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRedisStore_SaveFailsWhenServerIsDown(t *testing.T) {
	store, server := newRedisStoreForTest(t)
	server.Close()

	err := store.Save(context.Background(), models.NewPlayer("p1", "Dink", 1000))
	assert.Error(t, err)
}
