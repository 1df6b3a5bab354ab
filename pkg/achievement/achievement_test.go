package achievement

import (
	"testing"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/testsetup"
)

func ids(definitions []Definition) []string {
	return pie.Map(definitions, func(d Definition) string { return d.ID })
}

func TestUnlock_OnlyNewlyUnlocked(t *testing.T) {
	player := models.NewPlayer("p1", "Dink", 1000)
	player.RecordMatch(true, 11, 2, testsetup.Epoch)

	unlocked := Unlock(DefaultCatalog(), player, testsetup.Epoch)
	assert.Equal(t, []string{"first_match", "first_win"}, ids(unlocked))
	assert.Equal(t, testsetup.Epoch, player.Achievements["first_win"])

	player.RecordMatch(true, 11, 2, testsetup.Epoch)
	assert.Empty(t, Unlock(DefaultCatalog(), player, testsetup.Epoch.Add(time.Hour)))
	assert.Equal(t, testsetup.Epoch, player.Achievements["first_win"])
}

func TestUnlock_StatThresholds(t *testing.T) {
	player := &models.Player{ID: "p1", Rating: 1250, LongestStreak: 10, PointsScored: 480}

	unlocked := Unlock(DefaultCatalog(), player, testsetup.Epoch)
	assert.Equal(t, []string{"hot_streak", "unstoppable", "rating_1200"}, ids(unlocked))

	player.PointsScored = 505
	assert.Equal(t, []string{"point_machine"}, ids(Unlock(DefaultCatalog(), player, testsetup.Epoch)))
}

func TestUnlock_NilCatalogAndPredicate(t *testing.T) {
	player := models.NewPlayer("p1", "Dink", 1000)
	assert.Nil(t, Unlock(nil, player, testsetup.Epoch))
	assert.Nil(t, Unlock(StaticCatalog{{ID: "broken"}}, player, testsetup.Epoch))
}
