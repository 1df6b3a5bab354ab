package progression

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinkside/rally-core/pkg/models"
)

func TestCalculateLevel_Thresholds(t *testing.T) {
	assert.Equal(t, 1, CalculateLevel(0))
	assert.Equal(t, 1, CalculateLevel(-20))
	assert.Equal(t, 1, CalculateLevel(99))
	assert.Equal(t, 2, CalculateLevel(100))
	assert.Equal(t, 2, CalculateLevel(328))
	assert.Equal(t, 3, CalculateLevel(329))
	assert.Equal(t, MaxLevel, CalculateLevel(1<<40))
}

func TestCalculateLevel_NonDecreasing(t *testing.T) {
	previous := CalculateLevel(0)
	for xp := 0; xp <= ThresholdForLevel(MaxLevel)+500; xp += 7 {
		level := CalculateLevel(xp)
		require.GreaterOrEqual(t, level, previous, "xp %d", xp)
		previous = level
	}
	assert.Equal(t, MaxLevel, previous)
}

func TestThresholdForLevel_StrictlyIncreasing(t *testing.T) {
	for level := 1; level < MaxLevel; level++ {
		assert.Less(t, ThresholdForLevel(level), ThresholdForLevel(level+1), "level %d", level)
		assert.Equal(t, level, CalculateLevel(ThresholdForLevel(level)))
	}
	assert.Equal(t, 0, ThresholdForLevel(0))
}

func TestXPProgressInCurrentLevel(t *testing.T) {
	tests := []struct {
		name       string
		experience int
		expected   Progress
	}{
		{"zero", 0, Progress{Level: 1, Current: 0, Required: 100, Progress: 0}},
		{"half of level one", 50, Progress{Level: 1, Current: 50, Required: 100, Progress: 0.5}},
		{"start of level two", 100, Progress{Level: 2, Current: 0, Required: 229, Progress: 0}},
		{"negative is clamped", -5, Progress{Level: 1, Current: 0, Required: 100, Progress: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := XPProgressInCurrentLevel(tt.experience)
			assert.Equal(t, tt.expected.Level, got.Level)
			assert.Equal(t, tt.expected.Current, got.Current)
			assert.Equal(t, tt.expected.Required, got.Required)
			assert.InDelta(t, tt.expected.Progress, got.Progress, 1e-9)
		})
	}
}

func TestXPProgressInCurrentLevel_MaxLevelGuard(t *testing.T) {
	got := XPProgressInCurrentLevel(ThresholdForLevel(MaxLevel) + 1234)

	assert.Equal(t, MaxLevel, got.Level)
	assert.Equal(t, 1234, got.Current)
	assert.Zero(t, got.Required)
	assert.Zero(t, got.Progress)
	assert.Equal(t, got, XPProgressInCurrentLevel(ThresholdForLevel(MaxLevel)+1234))
}

func TestEngine_ApplyDetectsLevelUp(t *testing.T) {
	engine := NewEngine(nil)
	player := models.NewPlayer("p1", "Dink", 1000)
	player.Experience = 60

	award, err := engine.Apply(player, RewardMatchWin)
	require.NoError(t, err)
	assert.Equal(t, 110, player.Experience)
	assert.Equal(t, Award{
		Kind: RewardMatchWin, Amount: 50,
		ExperienceBefore: 60, ExperienceAfter: 110,
		LevelBefore: 1, LevelAfter: 2,
	}, award)
	assert.True(t, award.LeveledUp())

	award, err = engine.Apply(player, RewardMatchLoss)
	require.NoError(t, err)
	assert.False(t, award.LeveledUp())
}

func TestEngine_Errors(t *testing.T) {
	engine := NewEngine(Catalog{RewardMatchWin: 10})
	player := models.NewPlayer("p1", "Dink", 1000)

	_, err := engine.Apply(player, RewardPerfectGame)
	assert.True(t, eris.Is(err, models.ErrNotFound))

	_, err = engine.Grant(player, RewardDailyChallenge, -1)
	assert.True(t, eris.Is(err, models.ErrInvalidState))

	_, err = engine.Grant(nil, RewardDailyChallenge, 1)
	assert.True(t, eris.Is(err, models.ErrPrecondition))
	assert.Zero(t, player.Experience)
}

func TestStreakReward(t *testing.T) {
	for streak, expected := range map[int]RewardKind{3: RewardWinStreak3, 5: RewardWinStreak5, 10: RewardWinStreak10} {
		kind, ok := StreakReward(streak)
		assert.True(t, ok)
		assert.Equal(t, expected, kind)
	}
	for _, streak := range []int{0, 1, 2, 4, 6, 9, 11, 20} {
		_, ok := StreakReward(streak)
		assert.False(t, ok, "streak %d", streak)
	}
}
