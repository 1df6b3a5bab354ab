// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/models"
)

type RewardKind string

const (
	RewardMatchWin       RewardKind = "match_win"
	RewardMatchLoss      RewardKind = "match_loss"
	RewardPerfectGame    RewardKind = "perfect_game"
	RewardWinStreak3     RewardKind = "win_streak_3"
	RewardWinStreak5     RewardKind = "win_streak_5"
	RewardWinStreak10    RewardKind = "win_streak_10"
	RewardDailyChallenge RewardKind = "daily_challenge"
	RewardSocialMatch    RewardKind = "social_match"
)

// Catalog maps reward kinds to experience amounts.
type Catalog map[RewardKind]int

func DefaultCatalog() Catalog {
	return Catalog{
		RewardMatchWin:       50,
		RewardMatchLoss:      15,
		RewardPerfectGame:    100,
		RewardWinStreak3:     75,
		RewardWinStreak5:     150,
		RewardWinStreak10:    400,
		RewardDailyChallenge: 100,
		RewardSocialMatch:    25,
	}
}

var streakMilestones = map[int]RewardKind{
	3:  RewardWinStreak3,
	5:  RewardWinStreak5,
	10: RewardWinStreak10,
}

// StreakReward returns the milestone reward for a win streak of exactly streak, if any.
func StreakReward(streak int) (RewardKind, bool) {
	kind, ok := streakMilestones[streak]
	return kind, ok
}

// Award is the record of one experience grant.
type Award struct {
	Kind             RewardKind `json:"kind"`
	Amount           int        `json:"amount"`
	ExperienceBefore int        `json:"experience_before"`
	ExperienceAfter  int        `json:"experience_after"`
	LevelBefore      int        `json:"level_before"`
	LevelAfter       int        `json:"level_after"`
}

// LeveledUp is true only when the grant moved the player to a strictly higher level.
func (a Award) LeveledUp() bool {
	return a.LevelAfter > a.LevelBefore
}

type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{catalog: catalog}
}

// Amount returns the catalog value of kind.
func (e *Engine) Amount(kind RewardKind) (int, bool) {
	amount, ok := e.catalog[kind]
	return amount, ok
}

// Apply grants the catalog amount of kind to player.
func (e *Engine) Apply(player *models.Player, kind RewardKind) (Award, error) {
	amount, ok := e.catalog[kind]
	if !ok {
		return Award{}, eris.Wrapf(models.ErrNotFound, "reward kind %q is not in the catalog", kind)
	}
	return e.Grant(player, kind, amount)
}

// Grant adds amount experience to player and recomputes the level.
func (e *Engine) Grant(player *models.Player, kind RewardKind, amount int) (Award, error) {
	if player == nil {
		return Award{}, eris.Wrap(models.ErrPrecondition, "no player to reward")
	}
	if amount < 0 {
		return Award{}, eris.Wrapf(models.ErrInvalidState, "negative reward %d for %q", amount, kind)
	}

	award := Award{
		Kind:             kind,
		Amount:           amount,
		ExperienceBefore: player.Experience,
		LevelBefore:      CalculateLevel(player.Experience),
	}
	player.Experience += amount
	award.ExperienceAfter = player.Experience
	award.LevelAfter = CalculateLevel(player.Experience)

	return award, nil
}
