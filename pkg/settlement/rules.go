// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package settlement

import (
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/progression"
)

// validate checks the match is scored, unsettled and agrees with the reported result.
func validate(match *models.Match, side int, result models.MatchResult) error {
	if match.Settled {
		return eris.Wrapf(models.ErrInvalidState, "match %q is already settled", match.ID)
	}
	if !match.IsScored() {
		return eris.Wrapf(models.ErrInvalidState, "match %q has no final score", match.ID)
	}
	if result.PointsScored < 0 || result.PointsConceded < 0 {
		return eris.Wrapf(models.ErrInvalidState, "negative points %d-%d", result.PointsScored, result.PointsConceded)
	}
	scored, conceded := *match.Scores[side], *match.Scores[1-side]
	if scored != result.PointsScored || conceded != result.PointsConceded {
		return eris.Wrapf(models.ErrInvalidState, "result %d-%d does not match the score %d-%d",
			result.PointsScored, result.PointsConceded, scored, conceded)
	}
	if scored == conceded {
		return eris.Wrapf(models.ErrInvalidState, "match %q is tied %d-%d", match.ID, scored, conceded)
	}
	if result.IsWin != (scored > conceded) {
		return eris.Wrapf(models.ErrInvalidState, "win flag disagrees with the score %d-%d", scored, conceded)
	}
	return nil
}

// rewardKinds lists the experience rewards of one match, each granted separately.
// player already carries the stats of this match.
func rewardKinds(match *models.Match, player *models.Player, result models.MatchResult) []progression.RewardKind {
	kinds := []progression.RewardKind{progression.RewardMatchLoss}
	if result.IsWin {
		kinds[0] = progression.RewardMatchWin
	}
	if result.IsPerfectGame() {
		kinds = append(kinds, progression.RewardPerfectGame)
	}
	if result.IsWin {
		if kind, ok := progression.StreakReward(player.CurrentStreak); ok {
			kinds = append(kinds, kind)
		}
	}
	if match.MatchType.IsSocial() {
		kinds = append(kinds, progression.RewardSocialMatch)
	}
	return kinds
}

func challengeEvents(match *models.Match, result models.MatchResult) []models.ChallengeEvent {
	events := []models.ChallengeEvent{models.EventMatchPlayed}
	if result.IsWin {
		events = append(events, models.EventMatchWon)
	}
	if result.IsPerfectGame() {
		events = append(events, models.EventPerfectGame)
	}
	if match.MatchType.IsSocial() {
		events = append(events, models.EventSocialMatchPlayed)
	}
	return events
}

func totalExperience(awards []progression.Award) int {
	total := 0
	for _, a := range awards {
		total += a.Amount
	}
	return total
}
