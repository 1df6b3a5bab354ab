// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import (
	"fmt"
	"time"

	"github.com/dinkside/rally-core/pkg/common"
	"github.com/dinkside/rally-core/pkg/models"
)

func New(notificationType models.NotificationType, playerID string, at time.Time, title string, payload map[string]interface{}) models.Notification {
	return models.Notification{
		ID:        common.GenerateULID(at),
		Type:      notificationType,
		PlayerID:  playerID,
		CreatedAt: at,
		Title:     title,
		Payload:   payload,
	}
}

func LevelUp(playerID string, at time.Time, previousLevel, level int) models.Notification {
	return New(models.NotificationLevelUp, playerID, at, fmt.Sprintf("Level up! You reached level %d", level), map[string]interface{}{
		models.PayloadLevel:         level,
		models.PayloadPreviousLevel: previousLevel,
	})
}

func AchievementUnlocked(playerID string, at time.Time, achievementID, title string) models.Notification {
	return New(models.NotificationAchievement, playerID, at, fmt.Sprintf("Achievement unlocked: %s", title), map[string]interface{}{
		models.PayloadAchievementID: achievementID,
	})
}

func ChallengeCompleted(playerID string, at time.Time, c models.DailyChallenge) models.Notification {
	return New(models.NotificationChallengeCompleted, playerID, at, fmt.Sprintf("Challenge complete: %s", c.Title), map[string]interface{}{
		models.PayloadChallengeType: c.Type,
		models.PayloadReward:        c.Reward,
	})
}

func ExperienceGained(playerID string, at time.Time, kind string, amount int) models.Notification {
	return New(models.NotificationExperience, playerID, at, fmt.Sprintf("+%d XP", amount), map[string]interface{}{
		models.PayloadRewardKind: kind,
		models.PayloadReward:     amount,
	})
}

func MatchSummary(playerID string, at time.Time, matchID string, won bool, ratingBefore, ratingAfter int) models.Notification {
	title := "Match lost"
	if won {
		title = "Match won"
	}
	return New(models.NotificationMatchSummary, playerID, at, title, map[string]interface{}{
		models.PayloadMatchID:      matchID,
		models.PayloadRatingBefore: ratingBefore,
		models.PayloadRatingAfter:  ratingAfter,
		models.PayloadRatingDelta:  ratingAfter - ratingBefore,
	})
}

func MatchFound(playerID string, at time.Time, proposal *models.MatchProposal, opponentID string) models.Notification {
	return New(models.NotificationMatchFound, playerID, at, "Match found", map[string]interface{}{
		models.PayloadProposalID: proposal.ID,
		models.PayloadOpponentID: opponentID,
	})
}

func MatchConfirmed(playerID string, at time.Time, match *models.Match) models.Notification {
	opponentID := match.PlayerIDs[0]
	if opponentID == playerID {
		opponentID = match.PlayerIDs[1]
	}
	return New(models.NotificationMatchConfirmed, playerID, at, "Match confirmed", map[string]interface{}{
		models.PayloadMatchID:    match.ID,
		models.PayloadProposalID: match.ProposalID,
		models.PayloadOpponentID: opponentID,
	})
}

func ProposalDissolved(playerID string, at time.Time, proposal *models.MatchProposal) models.Notification {
	return New(models.NotificationProposalDissolved, playerID, at, "Match cancelled", map[string]interface{}{
		models.PayloadProposalID: proposal.ID,
		models.PayloadReason:     string(proposal.DissolveReason),
	})
}
