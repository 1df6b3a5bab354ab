// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import "time"

type NotificationType string

const (
	NotificationMatchFound         NotificationType = "match_found"
	NotificationMatchConfirmed     NotificationType = "match_confirmed"
	NotificationProposalDissolved  NotificationType = "proposal_dissolved"
	NotificationMatchSummary       NotificationType = "match_summary"
	NotificationLevelUp            NotificationType = "level_up"
	NotificationAchievement        NotificationType = "achievement_unlocked"
	NotificationChallengeCompleted NotificationType = "challenge_completed"
	NotificationExperience         NotificationType = "experience_gained"
)

// Notification payload keys.
const (
	PayloadLevel         = "level"
	PayloadPreviousLevel = "previous_level"
	PayloadAchievementID = "achievement_id"
	PayloadChallengeType = "challenge_type"
	PayloadReward        = "reward"
	PayloadRewardKind    = "reward_kind"
	PayloadRatingBefore  = "rating_before"
	PayloadRatingAfter   = "rating_after"
	PayloadRatingDelta   = "rating_delta"
	PayloadMatchID       = "match_id"
	PayloadProposalID    = "proposal_id"
	PayloadOpponentID    = "opponent_id"
	PayloadReason        = "reason"
)

// Notification is a typed, timestamped message generated as a side effect of core operations.
type Notification struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	PlayerID  string                 `json:"player_id"`
	CreatedAt time.Time              `json:"created_at"`
	Title     string                 `json:"title"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}
