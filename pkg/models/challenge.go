// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// ChallengeEvent is a qualifying event that advances daily challenges.
type ChallengeEvent string

const (
	EventMatchPlayed       ChallengeEvent = "match_played"
	EventMatchWon          ChallengeEvent = "match_won"
	EventPerfectGame       ChallengeEvent = "perfect_game"
	EventSocialMatchPlayed ChallengeEvent = "social_match_played"
)

// DailyChallenge is one objective of a player's daily board.
type DailyChallenge struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Event     ChallengeEvent `json:"event"`
	Target    int            `json:"target"`
	Progress  int            `json:"progress"`
	Completed bool           `json:"completed"`
	Reward    int            `json:"reward"`
}

// Advance adds one step of progress for a matching event. It returns true only on the step that completes the challenge.
func (c *DailyChallenge) Advance(event ChallengeEvent) bool {
	if c.Completed || c.Event != event {
		return false
	}
	if c.Progress < c.Target {
		c.Progress++
	}
	if c.Progress >= c.Target {
		c.Completed = true
		return true
	}
	return false
}

// ChallengeBoard is the set of challenges a player holds for one day.
type ChallengeBoard struct {
	PlayerID   string           `json:"player_id"`
	Day        string           `json:"day"`
	Challenges []DailyChallenge `json:"challenges"`
}

// Advance applies every event in order and returns the challenges completed by them.
func (b *ChallengeBoard) Advance(events ...ChallengeEvent) []DailyChallenge {
	var completed []DailyChallenge
	for _, event := range events {
		for i := range b.Challenges {
			if b.Challenges[i].Advance(event) {
				completed = append(completed, b.Challenges[i])
			}
		}
	}
	return completed
}

// Clone returns a copy that shares no challenge slice with b.
func (b ChallengeBoard) Clone() ChallengeBoard {
	challenges := make([]DailyChallenge, len(b.Challenges))
	copy(challenges, b.Challenges)
	b.Challenges = challenges
	return b
}
