// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"time"
)

// Match is created when a proposal confirms. Scores are filled in by the caller before settlement,
// everything else is fixed once settlement completes.
type Match struct {
	ID          string     `json:"id"`
	MatchType   MatchType  `json:"match_type"`
	ProposalID  string     `json:"proposal_id,omitempty"`
	PlayerIDs   [2]string  `json:"player_ids"`
	Scores      [2]*int    `json:"scores"`
	CreatedAt   time.Time  `json:"created_at"`
	PlayedAt    *time.Time `json:"played_at,omitempty"`
	Settled     bool       `json:"settled"`
	WinnerID    string     `json:"winner_id,omitempty"`
	RatingDelta int        `json:"rating_delta,omitempty"`
}

// SideOf returns the index of playerID in the match, or -1.
func (m *Match) SideOf(playerID string) int {
	for i, id := range m.PlayerIDs {
		if id == playerID {
			return i
		}
	}
	return -1
}

// IsScored is true once both scores are present.
func (m *Match) IsScored() bool {
	return m.Scores[0] != nil && m.Scores[1] != nil
}

// SetScore records both scores from the perspective of playerID.
func (m *Match) SetScore(playerID string, scored, conceded int) bool {
	side := m.SideOf(playerID)
	if side < 0 {
		return false
	}
	m.Scores[side] = &scored
	m.Scores[1-side] = &conceded
	return true
}

// Timestamp is when the match was played, falling back to its creation time.
func (m *Match) Timestamp() time.Time {
	if m.PlayedAt != nil {
		return *m.PlayedAt
	}
	return m.CreatedAt
}

// MatchResult is the outcome fed into settlement, from the current player's point of view.
// A nil RatingDelta is computed by the rating engine during settlement.
type MatchResult struct {
	IsWin          bool `json:"is_win"`
	PointsScored   int  `json:"points_scored"`
	PointsConceded int  `json:"points_conceded"`
	RatingDelta    *int `json:"rating_delta,omitempty"`
}

// IsPerfectGame is a win with zero points conceded.
func (r MatchResult) IsPerfectGame() bool {
	return r.IsWin && r.PointsConceded == 0
}

// Mirror returns the result seen from the opponent's side.
func (r MatchResult) Mirror() MatchResult {
	mirrored := MatchResult{
		IsWin:          !r.IsWin,
		PointsScored:   r.PointsConceded,
		PointsConceded: r.PointsScored,
	}
	if r.RatingDelta != nil {
		delta := -*r.RatingDelta
		mirrored.RatingDelta = &delta
	}
	return mirrored
}
