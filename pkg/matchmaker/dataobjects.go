// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"time"

	"github.com/dinkside/rally-core/pkg/models"
)

// JoinResult is returned by Join. Position and EstimatedWait are zero when the entry was
// paired straight away, in which case Proposal is set.
type JoinResult struct {
	Entry         models.QueueEntry     `json:"entry"`
	Position      int                   `json:"position"`
	EstimatedWait time.Duration         `json:"estimatedWait"`
	Proposal      *models.MatchProposal `json:"proposal,omitempty"`
}

// RespondResult describes the state of a proposal after a response or a timeout sweep.
type RespondResult struct {
	Proposal models.MatchProposal `json:"proposal"`
	// Match is set once, by the response that confirms the proposal.
	Match     *models.Match `json:"match,omitempty"`
	Dissolved bool          `json:"dissolved"`
	// Reverted holds the entries put back to waiting by a dissolve.
	Reverted []models.QueueEntry `json:"reverted,omitempty"`
	// Reoffered holds new proposals made for reverted entries.
	Reoffered []models.MatchProposal `json:"reoffered,omitempty"`
}

// IsResolved is true when the proposal reached a terminal state.
func (r RespondResult) IsResolved() bool {
	return r.Proposal.State != models.ProposalOpen
}

// LaneSnapshot is the read-only view of a lane published after every mutation.
type LaneSnapshot struct {
	MatchType models.MatchType `json:"matchType"`
	// Waiting is in FIFO order, the first entry is position 1.
	Waiting       []models.QueueEntry `json:"waiting"`
	OpenProposals int                 `json:"openProposals"`
	PerPosition   time.Duration       `json:"perPosition"`
	Stats         LaneStats           `json:"stats"`
	TakenAt       time.Time           `json:"takenAt"`
}

// PositionOf returns the 1-based position of the player's waiting entry.
func (s *LaneSnapshot) PositionOf(playerID string) (int, bool) {
	for i, entry := range s.Waiting {
		if entry.PlayerID == playerID {
			return i + 1, true
		}
	}
	return 0, false
}
