// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/matchmaker"
	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/notification"
)

func (s *Session) publishProposal(scope *envelope.Scope, proposal *models.MatchProposal) {
	now := s.clock.Now()
	for side, p := range proposal.Sides {
		s.hub.Publish(scope, notification.MatchFound(p.PlayerID, now, proposal, proposal.Opponent(side).PlayerID))
	}
}

// publishResolution records a confirmed match and notifies the players affected by a response or a sweep.
func (s *Session) publishResolution(scope *envelope.Scope, result matchmaker.RespondResult) {
	now := s.clock.Now()

	if result.Match != nil {
		s.mu.Lock()
		s.matches[result.Match.ID] = &matchRecord{match: result.Match}
		s.mu.Unlock()
		s.forgetSettled(scope)
		for _, playerID := range result.Match.PlayerIDs {
			s.hub.Publish(scope, notification.MatchConfirmed(playerID, now, result.Match))
		}
	}

	if result.Dissolved {
		for _, side := range result.Proposal.Sides {
			s.hub.Publish(scope, notification.ProposalDissolved(side.PlayerID, now, &result.Proposal))
		}
	}

	for i := range result.Reoffered {
		s.publishProposal(scope, &result.Reoffered[i])
	}
}
