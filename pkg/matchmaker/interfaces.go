// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker implements the per-match-type queues that pair waiting players into
// match proposals and resolve those proposals into confirmed matches.
package matchmaker

import (
	"time"

	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/models"
)

/*
Matchmaker owns the queues of one session. Each match type has its own lane; all mutations of a
lane are serialized while Position, EstimateWait and Snapshot read the last published snapshot of
a lane without taking its lock.

A player holds at most one active entry across all lanes. Join pairs the new entry with the
longest-waiting compatible entry of the same lane, Respond records accept or decline for one side
of a proposal, and ExpireProposals resolves proposals nobody answered in time.
*/
type Matchmaker interface {
	// Join enqueues the player for matchType and tries to pair it immediately.
	// Fails with models.ErrInvalidState when the player already has an active entry.
	Join(rootScope *envelope.Scope, player *models.Player, matchType models.MatchType) (JoinResult, error)

	// Respond records an accept or decline for the player's side of the proposal.
	Respond(rootScope *envelope.Scope, proposalID string, playerID string, response models.Response) (RespondResult, error)

	// Leave withdraws a waiting entry. It returns false when the player is not waiting,
	// including when the entry is part of an open proposal.
	Leave(rootScope *envelope.Scope, playerID string) (bool, error)

	// ExpireProposals dissolves every open proposal past its deadline.
	ExpireProposals(rootScope *envelope.Scope) []RespondResult

	Position(playerID string) (int, bool)
	EstimateWait(matchType models.MatchType, position int) time.Duration
	Snapshot(matchType models.MatchType) (LaneSnapshot, bool)
}
