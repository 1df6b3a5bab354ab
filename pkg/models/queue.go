// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"slices"
	"time"

	"github.com/rotisserie/eris"
)

// MatchType scopes a queue. Players in different match types are never matched together.
type MatchType string

const (
	RankedSingles MatchType = "ranked_singles"
	RankedDoubles MatchType = "ranked_doubles"
	CasualSingles MatchType = "casual_singles"
	CasualDoubles MatchType = "casual_doubles"
)

var AvailableMatchTypes = []MatchType{RankedSingles, RankedDoubles, CasualSingles, CasualDoubles}

func (m MatchType) Validate() error {
	if !slices.Contains(AvailableMatchTypes, m) {
		return eris.Errorf("match type should be one of %v", AvailableMatchTypes)
	}
	return nil
}

// IsSocial is true for the casual match types, which count towards social rewards.
func (m MatchType) IsSocial() bool {
	return m == CasualSingles || m == CasualDoubles
}

func (m MatchType) String() string {
	return string(m)
}

type EntryState string

const (
	EntryWaiting   EntryState = "waiting"
	EntryProposed  EntryState = "proposed"
	EntryConfirmed EntryState = "confirmed"
	EntryDissolved EntryState = "dissolved"
	EntryLeft      EntryState = "left"
)

// IsActive is true while the entry still occupies the player's single queue slot.
func (s EntryState) IsActive() bool {
	return s == EntryWaiting || s == EntryProposed
}

// QueueEntry is a player's standing request to be matched within one match type.
type QueueEntry struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	Rating     int        `json:"rating"`
	MatchType  MatchType  `json:"match_type"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
	State      EntryState `json:"state"`
	ProposalID string     `json:"proposal_id,omitempty"`
}

type Response string

const (
	ResponsePending  Response = "pending"
	ResponseAccepted Response = "accepted"
	ResponseDeclined Response = "declined"
)

type ProposalState string

const (
	ProposalOpen      ProposalState = "open"
	ProposalConfirmed ProposalState = "confirmed"
	ProposalDissolved ProposalState = "dissolved"
)

type DissolveReason string

const (
	DissolveDeclined DissolveReason = "declined"
	DissolveTimeout  DissolveReason = "timeout"
)

// ProposalSide holds one player's half of a proposal.
type ProposalSide struct {
	PlayerID string   `json:"player_id"`
	EntryID  string   `json:"entry_id"`
	Response Response `json:"response"`
}

// MatchProposal is a tentative pairing of two entries awaiting both players' confirmation.
type MatchProposal struct {
	ID             string          `json:"id"`
	MatchType      MatchType       `json:"match_type"`
	Sides          [2]ProposalSide `json:"sides"`
	CreatedAt      time.Time       `json:"created_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
	State          ProposalState   `json:"state"`
	DissolveReason DissolveReason  `json:"dissolve_reason,omitempty"`
}

// SideOf returns the index of playerID in the proposal, or -1.
func (p *MatchProposal) SideOf(playerID string) int {
	for i, side := range p.Sides {
		if side.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Opponent returns the other side of playerID's side index.
func (p *MatchProposal) Opponent(side int) ProposalSide {
	return p.Sides[1-side]
}

func (p *MatchProposal) BothAccepted() bool {
	return p.Sides[0].Response == ResponseAccepted && p.Sides[1].Response == ResponseAccepted
}

func (p *MatchProposal) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
