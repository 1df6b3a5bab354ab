// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	LaneLockTimeLimit = 5 * time.Second

	DefaultRating  = 1000
	DefaultKFactor = 32

	PeriodKeyLayout = "2006-01"
	DayKeyLayout    = "2006-01-02"
)

const (
	JoinQueueFunction         = "joinQueue"
	RespondToProposalFunction = "respondToProposal"
	LeaveQueueFunction        = "leaveQueue"
	SettleMatchFunction       = "settleMatch"

	// Proposal outcome constants.
	ProposalOutcomeConfirmed = "confirmed"
	ProposalOutcomeDeclined  = "declined"
	ProposalOutcomeTimeout   = "timeout"

	// Log fields.
	LogFieldPlayerID   = "playerID"
	LogFieldMatchType  = "matchType"
	LogFieldProposalID = "proposalID"
	LogFieldMatchID    = "matchID"
)
