// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"github.com/dinkside/rally-core/pkg/models"
)

// LaneStats stores cumulative counters of a lane since the session started
type LaneStats struct {
	TotalJoined            int `json:"totalJoined"`
	TotalLeft              int `json:"totalLeft"`
	TotalProposals         int `json:"totalProposals"`
	TotalConfirmed         int `json:"totalConfirmed"`
	TotalDeclined          int `json:"totalDeclined"`
	TotalTimedOut          int `json:"totalTimedOut"`
	TotalEntriesReoffered  int `json:"totalEntriesReoffered"`
	TotalEntriesReverted   int `json:"totalEntriesReverted"`
	TotalEntriesDissolved  int `json:"totalEntriesDissolved"`
	TotalRejectedDuplicate int `json:"totalRejectedDuplicate"`
}

func (s *LaneStats) countDissolve(reason models.DissolveReason) {
	switch reason {
	case models.DissolveDeclined:
		s.TotalDeclined++
	case models.DissolveTimeout:
		s.TotalTimedOut++
	}
}

// ConfirmRate is the share of resolved proposals that confirmed.
func (s LaneStats) ConfirmRate() float64 {
	resolved := s.TotalConfirmed + s.TotalDeclined + s.TotalTimedOut
	if resolved == 0 {
		return 0
	}
	return float64(s.TotalConfirmed) / float64(resolved)
}
