// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	SetQueueDepth(matchType string, waiting int)
	AddProposalOutcome(matchType string, outcome string)
	ObserveQueueWait(matchType string, wait time.Duration)
	AddSettlementElapsedTimeMs(matchType string, elapsedTime time.Duration)
	AddLevelUp(level int)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
