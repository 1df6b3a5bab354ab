// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	queueDepth              prometheus.GaugeVec
	proposalOutcomes        prometheus.CounterVec
	queueWaitSeconds        prometheus.HistogramVec
	settlementElapsedTimeMs prometheus.HistogramVec
	levelUps                prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	queueDepth := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rally_queue_waiting_entries",
			Help: "Number of waiting entries per match type queue",
		}, []string{"match_type"})

	proposalOutcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rally_proposal_outcomes_total",
			Help: "Resolved match proposals by outcome",
		}, []string{"match_type", "outcome"})

	queueWaitSeconds := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rally_queue_wait_seconds",
			Help:    "Time a confirmed entry spent in the queue",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"match_type"})

	//nolint:promlinter
	settlementElapsedTimeMs := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rally_settlement_elapsed_time_ms",
			Help:    "A histogram of match settlement elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"match_type"})

	levelUps := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rally_level_ups_total",
			Help: "Level-ups granted, labelled by the level reached",
		}, []string{"level"})

	return prometheusMetrics{
		queueDepth:              *queueDepth,
		proposalOutcomes:        *proposalOutcomes,
		queueWaitSeconds:        *queueWaitSeconds,
		settlementElapsedTimeMs: *settlementElapsedTimeMs,
		levelUps:                *levelUps,
	}
}

func (metrics prometheusMetrics) SetQueueDepth(matchType string, waiting int) {
	metrics.queueDepth.With(prometheus.Labels{"match_type": matchType}).Set(float64(waiting))
}

func (metrics prometheusMetrics) AddProposalOutcome(matchType string, outcome string) {
	metrics.proposalOutcomes.With(prometheus.Labels{"match_type": matchType, "outcome": outcome}).Inc()
}

func (metrics prometheusMetrics) ObserveQueueWait(matchType string, wait time.Duration) {
	metrics.queueWaitSeconds.With(prometheus.Labels{"match_type": matchType}).Observe(wait.Seconds())
}

func (metrics prometheusMetrics) AddSettlementElapsedTimeMs(matchType string, elapsedTime time.Duration) {
	metrics.settlementElapsedTimeMs.With(prometheus.Labels{"match_type": matchType}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddLevelUp(level int) {
	metrics.levelUps.With(prometheus.Labels{"level": strconv.Itoa(level)}).Inc()
}
