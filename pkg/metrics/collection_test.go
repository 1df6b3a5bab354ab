package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Collects(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := setupPrometheusMetrics(registry)

	m.SetQueueDepth("ranked_singles", 3)
	m.AddProposalOutcome("ranked_singles", "confirmed")
	m.AddProposalOutcome("ranked_singles", "confirmed")
	m.ObserveQueueWait("ranked_singles", 12*time.Second)
	m.AddSettlementElapsedTimeMs("ranked_singles", 4*time.Millisecond)
	m.AddLevelUp(2)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.queueDepth.WithLabelValues("ranked_singles")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.proposalOutcomes.WithLabelValues("ranked_singles", "confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.levelUps.WithLabelValues("2")))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}
