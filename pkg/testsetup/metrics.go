package testsetup

import (
	"sync"
	"time"

	"github.com/dinkside/rally-core/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) SetQueueDepth(matchType string, waiting int) {}

func (s stubMetricsCollection) AddProposalOutcome(matchType string, outcome string) {}

func (s stubMetricsCollection) ObserveQueueWait(matchType string, wait time.Duration) {}

func (s stubMetricsCollection) AddSettlementElapsedTimeMs(matchType string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddLevelUp(level int) {}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}

// RecordingMetrics counts proposal outcomes and level-ups so tests can assert on them.
type RecordingMetrics struct {
	stubMetricsCollection
	mu       sync.Mutex
	Outcomes map[string]int
	LevelUps []int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{Outcomes: map[string]int{}}
}

func (r *RecordingMetrics) AddProposalOutcome(matchType string, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outcomes[outcome]++
}

func (r *RecordingMetrics) AddLevelUp(level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LevelUps = append(r.LevelUps, level)
}

func (r *RecordingMetrics) Outcome(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Outcomes[outcome]
}
