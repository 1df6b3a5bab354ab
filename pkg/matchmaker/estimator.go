// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// waitEstimator keeps the most recent queue waits of confirmed entries. The wait for position p
// is p times the mean of those samples, or p times the fallback while there are none.
type waitEstimator struct {
	fallback time.Duration
	size     int
	samples  []float64
	next     int
}

func newWaitEstimator(fallback time.Duration, size int) *waitEstimator {
	if size <= 0 {
		size = 1
	}
	return &waitEstimator{fallback: fallback, size: size, samples: make([]float64, 0, size)}
}

func (e *waitEstimator) observe(wait time.Duration) {
	if wait < 0 {
		wait = 0
	}
	if len(e.samples) < e.size {
		e.samples = append(e.samples, wait.Seconds())
		return
	}
	e.samples[e.next] = wait.Seconds()
	e.next = (e.next + 1) % e.size
}

func (e *waitEstimator) perPosition() time.Duration {
	if len(e.samples) == 0 {
		return e.fallback
	}
	return time.Duration(stat.Mean(e.samples, nil) * float64(time.Second))
}

// estimateWait is non-decreasing in position for a fixed per-position wait.
func estimateWait(perPosition time.Duration, position int) time.Duration {
	if position <= 0 || perPosition <= 0 {
		return 0
	}
	return time.Duration(position) * perPosition
}
