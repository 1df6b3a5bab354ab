// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"math"
	"sort"

	"github.com/dinkside/rally-core/pkg/mathutil"
)

const (
	// BaseXPPerLevel scales the level curve: level n spans floor(BaseXPPerLevel * n^LevelExponent) XP.
	BaseXPPerLevel = 100
	LevelExponent  = 1.2
	MaxLevel       = 100
)

// thresholds[level] is the cumulative XP at which level starts; thresholds[1] is 0.
var thresholds = buildThresholds()

func buildThresholds() []int {
	table := make([]int, MaxLevel+1)
	for level := 1; level < MaxLevel; level++ {
		table[level+1] = table[level] + levelSpan(level)
	}
	return table
}

func levelSpan(level int) int {
	return int(float64(BaseXPPerLevel) * math.Pow(float64(level), LevelExponent))
}

// ThresholdForLevel returns the cumulative XP at which level starts.
func ThresholdForLevel(level int) int {
	return thresholds[mathutil.Clamp(level, 1, MaxLevel)]
}

// CalculateLevel maps cumulative experience to a level, 1 for zero or negative experience.
func CalculateLevel(experience int) int {
	if experience <= 0 {
		return 1
	}
	// first level whose threshold exceeds experience, minus one
	next := sort.Search(MaxLevel, func(i int) bool {
		return thresholds[i+1] > experience
	})
	return mathutil.Max(next, 1)
}

// Progress describes how far a player is through the current level.
type Progress struct {
	Level    int     `json:"level"`
	Current  int     `json:"current"`
	Required int     `json:"required"`
	Progress float64 `json:"progress"`
}

// XPProgressInCurrentLevel returns the XP earned since the level threshold and the XP span of the level.
// At MaxLevel the span is 0 and progress reports 0.
func XPProgressInCurrentLevel(experience int) Progress {
	experience = mathutil.Max(experience, 0)
	level := CalculateLevel(experience)

	progress := Progress{
		Level:   level,
		Current: experience - ThresholdForLevel(level),
	}
	if level < MaxLevel {
		progress.Required = ThresholdForLevel(level+1) - ThresholdForLevel(level)
	}
	if progress.Required > 0 {
		progress.Progress = mathutil.Clamp(float64(progress.Current)/float64(progress.Required), 0, 1)
	}
	return progress
}
