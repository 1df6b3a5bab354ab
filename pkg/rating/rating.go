// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rating implements the ELO-style rating update used after every settled match.
// Only binary win/loss outcomes are modelled; there are no draws in pickleball.
package rating

import (
	"math"

	"github.com/dinkside/rally-core/pkg/constants"
)

// ExpectedScore returns the probability in (0,1) that a player rated rating beats one rated opponent.
func ExpectedScore(rating, opponent int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponent-rating)/400.0))
}

// NewRating returns current adjusted by kFactor*(actual-expected), rounded half away from zero.
func NewRating(current, opponent int, didWin bool, kFactor float64) int {
	return current + Delta(current, opponent, didWin, kFactor)
}

// Delta is the signed rating change NewRating would apply.
func Delta(current, opponent int, didWin bool, kFactor float64) int {
	actual := 0.0
	if didWin {
		actual = 1.0
	}
	return int(math.Round(kFactor * (actual - ExpectedScore(current, opponent))))
}

// Engine carries the k-factor used for settlement.
type Engine struct {
	KFactor float64
}

func NewEngine(kFactor int) Engine {
	if kFactor <= 0 {
		kFactor = constants.DefaultKFactor
	}
	return Engine{KFactor: float64(kFactor)}
}

// Delta returns the change for a player rated current after playing opponent.
func (e Engine) Delta(current, opponent int, didWin bool) int {
	return Delta(current, opponent, didWin, e.KFactor)
}

// Outcome returns the rating changes of the winner and the loser of one match.
func (e Engine) Outcome(winnerRating, loserRating int) (winnerDelta, loserDelta int) {
	return e.Delta(winnerRating, loserRating, true), e.Delta(loserRating, winnerRating, false)
}
