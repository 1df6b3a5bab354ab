// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dinkside/rally-core/pkg/models"
)

// Epoch is the fixed instant fake clocks start at: a Thursday evening club session.
var Epoch = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func NewFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Epoch)
}

// NewRand returns a deterministic random source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SequenceRand replays the given values for Intn, modulo n, then repeats from the start.
type SequenceRand struct {
	Values []int
	next   int
}

func (s *SequenceRand) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v % n
}

// NewPlayers builds count players named player-1..player-count at the given rating.
func NewPlayers(count int, rating int) []*models.Player {
	players := make([]*models.Player, 0, count)
	for i := 1; i <= count; i++ {
		players = append(players, models.NewPlayer(fmt.Sprintf("player-%d", i), fmt.Sprintf("Player %d", i), rating))
	}
	return players
}
