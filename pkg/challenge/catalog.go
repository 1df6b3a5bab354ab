// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package challenge

import (
	"github.com/elliotchance/pie/v2"

	"github.com/dinkside/rally-core/pkg/mathutil"
	"github.com/dinkside/rally-core/pkg/models"
)

// Definition describes a challenge type that can be drawn onto a daily board.
type Definition struct {
	Type   string
	Title  string
	Event  models.ChallengeEvent
	Target int
	Reward int
}

func (d Definition) instance() models.DailyChallenge {
	return models.DailyChallenge{
		Type:   d.Type,
		Title:  d.Title,
		Event:  d.Event,
		Target: d.Target,
		Reward: d.Reward,
	}
}

func DefaultCatalog() []Definition {
	return []Definition{
		{Type: "play_3", Title: "Play 3 matches", Event: models.EventMatchPlayed, Target: 3, Reward: 60},
		{Type: "play_5", Title: "Play 5 matches", Event: models.EventMatchPlayed, Target: 5, Reward: 120},
		{Type: "win_2", Title: "Win 2 matches", Event: models.EventMatchWon, Target: 2, Reward: 80},
		{Type: "win_4", Title: "Win 4 matches", Event: models.EventMatchWon, Target: 4, Reward: 160},
		{Type: "perfect_1", Title: "Win a game 11-0", Event: models.EventPerfectGame, Target: 1, Reward: 150},
		{Type: "social_1", Title: "Play a casual match", Event: models.EventSocialMatchPlayed, Target: 1, Reward: 50},
		{Type: "social_3", Title: "Play 3 casual matches", Event: models.EventSocialMatchPlayed, Target: 3, Reward: 100},
	}
}

// Rand is the randomness source for drawing challenges. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Draw picks count distinct definitions from catalog without replacement, using a partial Fisher-Yates shuffle.
func Draw(catalog []Definition, count int, random Rand) []Definition {
	count = mathutil.Clamp(count, 0, len(catalog))
	pool := make([]Definition, len(catalog))
	copy(pool, catalog)

	for i := 0; i < count; i++ {
		j := i + random.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// Generate builds a fresh board for playerID on day.
func Generate(playerID, day string, catalog []Definition, count int, random Rand) models.ChallengeBoard {
	return models.ChallengeBoard{
		PlayerID:   playerID,
		Day:        day,
		Challenges: pie.Map(Draw(catalog, count, random), Definition.instance),
	}
}
