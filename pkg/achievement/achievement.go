// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package achievement evaluates unlock predicates over a player's stats after each settlement.
package achievement

import (
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/dinkside/rally-core/pkg/models"
)

// Definition is an achievement and the predicate that unlocks it.
type Definition struct {
	ID          string
	Title       string
	Description string
	Unlocked    func(p *models.Player) bool
}

// Catalog supplies the achievement definitions. It is defined by the host application.
type Catalog interface {
	Definitions() []Definition
}

// StaticCatalog is a fixed list of definitions.
type StaticCatalog []Definition

func (c StaticCatalog) Definitions() []Definition {
	return c
}

func DefaultCatalog() StaticCatalog {
	return StaticCatalog{
		{ID: "first_match", Title: "Welcome to the Court", Description: "Play your first match",
			Unlocked: func(p *models.Player) bool { return p.MatchesPlayed >= 1 }},
		{ID: "first_win", Title: "First Win", Description: "Win your first match",
			Unlocked: func(p *models.Player) bool { return p.Wins >= 1 }},
		{ID: "regular", Title: "Regular", Description: "Play 25 matches",
			Unlocked: func(p *models.Player) bool { return p.MatchesPlayed >= 25 }},
		{ID: "hot_streak", Title: "Hot Streak", Description: "Win 5 matches in a row",
			Unlocked: func(p *models.Player) bool { return p.LongestStreak >= 5 }},
		{ID: "unstoppable", Title: "Unstoppable", Description: "Win 10 matches in a row",
			Unlocked: func(p *models.Player) bool { return p.LongestStreak >= 10 }},
		{ID: "rating_1200", Title: "Rising Star", Description: "Reach a rating of 1200",
			Unlocked: func(p *models.Player) bool { return p.Rating >= 1200 }},
		{ID: "point_machine", Title: "Point Machine", Description: "Score 500 points",
			Unlocked: func(p *models.Player) bool { return p.PointsScored >= 500 }},
	}
}

// Unlock records every definition whose predicate now holds and which the player does not already have.
// Newly unlocked definitions are returned in catalog order.
func Unlock(catalog Catalog, player *models.Player, at time.Time) []Definition {
	if catalog == nil {
		return nil
	}
	unlocked := pie.Filter(catalog.Definitions(), func(d Definition) bool {
		return d.Unlocked != nil && !player.HasAchievement(d.ID) && d.Unlocked(player)
	})
	if len(unlocked) == 0 {
		return nil
	}
	if player.Achievements == nil {
		player.Achievements = map[string]time.Time{}
	}
	for _, d := range unlocked {
		player.Achievements[d.ID] = at
	}
	return unlocked
}
