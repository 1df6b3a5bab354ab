// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"fmt"
	"math/rand"

	"github.com/elliotchance/pie/v2"

	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/mathutil"
	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/playerstore"
	"github.com/dinkside/rally-core/pkg/rating"
	"github.com/dinkside/rally-core/pkg/session"
)

var nicknames = []string{"Dinker", "Lobster", "Kitchen", "Erne", "Banger", "Drop", "Volley", "Spin", "Poach", "Atp"}

// seedPlayers creates count players around baseRating, spread by up to 150 points either way.
func seedPlayers(count int, baseRating int, random *rand.Rand) []*models.Player {
	if baseRating <= 0 {
		baseRating = constants.DefaultRating
	}
	players := make([]*models.Player, 0, count)
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf("%s %d", nicknames[random.Intn(len(nicknames))], i)
		spread := random.Intn(301) - 150
		players = append(players, models.NewPlayer(fmt.Sprintf("player-%03d", i), name, mathutil.Max(baseRating+spread, 0)))
	}
	return players
}

type clubNight struct {
	session     *session.Session
	store       playerstore.Store
	random      *rand.Rand
	declineRate float64
}

type roundReport struct {
	Proposals int `json:"proposals"`
	Dissolved int `json:"dissolved"`
	Settled   int `json:"settled"`
}

func (r *roundReport) add(other roundReport) {
	r.Proposals += other.Proposals
	r.Dissolved += other.Dissolved
	r.Settled += other.Settled
}

// playRound queues every player in a random match type, answers every proposal and plays every
// confirmed match. Players still waiting at the end of the round leave the queue.
func (c *clubNight) playRound(rootScope *envelope.Scope) (roundReport, error) {
	scope := rootScope.NewChildScope("clubNight.playRound")
	defer scope.Finish()

	var report roundReport
	players, err := c.store.List(scope.Ctx)
	if err != nil {
		return report, err
	}
	ids := pie.Map(players, func(p *models.Player) string { return p.ID })
	c.random.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	var open []models.MatchProposal
	for _, id := range ids {
		matchType := models.AvailableMatchTypes[c.random.Intn(len(models.AvailableMatchTypes))]
		joined, joinErr := c.session.JoinQueue(scope, id, matchType)
		if joinErr != nil {
			return report, joinErr
		}
		if joined.Proposal != nil {
			open = append(open, *joined.Proposal)
		}
	}

	for len(open) > 0 {
		proposal := open[0]
		open = open[1:]
		report.Proposals++

		for _, side := range proposal.Sides {
			accept := c.random.Float64() >= c.declineRate
			result, respondErr := c.session.RespondToProposal(scope, proposal.ID, side.PlayerID, accept)
			if respondErr != nil {
				return report, respondErr
			}
			if result.Match != nil {
				if err = c.play(scope, result.Match); err != nil {
					return report, err
				}
				report.Settled++
			}
			if result.Dissolved {
				report.Dissolved++
				open = append(open, result.Reoffered...)
				break
			}
		}
	}

	for _, id := range ids {
		if _, err = c.session.LeaveQueue(scope, id); err != nil {
			return report, err
		}
	}
	return report, nil
}

// play decides a winner by the ELO expectation, records an eleven point game and settles it from a random side.
func (c *clubNight) play(scope *envelope.Scope, match *models.Match) error {
	first, err := c.store.Get(scope.Ctx, match.PlayerIDs[0])
	if err != nil {
		return err
	}
	second, err := c.store.Get(scope.Ctx, match.PlayerIDs[1])
	if err != nil {
		return err
	}

	winner, loser := first.ID, second.ID
	if c.random.Float64() >= rating.ExpectedScore(first.Rating, second.Rating) {
		winner, loser = loser, winner
	}
	loserPoints := c.random.Intn(10)
	if err = c.session.RecordScore(match.ID, winner, 11, loserPoints); err != nil {
		return err
	}

	reporter := winner
	result := models.MatchResult{IsWin: true, PointsScored: 11, PointsConceded: loserPoints}
	if c.random.Intn(2) == 0 {
		reporter = loser
		result = result.Mirror()
	}
	_, err = c.session.SettleMatch(scope, reporter, match.ID, result)
	return err
}

type standing struct {
	Rank         int    `json:"rank"`
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Rating       int    `json:"rating"`
	Level        int    `json:"level"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	BestStreak   int    `json:"best_streak"`
	Achievements int    `json:"achievements"`
}

// leaderboard ranks players by rating, then by wins.
func leaderboard(players []*models.Player, levelOf func(int) int) []standing {
	sorted := pie.SortUsing(players, func(a, b *models.Player) bool {
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.ID < b.ID
	})
	standings := make([]standing, 0, len(sorted))
	for i, p := range sorted {
		standings = append(standings, standing{
			Rank:         i + 1,
			PlayerID:     p.ID,
			Name:         p.DisplayName,
			Rating:       p.Rating,
			Level:        levelOf(p.Experience),
			Wins:         p.Wins,
			Losses:       p.Losses,
			BestStreak:   p.LongestStreak,
			Achievements: len(p.Achievements),
		})
	}
	return standings
}
