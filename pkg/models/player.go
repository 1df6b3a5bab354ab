// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/constants"
)

// Player is owned by the caller's store. The core updates its fields in place but never creates or deletes one.
type Player struct {
	ID             string                 `json:"id"`
	DisplayName    string                 `json:"display_name"`
	Rating         int                    `json:"rating"`
	Experience     int                    `json:"experience"`
	MatchesPlayed  int                    `json:"matches_played"`
	Wins           int                    `json:"wins"`
	Losses         int                    `json:"losses"`
	CurrentStreak  int                    `json:"current_streak"`
	LongestStreak  int                    `json:"longest_streak"`
	PointsScored   int                    `json:"points_scored"`
	PointsConceded int                    `json:"points_conceded"`
	Periods        map[string]PeriodStats `json:"periods,omitempty"`
	Achievements   map[string]time.Time   `json:"achievements,omitempty"`
}

// PeriodStats aggregates the matches of one calendar month.
type PeriodStats struct {
	Matches        int `json:"matches"`
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	PointsScored   int `json:"points_scored"`
	PointsConceded int `json:"points_conceded"`
}

func NewPlayer(id, displayName string, rating int) *Player {
	return &Player{
		ID:           id,
		DisplayName:  displayName,
		Rating:       rating,
		Periods:      map[string]PeriodStats{},
		Achievements: map[string]time.Time{},
	}
}

// PeriodKey returns the aggregate bucket key for t.
func PeriodKey(t time.Time) string {
	return t.UTC().Format(constants.PeriodKeyLayout)
}

// WinRate returns wins/matches, 0 before the first match.
func (p *Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.MatchesPlayed)
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p *Player) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// Period returns the stats bucket for t, zero valued if nothing was recorded.
func (p *Player) Period(t time.Time) PeriodStats {
	return p.Periods[PeriodKey(t)]
}

// RecordMatch updates counters, streaks, points and the period bucket for one finished match.
func (p *Player) RecordMatch(won bool, scored, conceded int, at time.Time) {
	p.MatchesPlayed++
	if won {
		p.Wins++
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
	} else {
		p.Losses++
		p.CurrentStreak = 0
	}
	p.PointsScored += scored
	p.PointsConceded += conceded

	if p.Periods == nil {
		p.Periods = map[string]PeriodStats{}
	}
	key := PeriodKey(at)
	period := p.Periods[key]
	period.Matches++
	if won {
		period.Wins++
	} else {
		period.Losses++
	}
	period.PointsScored += scored
	period.PointsConceded += conceded
	p.Periods[key] = period
}

// Copy returns a deep copy of the player.
func (p *Player) Copy() (*Player, error) {
	copied, err := copystructure.Copy(p)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to copy player %q", p.ID)
	}
	return copied.(*Player), nil
}
