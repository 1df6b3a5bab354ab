package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_RecordMatch(t *testing.T) {
	at := time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC)
	p := NewPlayer("p1", "Dink", 1000)

	p.RecordMatch(true, 11, 4, at)
	p.RecordMatch(true, 11, 9, at)
	p.RecordMatch(false, 7, 11, at.AddDate(0, 1, 0))

	assert.Equal(t, 3, p.MatchesPlayed)
	assert.Equal(t, 2, p.Wins)
	assert.Equal(t, 1, p.Losses)
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak)
	assert.Equal(t, 29, p.PointsScored)
	assert.Equal(t, 24, p.PointsConceded)
	assert.Equal(t, PeriodStats{Matches: 2, Wins: 2, PointsScored: 22, PointsConceded: 13}, p.Period(at))
	assert.Equal(t, PeriodStats{Matches: 1, Losses: 1, PointsScored: 7, PointsConceded: 11}, p.Periods["2026-11"])
	assert.InDelta(t, 2.0/3.0, p.WinRate(), 1e-9)
}

func TestPlayer_CopyIsDeep(t *testing.T) {
	p := NewPlayer("p1", "Dink", 1000)
	p.RecordMatch(true, 11, 0, time.Now())
	p.Achievements["first_win"] = time.Now()

	copied, err := p.Copy()
	require.NoError(t, err)
	copied.RecordMatch(true, 11, 0, time.Now())
	copied.Achievements["hot_streak"] = time.Now()

	assert.Equal(t, 1, p.MatchesPlayed)
	assert.False(t, p.HasAchievement("hot_streak"))
	assert.True(t, copied.HasAchievement("first_win"))
}

func TestDailyChallenge_AdvanceCapsAndCompletesOnce(t *testing.T) {
	c := DailyChallenge{Type: "win_2", Event: EventMatchWon, Target: 2, Reward: 80}

	assert.False(t, c.Advance(EventMatchPlayed))
	assert.False(t, c.Advance(EventMatchWon))
	assert.True(t, c.Advance(EventMatchWon))
	assert.False(t, c.Advance(EventMatchWon))
	assert.Equal(t, 2, c.Progress)
	assert.True(t, c.Completed)
}

func TestChallengeBoard_CloneIsIndependent(t *testing.T) {
	board := ChallengeBoard{Challenges: []DailyChallenge{{Event: EventMatchPlayed, Target: 3}}}
	clone := board.Clone()
	clone.Advance(EventMatchPlayed)

	assert.Equal(t, 0, board.Challenges[0].Progress)
	assert.Equal(t, 1, clone.Challenges[0].Progress)
}

func TestMatch_ScoresAndResultMirror(t *testing.T) {
	m := &Match{PlayerIDs: [2]string{"a", "b"}, CreatedAt: time.Now()}
	assert.False(t, m.IsScored())
	assert.False(t, m.SetScore("c", 11, 3))
	assert.True(t, m.SetScore("b", 11, 3))
	assert.True(t, m.IsScored())
	assert.Equal(t, 3, *m.Scores[0])
	assert.Equal(t, 11, *m.Scores[1])

	r := MatchResult{IsWin: true, PointsScored: 11, PointsConceded: 0, RatingDelta: swag.Int(16)}
	assert.True(t, r.IsPerfectGame())
	mirrored := r.Mirror()
	assert.False(t, mirrored.IsWin)
	assert.Equal(t, -16, swag.IntValue(mirrored.RatingDelta))
	assert.Equal(t, 11, mirrored.PointsConceded)
}

func TestProposal_Helpers(t *testing.T) {
	now := time.Now()
	p := &MatchProposal{
		Sides:     [2]ProposalSide{{PlayerID: "a"}, {PlayerID: "b"}},
		ExpiresAt: now.Add(time.Second),
	}
	assert.Equal(t, 1, p.SideOf("b"))
	assert.Equal(t, -1, p.SideOf("c"))
	assert.Equal(t, "a", p.Opponent(1).PlayerID)
	assert.False(t, p.IsExpired(now))
	assert.True(t, p.IsExpired(now.Add(time.Second)))
}

func TestMatchType(t *testing.T) {
	assert.NoError(t, RankedDoubles.Validate())
	err := MatchType("beach").Validate()
	assert.Error(t, err)
	assert.NotEmpty(t, eris.StackFrames(err))
	assert.True(t, CasualDoubles.IsSocial())
	assert.False(t, RankedSingles.IsSocial())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, 520101, ErrorCode(eris.Wrap(ErrInvalidState, "already queued")))
	assert.Equal(t, 520102, ErrorCode(eris.Wrapf(ErrNotFound, "proposal %q", "x")))
	assert.Equal(t, 520103, ErrorCode(ErrPrecondition))
	assert.Equal(t, 20000, ErrorCode(fmt.Errorf("boom")))
}
