// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package settlement applies the outcome of a finished match to both players: stats, rating,
// experience, achievements and daily challenges.
package settlement

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/achievement"
	"github.com/dinkside/rally-core/pkg/challenge"
	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/mathutil"
	"github.com/dinkside/rally-core/pkg/metrics"
	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/notification"
	"github.com/dinkside/rally-core/pkg/playerstore"
	"github.com/dinkside/rally-core/pkg/progression"
	"github.com/dinkside/rally-core/pkg/rating"
)

// Request is one call to Settle. Result is seen from CurrentPlayerID's side of Match.
type Request struct {
	CurrentPlayerID string
	Match           *models.Match
	Result          models.MatchResult
}

// Outcome is what a settlement changed. UpdatedPlayers holds the current player first.
type Outcome struct {
	UpdatedPlayers []*models.Player         `json:"updatedPlayers"`
	Notifications  []models.Notification    `json:"notifications"`
	Achievements   []achievement.Definition `json:"-"`
	Awards         []progression.Award      `json:"awards"`
	Completed      []models.DailyChallenge  `json:"completed"`
	RatingBefore   int                      `json:"ratingBefore"`
	RatingAfter    int                      `json:"ratingAfter"`
}

type Dependencies struct {
	Store        playerstore.Store
	Rating       rating.Engine
	Progression  *progression.Engine
	Challenges   *challenge.Tracker
	Achievements achievement.Catalog
	Clock        clockwork.Clock
	Metrics      metrics.MatchmakingMetrics
}

type Settler struct {
	Dependencies
	locks *playerLocks
}

func New(deps Dependencies) *Settler {
	if deps.Progression == nil {
		deps.Progression = progression.NewEngine(nil)
	}
	if deps.Rating.KFactor <= 0 {
		deps.Rating = rating.NewEngine(constants.DefaultKFactor)
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	return &Settler{Dependencies: deps, locks: newPlayerLocks()}
}

/*
Settle applies a finished match. Callers invoke it at most once per match; a match already marked
settled is refused. Both players get their counters, points and rating updated, the opponent with
the mirrored result. Achievements, experience and challenge progress apply to the current player.

All changes are made on copies and written back together. When the scope context is cancelled
before that point nothing is changed.
*/
func (s *Settler) Settle(rootScope *envelope.Scope, request Request) (Outcome, error) {
	scope := rootScope.NewChildScope("settlement.Settle")
	defer scope.Finish()
	start := time.Now()

	if request.CurrentPlayerID == "" {
		return Outcome{}, eris.Wrap(models.ErrPrecondition, "settlement requires the current player")
	}
	match := request.Match
	if match == nil {
		return Outcome{}, eris.Wrap(models.ErrPrecondition, "settlement requires a match")
	}
	scope = scope.WithField(constants.LogFieldPlayerID, request.CurrentPlayerID).WithField(constants.LogFieldMatchID, match.ID)

	side := match.SideOf(request.CurrentPlayerID)
	if side < 0 {
		return Outcome{}, eris.Wrapf(models.ErrPrecondition, "player %q did not play match %q", request.CurrentPlayerID, match.ID)
	}
	opponentID := match.PlayerIDs[1-side]
	if opponentID == request.CurrentPlayerID {
		return Outcome{}, eris.Wrapf(models.ErrInvalidState, "match %q has the same player on both sides", match.ID)
	}

	unlock := s.locks.acquire(request.CurrentPlayerID, opponentID)
	defer unlock()

	if err := validate(match, side, request.Result); err != nil {
		return Outcome{}, err
	}

	current, err := s.Store.Get(scope.Ctx, request.CurrentPlayerID)
	if err != nil {
		return Outcome{}, eris.Wrap(err, "load current player")
	}
	opponent, err := s.Store.Get(scope.Ctx, opponentID)
	if err != nil {
		return Outcome{}, eris.Wrap(err, "load opponent")
	}

	working, err := current.Copy()
	if err != nil {
		return Outcome{}, err
	}
	workingOpponent, err := opponent.Copy()
	if err != nil {
		return Outcome{}, err
	}

	now := s.Clock.Now()
	result := request.Result
	outcome := Outcome{RatingBefore: working.Rating}

	// stats and points, then rating, for both sides
	delta, opponentDelta := s.ratingDeltas(working, workingOpponent, result)
	working.RecordMatch(result.IsWin, result.PointsScored, result.PointsConceded, match.Timestamp())
	mirrored := result.Mirror()
	workingOpponent.RecordMatch(mirrored.IsWin, mirrored.PointsScored, mirrored.PointsConceded, match.Timestamp())
	working.Rating += delta
	workingOpponent.Rating += opponentDelta
	outcome.RatingAfter = working.Rating

	for _, unlocked := range achievement.Unlock(s.Achievements, working, now) {
		outcome.Achievements = append(outcome.Achievements, unlocked)
		outcome.Notifications = append(outcome.Notifications, notification.AchievementUnlocked(working.ID, now, unlocked.ID, unlocked.Title))
	}

	for _, kind := range rewardKinds(match, working, result) {
		award, err := s.Progression.Apply(working, kind)
		if err != nil {
			return Outcome{}, err
		}
		s.recordAward(&outcome, working.ID, award, now)
	}

	var board models.ChallengeBoard
	if s.Challenges != nil {
		board = s.Challenges.Board(working.ID)
		outcome.Completed = board.Advance(challengeEvents(match, result)...)
	}
	for _, completed := range outcome.Completed {
		award, err := s.Progression.Grant(working, progression.RewardDailyChallenge, completed.Reward)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Notifications = append(outcome.Notifications, notification.ChallengeCompleted(working.ID, now, completed))
		s.recordAward(&outcome, working.ID, award, now)
	}

	if gained := totalExperience(outcome.Awards); gained > 0 {
		outcome.Notifications = append(outcome.Notifications, notification.ExperienceGained(working.ID, now, "match", gained))
	}
	outcome.Notifications = append(outcome.Notifications,
		notification.MatchSummary(working.ID, now, match.ID, result.IsWin, outcome.RatingBefore, outcome.RatingAfter))

	if err = scope.Err(); err != nil {
		return Outcome{}, eris.Wrap(err, "settlement cancelled before commit")
	}
	if err = s.commit(scope, []*models.Player{current, opponent}, []*models.Player{working, workingOpponent}); err != nil {
		return Outcome{}, err
	}
	if s.Challenges != nil && !s.Challenges.Commit(board) {
		scope.Log.Warnf("challenge board of day %s was rotated during settlement", board.Day)
	}

	match.Settled = true
	match.RatingDelta = mathutil.Abs(delta)
	match.WinnerID = opponentID
	if result.IsWin {
		match.WinnerID = request.CurrentPlayerID
	}
	outcome.UpdatedPlayers = []*models.Player{current, opponent}

	s.Metrics.AddSettlementElapsedTimeMs(match.MatchType.String(), time.Since(start))
	scope.Log.Infof("settled: rating %d -> %d, %d xp, %d notifications",
		outcome.RatingBefore, outcome.RatingAfter, totalExperience(outcome.Awards), len(outcome.Notifications))

	return outcome, nil
}

// Snapshot returns a copy of the player read under the player's settlement lock. Callers that
// only need to read a player, such as joining the queue, use it instead of the store's live record.
func (s *Settler) Snapshot(rootScope *envelope.Scope, playerID string) (*models.Player, error) {
	scope := rootScope.NewChildScope("settlement.Snapshot")
	defer scope.Finish()

	if playerID == "" {
		return nil, eris.Wrap(models.ErrPrecondition, "snapshot requires a player")
	}

	unlock := s.locks.acquire(playerID)
	defer unlock()

	player, err := s.Store.Get(scope.Ctx, playerID)
	if err != nil {
		return nil, err
	}
	return player.Copy()
}

// commit writes the worked copies over the live records and saves them. A failed save puts the
// live records back.
func (s *Settler) commit(scope *envelope.Scope, live []*models.Player, working []*models.Player) error {
	backups := make([]models.Player, len(live))
	for i := range live {
		backups[i] = *live[i]
		*live[i] = *working[i]
	}
	if err := s.Store.Save(scope.Ctx, live...); err != nil {
		for i := range live {
			*live[i] = backups[i]
		}
		return eris.Wrap(err, "save settled players")
	}
	return nil
}

func (s *Settler) ratingDeltas(current, opponent *models.Player, result models.MatchResult) (int, int) {
	if result.RatingDelta != nil {
		return *result.RatingDelta, -*result.RatingDelta
	}
	return s.Rating.Delta(current.Rating, opponent.Rating, result.IsWin), s.Rating.Delta(opponent.Rating, current.Rating, !result.IsWin)
}

func (s *Settler) recordAward(outcome *Outcome, playerID string, award progression.Award, now time.Time) {
	outcome.Awards = append(outcome.Awards, award)
	if award.LeveledUp() {
		outcome.Notifications = append(outcome.Notifications, notification.LevelUp(playerID, now, award.LevelBefore, award.LevelAfter))
		s.Metrics.AddLevelUp(award.LevelAfter)
	}
}
