// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package session is the entry point used by the app layer. A Session owns the queues, the
// challenge boards and the notification feeds of one run; nothing here is process global.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/achievement"
	"github.com/dinkside/rally-core/pkg/challenge"
	"github.com/dinkside/rally-core/pkg/config"
	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/matchmaker"
	"github.com/dinkside/rally-core/pkg/metrics"
	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/notification"
	"github.com/dinkside/rally-core/pkg/playerstore"
	"github.com/dinkside/rally-core/pkg/progression"
	"github.com/dinkside/rally-core/pkg/rating"
	"github.com/dinkside/rally-core/pkg/scheduler"
	"github.com/dinkside/rally-core/pkg/settlement"
)

// Dependencies are the collaborators injected into a Session. Store, Clock, Random and
// Metrics are required; the catalogs fall back to their defaults.
type Dependencies struct {
	Store        playerstore.Store
	Clock        clockwork.Clock
	Random       challenge.Rand
	Metrics      metrics.MatchmakingMetrics
	Achievements achievement.Catalog
	Challenges   []challenge.Definition
	Rewards      progression.Catalog
}

type matchRecord struct {
	mu    sync.Mutex
	match *models.Match
	// settledAt is guarded by Session.mu, zero until the match is settled.
	settledAt time.Time
}

type Session struct {
	cfg   *config.Config
	clock clockwork.Clock

	queue       *matchmaker.Queue
	tracker     *challenge.Tracker
	progression *progression.Engine
	settler     *settlement.Settler
	hub         *notification.Hub
	scheduler   *scheduler.Scheduler

	mu      sync.RWMutex
	matches map[string]*matchRecord

	closed atomic.Bool
}

// New creates a session and starts its background jobs.
func New(cfg *config.Config, deps Dependencies) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Store == nil || deps.Clock == nil || deps.Random == nil || deps.Metrics == nil {
		return nil, eris.Wrap(models.ErrPrecondition, "session needs a store, a clock, a random source and metrics")
	}
	if deps.Achievements == nil {
		deps.Achievements = achievement.DefaultCatalog()
	}

	s := &Session{
		cfg:         cfg,
		clock:       deps.Clock,
		queue:       matchmaker.New(matchmaker.OptionsFromConfig(cfg), deps.Clock, deps.Metrics),
		tracker:     challenge.NewTracker(deps.Clock, deps.Random, deps.Challenges, cfg.DailyChallengeCount),
		progression: progression.NewEngine(deps.Rewards),
		hub:         notification.NewHub(cfg.NotificationCapacity),
		matches:     make(map[string]*matchRecord),
	}
	s.settler = settlement.New(settlement.Dependencies{
		Store:        deps.Store,
		Rating:       rating.NewEngine(cfg.KFactor),
		Progression:  s.progression,
		Challenges:   s.tracker,
		Achievements: deps.Achievements,
		Clock:        deps.Clock,
		Metrics:      deps.Metrics,
	})

	sched, err := scheduler.New(deps.Clock, cfg.SweepInterval(), scheduler.Jobs{
		Queue:      s.queue,
		Challenges: s.tracker,
		OnExpired: func(scope *envelope.Scope, results []matchmaker.RespondResult) {
			for _, result := range results {
				s.publishResolution(scope, result)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	s.scheduler = sched
	s.scheduler.Start()

	return s, nil
}

// Close stops the background jobs and closes every subscription. Operations on a closed
// session fail with models.ErrInvalidState.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.hub.Close()
	return eris.Wrap(s.scheduler.Shutdown(), "stop scheduler")
}

func (s *Session) ensureOpen() error {
	if s.closed.Load() {
		return eris.Wrap(models.ErrInvalidState, "session is closed")
	}
	return nil
}

func (s *Session) JoinQueue(rootScope *envelope.Scope, playerID string, matchType models.MatchType) (matchmaker.JoinResult, error) {
	scope := rootScope.NewChildScope(constants.JoinQueueFunction)
	defer scope.Finish()

	if err := s.ensureOpen(); err != nil {
		return matchmaker.JoinResult{}, err
	}
	if playerID == "" {
		return matchmaker.JoinResult{}, eris.Wrap(models.ErrPrecondition, "join requires the current player")
	}
	player, err := s.settler.Snapshot(scope, playerID)
	if err != nil {
		return matchmaker.JoinResult{}, err
	}

	result, err := s.queue.Join(scope, player, matchType)
	if err != nil {
		return matchmaker.JoinResult{}, err
	}
	if result.Proposal != nil {
		s.publishProposal(scope, result.Proposal)
	}
	return result, nil
}

// RespondToProposal records the player's answer. accept false declines.
func (s *Session) RespondToProposal(rootScope *envelope.Scope, proposalID string, playerID string, accept bool) (matchmaker.RespondResult, error) {
	scope := rootScope.NewChildScope(constants.RespondToProposalFunction)
	defer scope.Finish()

	if err := s.ensureOpen(); err != nil {
		return matchmaker.RespondResult{}, err
	}
	response := models.ResponseDeclined
	if accept {
		response = models.ResponseAccepted
	}

	result, err := s.queue.Respond(scope, proposalID, playerID, response)
	if err != nil {
		return matchmaker.RespondResult{}, err
	}
	s.publishResolution(scope, result)
	return result, nil
}

func (s *Session) LeaveQueue(rootScope *envelope.Scope, playerID string) (bool, error) {
	scope := rootScope.NewChildScope(constants.LeaveQueueFunction)
	defer scope.Finish()

	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	return s.queue.Leave(scope, playerID)
}

// QueueStatus returns the waiting position of the player and the estimated wait for it.
func (s *Session) QueueStatus(playerID string) (position int, estimatedWait time.Duration, ok bool) {
	for _, matchType := range models.AvailableMatchTypes {
		snapshot, _ := s.queue.Snapshot(matchType)
		if position, ok = snapshot.PositionOf(playerID); ok {
			return position, s.queue.EstimateWait(matchType, position), true
		}
	}
	return 0, 0, false
}

// Match returns a copy of a confirmed match.
func (s *Session) Match(matchID string) (models.Match, error) {
	record, err := s.matchRecord(matchID)
	if err != nil {
		return models.Match{}, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	return *record.match, nil
}

// RecordScore fills in the final score of a match from playerID's side.
func (s *Session) RecordScore(matchID string, playerID string, scored, conceded int) error {
	record, err := s.matchRecord(matchID)
	if err != nil {
		return err
	}
	record.mu.Lock()
	defer record.mu.Unlock()

	if record.match.Settled {
		return eris.Wrapf(models.ErrInvalidState, "match %q is already settled", matchID)
	}
	if scored < 0 || conceded < 0 {
		return eris.Wrapf(models.ErrInvalidState, "negative score %d-%d", scored, conceded)
	}
	if !record.match.SetScore(playerID, scored, conceded) {
		return eris.Wrapf(models.ErrPrecondition, "player %q did not play match %q", playerID, matchID)
	}
	playedAt := s.clock.Now()
	record.match.PlayedAt = &playedAt
	return nil
}

func (s *Session) SettleMatch(rootScope *envelope.Scope, currentPlayerID string, matchID string, result models.MatchResult) (settlement.Outcome, error) {
	scope := rootScope.NewChildScope(constants.SettleMatchFunction)
	defer scope.Finish()

	if err := s.ensureOpen(); err != nil {
		return settlement.Outcome{}, err
	}
	record, err := s.matchRecord(matchID)
	if err != nil {
		return settlement.Outcome{}, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()

	outcome, err := s.settler.Settle(scope, settlement.Request{
		CurrentPlayerID: currentPlayerID,
		Match:           record.match,
		Result:          result,
	})
	if err != nil {
		return settlement.Outcome{}, err
	}
	s.hub.Publish(scope, outcome.Notifications...)

	s.mu.Lock()
	record.settledAt = s.clock.Now()
	s.mu.Unlock()
	s.forgetSettled(scope)

	return outcome, nil
}

func (s *Session) CalculateLevel(experience int) int {
	return progression.CalculateLevel(experience)
}

func (s *Session) XPProgress(experience int) progression.Progress {
	return progression.XPProgressInCurrentLevel(experience)
}

// Notifications returns the player's retained notifications, newest first.
func (s *Session) Notifications(playerID string) []models.Notification {
	return s.hub.Notifications(playerID)
}

// Subscribe streams the player's notifications until the returned cancel is called or the
// session closes.
func (s *Session) Subscribe(playerID string) (<-chan models.Notification, func()) {
	return s.hub.Subscribe(playerID, 0)
}

func (s *Session) DailyChallenges(playerID string) models.ChallengeBoard {
	return s.tracker.Board(playerID)
}

// Queue exposes the read side of the matchmaker.
func (s *Session) Queue() matchmaker.Matchmaker {
	return s.queue
}

// forgetSettled drops matches settled longer ago than the resolved retention, after which their
// ids report NotFound. A zero retention keeps them for the whole session.
func (s *Session) forgetSettled(scope *envelope.Scope) int {
	retention := s.cfg.ResolvedProposalRetention()
	if retention <= 0 {
		return 0
	}
	before := s.clock.Now().Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	forgotten := 0
	for id, record := range s.matches {
		if !record.settledAt.IsZero() && record.settledAt.Before(before) {
			delete(s.matches, id)
			forgotten++
		}
	}
	if forgotten > 0 {
		scope.Log.Debugf("forgot %d settled matches", forgotten)
	}
	return forgotten
}

func (s *Session) matchRecord(matchID string) (*matchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.matches[matchID]
	if !ok {
		return nil, eris.Wrapf(models.ErrNotFound, "match %q", matchID)
	}
	return record, nil
}
