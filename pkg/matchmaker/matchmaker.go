// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/common"
	"github.com/dinkside/rally-core/pkg/config"
	"github.com/dinkside/rally-core/pkg/constants"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/mathutil"
	"github.com/dinkside/rally-core/pkg/metrics"
	"github.com/dinkside/rally-core/pkg/models"
)

type Options struct {
	ProposalTimeout        time.Duration
	DefaultWaitPerPosition time.Duration
	WaitSampleSize         int
	// MaxRatingGap bounds the rating difference of a pairing, 0 disables the check.
	MaxRatingGap      int
	ResolvedRetention time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ProposalTimeout:        cfg.ProposalTimeout(),
		DefaultWaitPerPosition: cfg.DefaultWaitPerPosition(),
		WaitSampleSize:         cfg.WaitSampleSize,
		MaxRatingGap:           cfg.MaxRatingGap,
		ResolvedRetention:      cfg.ResolvedProposalRetention(),
	}
}

var _ Matchmaker = (*Queue)(nil)

// Queue is the Matchmaker of one session.
type Queue struct {
	options  Options
	clock    clockwork.Clock
	metrics  metrics.MatchmakingMetrics
	lanes    map[models.MatchType]*lane
	registry *registry
}

func New(options Options, clock clockwork.Clock, metrics metrics.MatchmakingMetrics) *Queue {
	q := &Queue{
		options:  options,
		clock:    clock,
		metrics:  metrics,
		lanes:    make(map[models.MatchType]*lane, len(models.AvailableMatchTypes)),
		registry: newRegistry(),
	}
	for _, matchType := range models.AvailableMatchTypes {
		q.lanes[matchType] = newLane(matchType, newWaitEstimator(options.DefaultWaitPerPosition, options.WaitSampleSize))
	}
	return q
}

func (q *Queue) Join(rootScope *envelope.Scope, player *models.Player, matchType models.MatchType) (JoinResult, error) {
	scope := rootScope.NewChildScope("matchmaker.Join")
	defer scope.Finish()

	if player == nil || player.ID == "" {
		return JoinResult{}, eris.Wrap(models.ErrPrecondition, "join requires a player")
	}
	if err := matchType.Validate(); err != nil {
		return JoinResult{}, eris.Wrapf(models.ErrInvalidState, "cannot join %q: %v", matchType, err)
	}
	scope = scope.WithField(constants.LogFieldPlayerID, player.ID).WithField(constants.LogFieldMatchType, matchType)

	l := q.lanes[matchType]
	l.lock(scope)
	defer l.unlock()

	now := q.clock.Now()
	entry := &models.QueueEntry{
		ID:         common.GenerateULID(now),
		PlayerID:   player.ID,
		Rating:     player.Rating,
		MatchType:  matchType,
		EnqueuedAt: now,
	}
	if err := q.registry.reserve(entry); err != nil {
		l.stats.TotalRejectedDuplicate++
		return JoinResult{}, err
	}
	l.enqueue(entry)
	l.stats.TotalJoined++

	result := JoinResult{}
	if proposal := q.offer(scope, l, entry, now); proposal != nil {
		copied := *proposal
		result.Proposal = &copied
	} else {
		result.Position = l.waiting.position(entry.ID)
		result.EstimatedWait = estimateWait(l.estimator.perPosition(), result.Position)
		scope.Log.Debugf("waiting at position %d, estimated wait %s", result.Position, result.EstimatedWait)
	}
	result.Entry = *entry

	q.publish(l, now)

	return result, nil
}

func (q *Queue) Respond(rootScope *envelope.Scope, proposalID string, playerID string, response models.Response) (RespondResult, error) {
	scope := rootScope.NewChildScope("matchmaker.Respond")
	defer scope.Finish()

	if playerID == "" {
		return RespondResult{}, eris.Wrap(models.ErrPrecondition, "respond requires a player")
	}
	if response != models.ResponseAccepted && response != models.ResponseDeclined {
		return RespondResult{}, eris.Wrapf(models.ErrInvalidState, "response %q is neither accept nor decline", response)
	}
	scope = scope.WithField(constants.LogFieldPlayerID, playerID).WithField(constants.LogFieldProposalID, proposalID)

	l, resolved := q.registry.laneOf(proposalID)
	if l == nil {
		if resolved {
			return RespondResult{}, eris.Wrapf(models.ErrInvalidState, "proposal %q is already resolved", proposalID)
		}
		return RespondResult{}, eris.Wrapf(models.ErrNotFound, "proposal %q", proposalID)
	}

	l.lock(scope)
	defer l.unlock()

	proposal, ok := l.proposals[proposalID]
	if !ok {
		return RespondResult{}, eris.Wrapf(models.ErrInvalidState, "proposal %q is already resolved", proposalID)
	}

	side := proposal.SideOf(playerID)
	if side < 0 {
		return RespondResult{}, eris.Wrapf(models.ErrInvalidState, "player %q is not part of proposal %q", playerID, proposalID)
	}

	now := q.clock.Now()
	if proposal.IsExpired(now) {
		scope.Log.Infof("proposal expired at %s before the response arrived", proposal.ExpiresAt)
		result := q.dissolve(scope, l, proposal, models.DissolveTimeout, now)
		q.publish(l, now)
		return result, nil
	}
	if proposal.Sides[side].Response != models.ResponsePending {
		return RespondResult{}, eris.Wrapf(models.ErrInvalidState, "player %q already responded %s", playerID, proposal.Sides[side].Response)
	}
	proposal.Sides[side].Response = response

	var result RespondResult
	switch {
	case response == models.ResponseDeclined:
		result = q.dissolve(scope, l, proposal, models.DissolveDeclined, now)
	case proposal.BothAccepted():
		result = q.confirm(scope, l, proposal, now)
	default:
		result = RespondResult{Proposal: *proposal}
	}

	q.publish(l, now)

	return result, nil
}

func (q *Queue) Leave(rootScope *envelope.Scope, playerID string) (bool, error) {
	scope := rootScope.NewChildScope("matchmaker.Leave")
	defer scope.Finish()

	if playerID == "" {
		return false, eris.Wrap(models.ErrPrecondition, "leave requires a player")
	}
	scope = scope.WithField(constants.LogFieldPlayerID, playerID)

	entry, ok := q.registry.entryOf(playerID)
	if !ok {
		return false, nil
	}

	l := q.lanes[entry.MatchType]
	l.lock(scope)
	defer l.unlock()

	if current, ok := q.registry.entryOf(playerID); !ok || current != entry {
		return false, nil
	}
	if entry.State != models.EntryWaiting {
		scope.Log.Debugf("entry is %s, not leaving", entry.State)
		return false, nil
	}

	l.drop(entry, models.EntryLeft)
	q.registry.release(playerID, entry.ID)
	l.stats.TotalLeft++
	q.publish(l, q.clock.Now())

	return true, nil
}

func (q *Queue) ExpireProposals(rootScope *envelope.Scope) []RespondResult {
	scope := rootScope.NewChildScope("matchmaker.ExpireProposals")
	defer scope.Finish()

	var results []RespondResult
	for _, matchType := range models.AvailableMatchTypes {
		l := q.lanes[matchType]
		l.lock(scope)
		now := q.clock.Now()
		expired := l.expired(now)
		for _, proposal := range expired {
			results = append(results, q.dissolve(scope, l, proposal, models.DissolveTimeout, now))
		}
		if len(expired) > 0 {
			q.publish(l, now)
		}
		l.unlock()
	}

	if q.options.ResolvedRetention > 0 {
		if forgotten := q.registry.forget(q.clock.Now().Add(-q.options.ResolvedRetention)); forgotten > 0 {
			scope.Log.Debugf("forgot %d resolved proposals", forgotten)
		}
	}

	return results
}

func (q *Queue) Position(playerID string) (int, bool) {
	for _, matchType := range models.AvailableMatchTypes {
		if position, ok := q.lanes[matchType].snapshot.Load().PositionOf(playerID); ok {
			return position, true
		}
	}
	return 0, false
}

func (q *Queue) EstimateWait(matchType models.MatchType, position int) time.Duration {
	l, ok := q.lanes[matchType]
	if !ok {
		return 0
	}
	return estimateWait(l.snapshot.Load().PerPosition, position)
}

func (q *Queue) Snapshot(matchType models.MatchType) (LaneSnapshot, bool) {
	l, ok := q.lanes[matchType]
	if !ok {
		return LaneSnapshot{}, false
	}
	return *l.snapshot.Load(), true
}

// ActiveEntries counts players holding a waiting or proposed entry in any lane.
func (q *Queue) ActiveEntries() int {
	return q.registry.activeCount()
}

func (q *Queue) compatible(a, b *models.QueueEntry) bool {
	if q.options.MaxRatingGap <= 0 {
		return true
	}
	return mathutil.Abs(a.Rating-b.Rating) <= q.options.MaxRatingGap
}

// offer pairs a waiting entry with the oldest compatible waiting entry. Callers hold the lane lock.
func (q *Queue) offer(scope *envelope.Scope, l *lane, entry *models.QueueEntry, now time.Time) *models.MatchProposal {
	partner := l.waiting.oldestCompatible(entry, q.compatible)
	if partner == nil {
		return nil
	}

	first, second := partner, entry
	if l.waiting.queuedBefore(entry, partner) {
		first, second = entry, partner
	}

	proposal := &models.MatchProposal{
		ID:        common.GenerateULID(now),
		MatchType: l.matchType,
		Sides: [2]models.ProposalSide{
			{PlayerID: first.PlayerID, EntryID: first.ID, Response: models.ResponsePending},
			{PlayerID: second.PlayerID, EntryID: second.ID, Response: models.ResponsePending},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(q.options.ProposalTimeout),
		State:     models.ProposalOpen,
	}

	for _, e := range []*models.QueueEntry{first, second} {
		l.waiting.remove(e.ID)
		e.State = models.EntryProposed
		e.ProposalID = proposal.ID
	}
	l.proposals[proposal.ID] = proposal
	q.registry.track(proposal.ID, l)
	l.stats.TotalProposals++

	scope.Log.Infof("proposed match %s between %s and %s", proposal.ID, first.PlayerID, second.PlayerID)

	return proposal
}

// confirm resolves a proposal both sides accepted into a Match. Callers hold the lane lock.
func (q *Queue) confirm(scope *envelope.Scope, l *lane, proposal *models.MatchProposal, now time.Time) RespondResult {
	proposal.State = models.ProposalConfirmed

	match := &models.Match{
		ID:         common.GenerateULID(now),
		MatchType:  proposal.MatchType,
		ProposalID: proposal.ID,
		PlayerIDs:  [2]string{proposal.Sides[0].PlayerID, proposal.Sides[1].PlayerID},
		CreatedAt:  now,
	}

	for _, side := range proposal.Sides {
		entry, ok := l.entries[side.EntryID]
		if !ok {
			continue
		}
		wait := now.Sub(entry.EnqueuedAt)
		l.estimator.observe(wait)
		q.metrics.ObserveQueueWait(l.matchType.String(), wait)
		l.drop(entry, models.EntryConfirmed)
		q.registry.release(entry.PlayerID, entry.ID)
	}

	delete(l.proposals, proposal.ID)
	q.registry.resolve(proposal.ID, now)
	l.stats.TotalConfirmed++
	q.metrics.AddProposalOutcome(l.matchType.String(), constants.ProposalOutcomeConfirmed)

	scope.WithField(constants.LogFieldMatchID, match.ID).Log.Infof("proposal %s confirmed", proposal.ID)

	return RespondResult{Proposal: *proposal, Match: match}
}

// dissolve resolves a proposal after a decline or a timeout. On timeout every side that has not
// answered counts as declining. Declining sides leave the queue, the others go back to waiting with
// their original enqueue time and are offered again straight away. Callers hold the lane lock.
func (q *Queue) dissolve(scope *envelope.Scope, l *lane, proposal *models.MatchProposal, reason models.DissolveReason, now time.Time) RespondResult {
	proposal.State = models.ProposalDissolved
	proposal.DissolveReason = reason

	var reverted []*models.QueueEntry
	for i := range proposal.Sides {
		side := &proposal.Sides[i]
		if reason == models.DissolveTimeout && side.Response == models.ResponsePending {
			side.Response = models.ResponseDeclined
		}
		entry, ok := l.entries[side.EntryID]
		if !ok {
			continue
		}
		if side.Response == models.ResponseDeclined {
			l.drop(entry, models.EntryDissolved)
			q.registry.release(entry.PlayerID, entry.ID)
			l.stats.TotalEntriesDissolved++
			continue
		}
		l.enqueue(entry)
		reverted = append(reverted, entry)
		l.stats.TotalEntriesReverted++
	}

	delete(l.proposals, proposal.ID)
	q.registry.resolve(proposal.ID, now)
	l.stats.countDissolve(reason)
	outcome := constants.ProposalOutcomeDeclined
	if reason == models.DissolveTimeout {
		outcome = constants.ProposalOutcomeTimeout
	}
	q.metrics.AddProposalOutcome(l.matchType.String(), outcome)

	scope.Log.Infof("proposal %s dissolved: %s", proposal.ID, reason)

	result := RespondResult{Proposal: *proposal, Dissolved: true}
	for _, entry := range reverted {
		if entry.State != models.EntryWaiting {
			// already paired by an earlier re-offer in this loop
			result.Reverted = append(result.Reverted, *entry)
			continue
		}
		if next := q.offer(scope, l, entry, now); next != nil {
			result.Reoffered = append(result.Reoffered, *next)
			l.stats.TotalEntriesReoffered++
		}
		result.Reverted = append(result.Reverted, *entry)
	}

	return result
}

func (q *Queue) publish(l *lane, now time.Time) {
	snapshot := l.publish(now)
	q.metrics.SetQueueDepth(l.matchType.String(), len(snapshot.Waiting))
}
