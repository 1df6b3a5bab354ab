package scheduler

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/dinkside/rally-core/pkg/challenge"
	"github.com/dinkside/rally-core/pkg/config"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/matchmaker"
	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/testsetup"
)

func TestSweepProposals_ReportsExpired(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	clock := testsetup.NewFakeClock()
	queue := matchmaker.New(matchmaker.OptionsFromConfig(config.Default()), clock, testsetup.NewMetrics())
	for _, p := range testsetup.NewPlayers(2, 1000) {
		_, err := queue.Join(g.TestScope, p, models.RankedSingles)
		g.Expect(err).ToNot(HaveOccurred())
	}

	var reported []matchmaker.RespondResult
	s, err := New(clock, time.Second, Jobs{
		Queue: queue,
		OnExpired: func(scope *envelope.Scope, results []matchmaker.RespondResult) {
			reported = append(reported, results...)
		},
	})
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(s.SweepProposals()).To(BeEmpty())
	clock.Advance(30 * time.Second)
	g.Expect(s.SweepProposals()).To(HaveLen(1))
	g.Expect(reported).To(HaveLen(1))
	g.Expect(reported[0].Proposal.DissolveReason).To(Equal(models.DissolveTimeout))
	g.Expect(queue.ActiveEntries()).To(BeZero())
}

func TestRotateChallenges(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	clock := testsetup.NewFakeClock()
	tracker := challenge.NewTracker(clock, testsetup.NewRand(7), nil, 3)
	tracker.Board("player-1")
	tracker.Board("player-2")

	s, err := New(clock, time.Second, Jobs{Challenges: tracker})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(s.JobNames()).To(ConsistOf(RotateChallengesJob))

	g.Expect(s.RotateChallenges()).To(BeZero())
	clock.Advance(24 * time.Hour)
	g.Expect(s.RotateChallenges()).To(Equal(2))
	g.Expect(tracker.Board("player-1").Day).To(Equal(challenge.DayKey(clock.Now())))
}

func TestScheduler_RunsSweepOnClockTicks(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	clock := testsetup.NewFakeClock()
	queue := matchmaker.New(matchmaker.OptionsFromConfig(config.Default()), clock, testsetup.NewMetrics())
	for _, p := range testsetup.NewPlayers(2, 1000) {
		_, err := queue.Join(g.TestScope, p, models.CasualSingles)
		g.Expect(err).ToNot(HaveOccurred())
	}

	s, err := New(clock, 5*time.Second, Jobs{Queue: queue})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(s.JobNames()).To(ConsistOf(SweepProposalsJob))
	s.Start()
	defer func() { g.Expect(s.Shutdown()).To(Succeed()) }()

	g.Eventually(func() int {
		clock.Advance(5 * time.Second)
		return queue.ActiveEntries()
	}, 2*time.Second, 20*time.Millisecond).Should(BeZero())
}
