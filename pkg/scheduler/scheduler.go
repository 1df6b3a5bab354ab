// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package scheduler runs the background jobs of a session: the proposal timeout sweep and the
// daily challenge rotation.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"

	"github.com/dinkside/rally-core/pkg/challenge"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/matchmaker"
)

const (
	SweepProposalsJob   = "sweepProposals"
	RotateChallengesJob = "rotateChallenges"
)

type Jobs struct {
	Queue      matchmaker.Matchmaker
	Challenges *challenge.Tracker
	// OnExpired receives the proposals dissolved by a sweep.
	OnExpired func(scope *envelope.Scope, results []matchmaker.RespondResult)
}

type Scheduler struct {
	jobs      Jobs
	scheduler gocron.Scheduler
}

// New registers the jobs on a gocron scheduler driven by clock. Nothing runs until Start.
func New(clock clockwork.Clock, sweepInterval time.Duration, jobs Jobs) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithClock(clock), gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, eris.Wrap(err, "create scheduler")
	}
	s := &Scheduler{jobs: jobs, scheduler: sched}

	if jobs.Queue != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(sweepInterval),
			gocron.NewTask(func() { s.SweepProposals() }),
			gocron.WithName(SweepProposalsJob),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, eris.Wrap(err, "register proposal sweep")
		}
	}

	if jobs.Challenges != nil {
		_, err = sched.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
			gocron.NewTask(func() { s.RotateChallenges() }),
			gocron.WithName(RotateChallengesJob),
		)
		if err != nil {
			return nil, eris.Wrap(err, "register challenge rotation")
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	names := make([]string, 0, 2)
	for _, job := range s.scheduler.Jobs() {
		names = append(names, job.Name())
	}
	return names
}

// SweepProposals dissolves timed-out proposals and hands them to OnExpired.
func (s *Scheduler) SweepProposals() []matchmaker.RespondResult {
	scope := envelope.NewRootScope(context.Background(), "scheduler."+SweepProposalsJob, "")
	defer scope.Finish()

	results := s.jobs.Queue.ExpireProposals(scope)
	if len(results) == 0 {
		return nil
	}
	scope.Log.Infof("dissolved %d timed out proposals", len(results))
	if s.jobs.OnExpired != nil {
		s.jobs.OnExpired(scope, results)
	}
	return results
}

// RotateChallenges regenerates the boards of the previous day.
func (s *Scheduler) RotateChallenges() int {
	scope := envelope.NewRootScope(context.Background(), "scheduler."+RotateChallengesJob, "")
	defer scope.Finish()

	return s.jobs.Challenges.Rotate(scope)
}
