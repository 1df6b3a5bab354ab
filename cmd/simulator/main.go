// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dinkside/rally-core/pkg/common"
	"github.com/dinkside/rally-core/pkg/config"
	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/metrics"
	"github.com/dinkside/rally-core/pkg/playerstore"
	"github.com/dinkside/rally-core/pkg/session"
	"github.com/dinkside/rally-core/pkg/telemetry"
)

const serviceName = "rally-simulator"

type options struct {
	players     int
	rounds      int
	seed        int64
	declineRate float64
	logLevel    string
	asJSON      bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "simulator",
		Short:         "Plays a simulated club night through the matchmaking and rating core",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := run(cmd.Context(), cmd.OutOrStdout(), opts); err != nil {
				logrus.Errorf("simulation failed: %v", eris.ToString(err, true))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.players, "players", 12, "number of simulated players")
	flags.IntVar(&opts.rounds, "rounds", 6, "number of queue rounds to play")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	flags.Float64Var(&opts.declineRate, "decline-rate", 0.1, "probability a player declines a proposal")
	flags.StringVar(&opts.logLevel, "log-level", "info", "logrus level")
	flags.BoolVar(&opts.asJSON, "json", false, "print the leaderboard as json")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, reading the environment only")
	}
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return eris.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if opts.players < 2 {
		return eris.Errorf("a club night needs at least 2 players, got %d", opts.players)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, shutdownTracing, err := telemetry.Setup(serviceName, cfg.ZipkinURL)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := shutdownTracing(context.Background()); shutdownErr != nil {
			logrus.Warnf("failed to flush traces: %v", shutdownErr)
		}
	}()

	scope := envelope.NewRootScope(ctx, serviceName, common.GenerateUUID())
	defer scope.Finish()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	random := rand.New(rand.NewSource(seed))
	scope.Log.Infof("seed %d, %d players, %d rounds", seed, opts.players, opts.rounds)

	store, closeStore, err := newStore(scope, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = store.Save(scope.Ctx, seedPlayers(opts.players, cfg.StartingRating, random)...); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	s, err := session.New(cfg, session.Dependencies{
		Store:   store,
		Clock:   clockwork.NewRealClock(),
		Random:  rand.New(rand.NewSource(seed + 1)),
		Metrics: metrics.NewMetrics(registry),
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logrus.Warnf("failed to close session: %v", closeErr)
		}
	}()

	night := &clubNight{session: s, store: store, random: random, declineRate: opts.declineRate}
	var total roundReport
	for round := 1; round <= opts.rounds; round++ {
		report, roundErr := night.playRound(scope)
		if roundErr != nil {
			return eris.Wrapf(roundErr, "round %d", round)
		}
		scope.Log.Debugf("round %d: %s", round, common.LogJSONFormatter(report))
		total.add(report)
	}
	scope.Log.Infof("%d proposals, %d dissolved, %d matches settled", total.Proposals, total.Dissolved, total.Settled)

	families, err := registry.Gather()
	if err != nil {
		return eris.Wrap(err, "gather metrics")
	}
	scope.Log.Debugf("collected %d metric families", len(families))

	players, err := store.List(scope.Ctx)
	if err != nil {
		return err
	}
	return printLeaderboard(out, leaderboard(players, s.CalculateLevel), opts.asJSON)
}

// newStore connects to redis when an address is configured and falls back to memory otherwise.
func newStore(scope *envelope.Scope, cfg *config.Config) (playerstore.Store, func(), error) {
	if cfg.RedisAddr == "" {
		return playerstore.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(scope.Ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, eris.Wrapf(err, "connect to redis at %s", cfg.RedisAddr)
	}
	scope.Log.Infof("using redis player store at %s", cfg.RedisAddr)
	return playerstore.NewRedisStore(client, ""), func() { _ = client.Close() }, nil
}

func printLeaderboard(out io.Writer, standings []standing, asJSON bool) error {
	if asJSON {
		_, err := fmt.Fprintln(out, common.LogJSONFormatter(standings))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tRATING\tLEVEL\tW-L\tBEST STREAK\tACHIEVEMENTS")
	for _, s := range standings {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d-%d\t%d\t%d\n", s.Rank, s.Name, s.Rating, s.Level, s.Wins, s.Losses, s.BestStreak, s.Achievements)
	}
	return w.Flush()
}
