// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	validator "github.com/AccelByte/justice-input-validation-go"
	"github.com/caarlos0/env"
	"github.com/rotisserie/eris"
)

type Config struct {
	KFactor                         int    `env:"K_FACTOR"                           envDefault:"32"   envDocs:"ELO k-factor applied on settlement when the result carries no delta"          valid:"range(1|400)"`
	StartingRating                  int    `env:"STARTING_RATING"                    envDefault:"1000" envDocs:"rating given to simulated players"                                             valid:"range(0|5000)"`
	ProposalTimeoutSecond           int    `env:"PROPOSAL_TIMEOUT_SECOND"            envDefault:"30"   envDocs:"seconds a match proposal waits for both responses before dissolving"          valid:"range(1|3600)"`
	DefaultWaitPerPositionSecond    int    `env:"DEFAULT_WAIT_PER_POSITION_SECOND"   envDefault:"45"   envDocs:"wait estimate per queue position when the lane has no history"                valid:"range(1|3600)"`
	WaitSampleSize                  int    `env:"WAIT_SAMPLE_SIZE"                   envDefault:"50"   envDocs:"number of recent queue waits kept per lane for the wait estimate"             valid:"range(1|10000)"`
	MaxRatingGap                    int    `env:"MAX_RATING_GAP"                     envDefault:"0"    envDocs:"max rating difference allowed when pairing (0 means no rating band)"          valid:"range(0|5000)"`
	DailyChallengeCount             int    `env:"DAILY_CHALLENGE_COUNT"              envDefault:"3"    envDocs:"number of daily challenges drawn per player"                                  valid:"range(1|7)"`
	NotificationCapacity            int    `env:"NOTIFICATION_CAPACITY"              envDefault:"20"   envDocs:"notifications retained per player, most recent first"                         valid:"range(1|1000)"`
	ResolvedProposalRetentionSecond int    `env:"RESOLVED_PROPOSAL_RETENTION_SECOND" envDefault:"600"  envDocs:"seconds a resolved proposal id is remembered to tell late responses from typos" valid:"range(0|86400)"`
	SweepIntervalSecond             int    `env:"SWEEP_INTERVAL_SECOND"              envDefault:"5"    envDocs:"interval of the proposal timeout sweep job"                                   valid:"range(1|3600)"`
	RedisAddr                       string `env:"REDIS_ADDR"                         envDefault:""     envDocs:"redis address for the player store (empty means in-memory store)"`
	ZipkinURL                       string `env:"ZIPKIN_URL"                         envDefault:""     envDocs:"zipkin collector url (empty disables tracing export)"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, eris.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with every field at its envDefault value.
func Default() *Config {
	return &Config{
		KFactor:                         32,
		StartingRating:                  1000,
		ProposalTimeoutSecond:           30,
		DefaultWaitPerPositionSecond:    45,
		WaitSampleSize:                  50,
		DailyChallengeCount:             3,
		NotificationCapacity:            20,
		ResolvedProposalRetentionSecond: 600,
		SweepIntervalSecond:             5,
	}
}

func (c *Config) Validate() error {
	if _, err := validator.ValidateStruct(c); err != nil {
		return eris.Wrap(err, "invalid config")
	}
	return nil
}

func (c *Config) ProposalTimeout() time.Duration {
	return time.Duration(c.ProposalTimeoutSecond) * time.Second
}

func (c *Config) DefaultWaitPerPosition() time.Duration {
	return time.Duration(c.DefaultWaitPerPositionSecond) * time.Second
}

func (c *Config) ResolvedProposalRetention() time.Duration {
	return time.Duration(c.ResolvedProposalRetentionSecond) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSecond) * time.Second
}
