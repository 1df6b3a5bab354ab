// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30*time.Second, cfg.ProposalTimeout())
	assert.Equal(t, 45*time.Second, cfg.DefaultWaitPerPosition())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("K_FACTOR", "24")
	t.Setenv("MAX_RATING_GAP", "200")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.KFactor)
	assert.Equal(t, 200, cfg.MaxRatingGap)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestValidate_OutOfRange(t *testing.T) {
	cfg := Default()
	cfg.DailyChallengeCount = 12

	assert.Error(t, cfg.Validate())
}
