// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package playerstore holds the Player records the core reads and writes by identity.
package playerstore

import (
	"context"

	"github.com/dinkside/rally-core/pkg/models"
)

// Store is the persistence collaborator of the core. It gives no transactional guarantees;
// Save of several players is applied together where the backend supports it.
type Store interface {
	// Get returns the player or an error wrapping models.ErrNotFound.
	Get(ctx context.Context, playerID string) (*models.Player, error)
	Save(ctx context.Context, players ...*models.Player) error
	// List returns every player ordered by id.
	List(ctx context.Context) ([]*models.Player, error)
}
