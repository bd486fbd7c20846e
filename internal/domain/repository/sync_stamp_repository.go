package repository

import (
	"context"
	"errors"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSyncStampNotFound is returned when a user has never completed the
// guarded operation. The cooldown guard treats this as "allowed".
var ErrSyncStampNotFound = errors.New("sync stamp not found")

// SyncStampRepository persists the last-success timestamp of guarded
// expensive operations, one row per (user, operation).
type SyncStampRepository interface {
	// Find retrieves the stamp for the given user and operation.
	Find(ctx context.Context, userID uuid.UUID, operation string) (*entity.SyncStamp, error)

	// Upsert records a successful guarded call, overwriting any prior stamp.
	Upsert(ctx context.Context, stamp *entity.SyncStamp) error
}
