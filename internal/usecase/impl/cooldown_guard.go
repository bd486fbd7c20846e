// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cooldownGuard implements the CooldownGuard interface over the sync stamp
// store.
type cooldownGuard struct {
	stampRepo repository.SyncStampRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewCooldownGuard is the constructor for cooldownGuard.
func NewCooldownGuard(
	stampRepo repository.SyncStampRepository,
	logger *slog.Logger,
) usecase.CooldownGuard {
	return &cooldownGuard{
		stampRepo: stampRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Check enforces the cooldown window against the last successful run.
func (g *cooldownGuard) Check(ctx context.Context, userID uuid.UUID, operation string, window time.Duration) error {
	stamp, err := g.stampRepo.Find(ctx, userID, operation)
	if err != nil {
		if errors.Is(err, repository.ErrSyncStampNotFound) {
			// Never ran successfully, so nothing to wait out.
			return nil
		}

		return errors.Wrap(err, "failed to load sync stamp")
	}

	elapsed := g.now().Sub(stamp.LastSyncAt)
	if elapsed >= window {
		return nil
	}

	remaining := window - elapsed
	// Round up so the caller never retries a second too early.
	secondsLeft := int64((remaining + time.Second - 1) / time.Second)
	g.logger.Debug("operation still cooling down",
		"userID", userID, "operation", operation, "secondsLeft", secondsLeft)

	return domainerrors.NewRateLimitedError(secondsLeft)
}

// Stamp records a successful guarded call at the current time.
func (g *cooldownGuard) Stamp(ctx context.Context, userID uuid.UUID, operation string) error {
	stamp := &entity.SyncStamp{
		UserID:     userID,
		Operation:  operation,
		LastSyncAt: g.now(),
	}
	if err := g.stampRepo.Upsert(ctx, stamp); err != nil {
		return errors.Wrap(err, "failed to record sync stamp")
	}

	return nil
}
