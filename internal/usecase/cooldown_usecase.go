package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CooldownGuard rate-limits expensive per-user operations by their
// last-success timestamp. The stamp is written only after the guarded call
// succeeds, so failed attempts never start a cooldown window.
type CooldownGuard interface {
	// Check returns a rate-limited error carrying the ceiling-rounded
	// seconds left when the operation ran successfully within the window.
	Check(ctx context.Context, userID uuid.UUID, operation string, window time.Duration) error

	// Stamp records a successful guarded call at the current time.
	Stamp(ctx context.Context, userID uuid.UUID, operation string) error
}
