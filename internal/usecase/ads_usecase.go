package usecase

import (
	"context"

	"adsync/internal/domain/service"

	"github.com/google/uuid"
)

// AdsUsecase defines the interface for browsing the user's Meta assets.
// Listings are served through the tiered cache; the ad account listing is
// additionally cooldown-guarded because it is the most expensive upstream
// call.
type AdsUsecase interface {
	// ListAccounts returns the ad accounts visible to the linked user.
	// forceRefresh skips the cached listing. On a cache miss or forced
	// refresh the upstream call is subject to the per-user cooldown and a
	// rate-limited error is returned while it is active.
	ListAccounts(ctx context.Context, userID uuid.UUID, forceRefresh bool) ([]service.AdAccount, error)

	// ListPages returns the pages managed by the linked user.
	ListPages(ctx context.Context, userID uuid.UUID) ([]service.Page, error)

	// SearchInterests queries the targeting interest search endpoint.
	SearchInterests(ctx context.Context, userID uuid.UUID, query string) ([]service.Interest, error)
}
