package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"adsync/config"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// opListAccounts is the cooldown operation key for the ad account listing.
const opListAccounts = "meta:list_accounts"

// adsService implements the AdsUsecase interface. Provider listings go
// through the tiered cache; the ad account listing is additionally guarded
// by the per-user cooldown because it fans out across the upstream business
// graph.
type adsService struct {
	tokens     usecase.TokenUsecase
	adsFactory service.AdsClientFactory
	cache      service.Cache
	cooldown   usecase.CooldownGuard
	cfg        *config.Config
	logger     *slog.Logger
}

// NewAdsService is the constructor for adsService.
func NewAdsService(
	tokens usecase.TokenUsecase,
	adsFactory service.AdsClientFactory,
	cache service.Cache,
	cooldown usecase.CooldownGuard,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AdsUsecase {
	return &adsService{
		tokens:     tokens,
		adsFactory: adsFactory,
		cache:      cache,
		cooldown:   cooldown,
		cfg:        cfg,
		logger:     logger,
	}
}

// ListAccounts returns the ad accounts visible to the linked user. A cache
// hit bypasses both the cooldown and the upstream call; the cooldown stamp
// is written only after a clean upstream fetch.
func (srv *adsService) ListAccounts(ctx context.Context, userID uuid.UUID, forceRefresh bool) ([]service.AdAccount, error) {
	key := cacheKey("accounts", userID)

	if !forceRefresh {
		var cached []service.AdAccount
		if ok := srv.cacheGet(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	window := time.Duration(srv.cfg.MetaAds.AccountsCooldownSeconds) * time.Second
	if err := srv.cooldown.Check(ctx, userID, opListAccounts, window); err != nil {
		return nil, err
	}

	token, err := srv.tokens.ResolveMetaToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := srv.adsFactory.ClientForToken(token).ListAdAccounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ad accounts")
	}

	if err := srv.cooldown.Stamp(ctx, userID, opListAccounts); err != nil {
		// The listing itself succeeded; a missed stamp only shortens the
		// effective cooldown.
		srv.logger.Warn("failed to stamp account listing", "userID", userID, "error", err)
	}
	srv.cacheSet(ctx, key, accounts, srv.cfg.Cache.AccountsTTL)

	return accounts, nil
}

// ListPages returns the pages managed by the linked user.
func (srv *adsService) ListPages(ctx context.Context, userID uuid.UUID) ([]service.Page, error) {
	key := cacheKey("pages", userID)

	var cached []service.Page
	if ok := srv.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	token, err := srv.tokens.ResolveMetaToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	pages, err := srv.adsFactory.ClientForToken(token).ListPages(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pages")
	}
	srv.cacheSet(ctx, key, pages, srv.cfg.Cache.PagesTTL)

	return pages, nil
}

// SearchInterests queries the targeting interest search endpoint. Results
// are cached per query because the interest universe changes slowly.
func (srv *adsService) SearchInterests(ctx context.Context, userID uuid.UUID, query string) ([]service.Interest, error) {
	key := fmt.Sprintf("meta:interests:%s", query)

	var cached []service.Interest
	if ok := srv.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	token, err := srv.tokens.ResolveMetaToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	interests, err := srv.adsFactory.ClientForToken(token).SearchInterests(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search interests")
	}
	srv.cacheSet(ctx, key, interests, srv.cfg.Cache.InterestsTTL)

	return interests, nil
}

func cacheKey(listing string, userID uuid.UUID) string {
	return fmt.Sprintf("meta:%s:%s", listing, userID)
}

// cacheGet decodes a cached listing. Cache failures are treated as misses;
// the cache itself already degrades remote failures to the local tier.
func (srv *adsService) cacheGet(ctx context.Context, key string, out any) bool {
	raw, found, err := srv.cache.Get(ctx, key)
	if err != nil || !found {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		srv.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)

		return false
	}

	return true
}

// cacheSet encodes and stores a listing. Failures are logged, never
// surfaced: caching is an optimization, not a dependency.
func (srv *adsService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		srv.logger.Warn("failed to encode cache entry", "key", key, "error", err)

		return
	}
	if err := srv.cache.Set(ctx, key, raw, ttl); err != nil {
		srv.logger.Warn("failed to store cache entry", "key", key, "error", err)
	}
}
