package impl

import (
	"context"
	"testing"
	"time"

	"adsync/config"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adsServiceFixtures struct {
	service    usecase.AdsUsecase
	tokens     *fakeTokenUsecase
	adsClient  *fakeAdsClient
	adsFactory *fakeAdsFactory
	cache      *fakeCache
	cooldown   *fakeCooldown
}

func createTestAdsService(t *testing.T) adsServiceFixtures {
	t.Helper()

	adsClient := &fakeAdsClient{}
	adsFactory := &fakeAdsFactory{Client: adsClient}
	tokens := &fakeTokenUsecase{
		ResolveMetaTokenFn: func(context.Context, uuid.UUID) (string, error) {
			return "meta-token", nil
		},
	}
	cache := newFakeCache()
	cooldown := &fakeCooldown{}

	cfg := &config.Config{
		MetaAds: &config.MetaAdsConfig{AccountsCooldownSeconds: 300},
		Cache: &config.CacheConfig{
			AccountsTTL:  10 * time.Minute,
			PagesTTL:     10 * time.Minute,
			InterestsTTL: time.Hour,
		},
	}
	svc := NewAdsService(tokens, adsFactory, cache, cooldown, cfg, discardLogger())

	return adsServiceFixtures{
		service:    svc,
		tokens:     tokens,
		adsClient:  adsClient,
		adsFactory: adsFactory,
		cache:      cache,
		cooldown:   cooldown,
	}
}

func TestAdsService_ListAccounts_FetchesStampsAndCaches(t *testing.T) {
	fx := createTestAdsService(t)

	userID := uuid.New()
	fetches := 0
	fx.adsClient.ListAdAccountsFn = func(context.Context) ([]service.AdAccount, error) {
		fetches++

		return []service.AdAccount{{ID: "act_1", Name: "Main", Currency: "USD"}}, nil
	}

	accounts, err := fx.service.ListAccounts(context.Background(), userID, false)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "act_1", accounts[0].ID)
	assert.Equal(t, []string{opListAccounts}, fx.cooldown.Stamps)

	// Second call is served from cache: no upstream fetch, no new stamp.
	accounts, err = fx.service.ListAccounts(context.Background(), userID, false)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 1, fetches)
	assert.Len(t, fx.cooldown.Stamps, 1)
}

func TestAdsService_ListAccounts_CacheHitBypassesCooldown(t *testing.T) {
	fx := createTestAdsService(t)

	userID := uuid.New()
	fx.adsClient.ListAdAccountsFn = func(context.Context) ([]service.AdAccount, error) {
		return []service.AdAccount{{ID: "act_1"}}, nil
	}

	_, err := fx.service.ListAccounts(context.Background(), userID, false)
	require.NoError(t, err)

	// The window is now active but the cached listing stays reachable.
	fx.cooldown.CheckFn = func(context.Context, uuid.UUID, string, time.Duration) error {
		return domainerrors.NewRateLimitedError(120)
	}

	accounts, err := fx.service.ListAccounts(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAdsService_ListAccounts_ForceRefreshSkipsCacheButNotCooldown(t *testing.T) {
	fx := createTestAdsService(t)

	userID := uuid.New()
	fetches := 0
	fx.adsClient.ListAdAccountsFn = func(context.Context) ([]service.AdAccount, error) {
		fetches++

		return []service.AdAccount{{ID: "act_1"}}, nil
	}

	_, err := fx.service.ListAccounts(context.Background(), userID, false)
	require.NoError(t, err)

	// Forced refresh ignores the warm cache and goes upstream again.
	_, err = fx.service.ListAccounts(context.Background(), userID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)

	// But it still honors the cooldown.
	fx.cooldown.CheckFn = func(context.Context, uuid.UUID, string, time.Duration) error {
		return domainerrors.NewRateLimitedError(60)
	}
	_, err = fx.service.ListAccounts(context.Background(), userID, true)

	var rateErr *domainerrors.RateLimitedError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 2, fetches)
}

func TestAdsService_ListAccounts_RateLimitedOnColdCache(t *testing.T) {
	fx := createTestAdsService(t)

	fx.cooldown.CheckFn = func(_ context.Context, _ uuid.UUID, operation string, window time.Duration) error {
		assert.Equal(t, opListAccounts, operation)
		assert.Equal(t, 300*time.Second, window)

		return domainerrors.NewRateLimitedError(42)
	}
	fx.adsClient.ListAdAccountsFn = func(context.Context) ([]service.AdAccount, error) {
		t.Fatal("upstream must not be called while cooling down")

		return nil, nil
	}

	_, err := fx.service.ListAccounts(context.Background(), uuid.New(), false)

	var rateErr *domainerrors.RateLimitedError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, int64(42), rateErr.SecondsLeft)
}

func TestAdsService_ListAccounts_UpstreamFailureSkipsStampAndCache(t *testing.T) {
	fx := createTestAdsService(t)

	fx.adsClient.ListAdAccountsFn = func(context.Context) ([]service.AdAccount, error) {
		return nil, domainerrors.ErrMetaUpstream.WithDetails("Service temporarily unavailable")
	}

	_, err := fx.service.ListAccounts(context.Background(), uuid.New(), false)

	require.Error(t, err)
	assert.Empty(t, fx.cooldown.Stamps, "a failed fetch must not start a cooldown window")
	assert.Empty(t, fx.cache.entries)
}

func TestAdsService_ListPages_Caches(t *testing.T) {
	fx := createTestAdsService(t)

	fetches := 0
	fx.adsClient.ListPagesFn = func(context.Context) ([]service.Page, error) {
		fetches++

		return []service.Page{{ID: "p1", Name: "Shop", Category: "Retail"}}, nil
	}

	userID := uuid.New()
	for range 2 {
		pages, err := fx.service.ListPages(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "Shop", pages[0].Name)
	}
	assert.Equal(t, 1, fetches)
}

func TestAdsService_SearchInterests_CachesPerQuery(t *testing.T) {
	fx := createTestAdsService(t)

	queries := make([]string, 0, 2)
	fx.adsClient.SearchInterestsFn = func(_ context.Context, query string) ([]service.Interest, error) {
		queries = append(queries, query)

		return []service.Interest{{ID: "i1", Name: query}}, nil
	}

	userID := uuid.New()
	_, err := fx.service.SearchInterests(context.Background(), userID, "coffee")
	require.NoError(t, err)
	_, err = fx.service.SearchInterests(context.Background(), userID, "coffee")
	require.NoError(t, err)
	_, err = fx.service.SearchInterests(context.Background(), userID, "tea")
	require.NoError(t, err)

	assert.Equal(t, []string{"coffee", "tea"}, queries)
}

func TestAdsService_ListAccounts_NotConnected(t *testing.T) {
	fx := createTestAdsService(t)

	fx.tokens.ResolveMetaTokenFn = func(context.Context, uuid.UUID) (string, error) {
		return "", domainerrors.ErrMetaNotConnected
	}

	_, err := fx.service.ListAccounts(context.Background(), uuid.New(), false)

	require.ErrorIs(t, err, domainerrors.ErrMetaNotConnected)
}
