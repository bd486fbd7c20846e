package service

import (
	"context"
)

// AdAccount is one advertising account the linked Meta user can access.
type AdAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   int    `json:"status"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// InsightRow is one performance row keyed by reporting field name.
// Fields absent from the upstream payload are simply missing from the map.
type InsightRow map[string]string

// Interest is one targeting interest returned by the adinterest search.
type Interest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Audience int64  `json:"audience"`
	Path     string `json:"path"`
}

// Page is one page the linked Meta user manages.
type Page struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// TokenExchange is the result of exchanging a short-lived token for a
// long-lived one.
type TokenExchange struct {
	AccessToken string
	ExpiresIn   int64 // Lifetime of the long-lived token, in seconds.
}

// AdsClient is an ephemeral handle bound to one user's Meta token.
// It lives for one request and is never cached across requests.
type AdsClient interface {
	// ListAdAccounts lists the ad accounts visible to the linked user.
	ListAdAccounts(ctx context.Context) ([]AdAccount, error)

	// FetchInsights retrieves the performance rows of one ad account for
	// one reporting date.
	FetchInsights(ctx context.Context, accountID, date string) ([]InsightRow, error)

	// SearchInterests queries the targeting interest search endpoint.
	SearchInterests(ctx context.Context, query string) ([]Interest, error)

	// ListPages lists the pages managed by the linked user.
	ListPages(ctx context.Context) ([]Page, error)
}

// AdsClientFactory builds per-user ads clients and performs the one-time
// short-lived token exchange done at link time.
type AdsClientFactory interface {
	// ClientForToken returns a client bound to the given long-lived token.
	ClientForToken(accessToken string) AdsClient

	// ExchangeShortLivedToken trades a short-lived user token for a
	// long-lived one. Invoked once per linking event, never on resolve.
	// A provider failure surfaces as an upstream error carrying the
	// provider's message; it is never retried here.
	ExchangeShortLivedToken(ctx context.Context, shortLivedToken string) (*TokenExchange, error)
}
