// Package meta implements the Meta (Facebook) Marketing API client used as
// the export source: token exchange, ad accounts, insights, interest search
// and pages.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adsync/config"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://graph.facebook.com"

	// maxPages bounds cursor-following on paginated listings so a
	// misbehaving upstream cannot loop us forever.
	maxPages = 25
)

// insightsFields is the reporting field set requested for every insights
// call. The column mapping selects from these; fields the upstream omits map
// to empty values downstream.
var insightsFields = []string{
	"date_start", "date_stop", "account_id", "account_name",
	"campaign_id", "campaign_name", "adset_id", "adset_name",
	"ad_id", "ad_name", "spend", "impressions", "clicks",
	"ctr", "cpc", "cpm", "reach", "frequency",
}

// graphError is the provider-specific error envelope.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Factory builds per-user clients and performs the one-time short-lived
// token exchange.
type Factory struct {
	appID      string
	appSecret  string
	apiVersion string
	baseURL    string
	httpClient *http.Client
}

// NewFactory creates the Meta client factory from the application config.
func NewFactory(cfg *config.Config) service.AdsClientFactory {
	return &Factory{
		appID:      cfg.MetaAds.AppID,
		appSecret:  cfg.MetaAds.AppSecret,
		apiVersion: cfg.MetaAds.APIVersion,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ClientForToken returns a client bound to the given long-lived token.
func (f *Factory) ClientForToken(accessToken string) service.AdsClient {
	return &UserClient{
		factory:     f,
		accessToken: accessToken,
	}
}

// ExchangeShortLivedToken trades a short-lived user token for a long-lived
// one via the fb_exchange_token grant. One call per linking event.
func (f *Factory) ExchangeShortLivedToken(ctx context.Context, shortLivedToken string) (*service.TokenExchange, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", f.appID)
	params.Set("client_secret", f.appSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	endpoint := fmt.Sprintf("%s/%s/oauth/access_token?%s", f.baseURL, f.apiVersion, params.Encode())

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := f.getJSON(ctx, endpoint, &payload); err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			// Preserve the provider's message but reclassify as an
			// exchange failure so the linking flow can react to it.
			return nil, domainerrors.ErrTokenExchangeFailed.WithDetails(appErr.Details())
		}

		return nil, err
	}

	return &service.TokenExchange{
		AccessToken: payload.AccessToken,
		ExpiresIn:   payload.ExpiresIn,
	}, nil
}

// getJSON performs a GET and decodes the response, converting the provider's
// error envelope into an upstream AppError with the message kept verbatim.
func (f *Factory) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create Meta API request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call Meta API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read Meta API response")
	}

	// The Graph API reports errors both via non-2xx statuses and via an
	// error envelope inside an HTTP 200 body; check the envelope first.
	var envelope graphError
	if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error.Message != "" {
		return domainerrors.ErrMetaUpstream.WithDetails(envelope.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return domainerrors.ErrMetaUpstream.WithDetails(
			fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to decode Meta API response")
	}

	return nil
}

// UserClient is an ephemeral handle bound to one user's long-lived token.
type UserClient struct {
	factory     *Factory
	accessToken string
}

func (c *UserClient) endpoint(path string, params url.Values) string {
	params.Set("access_token", c.accessToken)

	return fmt.Sprintf("%s/%s/%s?%s", c.factory.baseURL, c.factory.apiVersion, path, params.Encode())
}

// page is the generic paginated listing envelope.
type page[T any] struct {
	Data   []T `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// collectPages follows paging.next cursors until the listing is exhausted.
func collectPages[T any](ctx context.Context, f *Factory, first string) ([]T, error) {
	var all []T

	next := first
	for i := 0; i < maxPages && next != ""; i++ {
		var p page[T]
		if err := f.getJSON(ctx, next, &p); err != nil {
			return nil, err
		}

		all = append(all, p.Data...)
		next = p.Paging.Next
	}

	return all, nil
}

// ListAdAccounts lists the ad accounts visible to the linked user.
func (c *UserClient) ListAdAccounts(ctx context.Context) ([]service.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", "account_id,name,account_status,currency,timezone_name")
	params.Set("limit", "100")

	type adAccount struct {
		AccountID     string `json:"account_id"`
		Name          string `json:"name"`
		AccountStatus int    `json:"account_status"`
		Currency      string `json:"currency"`
		TimezoneName  string `json:"timezone_name"`
	}

	raw, err := collectPages[adAccount](ctx, c.factory, c.endpoint("me/adaccounts", params))
	if err != nil {
		return nil, err
	}

	accounts := make([]service.AdAccount, 0, len(raw))
	for _, a := range raw {
		accounts = append(accounts, service.AdAccount{
			ID:       a.AccountID,
			Name:     a.Name,
			Status:   a.AccountStatus,
			Currency: a.Currency,
			Timezone: a.TimezoneName,
		})
	}

	return accounts, nil
}

// FetchInsights retrieves the ad-level performance rows of one ad account
// for one reporting date.
func (c *UserClient) FetchInsights(ctx context.Context, accountID, date string) ([]service.InsightRow, error) {
	params := url.Values{}
	params.Set("fields", joinFields(insightsFields))
	params.Set("level", "ad")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`, date, date))
	params.Set("limit", "500")

	raw, err := collectPages[map[string]any](ctx, c.factory, c.endpoint("act_"+accountID+"/insights", params))
	if err != nil {
		return nil, err
	}

	rows := make([]service.InsightRow, 0, len(raw))
	for _, item := range raw {
		row := make(service.InsightRow, len(item))
		for field, value := range item {
			row[field] = stringifyValue(value)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// SearchInterests queries the adinterest targeting search endpoint.
func (c *UserClient) SearchInterests(ctx context.Context, query string) ([]service.Interest, error) {
	params := url.Values{}
	params.Set("type", "adinterest")
	params.Set("q", query)
	params.Set("limit", "50")

	type interest struct {
		ID           json.Number `json:"id"`
		Name         string      `json:"name"`
		AudienceSize int64       `json:"audience_size_lower_bound"`
		Path         []string    `json:"path"`
	}

	var p page[interest]
	if err := c.factory.getJSON(ctx, c.endpoint("search", params), &p); err != nil {
		return nil, err
	}

	interests := make([]service.Interest, 0, len(p.Data))
	for _, it := range p.Data {
		interests = append(interests, service.Interest{
			ID:       it.ID.String(),
			Name:     it.Name,
			Audience: it.AudienceSize,
			Path:     joinFields(it.Path),
		})
	}

	return interests, nil
}

// ListPages lists the pages managed by the linked user.
func (c *UserClient) ListPages(ctx context.Context) ([]service.Page, error) {
	params := url.Values{}
	params.Set("fields", "id,name,category")
	params.Set("limit", "100")

	type fbPage struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	raw, err := collectPages[fbPage](ctx, c.factory, c.endpoint("me/accounts", params))
	if err != nil {
		return nil, err
	}

	pages := make([]service.Page, 0, len(raw))
	for _, p := range raw {
		pages = append(pages, service.Page{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
		})
	}

	return pages, nil
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// Insights numbers arrive as JSON numbers; keep integral values
		// free of a trailing ".000000".
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}

		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}

		return string(encoded)
	}
}
