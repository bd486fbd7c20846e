// Package sheets implements the Google Sheets/Drive client used as the
// export destination, including per-user token refresh with write-through
// persistence of rotated tokens.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"adsync/config"
	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// overwriteAnchor is the fixed cell overwrite mode writes from, below the
// header row.
const overwriteAnchor = "A2"

// Factory builds per-user spreadsheet clients and performs the
// authorization-code exchange done at link time.
type Factory struct {
	oauthConfig *oauth2.Config
}

// NewFactory creates the Sheets client factory from the application config.
func NewFactory(cfg *config.Config) service.SpreadsheetClientFactory {
	return &Factory{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectURI,
			Scopes:       cfg.GoogleOAuth.Scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeAuthCode trades an authorization code for token material.
func (f *Factory) ExchangeAuthCode(ctx context.Context, code string) (*service.OAuthToken, error) {
	token, err := f.oauthConfig.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, domainerrors.ErrTokenExchangeFailed.WithDetails(err.Error())
	}

	return &service.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}, nil
}

// ClientForCredential returns a client bound to the credential. Token
// rotation is persisted through the callback before the rotated token is
// handed to any request.
func (f *Factory) ClientForCredential(ctx context.Context, cred *entity.Credential, persist service.TokenPersistFunc) (service.SpreadsheetClient, error) {
	stored := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.ExpiresAt,
	}

	source := &persistingTokenSource{
		ctx:        ctx,
		inner:      f.oauthConfig.TokenSource(ctx, stored),
		lastAccess: cred.AccessToken,
		persist:    persist,
	}

	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Sheets service")
	}

	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Drive service")
	}

	return &userClient{
		sheets: sheetsSvc,
		drive:  driveSvc,
	}, nil
}

// persistingTokenSource wraps an oauth2.TokenSource and writes every rotated
// access token back to the credential store before returning it. The write
// happens inline (write-then-continue): a renewed token is durable before the
// process makes any request with it.
type persistingTokenSource struct {
	ctx     context.Context
	inner   oauth2.TokenSource
	persist service.TokenPersistFunc

	mu         sync.Mutex
	lastAccess string
}

// Token implements oauth2.TokenSource.
func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.inner.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain Google token")
	}

	if token.AccessToken != s.lastAccess {
		if err := s.persist(s.ctx, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
			return nil, errors.Wrap(err, "failed to persist rotated Google token")
		}
		s.lastAccess = token.AccessToken
	}

	return token, nil
}

// userClient is an ephemeral handle bound to one user's Google credential.
type userClient struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// ListSpreadsheets lists spreadsheets whose name starts with the given prefix.
func (c *userClient) ListSpreadsheets(ctx context.Context, namePrefix string) ([]service.SpreadsheetFile, error) {
	query := "mimeType='application/vnd.google-apps.spreadsheet' and trashed=false"
	if namePrefix != "" {
		query += fmt.Sprintf(" and name contains '%s'", strings.ReplaceAll(namePrefix, "'", `\'`))
	}

	listing, err := c.drive.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name)").
		PageSize(100).
		Do()
	if err != nil {
		return nil, upstreamError(err)
	}

	files := make([]service.SpreadsheetFile, 0, len(listing.Files))
	for _, f := range listing.Files {
		// Drive only supports "contains"; enforce the prefix here.
		if namePrefix != "" && !strings.HasPrefix(f.Name, namePrefix) {
			continue
		}
		files = append(files, service.SpreadsheetFile{ID: f.Id, Name: f.Name})
	}

	return files, nil
}

// SpreadsheetTitle returns the title of a spreadsheet.
func (c *userClient) SpreadsheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	sheet, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("properties.title").
		Do()
	if err != nil {
		return "", upstreamError(err)
	}

	return sheet.Properties.Title, nil
}

// ListTabs returns the tab names of a spreadsheet.
func (c *userClient) ListTabs(ctx context.Context, spreadsheetID string) ([]string, error) {
	sheet, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("sheets.properties.title").
		Do()
	if err != nil {
		return nil, upstreamError(err)
	}

	tabs := make([]string, 0, len(sheet.Sheets))
	for _, s := range sheet.Sheets {
		tabs = append(tabs, s.Properties.Title)
	}

	return tabs, nil
}

// AppendRows adds rows after the existing content of a tab.
func (c *userClient) AppendRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error {
	_, err := c.sheets.Spreadsheets.Values.
		Append(spreadsheetID, tabRange(tab, "A1"), toValueRange(rows)).
		Context(ctx).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return upstreamError(err)
	}

	return nil
}

// OverwriteRows clears the tab's data range below the header row and writes
// the rows from the anchor.
func (c *userClient) OverwriteRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error {
	_, err := c.sheets.Spreadsheets.Values.
		Clear(spreadsheetID, tabRange(tab, overwriteAnchor+":ZZ"), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return upstreamError(err)
	}

	_, err = c.sheets.Spreadsheets.Values.
		Update(spreadsheetID, tabRange(tab, overwriteAnchor), toValueRange(rows)).
		Context(ctx).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return upstreamError(err)
	}

	return nil
}

func tabRange(tab, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(tab, "'", "''"), cells)
}

func toValueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	return &sheets.ValueRange{Values: values}
}

// upstreamError converts a Google API error into the upstream taxonomy,
// keeping the provider's own message verbatim.
func upstreamError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return domainerrors.ErrSheetsUpstream.WithDetails(apiErr.Message)
	}

	return domainerrors.ErrSheetsUpstream.WithDetails(err.Error())
}
