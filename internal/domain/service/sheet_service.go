package service

import (
	"context"
	"time"

	"adsync/internal/domain/entity"
)

// SpreadsheetFile is one spreadsheet visible to the linked Google user.
type SpreadsheetFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OAuthToken is the token material returned by an authorization-code
// exchange with the destination provider.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenPersistFunc persists rotated token material back to the credential
// store. The sheets client calls it synchronously before using a refreshed
// token, so a renewed token is durable before any request is made with it.
type TokenPersistFunc func(ctx context.Context, accessToken, refreshToken string, expiresAt time.Time) error

// SpreadsheetClient is an ephemeral handle bound to one user's Google
// credential. It lives for one request and is never cached across requests
// because tokens mutate.
type SpreadsheetClient interface {
	// ListSpreadsheets lists spreadsheets whose name starts with the given
	// prefix. An empty prefix lists everything.
	ListSpreadsheets(ctx context.Context, namePrefix string) ([]SpreadsheetFile, error)

	// SpreadsheetTitle returns the title of a spreadsheet.
	SpreadsheetTitle(ctx context.Context, spreadsheetID string) (string, error)

	// ListTabs returns the tab names of a spreadsheet.
	ListTabs(ctx context.Context, spreadsheetID string) ([]string, error)

	// AppendRows adds rows after the existing content of a tab without
	// reading or clearing it.
	AppendRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error

	// OverwriteRows clears the tab's data range below the header row and
	// writes the rows starting from the anchor.
	OverwriteRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error
}

// SpreadsheetClientFactory builds per-user spreadsheet clients and performs
// the authorization-code exchange done at link time.
type SpreadsheetClientFactory interface {
	// ClientForCredential returns a client bound to the credential. The
	// persist callback is invoked whenever the underlying token source
	// rotates the access token.
	ClientForCredential(ctx context.Context, cred *entity.Credential, persist TokenPersistFunc) (SpreadsheetClient, error)

	// ExchangeAuthCode trades an authorization code for token material.
	ExchangeAuthCode(ctx context.Context, code string) (*OAuthToken, error)
}
