// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies one of the two external providers a user can link.
type ProviderType string

const (
	// ProviderMeta is the source ads platform (Meta Marketing API).
	ProviderMeta ProviderType = "meta"
	// ProviderGoogle is the destination spreadsheet platform (Google Sheets).
	ProviderGoogle ProviderType = "google"
)

// Valid reports whether the provider is one of the known providers.
func (p ProviderType) Valid() bool {
	return p == ProviderMeta || p == ProviderGoogle
}

// Credential is the persisted OAuth token material for one user/provider pair.
// At most one active record exists per (UserID, Provider); renewed tokens are
// rewritten in place.
type Credential struct {
	ID           uuid.UUID    // The unique ID for this credential record itself.
	UserID       uuid.UUID    // Links this credential to the user it belongs to.
	Provider     ProviderType // Which external provider issued the tokens.
	AccessToken  string       // The live access token.
	RefreshToken string       // Refresh token; empty for providers without silent refresh (Meta).
	ExpiresAt    time.Time    // Access token expiry; zero when the provider does not report one.
	CreatedAt    time.Time    // Timestamp of when the provider was first linked.
	UpdatedAt    time.Time    // Timestamp of the last token rewrite.
}

// Expired reports whether the access token is past its expiry at the given
// instant. A zero expiry never expires.
func (c *Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
