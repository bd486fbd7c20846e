// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"adsync/internal/domain/entity"
	"adsync/internal/domain/service"

	"github.com/google/uuid"
)

// TokenUsecase defines the interface for credential lifecycle and token
// resolution operations.
type TokenUsecase interface {
	// ConnectMeta exchanges a short-lived Meta user token for a long-lived
	// one and stores it as the user's Meta credential. The exchange happens
	// exactly once per linking event.
	ConnectMeta(ctx context.Context, userID uuid.UUID, input *ConnectMetaInput) error

	// ConnectGoogle exchanges an authorization code for Google token
	// material and stores it as the user's Google credential.
	ConnectGoogle(ctx context.Context, userID uuid.UUID, input *ConnectGoogleInput) error

	// Disconnect removes the stored credential for a provider.
	Disconnect(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error

	// Status reports which providers the user has linked.
	Status(ctx context.Context, userID uuid.UUID) (*ConnectionStatusOutput, error)

	// ResolveMetaToken returns the user's long-lived Meta token, failing
	// with a precondition error when the provider is not linked.
	ResolveMetaToken(ctx context.Context, userID uuid.UUID) (string, error)

	// SheetsClientFor returns a spreadsheet client bound to the user's
	// Google credential, with rotated tokens persisted before use. Fails
	// with a precondition error when the provider is not linked.
	SheetsClientFor(ctx context.Context, userID uuid.UUID) (service.SpreadsheetClient, error)
}

// --- Input DTOs ---

// ConnectMetaInput carries the short-lived token produced by the Meta login
// flow on the client side.
type ConnectMetaInput struct {
	ShortLivedToken string `json:"short_lived_token" validate:"required"`
}

// ConnectGoogleInput carries the authorization code produced by the Google
// consent flow on the client side.
type ConnectGoogleInput struct {
	Code string `json:"code" validate:"required"`
}

// --- Output DTOs ---

// ProviderStatus describes one linked provider.
type ProviderStatus struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ConnectionStatusOutput reports the linking state of both providers.
type ConnectionStatusOutput struct {
	Meta   ProviderStatus `json:"meta"`
	Google ProviderStatus `json:"google"`
}
