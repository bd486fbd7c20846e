// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when no credential exists for a
// user/provider pair. Callers treat this as "provider not connected",
// not as a system fault.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository defines the standard operations for credential persistence.
type CredentialRepository interface {
	// Find retrieves the credential for one user/provider pair.
	Find(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Credential, error)

	// Upsert atomically creates or rewrites the credential for a
	// user/provider pair. Last writer wins on the token fields; tokens are
	// monotonically refreshed by the provider, never computed locally.
	Upsert(ctx context.Context, cred *entity.Credential) error

	// UpdateToken rewrites only the token material of an existing
	// credential. Used by the refresh path, which must persist the rotated
	// token before the process continues with it.
	UpdateToken(ctx context.Context, userID uuid.UUID, provider entity.ProviderType, accessToken, refreshToken string, expiresAt time.Time) error

	// Delete removes the credential, unlinking the provider.
	Delete(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error
}
