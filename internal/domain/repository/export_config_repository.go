package repository

import (
	"context"
	"errors"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrExportConfigNotFound is returned when an export config does not exist
// or belongs to another user.
var ErrExportConfigNotFound = errors.New("export config not found")

// ExportConfigRepository defines CRUD for named export request templates.
type ExportConfigRepository interface {
	// Create persists a new export config.
	Create(ctx context.Context, cfg *entity.ExportConfig) error

	// FindByID retrieves a config owned by the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error)

	// ListByUser returns all configs owned by the given user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error)

	// Update rewrites an existing config owned by the given user.
	Update(ctx context.Context, cfg *entity.ExportConfig) error

	// Delete removes a config owned by the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
