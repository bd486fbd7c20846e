package repository

import (
	"context"
	"time"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ExportLogFilter narrows an export log listing. Zero values mean "no filter".
type ExportLogFilter struct {
	ExportType entity.ExportType
	Status     entity.ExportStatus
	From       time.Time
	To         time.Time
	// Search matches case-insensitively against config name, sheet file
	// name, sheet tab name and details.
	Search string
}

// ExportLogRepository defines the append-only export audit trail.
type ExportLogRepository interface {
	// Create appends one log record. Exactly one record is written per
	// orchestration run reaching the logging state.
	Create(ctx context.Context, log *entity.ExportLog) error

	// ListByUser returns one page of a user's log records, newest first,
	// along with the total count matching the filter.
	ListByUser(ctx context.Context, userID uuid.UUID, filter ExportLogFilter, offset, limit int) ([]*entity.ExportLog, int64, error)
}
