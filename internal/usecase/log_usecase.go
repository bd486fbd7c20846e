package usecase

import (
	"context"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ExportLogUsecase defines the interface for reading the export audit trail.
type ExportLogUsecase interface {
	// ListLogs returns one page of the user's export history, newest first.
	ListLogs(ctx context.Context, userID uuid.UUID, input *ListLogsInput) (*ListLogsOutput, error)
}

// --- Input DTOs ---

// ListLogsInput narrows and pages an export log listing. Zero values mean
// "no filter".
type ListLogsInput struct {
	ExportType entity.ExportType   `query:"export_type" validate:"omitempty,oneof=manual scheduled"`
	Status     entity.ExportStatus `query:"status" validate:"omitempty,oneof=success failure"`
	From       string              `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string              `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Search     string              `query:"search" validate:"omitempty,max=200"`
	Page       int                 `query:"page" validate:"omitempty,min=1"`
	PageSize   int                 `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// --- Output DTOs ---

// ListLogsOutput is one page of export log records with the total count
// matching the filter.
type ListLogsOutput struct {
	Logs     []*entity.ExportLog `json:"logs"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
