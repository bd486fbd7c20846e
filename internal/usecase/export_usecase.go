package usecase

import (
	"context"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ExportUsecase defines the interface for running an ads-to-spreadsheet
// export end to end.
type ExportUsecase interface {
	// RunExport executes one export run: resolve credentials, fetch
	// insights for every requested account, transform the rows through the
	// column mappings and write them to the destination tab. Exactly one
	// audit log record is written per run that made it past credential
	// resolution, success or failure.
	RunExport(ctx context.Context, userID uuid.UUID, input *RunExportInput) (*RunExportOutput, error)
}

// --- Input DTOs ---

// RunExportInput defines one export request. ConfigID and the inline fields
// are mutually exclusive: when ConfigID is set the stored config supplies the
// request and the inline fields are ignored.
type RunExportInput struct {
	ConfigID *uuid.UUID `json:"config_id,omitempty"`

	AccountIDs     []string               `json:"account_ids" validate:"required_without=ConfigID,omitempty,min=1,dive,required"`
	SpreadsheetID  string                 `json:"spreadsheet_id" validate:"required_without=ConfigID"`
	TabName        string                 `json:"tab_name" validate:"required_without=ConfigID"`
	ColumnMappings []entity.ColumnMapping `json:"column_mappings" validate:"required_without=ConfigID,omitempty,min=1"`
	WriteMode      entity.WriteMode       `json:"write_mode" validate:"omitempty,oneof=append overwrite"`

	// Date is the reporting date in YYYY-MM-DD. Empty means yesterday in
	// the request's timezone.
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`

	ExportType entity.ExportType `json:"-"`
}

// --- Output DTOs ---

// RunExportOutput summarizes a successful export run.
type RunExportOutput struct {
	RowCount         int    `json:"row_count"`
	DurationMs       int64  `json:"duration_ms"`
	SpreadsheetTitle string `json:"spreadsheet_title"`
	TabName          string `json:"tab_name"`
	Date             string `json:"date"`
}
