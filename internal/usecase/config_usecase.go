package usecase

import (
	"context"

	"adsync/internal/domain/entity"

	"github.com/google/uuid"
)

// ExportConfigUsecase defines the interface for managing named export
// request templates.
type ExportConfigUsecase interface {
	CreateConfig(ctx context.Context, userID uuid.UUID, input *ExportConfigInput) (*entity.ExportConfig, error)
	GetConfig(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error)
	ListConfigs(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error)
	UpdateConfig(ctx context.Context, userID, id uuid.UUID, input *ExportConfigInput) (*entity.ExportConfig, error)
	DeleteConfig(ctx context.Context, userID, id uuid.UUID) error
}

// --- Input DTOs ---

// ExportConfigInput defines the data required to create or update an export
// config.
type ExportConfigInput struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	AccountIDs     []string               `json:"account_ids" validate:"required,min=1,dive,required"`
	SpreadsheetID  string                 `json:"spreadsheet_id" validate:"required"`
	TabName        string                 `json:"tab_name" validate:"required"`
	ColumnMappings []entity.ColumnMapping `json:"column_mappings" validate:"required,min=1"`
	WriteMode      entity.WriteMode       `json:"write_mode" validate:"omitempty,oneof=append overwrite"`
	Timezone       string                 `json:"timezone" validate:"omitempty,timezone"`
}
