package impl

import (
	"context"
	"log/slog"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// exportConfigService implements the ExportConfigUsecase interface.
type exportConfigService struct {
	configRepo repository.ExportConfigRepository
	logger     *slog.Logger
}

// NewExportConfigService is the constructor for exportConfigService.
func NewExportConfigService(
	configRepo repository.ExportConfigRepository,
	logger *slog.Logger,
) usecase.ExportConfigUsecase {
	return &exportConfigService{
		configRepo: configRepo,
		logger:     logger,
	}
}

// CreateConfig persists a new export config.
func (srv *exportConfigService) CreateConfig(ctx context.Context, userID uuid.UUID, input *usecase.ExportConfigInput) (*entity.ExportConfig, error) {
	srv.logger.Info("Creating export config", "userID", userID, "name", input.Name)

	cfg := &entity.ExportConfig{
		ID:     uuid.New(),
		UserID: userID,
	}
	applyConfigInput(cfg, input)

	if err := srv.configRepo.Create(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to create export config")
	}

	return cfg, nil
}

// GetConfig retrieves one config owned by the user.
func (srv *exportConfigService) GetConfig(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error) {
	cfg, err := srv.configRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExportConfigNotFound) {
			return nil, domainerrors.ErrExportConfigNotFound
		}

		return nil, errors.Wrap(err, "failed to load export config")
	}

	return cfg, nil
}

// ListConfigs returns all configs owned by the user, newest first.
func (srv *exportConfigService) ListConfigs(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error) {
	configs, err := srv.configRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list export configs")
	}

	return configs, nil
}

// UpdateConfig rewrites an existing config owned by the user.
func (srv *exportConfigService) UpdateConfig(ctx context.Context, userID, id uuid.UUID, input *usecase.ExportConfigInput) (*entity.ExportConfig, error) {
	srv.logger.Info("Updating export config", "userID", userID, "configID", id)

	cfg, err := srv.configRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExportConfigNotFound) {
			return nil, domainerrors.ErrExportConfigNotFound
		}

		return nil, errors.Wrap(err, "failed to load export config")
	}

	applyConfigInput(cfg, input)
	if err := srv.configRepo.Update(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to update export config")
	}

	return cfg, nil
}

// DeleteConfig removes a config owned by the user.
func (srv *exportConfigService) DeleteConfig(ctx context.Context, userID, id uuid.UUID) error {
	srv.logger.Info("Deleting export config", "userID", userID, "configID", id)

	if err := srv.configRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrExportConfigNotFound) {
			return domainerrors.ErrExportConfigNotFound
		}

		return errors.Wrap(err, "failed to delete export config")
	}

	return nil
}

func applyConfigInput(cfg *entity.ExportConfig, input *usecase.ExportConfigInput) {
	cfg.Name = input.Name
	cfg.AccountIDs = input.AccountIDs
	cfg.SpreadsheetID = input.SpreadsheetID
	cfg.TabName = input.TabName
	cfg.ColumnMappings = input.ColumnMappings
	cfg.WriteMode = input.WriteMode
	cfg.Timezone = input.Timezone

	if cfg.WriteMode == "" {
		cfg.WriteMode = entity.WriteModeAppend
	}
}
