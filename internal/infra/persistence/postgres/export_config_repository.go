package postgres

import (
	"context"
	"encoding/json"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// exportConfigRepository implements the domain.ExportConfigRepository interface.
type exportConfigRepository struct {
	db *gorm.DB
}

// NewExportConfigRepository is the constructor for exportConfigRepository.
func NewExportConfigRepository(db *gorm.DB) repository.ExportConfigRepository {
	return &exportConfigRepository{db: db}
}

// Create persists a new export config.
func (repo *exportConfigRepository) Create(ctx context.Context, cfg *entity.ExportConfig) error {
	cfgM, err := fromExportConfigDomain(cfg)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(cfgM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrExportConfigNameTaken.WrapMessage("export config name already used")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create export config")
	}

	cfg.ID = cfgM.ID
	cfg.CreatedAt = cfgM.CreatedAt

	return nil
}

// FindByID retrieves a config owned by the given user.
func (repo *exportConfigRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error) {
	var cfgM model.ExportConfigModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cfgM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExportConfigNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toExportConfigDomain(&cfgM)
}

// ListByUser returns all configs owned by the given user, newest first.
func (repo *exportConfigRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error) {
	var cfgMs []model.ExportConfigModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cfgMs).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfgs := make([]*entity.ExportConfig, 0, len(cfgMs))
	for i := range cfgMs {
		cfg, err := toExportConfigDomain(&cfgMs[i])
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}

	return cfgs, nil
}

// Update rewrites an existing config owned by the given user.
func (repo *exportConfigRepository) Update(ctx context.Context, cfg *entity.ExportConfig) error {
	cfgM, err := fromExportConfigDomain(cfg)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ExportConfigModel{}).
		Where("id = ? AND user_id = ?", cfg.ID, cfg.UserID).
		Updates(map[string]any{
			"name":            cfgM.Name,
			"account_ids":     cfgM.AccountIDs,
			"spreadsheet_id":  cfgM.SpreadsheetID,
			"tab_name":        cfgM.TabName,
			"column_mappings": cfgM.ColumnMappings,
			"write_mode":      cfgM.WriteMode,
			"timezone":        cfgM.Timezone,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrExportConfigNameTaken.WrapMessage("export config name already used")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update export config")
	}
	if result.RowsAffected == 0 {
		return repository.ErrExportConfigNotFound
	}

	return nil
}

// Delete removes a config owned by the given user.
func (repo *exportConfigRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ExportConfigModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrExportConfigNotFound
	}

	return nil
}

func fromExportConfigDomain(cfg *entity.ExportConfig) (*model.ExportConfigModel, error) {
	accountIDs, err := json.Marshal(cfg.AccountIDs)
	if err != nil {
		return nil, errors.Wrap(err, "marshal account ids")
	}

	mappings, err := json.Marshal(cfg.ColumnMappings)
	if err != nil {
		return nil, errors.Wrap(err, "marshal column mappings")
	}

	return &model.ExportConfigModel{
		ID:             cfg.ID,
		UserID:         cfg.UserID,
		Name:           cfg.Name,
		AccountIDs:     accountIDs,
		SpreadsheetID:  cfg.SpreadsheetID,
		TabName:        cfg.TabName,
		ColumnMappings: mappings,
		WriteMode:      string(cfg.WriteMode),
		Timezone:       cfg.Timezone,
		CreatedAt:      cfg.CreatedAt,
		UpdatedAt:      cfg.UpdatedAt,
	}, nil
}

func toExportConfigDomain(cfgM *model.ExportConfigModel) (*entity.ExportConfig, error) {
	var accountIDs []string
	if err := json.Unmarshal(cfgM.AccountIDs, &accountIDs); err != nil {
		return nil, errors.Wrap(err, "unmarshal account ids")
	}

	var mappings []entity.ColumnMapping
	if err := json.Unmarshal(cfgM.ColumnMappings, &mappings); err != nil {
		return nil, errors.Wrap(err, "unmarshal column mappings")
	}

	return &entity.ExportConfig{
		ID:             cfgM.ID,
		UserID:         cfgM.UserID,
		Name:           cfgM.Name,
		AccountIDs:     accountIDs,
		SpreadsheetID:  cfgM.SpreadsheetID,
		TabName:        cfgM.TabName,
		ColumnMappings: mappings,
		WriteMode:      entity.WriteMode(cfgM.WriteMode),
		Timezone:       cfgM.Timezone,
		CreatedAt:      cfgM.CreatedAt,
		UpdatedAt:      cfgM.UpdatedAt,
	}, nil
}
