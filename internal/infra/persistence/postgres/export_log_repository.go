package postgres

import (
	"context"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// exportLogRepository implements the domain.ExportLogRepository interface.
type exportLogRepository struct {
	db *gorm.DB
}

// NewExportLogRepository is the constructor for exportLogRepository.
func NewExportLogRepository(db *gorm.DB) repository.ExportLogRepository {
	return &exportLogRepository{db: db}
}

// Create appends one log record.
func (repo *exportLogRepository) Create(ctx context.Context, log *entity.ExportLog) error {
	logM := fromExportLogDomain(log)

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required export log fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create export log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// ListByUser returns one page of a user's log records, newest first.
func (repo *exportLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter repository.ExportLogFilter, offset, limit int) ([]*entity.ExportLog, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ExportLogModel{}).
		Where("user_id = ?", userID)

	if filter.ExportType != "" {
		query = query.Where("export_type = ?", string(filter.ExportType))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"config_name ILIKE ? OR sheet_file_name ILIKE ? OR sheet_tab_name ILIKE ? OR details ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var logMs []model.ExportLogModel
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logMs).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	logs := make([]*entity.ExportLog, 0, len(logMs))
	for i := range logMs {
		logs = append(logs, toExportLogDomain(&logMs[i]))
	}

	return logs, total, nil
}

func fromExportLogDomain(log *entity.ExportLog) *model.ExportLogModel {
	return &model.ExportLogModel{
		ID:            log.ID,
		UserID:        log.UserID,
		ExportType:    string(log.ExportType),
		Status:        string(log.Status),
		RowCount:      log.RowCount,
		DurationMs:    log.DurationMs,
		ConfigName:    log.ConfigName,
		SheetFileName: log.SheetFileName,
		SheetTabName:  log.SheetTabName,
		Details:       log.Details,
		CreatedAt:     log.CreatedAt,
	}
}

func toExportLogDomain(logM *model.ExportLogModel) *entity.ExportLog {
	return &entity.ExportLog{
		ID:            logM.ID,
		UserID:        logM.UserID,
		ExportType:    entity.ExportType(logM.ExportType),
		Status:        entity.ExportStatus(logM.Status),
		RowCount:      logM.RowCount,
		DurationMs:    logM.DurationMs,
		ConfigName:    logM.ConfigName,
		SheetFileName: logM.SheetFileName,
		SheetTabName:  logM.SheetTabName,
		Details:       logM.Details,
		CreatedAt:     logM.CreatedAt,
	}
}
