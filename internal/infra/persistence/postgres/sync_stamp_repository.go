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
	"gorm.io/gorm/clause"
)

// syncStampRepository implements the domain.SyncStampRepository interface.
type syncStampRepository struct {
	db *gorm.DB
}

// NewSyncStampRepository is the constructor for syncStampRepository.
func NewSyncStampRepository(db *gorm.DB) repository.SyncStampRepository {
	return &syncStampRepository{db: db}
}

// Find retrieves the stamp for the given user and operation.
func (repo *syncStampRepository) Find(ctx context.Context, userID uuid.UUID, operation string) (*entity.SyncStamp, error) {
	var stampM model.SyncStampModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND operation = ?", userID, operation).
		First(&stampM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSyncStampNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.SyncStamp{
		UserID:     stampM.UserID,
		Operation:  stampM.Operation,
		LastSyncAt: stampM.LastSyncAt,
	}, nil
}

// Upsert records a successful guarded call, overwriting any prior stamp.
func (repo *syncStampRepository) Upsert(ctx context.Context, stamp *entity.SyncStamp) error {
	stampM := &model.SyncStampModel{
		UserID:     stamp.UserID,
		Operation:  stamp.Operation,
		LastSyncAt: stamp.LastSyncAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "operation"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_sync_at"}),
		}).
		Create(stampM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert sync stamp")
	}

	return nil
}
