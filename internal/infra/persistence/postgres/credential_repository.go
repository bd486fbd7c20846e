// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// credentialRepository implements the domain.CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Find retrieves the credential for one user/provider pair.
func (repo *credentialRepository) Find(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Credential, error) {
	var credM model.CredentialModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, string(provider)).
		First(&credM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCredentialDomain(&credM), nil
}

// Upsert atomically creates or rewrites the credential for a user/provider
// pair. The conflict target is the (user_id, provider) unique index, so two
// concurrent link flows resolve to last-writer-wins on the token columns.
func (repo *credentialRepository) Upsert(ctx context.Context, cred *entity.Credential) error {
	credM := fromCredentialDomain(cred)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "expires_at", "updated_at",
			}),
		}).
		Create(credM).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required credential fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert credential")
	}

	cred.ID = credM.ID
	cred.CreatedAt = credM.CreatedAt

	return nil
}

// UpdateToken rewrites only the token material of an existing credential.
func (repo *credentialRepository) UpdateToken(ctx context.Context, userID uuid.UUID, provider entity.ProviderType, accessToken, refreshToken string, expiresAt time.Time) error {
	updates := map[string]any{
		"access_token": accessToken,
		"updated_at":   time.Now(),
	}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	if !expiresAt.IsZero() {
		updates["expires_at"] = expiresAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("user_id = ? AND provider = ?", userID, string(provider)).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update credential token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

// Delete removes the credential, unlinking the provider.
func (repo *credentialRepository) Delete(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, string(provider)).
		Delete(&model.CredentialModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

func fromCredentialDomain(cred *entity.Credential) *model.CredentialModel {
	credM := &model.CredentialModel{
		ID:           cred.ID,
		UserID:       cred.UserID,
		Provider:     string(cred.Provider),
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		CreatedAt:    cred.CreatedAt,
		UpdatedAt:    cred.UpdatedAt,
	}
	if !cred.ExpiresAt.IsZero() {
		expiresAt := cred.ExpiresAt
		credM.ExpiresAt = &expiresAt
	}

	return credM
}

func toCredentialDomain(credM *model.CredentialModel) *entity.Credential {
	cred := &entity.Credential{
		ID:           credM.ID,
		UserID:       credM.UserID,
		Provider:     entity.ProviderType(credM.Provider),
		AccessToken:  credM.AccessToken,
		RefreshToken: credM.RefreshToken,
		CreatedAt:    credM.CreatedAt,
		UpdatedAt:    credM.UpdatedAt,
	}
	if credM.ExpiresAt != nil {
		cred.ExpiresAt = *credM.ExpiresAt
	}

	return cred
}
