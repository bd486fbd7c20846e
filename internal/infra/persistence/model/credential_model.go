package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'provider_credentials' table. One row per
// (user, provider); token columns are rewritten in place on refresh.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credentials_user_provider"`
	Provider     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_credentials_user_provider"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "provider_credentials"
}

// SyncStampModel mirrors the 'sync_stamps' table. One row per guarded
// operation per user.
type SyncStampModel struct {
	UserID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Operation  string    `gorm:"type:varchar(100);primary_key"`
	LastSyncAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SyncStampModel) TableName() string {
	return "sync_stamps"
}
