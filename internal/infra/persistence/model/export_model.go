package model

import (
	"time"

	"github.com/google/uuid"
)

// ExportLogModel mirrors the append-only 'export_logs' table.
type ExportLogModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ExportType    string    `gorm:"type:varchar(20);not null"`
	Status        string    `gorm:"type:varchar(20);not null"`
	RowCount      int       `gorm:"not null"`
	DurationMs    int64     `gorm:"not null"`
	ConfigName    string    `gorm:"type:varchar(255)"`
	SheetFileName string    `gorm:"type:varchar(255)"`
	SheetTabName  string    `gorm:"type:varchar(255)"`
	Details       string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ExportLogModel) TableName() string {
	return "export_logs"
}

// ExportConfigModel mirrors the 'export_configs' table. Account ids and
// column mappings are stored as JSONB documents.
type ExportConfigModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_export_configs_user_name"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_export_configs_user_name"`
	AccountIDs     []byte    `gorm:"type:jsonb;not null"`
	SpreadsheetID  string    `gorm:"type:varchar(255);not null"`
	TabName        string    `gorm:"type:varchar(255);not null"`
	ColumnMappings []byte    `gorm:"type:jsonb;not null"`
	WriteMode      string    `gorm:"type:varchar(20);not null"`
	Timezone       string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExportConfigModel) TableName() string {
	return "export_configs"
}
