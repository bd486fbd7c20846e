package entity

import (
	"time"

	"github.com/google/uuid"
)

// WriteMode controls how rows are written to the destination tab.
type WriteMode string

const (
	// WriteModeAppend adds rows after existing content without reading it.
	WriteModeAppend WriteMode = "append"
	// WriteModeOverwrite clears the tab's data range and writes from the anchor.
	WriteModeOverwrite WriteMode = "overwrite"
)

// Valid reports whether the mode is one of the known write modes.
func (m WriteMode) Valid() bool {
	return m == WriteModeAppend || m == WriteModeOverwrite
}

// ExportType distinguishes user-triggered runs from scheduled ones.
type ExportType string

const (
	ExportTypeManual    ExportType = "manual"
	ExportTypeScheduled ExportType = "scheduled"
)

// ExportStatus is the terminal outcome of one export run.
type ExportStatus string

const (
	ExportStatusSuccess ExportStatus = "success"
	ExportStatusFailure ExportStatus = "failure"
)

// ColumnMapping is one ordered correspondence between a source insights field
// and a destination column header.
type ColumnMapping struct {
	SourceField      string `json:"sourceField"`
	DestinationField string `json:"destinationField"`
}

// ExportLog is the durable audit record of one export run. Append-only;
// exactly one record is written per run that made it past credential
// resolution, whether the run succeeded or failed.
type ExportLog struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ExportType    ExportType
	Status        ExportStatus
	RowCount      int
	DurationMs    int64
	ConfigName    string // Name of the export config used, if any.
	SheetFileName string // Destination spreadsheet title, when known.
	SheetTabName  string
	Details       string // Upstream error summary on failure, short run summary on success.
	CreatedAt     time.Time
}

// ExportConfig is a named, reusable export request template scoped to a user.
type ExportConfig struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	AccountIDs     []string
	SpreadsheetID  string
	TabName        string
	ColumnMappings []ColumnMapping
	WriteMode      WriteMode
	Timezone       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SyncStamp records the last successful run of a guarded expensive operation
// for one user. One row per (UserID, Operation); updated only after the
// guarded upstream call succeeds.
type SyncStamp struct {
	UserID     uuid.UUID
	Operation  string
	LastSyncAt time.Time
}
