package usecase

import (
	"context"

	"adsync/internal/domain/service"

	"github.com/google/uuid"
)

// SheetUsecase defines the interface for browsing the user's spreadsheets.
type SheetUsecase interface {
	// ListSpreadsheets lists spreadsheets whose name starts with the given
	// prefix. An empty prefix lists everything.
	ListSpreadsheets(ctx context.Context, userID uuid.UUID, namePrefix string) ([]service.SpreadsheetFile, error)

	// ListTabs returns the tab names of a spreadsheet.
	ListTabs(ctx context.Context, userID uuid.UUID, spreadsheetID string) ([]string, error)
}
