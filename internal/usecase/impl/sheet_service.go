package impl

import (
	"context"
	"log/slog"

	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sheetService implements the SheetUsecase interface.
type sheetService struct {
	tokens usecase.TokenUsecase
	logger *slog.Logger
}

// NewSheetService is the constructor for sheetService.
func NewSheetService(
	tokens usecase.TokenUsecase,
	logger *slog.Logger,
) usecase.SheetUsecase {
	return &sheetService{
		tokens: tokens,
		logger: logger,
	}
}

// ListSpreadsheets lists spreadsheets whose name starts with the given prefix.
func (srv *sheetService) ListSpreadsheets(ctx context.Context, userID uuid.UUID, namePrefix string) ([]service.SpreadsheetFile, error) {
	client, err := srv.tokens.SheetsClientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	files, err := client.ListSpreadsheets(ctx, namePrefix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spreadsheets")
	}

	return files, nil
}

// ListTabs returns the tab names of a spreadsheet.
func (srv *sheetService) ListTabs(ctx context.Context, userID uuid.UUID, spreadsheetID string) ([]string, error) {
	client, err := srv.tokens.SheetsClientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	tabs, err := client.ListTabs(ctx, spreadsheetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tabs")
	}

	return tabs, nil
}
