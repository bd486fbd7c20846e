package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"adsync/config"
	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exportServiceFixtures holds all test dependencies for export service tests.
type exportServiceFixtures struct {
	service    usecase.ExportUsecase
	tokens     *fakeTokenUsecase
	adsClient  *fakeAdsClient
	adsFactory *fakeAdsFactory
	sheet      *fakeSheetClient
	configRepo *fakeConfigRepo
	logRepo    *fakeLogRepo
}

func createTestExportService(t *testing.T) exportServiceFixtures {
	t.Helper()

	adsClient := &fakeAdsClient{}
	adsFactory := &fakeAdsFactory{Client: adsClient}
	sheet := &fakeSheetClient{
		SpreadsheetTitleFn: func(context.Context, string) (string, error) {
			return "Ads Report", nil
		},
		AppendRowsFn: func(context.Context, string, string, [][]string) error {
			return nil
		},
	}
	tokens := &fakeTokenUsecase{
		ResolveMetaTokenFn: func(context.Context, uuid.UUID) (string, error) {
			return "meta-token", nil
		},
		SheetsClientForFn: func(context.Context, uuid.UUID) (service.SpreadsheetClient, error) {
			return sheet, nil
		},
	}
	configRepo := &fakeConfigRepo{}
	logRepo := &fakeLogRepo{}

	cfg := &config.Config{
		MetaAds: &config.MetaAdsConfig{FetchConcurrency: 3},
	}
	svc := NewExportService(tokens, adsFactory, configRepo, logRepo, cfg, discardLogger())

	return exportServiceFixtures{
		service:    svc,
		tokens:     tokens,
		adsClient:  adsClient,
		adsFactory: adsFactory,
		sheet:      sheet,
		configRepo: configRepo,
		logRepo:    logRepo,
	}
}

func runInput() *usecase.RunExportInput {
	return &usecase.RunExportInput{
		AccountIDs:    []string{"111", "222"},
		SpreadsheetID: "sheet-1",
		TabName:       "Daily",
		ColumnMappings: []entity.ColumnMapping{
			{SourceField: "campaign_name", DestinationField: "Campaign"},
			{SourceField: "spend", DestinationField: "Spend"},
		},
		Date: "2026-08-27",
	}
}

func TestExportService_RunExport_Success(t *testing.T) {
	fx := createTestExportService(t)

	ctx := context.Background()
	userID := uuid.New()

	// Ten insight rows per account.
	fx.adsClient.FetchInsightsFn = func(_ context.Context, accountID, date string) ([]service.InsightRow, error) {
		assert.Equal(t, "2026-08-27", date)
		rows := make([]service.InsightRow, 10)
		for i := range rows {
			rows[i] = service.InsightRow{
				"campaign_name": fmt.Sprintf("%s-campaign-%d", accountID, i),
				"spend":         "12.34",
			}
		}

		return rows, nil
	}

	var written [][]string
	fx.sheet.AppendRowsFn = func(_ context.Context, spreadsheetID, tab string, rows [][]string) error {
		assert.Equal(t, "sheet-1", spreadsheetID)
		assert.Equal(t, "Daily", tab)
		written = rows

		return nil
	}

	out, err := fx.service.RunExport(ctx, userID, runInput())

	require.NoError(t, err)
	assert.Equal(t, 20, out.RowCount)
	assert.Equal(t, "Ads Report", out.SpreadsheetTitle)
	assert.Equal(t, "meta-token", fx.adsFactory.LastToken)
	require.Len(t, written, 20)
	assert.Equal(t, []string{"111-campaign-0", "12.34"}, written[0])

	require.Len(t, fx.logRepo.Created, 1)
	logEntry := fx.logRepo.Created[0]
	assert.Equal(t, entity.ExportStatusSuccess, logEntry.Status)
	assert.Equal(t, entity.ExportTypeManual, logEntry.ExportType)
	assert.Equal(t, 20, logEntry.RowCount)
	assert.Equal(t, "Ads Report", logEntry.SheetFileName)
	assert.Equal(t, "Daily", logEntry.SheetTabName)
}

func TestExportService_RunExport_MissingFieldsBecomeEmptyCells(t *testing.T) {
	fx := createTestExportService(t)

	fx.adsClient.FetchInsightsFn = func(context.Context, string, string) ([]service.InsightRow, error) {
		return []service.InsightRow{{"campaign_name": "only-name"}}, nil
	}

	var written [][]string
	fx.sheet.AppendRowsFn = func(_ context.Context, _, _ string, rows [][]string) error {
		written = rows

		return nil
	}

	input := runInput()
	input.AccountIDs = []string{"111"}
	_, err := fx.service.RunExport(context.Background(), uuid.New(), input)

	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, []string{"only-name", ""}, written[0])
}

func TestExportService_RunExport_WriteFailureLogsOnce(t *testing.T) {
	fx := createTestExportService(t)

	fx.adsClient.FetchInsightsFn = func(context.Context, string, string) ([]service.InsightRow, error) {
		return []service.InsightRow{{"campaign_name": "c", "spend": "1"}}, nil
	}
	fx.sheet.AppendRowsFn = func(context.Context, string, string, [][]string) error {
		return domainerrors.ErrSheetsUpstream.WithDetails("The caller does not have permission")
	}

	_, err := fx.service.RunExport(context.Background(), uuid.New(), runInput())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SHEETS_UPSTREAM_ERROR", appErr.ErrorCode())

	require.Len(t, fx.logRepo.Created, 1)
	logEntry := fx.logRepo.Created[0]
	assert.Equal(t, entity.ExportStatusFailure, logEntry.Status)
	assert.Contains(t, logEntry.Details, "The caller does not have permission")
	// The title was resolved before the write failed, so the log keeps it.
	assert.Equal(t, "Ads Report", logEntry.SheetFileName)
}

func TestExportService_RunExport_FetchFailureLogsOnce(t *testing.T) {
	fx := createTestExportService(t)

	fx.adsClient.FetchInsightsFn = func(_ context.Context, accountID, _ string) ([]service.InsightRow, error) {
		if accountID == "222" {
			return nil, domainerrors.ErrMetaUpstream.WithDetails("(#17) User request limit reached")
		}

		return []service.InsightRow{{"campaign_name": "c"}}, nil
	}

	appendCalls := 0
	fx.sheet.AppendRowsFn = func(context.Context, string, string, [][]string) error {
		appendCalls++

		return nil
	}

	_, err := fx.service.RunExport(context.Background(), uuid.New(), runInput())

	require.Error(t, err)
	assert.Equal(t, 0, appendCalls, "nothing should be written after a fetch failure")

	require.Len(t, fx.logRepo.Created, 1)
	logEntry := fx.logRepo.Created[0]
	assert.Equal(t, entity.ExportStatusFailure, logEntry.Status)
	assert.Contains(t, logEntry.Details, "User request limit reached")
}

func TestExportService_RunExport_GoogleNotConnectedSkipsSourceAndLog(t *testing.T) {
	fx := createTestExportService(t)

	fx.tokens.SheetsClientForFn = func(context.Context, uuid.UUID) (service.SpreadsheetClient, error) {
		return nil, domainerrors.ErrGoogleNotConnected
	}
	fetchCalls := 0
	fx.adsClient.FetchInsightsFn = func(context.Context, string, string) ([]service.InsightRow, error) {
		fetchCalls++

		return nil, nil
	}

	_, err := fx.service.RunExport(context.Background(), uuid.New(), runInput())

	require.ErrorIs(t, err, domainerrors.ErrGoogleNotConnected)
	assert.Equal(t, 0, fetchCalls, "the source must never be called without a destination")
	assert.Empty(t, fx.logRepo.Created, "a precondition failure is not a run outcome")
}

func TestExportService_RunExport_MetaNotConnected(t *testing.T) {
	fx := createTestExportService(t)

	fx.tokens.ResolveMetaTokenFn = func(context.Context, uuid.UUID) (string, error) {
		return "", domainerrors.ErrMetaNotConnected
	}

	_, err := fx.service.RunExport(context.Background(), uuid.New(), runInput())

	require.ErrorIs(t, err, domainerrors.ErrMetaNotConnected)
	assert.Empty(t, fx.logRepo.Created)
}

func TestExportService_RunExport_FromStoredConfig(t *testing.T) {
	fx := createTestExportService(t)

	userID := uuid.New()
	configID := uuid.New()
	fx.configRepo.FindByIDFn = func(_ context.Context, gotUserID, gotID uuid.UUID) (*entity.ExportConfig, error) {
		assert.Equal(t, userID, gotUserID)
		assert.Equal(t, configID, gotID)

		return &entity.ExportConfig{
			ID:            configID,
			UserID:        userID,
			Name:          "daily-report",
			AccountIDs:    []string{"333"},
			SpreadsheetID: "sheet-2",
			TabName:       "Raw",
			ColumnMappings: []entity.ColumnMapping{
				{SourceField: "impressions", DestinationField: "Impressions"},
			},
			WriteMode: entity.WriteModeOverwrite,
		}, nil
	}

	fx.adsClient.FetchInsightsFn = func(_ context.Context, accountID, _ string) ([]service.InsightRow, error) {
		assert.Equal(t, "333", accountID)

		return []service.InsightRow{{"impressions": "1000"}}, nil
	}

	overwrites := 0
	fx.sheet.OverwriteRowsFn = func(_ context.Context, spreadsheetID, tab string, rows [][]string) error {
		overwrites++
		assert.Equal(t, "sheet-2", spreadsheetID)
		assert.Equal(t, "Raw", tab)
		assert.Equal(t, [][]string{{"1000"}}, rows)

		return nil
	}

	out, err := fx.service.RunExport(context.Background(), userID, &usecase.RunExportInput{
		ConfigID: &configID,
		Date:     "2026-08-27",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, overwrites)
	assert.Equal(t, 1, out.RowCount)
	require.Len(t, fx.logRepo.Created, 1)
	assert.Equal(t, "daily-report", fx.logRepo.Created[0].ConfigName)
}

func TestExportService_RunExport_ConfigNotFound(t *testing.T) {
	fx := createTestExportService(t)

	configID := uuid.New()
	fx.configRepo.FindByIDFn = func(context.Context, uuid.UUID, uuid.UUID) (*entity.ExportConfig, error) {
		return nil, repository.ErrExportConfigNotFound
	}

	_, err := fx.service.RunExport(context.Background(), uuid.New(), &usecase.RunExportInput{ConfigID: &configID})

	require.ErrorIs(t, err, domainerrors.ErrExportConfigNotFound)
	assert.Empty(t, fx.logRepo.Created)
}

func TestExportService_RunExport_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(input *usecase.RunExportInput)
	}{
		{"no accounts", func(in *usecase.RunExportInput) { in.AccountIDs = nil }},
		{"no spreadsheet", func(in *usecase.RunExportInput) { in.SpreadsheetID = "" }},
		{"no tab", func(in *usecase.RunExportInput) { in.TabName = "" }},
		{"no mappings", func(in *usecase.RunExportInput) { in.ColumnMappings = nil }},
		{"bad write mode", func(in *usecase.RunExportInput) { in.WriteMode = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestExportService(t)

			input := runInput()
			tt.mutate(input)
			_, err := fx.service.RunExport(context.Background(), uuid.New(), input)

			require.Error(t, err)
			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
			assert.Empty(t, fx.logRepo.Created)
		})
	}
}

func TestExportService_RunExport_DefaultsDateToYesterday(t *testing.T) {
	fx := createTestExportService(t)

	svc := fx.service.(*exportService)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC)
	}

	var gotDate string
	fx.adsClient.FetchInsightsFn = func(_ context.Context, _, date string) ([]service.InsightRow, error) {
		gotDate = date

		return nil, nil
	}

	input := runInput()
	input.Date = ""
	out, err := fx.service.RunExport(context.Background(), uuid.New(), input)

	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", gotDate)
	assert.Equal(t, "2026-08-27", out.Date)
}

func TestExportService_RunExport_LogWriteFailureDoesNotMaskOutcome(t *testing.T) {
	fx := createTestExportService(t)

	fx.adsClient.FetchInsightsFn = func(context.Context, string, string) ([]service.InsightRow, error) {
		return []service.InsightRow{{"campaign_name": "c", "spend": "1"}}, nil
	}
	fx.logRepo.CreateErr = errors.New("insert failed")

	out, err := fx.service.RunExport(context.Background(), uuid.New(), runInput())

	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount)
}
