package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adsync/config"
	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"
	"adsync/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// exportRequest is the effective request after merging a stored config with
// the inline fields and applying defaults.
type exportRequest struct {
	configName     string
	accountIDs     []string
	spreadsheetID  string
	tabName        string
	columnMappings []entity.ColumnMapping
	writeMode      entity.WriteMode
	date           string
	exportType     entity.ExportType
}

// exportService implements the ExportUsecase interface. It drives one export
// run through a fixed sequence: resolve the request, resolve both
// credentials, fetch insights, transform rows, write the destination and
// record the audit log. Once both credentials resolved, the run writes
// exactly one log record no matter where it ends.
type exportService struct {
	tokens     usecase.TokenUsecase
	adsFactory service.AdsClientFactory
	configRepo repository.ExportConfigRepository
	logRepo    repository.ExportLogRepository
	cfg        *config.Config
	logger     *slog.Logger
	now        func() time.Time
}

// NewExportService is the constructor for exportService.
func NewExportService(
	tokens usecase.TokenUsecase,
	adsFactory service.AdsClientFactory,
	configRepo repository.ExportConfigRepository,
	logRepo repository.ExportLogRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ExportUsecase {
	return &exportService{
		tokens:     tokens,
		adsFactory: adsFactory,
		configRepo: configRepo,
		logRepo:    logRepo,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// RunExport executes one export run.
func (srv *exportService) RunExport(ctx context.Context, userID uuid.UUID, input *usecase.RunExportInput) (*usecase.RunExportOutput, error) {
	started := srv.now()

	req, err := srv.resolveRequest(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	srv.logger.Info("Starting export run",
		"userID", userID, "accounts", len(req.accountIDs), "date", req.date, "mode", req.writeMode)

	// Both credentials must resolve before anything is fetched. A missing
	// link is a precondition failure, not a run outcome, so no log record
	// is written for it.
	metaToken, err := srv.tokens.ResolveMetaToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	sheetClient, err := srv.tokens.SheetsClientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	rowCount, sheetTitle, runErr := srv.fetchAndWrite(ctx, metaToken, sheetClient, req)
	durationMs := srv.now().Sub(started).Milliseconds()

	logEntry := &entity.ExportLog{
		ID:            uuid.New(),
		UserID:        userID,
		ExportType:    req.exportType,
		RowCount:      rowCount,
		DurationMs:    durationMs,
		ConfigName:    req.configName,
		SheetFileName: sheetTitle,
		SheetTabName:  req.tabName,
	}
	if runErr != nil {
		logEntry.Status = entity.ExportStatusFailure
		logEntry.Details = errorSummary(runErr)
	} else {
		logEntry.Status = entity.ExportStatusSuccess
		logEntry.Details = fmt.Sprintf("exported %d rows from %d accounts for %s", rowCount, len(req.accountIDs), req.date)
	}

	if err := srv.logRepo.Create(ctx, logEntry); err != nil {
		// The audit trail must not mask the run outcome.
		srv.logger.Error("failed to record export log", "userID", userID, "error", err)
	}

	if runErr != nil {
		return nil, runErr
	}

	return &usecase.RunExportOutput{
		RowCount:         rowCount,
		DurationMs:       durationMs,
		SpreadsheetTitle: sheetTitle,
		TabName:          req.tabName,
		Date:             req.date,
	}, nil
}

// fetchAndWrite performs the fallible middle of a run: fetch insights for
// every account, transform them and write the destination tab. It returns
// whatever destination metadata it managed to gather so the log record can
// carry it even on failure.
func (srv *exportService) fetchAndWrite(ctx context.Context, metaToken string, sheetClient service.SpreadsheetClient, req *exportRequest) (int, string, error) {
	adsClient := srv.adsFactory.ClientForToken(metaToken)

	perAccount, err := util.RunBoundedAll(ctx, req.accountIDs, srv.cfg.MetaAds.FetchConcurrency,
		func(ctx context.Context, accountID string) ([]service.InsightRow, error) {
			return adsClient.FetchInsights(ctx, accountID, req.date)
		})
	if err != nil {
		return 0, "", errors.Wrap(err, "failed to fetch insights")
	}

	var insights []service.InsightRow
	for _, rows := range perAccount {
		insights = append(insights, rows...)
	}

	rows := transformRows(insights, req.columnMappings)

	title, err := sheetClient.SpreadsheetTitle(ctx, req.spreadsheetID)
	if err != nil {
		return 0, "", errors.Wrap(err, "failed to read spreadsheet title")
	}

	switch req.writeMode {
	case entity.WriteModeOverwrite:
		err = sheetClient.OverwriteRows(ctx, req.spreadsheetID, req.tabName, rows)
	default:
		err = sheetClient.AppendRows(ctx, req.spreadsheetID, req.tabName, rows)
	}
	if err != nil {
		return 0, title, errors.Wrap(err, "failed to write destination tab")
	}

	return len(rows), title, nil
}

// resolveRequest merges a stored config with the inline fields and applies
// defaults. ConfigID wins over the inline fields when present.
func (srv *exportService) resolveRequest(ctx context.Context, userID uuid.UUID, input *usecase.RunExportInput) (*exportRequest, error) {
	req := &exportRequest{
		accountIDs:     input.AccountIDs,
		spreadsheetID:  input.SpreadsheetID,
		tabName:        input.TabName,
		columnMappings: input.ColumnMappings,
		writeMode:      input.WriteMode,
		exportType:     input.ExportType,
	}
	timezone := input.Timezone

	if input.ConfigID != nil {
		stored, err := srv.configRepo.FindByID(ctx, userID, *input.ConfigID)
		if err != nil {
			if errors.Is(err, repository.ErrExportConfigNotFound) {
				return nil, domainerrors.ErrExportConfigNotFound
			}

			return nil, errors.Wrap(err, "failed to load export config")
		}

		req.configName = stored.Name
		req.accountIDs = stored.AccountIDs
		req.spreadsheetID = stored.SpreadsheetID
		req.tabName = stored.TabName
		req.columnMappings = stored.ColumnMappings
		req.writeMode = stored.WriteMode
		timezone = stored.Timezone
	}

	if req.exportType == "" {
		req.exportType = entity.ExportTypeManual
	}
	if req.writeMode == "" {
		req.writeMode = entity.WriteModeAppend
	}

	switch {
	case len(req.accountIDs) == 0:
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one account id is required")
	case req.spreadsheetID == "":
		return nil, domainerrors.ErrValidationFailed.WithDetails("spreadsheet id is required")
	case req.tabName == "":
		return nil, domainerrors.ErrValidationFailed.WithDetails("tab name is required")
	case len(req.columnMappings) == 0:
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one column mapping is required")
	case !req.writeMode.Valid():
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown write mode")
	}

	req.date = input.Date
	if req.date == "" {
		date, err := yesterdayIn(srv.now(), timezone)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown timezone")
		}
		req.date = date
	}

	return req, nil
}

// transformRows projects the insight maps through the ordered column
// mappings. Fields absent from a row become empty cells, never a dropped
// column, so every row stays aligned with the destination headers.
func transformRows(insights []service.InsightRow, mappings []entity.ColumnMapping) [][]string {
	rows := make([][]string, len(insights))
	for i, insight := range insights {
		row := make([]string, len(mappings))
		for j, mapping := range mappings {
			row[j] = insight[mapping.SourceField]
		}
		rows[i] = row
	}

	return rows
}

// yesterdayIn returns the previous calendar day in the given timezone,
// defaulting to UTC.
func yesterdayIn(now time.Time, timezone string) (string, error) {
	loc := time.UTC
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return "", errors.Wrap(err, "failed to load timezone")
		}
	}

	return now.In(loc).AddDate(0, 0, -1).Format("2006-01-02"), nil
}

// errorSummary extracts a compact, provider-faithful description of a run
// failure for the audit log.
func errorSummary(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if details := appErr.Details(); details != "" {
			return fmt.Sprintf("%s: %s", appErr.Message(), details)
		}

		return appErr.Message()
	}

	return err.Error()
}
