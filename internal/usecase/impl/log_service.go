package impl

import (
	"context"
	"log/slog"
	"time"

	"adsync/internal/domain/repository"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultLogPageSize = 20

// exportLogService implements the ExportLogUsecase interface.
type exportLogService struct {
	logRepo repository.ExportLogRepository
	logger  *slog.Logger
}

// NewExportLogService is the constructor for exportLogService.
func NewExportLogService(
	logRepo repository.ExportLogRepository,
	logger *slog.Logger,
) usecase.ExportLogUsecase {
	return &exportLogService{
		logRepo: logRepo,
		logger:  logger,
	}
}

// ListLogs returns one page of the user's export history, newest first.
func (srv *exportLogService) ListLogs(ctx context.Context, userID uuid.UUID, input *usecase.ListLogsInput) (*usecase.ListLogsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultLogPageSize
	}

	filter := repository.ExportLogFilter{
		ExportType: input.ExportType,
		Status:     input.Status,
		Search:     input.Search,
	}
	if input.From != "" {
		from, err := time.Parse("2006-01-02", input.From)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse from date")
		}
		filter.From = from
	}
	if input.To != "" {
		to, err := time.Parse("2006-01-02", input.To)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse to date")
		}
		// Make the upper bound inclusive of the whole day.
		filter.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := srv.logRepo.ListByUser(ctx, userID, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list export logs")
	}

	return &usecase.ListLogsOutput{
		Logs:     logs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
