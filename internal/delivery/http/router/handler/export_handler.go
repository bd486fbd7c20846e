// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"adsync/internal/delivery/http/middleware"
	"adsync/internal/delivery/http/response"
	"adsync/internal/domain/entity"
	"adsync/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExportHandler holds dependencies for export-related handlers.
type ExportHandler struct {
	exportUC usecase.ExportUsecase
	logUC    usecase.ExportLogUsecase
	logger   *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler, injected by Fx.
func NewExportHandler(exportUC usecase.ExportUsecase, logUC usecase.ExportLogUsecase, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportUC: exportUC,
		logUC:    logUC,
		logger:   logger,
	}
}

// RunExport handles the manual export request.
func (h *ExportHandler) RunExport(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var input *usecase.RunExportInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid export input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}
	input.ExportType = entity.ExportTypeManual

	output, err := h.exportUC.RunExport(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Export completed")
}

// ListLogs handles the export history listing request.
func (h *ExportHandler) ListLogs(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	input := new(usecase.ListLogsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid log filter")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.logUC.ListLogs(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
