package handler

import (
	"log/slog"
	"net/http"

	"adsync/internal/delivery/http/middleware"
	"adsync/internal/delivery/http/response"
	"adsync/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SheetHandler holds dependencies for spreadsheet browsing handlers.
type SheetHandler struct {
	sheetUC usecase.SheetUsecase
	logger  *slog.Logger
}

// NewSheetHandler is the constructor for SheetHandler, injected by Fx.
func NewSheetHandler(sheetUC usecase.SheetUsecase, logger *slog.Logger) *SheetHandler {
	return &SheetHandler{
		sheetUC: sheetUC,
		logger:  logger,
	}
}

// ListSpreadsheets handles the spreadsheet listing request.
func (h *SheetHandler) ListSpreadsheets(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	files, err := h.sheetUC.ListSpreadsheets(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, files, "")
}

// ListTabs handles the tab listing request for one spreadsheet.
func (h *SheetHandler) ListTabs(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	spreadsheetID := c.Param("id")
	if spreadsheetID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Spreadsheet id is required")
	}

	tabs, err := h.sheetUC.ListTabs(c.Request().Context(), userID, spreadsheetID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tabs, "")
}
