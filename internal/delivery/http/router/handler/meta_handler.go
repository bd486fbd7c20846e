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

// MetaHandler holds dependencies for Meta asset browsing handlers.
type MetaHandler struct {
	adsUC  usecase.AdsUsecase
	logger *slog.Logger
}

// NewMetaHandler is the constructor for MetaHandler, injected by Fx.
func NewMetaHandler(adsUC usecase.AdsUsecase, logger *slog.Logger) *MetaHandler {
	return &MetaHandler{
		adsUC:  adsUC,
		logger: logger,
	}
}

// ListAccounts handles the ad account listing request.
func (h *MetaHandler) ListAccounts(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	forceRefresh := c.QueryParam("refresh") == "true"
	accounts, err := h.adsUC.ListAccounts(c.Request().Context(), userID, forceRefresh)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// ListPages handles the page listing request.
func (h *MetaHandler) ListPages(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	pages, err := h.adsUC.ListPages(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, pages, "")
}

// SearchInterests handles the targeting interest search request.
func (h *MetaHandler) SearchInterests(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter 'q' is required")
	}

	interests, err := h.adsUC.SearchInterests(c.Request().Context(), userID, query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, interests, "")
}
