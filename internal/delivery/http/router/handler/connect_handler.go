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

// ConnectHandler holds dependencies for provider linking handlers.
type ConnectHandler struct {
	tokenUC usecase.TokenUsecase
	logger  *slog.Logger
}

// NewConnectHandler is the constructor for ConnectHandler, injected by Fx.
func NewConnectHandler(tokenUC usecase.TokenUsecase, logger *slog.Logger) *ConnectHandler {
	return &ConnectHandler{
		tokenUC: tokenUC,
		logger:  logger,
	}
}

// ConnectMeta handles the Meta account linking request.
func (h *ConnectHandler) ConnectMeta(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var input *usecase.ConnectMetaInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid linking input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.tokenUC.ConnectMeta(c.Request().Context(), userID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Meta account linked")
}

// ConnectGoogle handles the Google account linking request.
func (h *ConnectHandler) ConnectGoogle(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var input *usecase.ConnectGoogleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid linking input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.tokenUC.ConnectGoogle(c.Request().Context(), userID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Google account linked")
}

// Disconnect handles the provider unlinking request.
func (h *ConnectHandler) Disconnect(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	provider := entity.ProviderType(c.Param("provider"))
	if err := h.tokenUC.Disconnect(c.Request().Context(), userID, provider); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Provider unlinked")
}

// Status handles the linking status request.
func (h *ConnectHandler) Status(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	status, err := h.tokenUC.Status(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}
