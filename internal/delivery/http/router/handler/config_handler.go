package handler

import (
	"log/slog"
	"net/http"

	"adsync/internal/delivery/http/middleware"
	"adsync/internal/delivery/http/response"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ConfigHandler holds dependencies for export config handlers.
type ConfigHandler struct {
	configUC usecase.ExportConfigUsecase
	logger   *slog.Logger
}

// NewConfigHandler is the constructor for ConfigHandler, injected by Fx.
func NewConfigHandler(configUC usecase.ExportConfigUsecase, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		configUC: configUC,
		logger:   logger,
	}
}

// CreateConfig handles the config creation request.
func (h *ConfigHandler) CreateConfig(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var input *usecase.ExportConfigInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid config input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	cfg, err := h.configUC.CreateConfig(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, cfg, "Config created")
}

// GetConfig handles the single config read request.
func (h *ConfigHandler) GetConfig(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid config id")
	}

	cfg, err := h.configUC.GetConfig(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cfg, "")
}

// ListConfigs handles the config listing request.
func (h *ConfigHandler) ListConfigs(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	configs, err := h.configUC.ListConfigs(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, configs, "")
}

// UpdateConfig handles the config update request.
func (h *ConfigHandler) UpdateConfig(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid config id")
	}

	var input *usecase.ExportConfigInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid config input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	cfg, err := h.configUC.UpdateConfig(c.Request().Context(), userID, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cfg, "Config updated")
}

// DeleteConfig handles the config deletion request.
func (h *ConfigHandler) DeleteConfig(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid config id")
	}

	if err := h.configUC.DeleteConfig(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Config deleted")
}
