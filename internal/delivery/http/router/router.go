// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"adsync/internal/delivery/http/middleware"
	"adsync/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ExportHandler  *handler.ExportHandler
	ConfigHandler  *handler.ConfigHandler
	MetaHandler    *handler.MetaHandler
	SheetHandler   *handler.SheetHandler
	ConnectHandler *handler.ConnectHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	exportHandler  *handler.ExportHandler
	configHandler  *handler.ConfigHandler
	metaHandler    *handler.MetaHandler
	sheetHandler   *handler.SheetHandler
	connectHandler *handler.ConnectHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		exportHandler:  params.ExportHandler,
		configHandler:  params.ConfigHandler,
		metaHandler:    params.MetaHandler,
		sheetHandler:   params.SheetHandler,
		connectHandler: params.ConnectHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Provider linking routes
	connectGroup := e.Group("/connect")
	connectGroup.Use(r.authMiddleware.Authenticate)
	{
		connectGroup.POST("/meta", r.connectHandler.ConnectMeta)
		connectGroup.POST("/google", r.connectHandler.ConnectGoogle)
		connectGroup.DELETE("/:provider", r.connectHandler.Disconnect)
		connectGroup.GET("", r.connectHandler.Status)
	}

	// Source asset browsing routes
	metaGroup := e.Group("/meta")
	metaGroup.Use(r.authMiddleware.Authenticate)
	{
		metaGroup.GET("/accounts", r.metaHandler.ListAccounts)
		metaGroup.GET("/pages", r.metaHandler.ListPages)
		metaGroup.GET("/interests", r.metaHandler.SearchInterests)
	}

	// Destination browsing routes
	sheetGroup := e.Group("/sheets")
	sheetGroup.Use(r.authMiddleware.Authenticate)
	{
		sheetGroup.GET("/spreadsheets", r.sheetHandler.ListSpreadsheets)
		sheetGroup.GET("/spreadsheets/:id/tabs", r.sheetHandler.ListTabs)
	}

	// Export routes
	exportGroup := e.Group("/exports")
	exportGroup.Use(r.authMiddleware.Authenticate)
	{
		exportGroup.POST("", r.exportHandler.RunExport)
		exportGroup.GET("/logs", r.exportHandler.ListLogs)

		exportGroup.POST("/configs", r.configHandler.CreateConfig)
		exportGroup.GET("/configs", r.configHandler.ListConfigs)
		exportGroup.GET("/configs/:id", r.configHandler.GetConfig)
		exportGroup.PUT("/configs/:id", r.configHandler.UpdateConfig)
		exportGroup.DELETE("/configs/:id", r.configHandler.DeleteConfig)
	}
}
