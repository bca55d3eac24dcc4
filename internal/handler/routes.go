package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every HTTP handler the API exposes
type Handlers struct {
	State      *StateHandler
	Projection *ProjectionHandler
	Summary    *SummaryHandler
	Backup     *BackupHandler
	GAS        *GASHandler
	WebSocket  *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, h Handlers, apiMiddleware ...echo.MiddlewareFunc) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// Live updates
	e.GET("/ws", h.WebSocket.HandleWS)

	// Legacy Apps Script proxy
	gas := e.Group("/api/gas", apiMiddleware...)
	gas.GET("", h.GAS.GetState)
	gas.POST("", h.GAS.UpdateState)

	// API version 1
	api := e.Group("/api/v1", apiMiddleware...)

	// State routes
	state := api.Group("/state")
	state.GET("", h.State.GetState)
	state.PATCH("", h.State.PatchState)
	state.PUT("/balance", h.State.PutBalance)
	state.PUT("/credit-cards", h.State.PutCreditCards)
	state.PUT("/expenses", h.State.PutExpenses)
	state.PUT("/incomes", h.State.PutIncomes)

	// Projection routes
	projections := api.Group("/projections")
	projections.GET("/daily", h.Projection.GetDaily)
	projections.GET("/month", h.Projection.GetMonth)
	projections.GET("/monthly", h.Projection.GetMonthly)

	// Summary routes
	api.GET("/summary", h.Summary.GetSummary)

	// Backup routes
	api.POST("/backups", h.Backup.CreateBackup)
}
