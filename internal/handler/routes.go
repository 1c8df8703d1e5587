package handler

import (
	"github.com/dafibh/economize/economize-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every HTTP handler served under /api/v1
type Handlers struct {
	Auth          *AuthHandler
	Ledger        *LedgerHandler
	Entries       *EntryHandler
	FixedExpenses *FixedExpenseHandler
	DailyExpenses *DailyExpenseHandler
	EmergencyFund *EmergencyFundHandler
	Dashboard     *DashboardHandler
	WebSocket     *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, sessions middleware.SessionProvider, rateLimiter *middleware.RateLimiter, h Handlers) {
	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// Change feed
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API version 1
	api := e.Group("/api/v1")
	requireSession := middleware.RequireSession(sessions)

	// Auth routes (public, register and login rate limited)
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register, middleware.RateLimitMiddleware(rateLimiter))
	auth.POST("/login", h.Auth.Login, middleware.RateLimitMiddleware(rateLimiter))
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/session", h.Auth.Session)

	// Ledger routes (protected)
	ledger := api.Group("/ledger")
	ledger.Use(requireSession)
	ledger.GET("", h.Ledger.GetLedger)

	balance := api.Group("/balance")
	balance.Use(requireSession)
	balance.POST("/adjustments", h.Ledger.AdjustBalance)

	// Entry routes (protected)
	entries := api.Group("/entries")
	entries.Use(requireSession)
	entries.POST("", h.Entries.CreateEntry)
	entries.PUT("/:id", h.Entries.UpdateEntry)
	entries.DELETE("/:id", h.Entries.DeleteEntry)

	// Fixed expense routes (protected)
	fixedExpenses := api.Group("/fixed-expenses")
	fixedExpenses.Use(requireSession)
	fixedExpenses.POST("", h.FixedExpenses.CreateFixedExpense)
	fixedExpenses.PUT("/:id", h.FixedExpenses.UpdateFixedExpense)
	fixedExpenses.DELETE("/:id", h.FixedExpenses.DeleteFixedExpense)

	// Daily expense routes (protected)
	dailyExpenses := api.Group("/daily-expenses")
	dailyExpenses.Use(requireSession)
	dailyExpenses.GET("", h.DailyExpenses.GetDailyExpenses)
	dailyExpenses.POST("", h.DailyExpenses.CreateDailyExpense)
	dailyExpenses.PUT("/:id", h.DailyExpenses.UpdateDailyExpense)
	dailyExpenses.DELETE("/:id", h.DailyExpenses.DeleteDailyExpense)

	// Emergency fund routes (protected)
	emergencyFund := api.Group("/emergency-fund")
	emergencyFund.Use(requireSession)
	emergencyFund.GET("", h.EmergencyFund.GetPlan)
	emergencyFund.POST("/contributions", h.EmergencyFund.Contribute)
	emergencyFund.POST("/withdrawals", h.EmergencyFund.Withdraw)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(requireSession)
	dashboard.GET("/overview", h.Dashboard.GetOverview)
	dashboard.GET("/strategy", h.Dashboard.GetStrategy)
	dashboard.GET("/reports", h.Dashboard.GetReport)
	dashboard.GET("/breakdown", h.Dashboard.GetBreakdown)
}
