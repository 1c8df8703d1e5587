package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/amqp"
	"github.com/dafibh/economize/economize-backend/internal/config"
	"github.com/dafibh/economize/economize-backend/internal/handler"
	"github.com/dafibh/economize/economize-backend/internal/kafka"
	"github.com/dafibh/economize/economize-backend/internal/middleware"
	"github.com/dafibh/economize/economize-backend/internal/repository"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Economize API
// @version 1.0
// @description Personal finance tracker: income, fixed and daily expenses, emergency fund and savings metrics.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open the persistence area
	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	// Change feed: websocket hub plus optional broker sinks
	hub := websocket.NewHub()
	publisher := websocket.NewMultiPublisher(hub)

	if cfg.AMQPURL != "" {
		amqpPublisher, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer amqpPublisher.Close()
		publisher.Add(amqpPublisher)
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("Publishing change events to AMQP")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher.Add(kafkaPublisher)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("Publishing change events to Kafka")
	}

	// Initialize services
	ledgerService := service.NewLedgerService(store)
	ledgerService.SetEventPublisher(publisher)
	identityService := service.NewIdentityService(store, ledgerService, cfg.AuthSimulatedDelay)
	identityService.SetEventPublisher(publisher)
	metricsService := service.NewMetricsService(ledgerService, cfg.EmergencyMonthlyContribution)

	for _, diag := range append(ledgerService.RestoreDiagnostics(), identityService.RestoreDiagnostics()...) {
		log.Warn().Err(diag).Msg("Persisted state was not fully restored")
	}

	// Rate limiter for register and login
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.AuthRateLimitPerMinute, cfg.AuthRateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(identityService),
		Ledger:        handler.NewLedgerHandler(ledgerService),
		Entries:       handler.NewEntryHandler(ledgerService),
		FixedExpenses: handler.NewFixedExpenseHandler(ledgerService),
		DailyExpenses: handler.NewDailyExpenseHandler(ledgerService, metricsService),
		EmergencyFund: handler.NewEmergencyFundHandler(ledgerService, metricsService),
		Dashboard:     handler.NewDashboardHandler(metricsService),
		WebSocket:     handler.NewWebSocketHandler(hub, identityService, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Client IPs feed the auth rate limiter, so forwarding headers are only
	// honored from configured proxies
	ipExtractor, err := middleware.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}
	e.IPExtractor = ipExtractor

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"store":    cfg.StoreBackend,
			"accounts": identityService.Accounts(),
			"clients":  hub.ClientCount(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, identityService, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
