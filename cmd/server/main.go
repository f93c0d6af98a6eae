package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Cracken-1/pandamart-notifications/configs"
	"github.com/Cracken-1/pandamart-notifications/internal/app/registry"
	"github.com/Cracken-1/pandamart-notifications/internal/domain"
	"github.com/Cracken-1/pandamart-notifications/internal/domain/port/channel"
	"github.com/Cracken-1/pandamart-notifications/internal/infrastructure/channel/inapp"
	redisstore "github.com/Cracken-1/pandamart-notifications/internal/infrastructure/inbox/redis"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/metrics"
	"github.com/Cracken-1/pandamart-notifications/internal/observability/tracing"
	"github.com/Cracken-1/pandamart-notifications/internal/usecases/dispatch"
	"github.com/Cracken-1/pandamart-notifications/internal/usecases/events"
	"github.com/Cracken-1/pandamart-notifications/internal/usecases/inbox"
	"github.com/Cracken-1/pandamart-notifications/pkg/logger"

	// Import channel packages solely for their init() registration effect.
	_ "github.com/Cracken-1/pandamart-notifications/internal/infrastructure/channel/email"
	_ "github.com/Cracken-1/pandamart-notifications/internal/infrastructure/channel/push"
	_ "github.com/Cracken-1/pandamart-notifications/internal/infrastructure/channel/sms"
)

func main() {
	if err := logger.InitializeLogger(false); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	logger.L().Info("Starting notification dispatch service...")

	cfg, err := configs.NewConfig(".")
	if err != nil {
		logger.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.L().Info("Configuration loaded",
		zap.String("serverAddress", cfg.ServerAddress),
		zap.String("metricsServerAddress", cfg.MetricsServerAddress),
		zap.Strings("enabledChannels", cfg.EnabledChannels),
		zap.String("redisAddr", cfg.RedisAddr),
	)

	tracerShutdown, err := tracing.InitTracer(cfg)
	if err != nil {
		logger.L().Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.L().Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// --- Metrics server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.MetricsHandler())
	metricsServer := &http.Server{
		Addr:    cfg.MetricsServerAddress,
		Handler: metricsMux,
	}
	go func() {
		logger.L().Info("Starting metrics server", zap.String("address", cfg.MetricsServerAddress))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("Metrics server ListenAndServe failed", zap.Error(err))
		}
	}()

	// --- Inbox store ---
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := redisstore.NewStore(storeCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	storeCancel()
	if err != nil {
		logger.L().Fatal("Failed to initialize inbox store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.L().Error("Error closing inbox store", zap.Error(err))
		}
	}()
	logger.L().Info("Inbox store initialized")

	// --- Channel senders (dynamic via registry) ---
	senders := make(map[domain.Channel]channel.Sender)
	for _, name := range cfg.EnabledChannels {
		ch := domain.Channel(name)
		factory, err := registry.GetSenderFactory(ch)
		if err != nil {
			logger.L().Warn("No factory registered for channel, skipping.",
				zap.String("channel", name),
				zap.Error(err),
			)
			continue
		}

		sender, err := factory(cfg)
		if err != nil {
			logger.L().Warn("Channel not configured, disabled.",
				zap.String("channel", name),
				zap.Error(err),
			)
			continue
		}
		senders[ch] = sender
		logger.L().Info("Channel enabled", zap.String("channel", name))
	}
	// The in-app channel depends on the store, not provider config, and is
	// always available.
	senders[domain.ChannelInApp] = inapp.New(store)

	// --- Use cases and HTTP API ---
	sendTimeout := time.Duration(cfg.ChannelSendTimeoutMs) * time.Millisecond
	dispatchUseCase, dispatchHandler := dispatch.NewDispatch(senders, sendTimeout)
	_, eventsHandler := events.NewEvents(dispatchUseCase)
	_, inboxHandler := inbox.NewInbox(store)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/notifications", dispatchHandler.Handle)
		v1.POST("/events/order-status", eventsHandler.HandleOrderStatus)
		v1.POST("/events/payment-confirmed", eventsHandler.HandlePaymentConfirmed)
		v1.POST("/events/loyalty-points", eventsHandler.HandleLoyaltyPoints)
		v1.POST("/events/security-alert", eventsHandler.HandleSecurityAlert)
		v1.GET("/users/:user_id/notifications", inboxHandler.HandleList)
		v1.GET("/users/:user_id/notifications/unread-count", inboxHandler.HandleUnreadCount)
		v1.POST("/users/:user_id/notifications/:id/read", inboxHandler.HandleMarkRead)
	}

	apiServer := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
	}
	go func() {
		logger.L().Info("Starting API server", zap.String("address", cfg.ServerAddress))
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("API server ListenAndServe failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.L().Info("Received signal, shutting down gracefully...", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("API server shutdown error", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Metrics server shutdown error", zap.Error(err))
	}

	logger.L().Info("Notification dispatch service shut down complete.")
}
