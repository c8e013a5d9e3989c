package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ksaxena149/personal-relationship-manager/internal/config"
	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/api"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/auth"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/handler"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/notify"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/storage"
	"github.com/ksaxena149/personal-relationship-manager/internal/notifier"
	"github.com/ksaxena149/personal-relationship-manager/internal/observability/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		slog.Error("failed to open local storage", "error", err, "path", cfg.Storage.Path)
		os.Exit(1)
	}

	tokens := auth.NewTokenSource(store)
	gateway := api.NewClient(cfg.API.BaseURL, tokens, cfg.API.Timeout)

	var player notifier.Player = notifier.NopPlayer()
	if cfg.Notifier.SoundEnabled {
		player = notify.NewBellPlayer(os.Stdout)
	}

	ctx := context.Background()

	service, err := notifier.New(
		ctx,
		gateway,
		storage.NewAckRepository(store),
		notifier.NewSystemClock(),
		player,
		notify.NewToastRenderer(os.Stdout),
		notifier.Config{
			ScanInterval:    cfg.Notifier.ScanInterval,
			RefreshInterval: cfg.Notifier.RefreshInterval,
			FreshnessWindow: cfg.Notifier.FreshnessWindow,
			ToastDuration:   cfg.Notifier.ToastDuration,
		},
	)
	if err != nil {
		slog.Error("failed to construct notification service", "error", err)
		os.Exit(1)
	}

	unsubscribe := service.SubscribeToDueReminders(func(reminders []*domain.Reminder) {
		slog.Info("reminders became due",
			"count", len(reminders),
		)
	})
	defer unsubscribe()

	service.Start(ctx)

	reminderHandler := handler.NewReminderHandler(service, tokens)

	router := setupRouter(reminderHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting control server", "address", cfg.Server.Address())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start control server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("control server forced to shutdown", "error", err)
	}

	if err := service.Close(); err != nil {
		slog.Error("failed to dispose notification service", "error", err)
	}

	slog.Info("exited properly")
}

func setupRouter(reminderHandler *handler.ReminderHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.PanicRecoveryGin(), reminderHandler.UserGesture())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	reminderHandler.RegisterRoutes(v1)

	return router
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level

	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logHandler))
}
