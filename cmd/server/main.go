package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/moderation-backend/internal/config"
	"github.com/ignatzorin/moderation-backend/internal/db"
	"github.com/ignatzorin/moderation-backend/internal/http/router"
	"github.com/ignatzorin/moderation-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/moderation-backend/internal/interface/http/handler"
	"github.com/ignatzorin/moderation-backend/internal/logger"
	"github.com/ignatzorin/moderation-backend/internal/service"
	"github.com/ignatzorin/moderation-backend/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolOptions)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	hub := ws.NewHub(ctx)
	go hub.Run()

	moderationService := service.NewModerationService(service.ModerationDeps{
		Reports:       persistence.NewReportRepositoryAdapter(dbConn),
		Users:         persistence.NewUserRepositoryAdapter(dbConn),
		Content:       persistence.NewContentDirectory(dbConn),
		Transactor:    persistence.NewTransactor(dbConn),
		Publisher:     ws.NewEventPublisher(hub),
		FlagThreshold: cfg.FlagThreshold,
	})

	engine := router.SetupRouter(cfg, tokens, router.Handlers{
		Health:  handler.NewHealthHandler(dbConn),
		Reports: handler.NewReportHandler(moderationService),
		Admin:   handler.NewAdminModerationHandler(moderationService),
		WS:      handler.NewWSHandler(hub, tokens),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.WithFields(logrus.Fields{
		"port":           cfg.HTTPPort,
		"env":            cfg.Env,
		"flag_threshold": moderationService.FlagThreshold(),
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия базы: %v", err)
	}
}
