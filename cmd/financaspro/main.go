package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/caiograbovskii/financaspro/internal/amqp"
	"github.com/caiograbovskii/financaspro/internal/cli"
	apphttp "github.com/caiograbovskii/financaspro/internal/http"
	"github.com/caiograbovskii/financaspro/internal/log"
	"github.com/caiograbovskii/financaspro/internal/services"
	"github.com/caiograbovskii/financaspro/internal/session"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// The API runs without the sync bus; rows stay pending until the
	// worker's backup sweep finds them.
	var publisher services.SyncPublisher
	if amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
		logger.Warn("AMQP unavailable, sync messages disabled", log.FieldError, err)
	} else {
		publisher = amqpClient
	}

	svc := services.NewFinanceService(repo, publisher)

	sessions := session.NewTracker(cfg.SessionTimeout)

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Sessions:    sessions,
		AdvisorSeed: cfg.AdvisorSeed,
	})
	srv.Handler = log.Middleware(logger.WithComponent(log.ComponentHTTP))(srv.Handler)
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Service close error", log.FieldError, err)
		}
	})

	go func() {
		expiryCh := sessions.Watch(ctx, time.Minute)
		for userID := range expiryCh {
			logger.Info("Session expired", log.FieldUserID, userID)
		}
	}()

	logger.Info("Starting financaspro server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
