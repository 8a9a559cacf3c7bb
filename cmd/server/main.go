package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lshmam/neucler-square-sub000/internal/api"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/engine"
	"github.com/lshmam/neucler-square-sub000/internal/logging"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
	"github.com/lshmam/neucler-square-sub000/internal/notify"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("neucler %s\n", version)
		return
	}

	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting neucler",
		"version", version,
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"logLevel", cfg.LogLevel,
	)

	logging.CleanOldLogs(cfg.LogDir, config.LogMaxAgeDays)

	db, err := loyaltydb.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	slog.Info("database opened", "path", cfg.DBPath)

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations applied")

	// Outbound notifications: real SMS gateway when configured, log-only
	// otherwise. Delivery failures never fail payment processing.
	var sender notify.Sender = notify.LogSender{}
	if cfg.SMSGatewayURL != "" {
		sender = notify.NewSMSClient(cfg.SMSGatewayURL, cfg.SMSAccountID, cfg.SMSAPIKey, cfg.SMSFromNumber)
		slog.Info("SMS gateway configured", "url", cfg.SMSGatewayURL, "from", cfg.SMSFromNumber)
	} else {
		slog.Info("no SMS gateway configured, notifications will be logged only")
	}

	eng := engine.New(db, notify.NewDispatcher(sender))

	router := api.NewRouter(&api.Dependencies{
		DB:     db,
		Engine: eng,
		Config: cfg,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
