package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/config"
	"github.com/umalmyha/leads/internal/infra"
	"github.com/umalmyha/leads/internal/notify"
)

const envFile = ".env"

// @title                      Leads API
// @version                    1.0
// @description                Lead capture form and admin dashboard for housing requirements.
// @BasePath                   /
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Build(envFiles()...)
	if err != nil {
		logrus.Fatalf("failed to build configuration - %s", err)
	}

	logger, err := infra.Logger(cfg.LogCfg)
	if err != nil {
		logrus.Fatalf("failed to build logger - %s", err)
	}

	if err := start(cfg, logger); err != nil {
		logger.Fatalf("shutting down the server, unexpected error occurred - %s", err)
	}
}

func envFiles() []string {
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	return []string{envFile}
}

func start(cfg config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := infra.BuildStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.WithError(err).Error("failed to close storage")
		}
	}()

	hub := notify.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	notifier, closeNotifier, err := infra.Notifier(cfg.NotifyCfg, hub, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			logger.WithError(err).Error("failed to close notifier")
		}
	}()

	services, err := infra.BuildServices(cfg, storage, notifier, logger)
	if err != nil {
		return err
	}

	app, err := infra.Router(cfg.HTTPCfg, services, hub, logger)
	if err != nil {
		return err
	}

	errorCh := make(chan error, 1)
	go func() {
		logger.Infof("server is listening on port %d", cfg.HTTPCfg.Port)
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutdown signal has been sent, stopping the server...")
		stopHub()
		if err := app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server gracefully - %w", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	return nil
}
