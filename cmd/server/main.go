// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/tenantlog/internal/config"
	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/server"
	"github.com/tomtom215/tenantlog/internal/supervisor"
	"github.com/tomtom215/tenantlog/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("records", cfg.Records.Output).
		Str("tenant_header", cfg.Tenant.Header).
		Msg("Starting tenantlog")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	sink, closeSink, err := openRecordSink(cfg.Records.Output)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open records output")
	}
	defer func() {
		if err := closeSink(); err != nil {
			logging.Error().Err(err).Msg("Error closing records output")
		}
	}()

	recorder := logging.NewRecorder(sink)

	httpServer := &http.Server{
		Handler:           server.NewRouter(cfg, recorder, nil),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})

	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.Address(), cfg.Server.ShutdownTimeout))

	if path := config.ConfigFile(); path != "" {
		tree.AddSupportService(services.NewConfigWatchService(path, config.WatchConfigFile, reloadLogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Address()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
}

// reloadLogLevel re-reads the configuration after the config file changed
// and applies the new operational log level. Records are never level
// filtered, so nothing else needs to change at runtime.
func reloadLogLevel() {
	cfg, err := config.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("Ignoring invalid configuration change")
		return
	}
	logging.SetLevelString(cfg.Logging.Level)
	logging.Info().Str("level", cfg.Logging.Level).Msg("Log level reloaded")
}
