// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package supervisor provides process supervision for tenantlog using suture v4.

# Overview

	RootSupervisor ("tenantlog")
	├── SupportSupervisor ("support-layer")
	│   └── ConfigWatchService (when a config file is in use)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing config watcher is restarted without touching the HTTP server.
Supervisor events (start, failure, backoff, stop) are logged through a
*slog.Logger, normally the zerolog-backed one from logging.NewSlogLogger.

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.Address(), cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Above FailureThreshold the supervisor waits FailureBackoff before the next
restart. A service returning nil is not restarted.

# Debugging Shutdown Issues

Services that outlive ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
