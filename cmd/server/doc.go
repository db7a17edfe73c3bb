// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package main is the entry point for the tenantlog server.

The server resolves the tenant of every request, intercepts everything but
/health and /metrics and writes one JSON record per event to the records output:

	{"timestamp":"2026-01-02T10:00:00.000000Z","tenant":"acme","loglevel":"INFO","message":"Incoming request","method":"GET","path":"/api/v1/items",...}

Operational logs (startup, supervisor events, shutdown) go to stderr through
zerolog and are filtered by LOG_LEVEL; records are never filtered.

# Startup

 1. Configuration: Koanf v2 defaults, optional YAML file, environment
 2. Logging: zerolog with JSON or console output
 3. Records output: stdout, stderr or an append-only file
 4. Router: chi with request ID, metrics, tenant resolver, interceptor, CORS, rate limiting
 5. Supervisor tree: HTTP server, plus a config watcher when a file is used

SIGINT and SIGTERM cancel the tree; the HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT.

# Environment

	HTTP_HOST, HTTP_PORT          listen address (default :8080)
	LOG_LEVEL, LOG_FORMAT         operational logger
	RECORDS_OUTPUT                stdout, stderr or a file path
	TENANT_HEADER, TENANT_CLAIM   tenant sources (X-Tenant-ID, tenant)
	TENANT_JWT_SECRET             verifies bearer tokens; required in production
	CORS_ORIGINS                  comma-separated allowed origins
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	CONFIG_PATH                   explicit config file
*/
package main
