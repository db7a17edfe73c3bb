// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package config provides centralized configuration management for tenantlog.

# Configuration Sources

Configuration is layered with Koanf v2, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/tenantlog/config.yaml, /etc/tenantlog/config.yml
 3. Environment variables

Only the environment variables listed below are read; anything else in the
environment is ignored.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT (default: 15s, 30s, 120s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)
  - ENVIRONMENT: development, staging or production (default: development)

Operational logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include file:line (default: false)

Structured records:
  - RECORDS_OUTPUT: stdout, stderr or a file path (default: stdout)
  - INTERCEPTOR_MAX_BODY_BYTES: captured JSON body limit, 0 = unlimited (default: 1048576)
  - INTERCEPTOR_SKIP_PATHS: comma-separated paths without records (default: /health,/metrics)

Tenant resolution:
  - TENANT_HEADER: header carrying the tenant (default: X-Tenant-ID)
  - TENANT_CLAIM: JWT claim carrying the tenant (default: tenant)
  - TENANT_JWT_SECRET: HMAC secret verifying bearer tokens, min 32 chars;
    required when ENVIRONMENT=production

Security:
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: window length (default: 1m)
  - DISABLE_RATE_LIMIT: turn rate limiting off (default: false)

# Example YAML

	server:
	  port: 8080
	  environment: production
	records:
	  output: /var/log/tenantlog/records.jsonl
	tenant:
	  header: X-Org-ID
	  jwt_secret: "..."
	interceptor:
	  skip_paths: [/health, /metrics, /ready]

# Validation

Field constraints are struct tags checked by the validation package; rules
spanning several fields (secret strength, production requirements, rate limit
bounds) are checked afterwards.
*/
package config
