// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package middleware provides infrastructure HTTP middleware for the server.

Both middlewares have the chi signature func(http.Handler) http.Handler:

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request_id and correlation_id
  - PrometheusMetrics: http_requests_total, http_request_duration_seconds
    and http_requests_in_flight, labelled by chi route pattern

Typical placement:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
