// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package metrics exposes Prometheus counters for Tenantlog's own operation.

Metrics are registered on the default registry and served at /metrics.

Record Metrics:
  - tenantlog_records_emitted_total: Records written (counter)
    Labels: loglevel
  - tenantlog_invocations_logged_total: Invocation records written (counter)
    Labels: function

Interceptor Metrics:
  - tenantlog_intercepted_requests_total: Requests through the interceptor (counter)
    Labels: method, status
  - tenantlog_interceptor_exceptions_total: Handler failures turned into 500s (counter)

HTTP Metrics:
  - http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - http_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - http_requests_in_flight: Active requests (gauge)
*/
package metrics
