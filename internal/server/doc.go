// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package server assembles the HTTP surface of tenantlog.

NewRouter wires the chi router with the infrastructure middleware, the tenant
resolver and the request interceptor, and mounts a small set of routes that
exercise every record type:

	GET  /health           liveness, not intercepted
	GET  /metrics          Prometheus exposition, not intercepted
	GET  /api/v1/items     list the tenant's items
	POST /api/v1/items     create an item (JSON, validated)
	GET  /api/v1/echo      echo query values
	POST /api/v1/echo      echo query and form values
	GET  /api/v1/fail      panics; answered with the generic 500 body
	GET  /api/v1/reports   plan an invoice query, logged by the invocation logger

The interceptor wraps the whole router, so 404, 405 and 429 responses are
recorded too.

Items live in memory per tenant. Reports are planned against an optional
query.Runner and are never executed by the route itself, so the invocation
record shows the query plan rather than its rows.
*/
package server
