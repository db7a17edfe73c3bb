// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

/*
Package tenant carries the logical tenant identifier of a request.

The tenant lives on the request's context.Context rather than in
goroutine-local state. A context is an immutable value that travels with a
single request, so concurrent requests can never observe each other's tenant,
and a goroutine reused for a later request starts from that request's fresh
context.

Usage:

	ctx = tenant.WithTenant(ctx, "acme")
	id := tenant.FromContext(ctx) // "acme"

	tenant.FromContext(context.Background()) // "default"

Resolver is an HTTP middleware that sets the tenant at the start of every
request from the X-Tenant-ID header or from the "tenant" claim of a bearer
JWT. Authentication itself happens upstream; when no JWT secret is configured
the token is only decoded. Identifiers outside 1-64 characters of letters,
digits, '.', '_' and '-' are rejected and the request keeps the default tenant.

	res := tenant.NewResolver(tenant.ResolverConfig{Header: "X-Tenant-ID"})
	r.Use(res.Middleware)
*/
package tenant
