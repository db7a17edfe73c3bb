// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package tenant

import "context"

// Default is the tenant reported when none has been set on the context.
const Default = "default"

type contextKey string

const tenantKey contextKey = "tenant"

// WithTenant returns a new context carrying the given tenant identifier.
//
//	ctx = tenant.WithTenant(ctx, "acme")
func WithTenant(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tenantKey, id)
}

// FromContext returns the tenant stored in ctx, or Default if none is set.
// An empty identifier is treated as unset.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return Default
	}
	if id, ok := ctx.Value(tenantKey).(string); ok && id != "" {
		return id
	}
	return Default
}

// IsSet reports whether a non-empty tenant has been stored in ctx.
func IsSet(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	id, ok := ctx.Value(tenantKey).(string)
	return ok && id != ""
}
