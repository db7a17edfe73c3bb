// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package invocation logs calls of ordinary functions as structured records.
//
// Wrap and its typed variants return a function with the wrapped function's
// signature. After every successful call one INFO record is emitted with the
// function name, the rendered result and the rendered arguments:
//
//	load := invocation.Wrap1(rec, "", loadReport)
//	q, err := load(ctx, "acme")
//
// Failed calls are not recorded and their error is returned untouched.
// Values are rendered with the repr package, so a deferred query passed in
// or returned is described by its plan and never executed.
package invocation
