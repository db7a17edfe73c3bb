// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package query builds parameterized SQL and deferred queries.
//
// # Overview
//
// WhereBuilder provides a fluent interface for WHERE clauses with ?
// placeholders. Deferred wraps a complete SELECT that runs only when Run or
// Collect is called:
//
//	q := query.New(db, "invoices").
//	    Select("id", "total").
//	    Where(query.NewWhereBuilder().AddEquals("tenant_id", tenantID)).
//	    OrderBy("id").
//	    Limit(50)
//
//	q.Plan() // "SELECT id, total FROM invoices WHERE tenant_id = ? ORDER BY id LIMIT ?"
//
// # Logging Deferred Queries
//
// Deferred implements repr.Planner, so passing one to the invocation logger
// or repr.String records its plan as "<Query: SELECT ...>" without hitting
// the database. Plan never includes argument values.
//
// # Thread Safety
//
// Builders are not safe for concurrent modification. A fully built Deferred
// may be Run from several goroutines when its Runner allows it.
package query
