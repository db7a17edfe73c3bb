// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package interceptor provides HTTP middleware that writes one structured
// record per request, per response and per handler failure.
//
// # Usage
//
//	rec := logging.NewRecorder(os.Stdout)
//	icpt := interceptor.New(rec, interceptor.WithSkipper(func(r *http.Request) bool {
//	    return r.URL.Path == "/health"
//	}))
//
//	r := chi.NewRouter()
//	r.Use(tenantResolver.Middleware, icpt.Middleware)
//	r.Get("/items", listItems)
//	r.Method(http.MethodPost, "/import", icpt.HandlerFunc(importItems))
//
// The tenant reported in each record is read from the request context, so
// the tenant resolver must run before the interceptor.
//
// # Request Capture
//
// The "Incoming request" record carries the method, the path, the query
// parameters (GET), the urlencoded or multipart form values of POST requests
// (POST, files excluded) and the raw body when Content-Type is exactly
// application/json. Repeated parameters keep their last value. The body is
// restored afterwards, so handlers read it as usual.
//
// # Response Capture
//
// Handler output is buffered. Once the handler returns, the "Outgoing
// response" record is emitted with the status code, its reason phrase and
// the body decoded as UTF-8, and only then is the response sent. Streaming
// handlers therefore deliver their output in one piece.
//
// # Failures
//
// A panic, or an error returned to HandlerFunc, discards everything the
// handler buffered, emits an ERROR "Exception occurred" record with the
// stack trace and answers 500 with
//
//	{"error":"An internal server error occurred. Please try again later."}
//
// http.ErrAbortHandler panics are passed on unchanged.
package interceptor
