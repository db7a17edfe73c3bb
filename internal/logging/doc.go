// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package logging provides the structured record writer and the zerolog-based
// service logger for Tenantlog.
//
// # Structured Records
//
// A Recorder writes one JSON object per line with a fixed head followed by
// caller fields in the order given:
//
//	rec := logging.NewRecorder(os.Stdout)
//	rec.Emit(ctx, logging.LevelInfo, "Incoming request",
//	    logging.F("method", "GET"),
//	    logging.F("path", "/items"),
//	)
//	// {"timestamp":"2026-01-03T10:30:00.000000+01:00","tenant":"acme","loglevel":"INFO","message":"Incoming request","method":"GET","path":"/items"}
//
// The tenant is read from the context with tenant.FromContext at the moment the
// record is written. The loglevel field is data: records are level-less zerolog
// events and are never dropped by the service log level, so consumers can
// filter them later. Fields named timestamp, tenant, loglevel or message are
// ignored.
//
// Values that are not JSON primitives are encoded by goccy/go-json through
// zerolog.InterfaceMarshalFunc. Values that may be lazy or expensive to encode
// should be turned into strings with the repr package first.
//
// # Service Logger
//
// The global zerolog logger is for the service's own operational messages:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Tenant token rejected")
//
// Ctx adds request_id, correlation_id and tenant from the context.
//
// Environment Variables (read by the config package):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true, false (default: false)
//
// # slog Adapter
//
// NewSlogLogger bridges slog to the service logger for libraries such as
// sutureslog that require an *slog.Logger.
package logging
