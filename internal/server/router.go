// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tenantlog/internal/config"
	"github.com/tomtom215/tenantlog/internal/interceptor"
	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/middleware"
	"github.com/tomtom215/tenantlog/internal/query"
	"github.com/tomtom215/tenantlog/internal/tenant"
)

// corsMaxAge is the preflight cache lifetime in seconds.
const corsMaxAge = 86400

// alwaysSkipped are never intercepted, whatever the configuration says.
var alwaysSkipped = []string{"/health", "/metrics"}

// NewRouter builds the HTTP handler. runner backs the report queries and may
// be nil, in which case reports are planned but never run.
//
// Middleware order (outermost first):
//
//	RequestID → RealIP → PrometheusMetrics → tenant resolver → interceptor → CORS → RateLimit
//
// The interceptor wraps the whole router, so unmatched paths (404), wrong
// methods (405), preflights and rate-limited requests (429) are recorded like
// any other response. /health and /metrics are skipped. Handlers that return
// an error go through Interceptor.HandlerFunc, which defers to the router
// level interceptor instead of recording the request twice.
func NewRouter(cfg *config.Config, rec *logging.Recorder, runner query.Runner) http.Handler {
	skipPaths := append(append([]string{}, alwaysSkipped...), cfg.Interceptor.SkipPaths...)
	ic := interceptor.New(rec,
		interceptor.WithMaxBodyBytes(cfg.Interceptor.MaxBodyBytes),
		interceptor.WithSkipper(pathSkipper(skipPaths)),
	)
	resolver := tenant.NewResolver(tenant.ResolverConfig{
		Header:    cfg.Tenant.Header,
		Claim:     cfg.Tenant.Claim,
		JWTSecret: cfg.Tenant.JWTSecret,
		OnError: func(r *http.Request, err error) {
			logging.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Ignoring unusable tenant")
		},
	})
	h := NewHandler(rec, runner)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.PrometheusMetrics)
	r.Use(resolver.Middleware)
	r.Use(ic.Middleware)
	r.Use(corsHandler(cfg.Security))
	r.Use(rateLimit(cfg.Security))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", h.ListItems)
		r.Method(http.MethodPost, "/items", ic.HandlerFunc(h.CreateItem))
		r.Get("/echo", h.Echo)
		r.Post("/echo", h.Echo)
		r.Get("/fail", h.Fail)
		r.Method(http.MethodGet, "/reports", ic.HandlerFunc(h.Report))
	})

	return r
}

// corsHandler returns the go-chi/cors middleware for the configured origins.
func corsHandler(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Tenant-ID", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	})
}

// rateLimit returns an IP-keyed limiter, or a no-op when limiting is disabled.
func rateLimit(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled || cfg.RateLimitReqs <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.RateLimitReqs,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)
}

// pathSkipper matches each configured path exactly or as a path prefix
// ("/api/v1/internal" also skips "/api/v1/internal/stats").
func pathSkipper(paths []string) func(*http.Request) bool {
	if len(paths) == 0 {
		return nil
	}
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSuffix(strings.TrimSpace(p), "/"); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return func(r *http.Request) bool {
		for _, p := range cleaned {
			if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
				return true
			}
		}
		return false
	}
}
