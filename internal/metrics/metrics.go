// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Structured record metrics
	RecordsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantlog_records_emitted_total",
			Help: "Total number of structured records written",
		},
		[]string{"loglevel"},
	)

	InvocationsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantlog_invocations_logged_total",
			Help: "Total number of function invocations written as records",
		},
		[]string{"function"},
	)

	// Interceptor metrics
	InterceptedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantlog_intercepted_requests_total",
			Help: "Total number of requests passed through the request interceptor",
		},
		[]string{"method", "status"},
	)

	InterceptorExceptions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tenantlog_interceptor_exceptions_total",
			Help: "Total number of handler failures converted into 500 responses",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of active API requests",
		},
	)
)

// RecordEmitted counts one structured record of the given level.
func RecordEmitted(level string) {
	RecordsEmitted.WithLabelValues(level).Inc()
}

// RecordInvocation counts one logged invocation of function.
func RecordInvocation(function string) {
	InvocationsLogged.WithLabelValues(function).Inc()
}

// RecordIntercepted counts one request that completed through the interceptor.
func RecordIntercepted(method, status string) {
	InterceptedRequests.WithLabelValues(method, status).Inc()
}

// RecordInterceptorException counts one handler failure.
func RecordInterceptorException() {
	InterceptorExceptions.Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
