// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount reads the sample count of one histogram series.
func histogramCount(t *testing.T, obs prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := obs.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", obs)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordEmitted(t *testing.T) {
	before := testutil.ToFloat64(RecordsEmitted.WithLabelValues("WARNING"))

	RecordEmitted("WARNING")
	RecordEmitted("WARNING")

	after := testutil.ToFloat64(RecordsEmitted.WithLabelValues("WARNING"))
	if after-before != 2 {
		t.Errorf("expected counter to increase by 2, got %v", after-before)
	}
}

func TestRecordInvocation(t *testing.T) {
	before := testutil.ToFloat64(InvocationsLogged.WithLabelValues("metrics_test_fn"))
	RecordInvocation("metrics_test_fn")
	after := testutil.ToFloat64(InvocationsLogged.WithLabelValues("metrics_test_fn"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordIntercepted(t *testing.T) {
	before := testutil.ToFloat64(InterceptedRequests.WithLabelValues("PATCH", "204"))
	RecordIntercepted("PATCH", "204")
	after := testutil.ToFloat64(InterceptedRequests.WithLabelValues("PATCH", "204"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordInterceptorException(t *testing.T) {
	before := testutil.ToFloat64(InterceptorExceptions)
	RecordInterceptorException()
	after := testutil.ToFloat64(InterceptorExceptions)
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		endpoint string
		status   string
		duration time.Duration
	}{
		{"GET success", "GET", "/api/v1/items", "200", 10 * time.Millisecond},
		{"POST created", "POST", "/api/v1/echo", "201", 25 * time.Millisecond},
		{"server error", "GET", "/api/v1/fail", "500", time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.status))
			samples := histogramCount(t, APIRequestDuration.WithLabelValues(tt.method, tt.endpoint))

			RecordAPIRequest(tt.method, tt.endpoint, tt.status, tt.duration)

			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.status))
			if after-before != 1 {
				t.Errorf("expected counter to increase by 1, got %v", after-before)
			}
			if got := histogramCount(t, APIRequestDuration.WithLabelValues(tt.method, tt.endpoint)) - samples; got != 1 {
				t.Errorf("expected one duration sample, got %d", got)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected gauge %v, got %v", before+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected gauge %v, got %v", before, got)
	}
}
