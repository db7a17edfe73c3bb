// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/tenantlog/internal/query"
	"github.com/tomtom215/tenantlog/internal/tenant"
)

const (
	defaultReportLimit = 100
	maxReportLimit     = 1000
)

// ErrUnknownStatus is returned for an invoice status filter nobody issues.
var ErrUnknownStatus = errors.New("unknown invoice status")

var invoiceStatuses = map[string]bool{
	"draft": true,
	"open":  true,
	"paid":  true,
	"void":  true,
}

// ReportFilter narrows the invoices a report covers. Zero values mean
// "no restriction", except Limit which falls back to defaultReportLimit.
type ReportFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
}

// String renders the filter for invocation records.
func (f ReportFilter) String() string {
	parts := make([]string, 0, 4)
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if !f.From.IsZero() {
		parts = append(parts, "from="+f.From.Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		parts = append(parts, "to="+f.To.Format(time.DateOnly))
	}
	parts = append(parts, "limit="+strconv.Itoa(f.Limit))
	return "ReportFilter(" + strings.Join(parts, ", ") + ")"
}

// buildInvoiceReport plans the invoice query for one tenant. The returned
// query is not run; callers decide whether to execute or only describe it.
func buildInvoiceReport(runner query.Runner) func(context.Context, string, ReportFilter) (*query.Deferred, error) {
	return func(_ context.Context, tenantID string, filter ReportFilter) (*query.Deferred, error) {
		if filter.Status != "" && !invoiceStatuses[filter.Status] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, filter.Status)
		}

		wb := query.NewWhereBuilder().AddEquals("tenant_id", tenantID)
		if filter.Status != "" {
			wb.AddEquals("status", filter.Status)
		}
		var from, to interface{}
		if !filter.From.IsZero() {
			from = filter.From
		}
		if !filter.To.IsZero() {
			to = filter.To
		}
		wb.AddRange("issued_at", from, to)

		limit := filter.Limit
		if limit <= 0 {
			limit = defaultReportLimit
		}

		return query.New(runner, "invoices").
			Select("id", "customer", "total", "status", "issued_at").
			Where(wb).
			OrderBy("issued_at DESC").
			Limit(limit), nil
	}
}

// Report plans the invoice report for the request's tenant and returns the
// statement it would run. The planning call is recorded by the invocation
// logger with the query's plan as its result.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	tenantID := tenant.FromContext(r.Context())
	q, err := h.buildReport(r.Context(), tenantID, filter)
	if errors.Is(err, ErrUnknownStatus) {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to plan invoice report: %w", err)
	}

	return encodeJSON(w, http.StatusOK, map[string]interface{}{
		"tenant": tenantID,
		"table":  q.Table(),
		"plan":   q.Plan(),
	})
}

func parseReportFilter(r *http.Request) (ReportFilter, error) {
	values := r.URL.Query()
	filter := ReportFilter{
		Status: strings.ToLower(strings.TrimSpace(values.Get("status"))),
		Limit:  defaultReportLimit,
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxReportLimit {
			return filter, fmt.Errorf("limit must be between 1 and %d", maxReportLimit)
		}
		filter.Limit = n
	}

	for _, bound := range []struct {
		name string
		dst  *time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		raw := values.Get(bound.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("%s must be a date (YYYY-MM-DD)", bound.name)
		}
		*bound.dst = t
	}

	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, errors.New("to must not be before from")
	}
	return filter, nil
}
