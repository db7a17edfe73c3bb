// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/tenantlog/internal/invocation"
	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/query"
	"github.com/tomtom215/tenantlog/internal/tenant"
	"github.com/tomtom215/tenantlog/internal/validation"
)

// maxItemBody bounds item creation payloads.
const maxItemBody = 64 << 10

// errFailRequested is raised by the /fail route.
var errFailRequested = errors.New("failure requested by client")

// Item is a tenant-owned record managed by the items routes.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateItemRequest is the body of POST /api/v1/items.
type CreateItemRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=1000000"`
}

// itemStore keeps items per tenant in memory.
type itemStore struct {
	mu    sync.RWMutex
	items map[string][]Item
}

func newItemStore() *itemStore {
	return &itemStore{items: make(map[string][]Item)}
}

func (s *itemStore) list(tenantID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items[tenantID]))
	copy(out, s.items[tenantID])
	return out
}

func (s *itemStore) add(tenantID string, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[tenantID] = append(s.items[tenantID], item)
}

// Handler serves the demo routes.
type Handler struct {
	rec         *logging.Recorder
	items       *itemStore
	buildReport func(context.Context, string, ReportFilter) (*query.Deferred, error)
	now         func() time.Time
}

// NewHandler creates a Handler whose application records go through rec.
// Report queries are planned against runner; a nil runner still plans them.
func NewHandler(rec *logging.Recorder, runner query.Runner) *Handler {
	return &Handler{
		rec:         rec,
		items:       newItemStore(),
		buildReport: invocation.Wrap2(rec, "buildInvoiceReport", buildInvoiceReport(runner)),
		now:         time.Now,
	}
}

// Health reports liveness. It is never intercepted.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListItems returns the items of the request's tenant.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	tenantID := tenant.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tenant": tenantID,
		"items":  h.items.list(tenantID),
	})
}

// CreateItem validates the JSON body and stores a new item for the tenant.
// Client mistakes are answered with 400; only encoding failures are returned.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxItemBody))
	if err != nil {
		return fmt.Errorf("failed to read item body: %w", err)
	}

	var req CreateItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.rec.Exception(ctx, err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		h.rec.Warning(ctx, "Item rejected", logging.F("errors", verr.FieldMessages()))
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.FieldMessages(),
		})
		return nil
	}

	tenantID := tenant.FromContext(ctx)
	item := Item{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Quantity:  req.Quantity,
		CreatedAt: h.now().UTC(),
	}
	h.items.add(tenantID, item)
	h.rec.Info(ctx, "Item created", logging.F("item_id", item.ID))

	return encodeJSON(w, http.StatusCreated, item)
}

// Echo returns the query string values and, for POST, the form values.
func (h *Handler) Echo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"tenant": tenant.FromContext(r.Context()),
		"method": r.Method,
		"query":  r.URL.Query(),
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.rec.Exception(r.Context(), err)
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		resp["form"] = r.PostForm
	}
	writeJSON(w, http.StatusOK, resp)
}

// Fail panics so the interceptor's failure path can be observed end to end.
func (h *Handler) Fail(http.ResponseWriter, *http.Request) {
	panic(errFailRequested)
}

// writeJSON encodes v with status, logging encoding failures.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := encodeJSON(w, status, v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func encodeJSON(w http.ResponseWriter, status int, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
