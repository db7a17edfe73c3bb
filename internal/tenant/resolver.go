// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/tenantlog/internal/validation"
)

// Default request sources for the tenant identifier.
const (
	DefaultHeader = "X-Tenant-ID"
	DefaultClaim  = "tenant"
)

var (
	// ErrNoTenant indicates the request carries no tenant identifier.
	ErrNoTenant = errors.New("no tenant in request")

	// ErrInvalidClaim indicates the token's tenant claim is missing or not a string.
	ErrInvalidClaim = errors.New("tenant claim is missing or not a string")

	// ErrInvalidTenant indicates the identifier has a shape no tenant can have.
	ErrInvalidTenant = errors.New("invalid tenant identifier")
)

// ResolverConfig configures where a Resolver looks for the tenant.
type ResolverConfig struct {
	// Header is checked first. Default: X-Tenant-ID
	Header string

	// Claim is read from an "Authorization: Bearer" JWT. Default: tenant
	Claim string

	// JWTSecret verifies HMAC-signed tokens. When empty the token is parsed
	// without verification and only its claims are read.
	JWTSecret string

	// OnError is called when a tenant was supplied but cannot be used. Optional.
	OnError func(r *http.Request, err error)
}

// Resolver extracts the tenant of an inbound request and stores it on the
// request context before the rest of the pipeline runs.
type Resolver struct {
	header  string
	claim   string
	secret  []byte
	parser  *jwt.Parser
	onError func(r *http.Request, err error)
}

// NewResolver creates a Resolver, applying defaults for empty fields.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Header == "" {
		cfg.Header = DefaultHeader
	}
	if cfg.Claim == "" {
		cfg.Claim = DefaultClaim
	}

	res := &Resolver{
		header:  cfg.Header,
		claim:   cfg.Claim,
		onError: cfg.OnError,
	}
	if cfg.JWTSecret != "" {
		res.secret = []byte(cfg.JWTSecret)
		res.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	} else {
		res.parser = jwt.NewParser()
	}
	return res
}

// Resolve returns the tenant identifier carried by r.
// The header wins over the bearer token claim.
func (res *Resolver) Resolve(r *http.Request) (string, error) {
	id, err := res.lookup(r)
	if err != nil {
		return "", err
	}
	if !validation.IsTenantID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTenant, id)
	}
	return id, nil
}

func (res *Resolver) lookup(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.Header.Get(res.header)); id != "" {
		return id, nil
	}

	token := bearerToken(r)
	if token == "" {
		return "", ErrNoTenant
	}
	return res.fromToken(token)
}

func (res *Resolver) fromToken(raw string) (string, error) {
	claims := jwt.MapClaims{}

	if res.secret != nil {
		if _, err := res.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return res.secret, nil
		}); err != nil {
			return "", fmt.Errorf("failed to verify bearer token: %w", err)
		}
	} else {
		if _, _, err := res.parser.ParseUnverified(raw, claims); err != nil {
			return "", fmt.Errorf("failed to parse bearer token: %w", err)
		}
	}

	id, ok := claims[res.claim].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", ErrInvalidClaim
	}
	return strings.TrimSpace(id), nil
}

// Middleware sets the resolved tenant on every request context.
// Each request starts from its own context, so a tenant set for an earlier
// request is never visible to a later one.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := res.Resolve(r)
		if err != nil && !errors.Is(err, ErrNoTenant) && res.onError != nil {
			res.onError(r, err)
		}
		next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), id)))
	})
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
