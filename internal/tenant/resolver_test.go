// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package tenant

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	acmeToken := signToken(t, "secret", jwt.MapClaims{"tenant": "acme"})
	otherClaim := signToken(t, "secret", jwt.MapClaims{"org": "initech"})
	numericClaim := signToken(t, "secret", jwt.MapClaims{"tenant": 42})

	tests := []struct {
		name    string
		cfg     ResolverConfig
		headers map[string]string
		want    string
		wantErr error
	}{
		{
			name:    "no tenant",
			wantErr: ErrNoTenant,
		},
		{
			name:    "header",
			headers: map[string]string{"X-Tenant-ID": "globex"},
			want:    "globex",
		},
		{
			name:    "custom header",
			cfg:     ResolverConfig{Header: "X-Org"},
			headers: map[string]string{"X-Org": "initech"},
			want:    "initech",
		},
		{
			name:    "unverified bearer claim",
			headers: map[string]string{"Authorization": "Bearer " + acmeToken},
			want:    "acme",
		},
		{
			name:    "lowercase bearer scheme",
			headers: map[string]string{"Authorization": "bearer " + acmeToken},
			want:    "acme",
		},
		{
			name:    "verified bearer claim",
			cfg:     ResolverConfig{JWTSecret: "secret"},
			headers: map[string]string{"Authorization": "Bearer " + acmeToken},
			want:    "acme",
		},
		{
			name:    "custom claim",
			cfg:     ResolverConfig{Claim: "org"},
			headers: map[string]string{"Authorization": "Bearer " + otherClaim},
			want:    "initech",
		},
		{
			name:    "header wins over token",
			headers: map[string]string{"X-Tenant-ID": "globex", "Authorization": "Bearer " + acmeToken},
			want:    "globex",
		},
		{
			name:    "missing claim",
			headers: map[string]string{"Authorization": "Bearer " + otherClaim},
			wantErr: ErrInvalidClaim,
		},
		{
			name:    "non-string claim",
			headers: map[string]string{"Authorization": "Bearer " + numericClaim},
			wantErr: ErrInvalidClaim,
		},
		{
			name:    "malformed header value",
			headers: map[string]string{"X-Tenant-ID": `acme"},{"x":"`},
			wantErr: ErrInvalidTenant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got, err := NewResolver(tt.cfg).Resolve(req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolver_BadSignature(t *testing.T) {
	t.Parallel()

	token := signToken(t, "wrong-secret", jwt.MapClaims{"tenant": "acme"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, err := NewResolver(ResolverConfig{JWTSecret: "secret"}).Resolve(req)
	if err == nil {
		t.Fatal("expected verification error")
	}
}

func TestResolver_Middleware(t *testing.T) {
	t.Parallel()

	var reported error
	res := NewResolver(ResolverConfig{
		JWTSecret: "secret",
		OnError:   func(_ *http.Request, err error) { reported = err },
	})

	var seen string
	handler := res.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	// Header tenant reaches the handler
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant-ID", "acme")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "acme" {
		t.Errorf("expected 'acme', got %q", seen)
	}

	// Missing tenant falls back to default without reporting
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != Default {
		t.Errorf("expected %q, got %q", Default, seen)
	}
	if reported != nil {
		t.Errorf("expected no reported error, got %v", reported)
	}

	// Invalid token is reported and falls back to default
	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Authorization", "Bearer not-a-jwt")
	handler.ServeHTTP(httptest.NewRecorder(), bad)
	if seen != Default {
		t.Errorf("expected %q, got %q", Default, seen)
	}
	if reported == nil {
		t.Error("expected invalid token to be reported")
	}
}
