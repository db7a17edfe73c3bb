// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/tenantlog/internal/validation"
)

// Validate checks field constraints declared in struct tags, then the rules
// spanning several fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateTenant(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// minJWTSecretLength is the shortest accepted HMAC secret.
const minJWTSecretLength = 32

// validateTenant rejects weak secrets and, in production, unverified tokens.
func (c *Config) validateTenant() error {
	secret := c.Tenant.JWTSecret
	if secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("TENANT_JWT_SECRET is required in production; unverified bearer tokens would let clients choose their tenant")
		}
		return nil
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("TENANT_JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if containsPlaceholder(secret) {
		return fmt.Errorf("TENANT_JWT_SECRET contains a placeholder value - generate a secret with: openssl rand -base64 32")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting bounds unless limiting is disabled.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// placeholderPatterns are values that indicate a secret was never set.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains a common placeholder pattern.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
