// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	Records     RecordsConfig     `koanf:"records"`
	Interceptor InterceptorConfig `koanf:"interceptor"`
	Tenant      TenantConfig      `koanf:"tenant"`
	Security    SecurityConfig    `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"omitempty,ip|hostname"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Address returns the host:port listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds the operational logger settings.
// Structured request records are configured by RecordsConfig.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecordsConfig selects the sink for structured records.
type RecordsConfig struct {
	// Output is "stdout", "stderr" or a file path opened for appending.
	// Default: stdout
	Output string `koanf:"output" validate:"required"`
}

// InterceptorConfig holds request interceptor settings.
type InterceptorConfig struct {
	// MaxBodyBytes caps the captured JSON request body; 0 captures everything.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gte=0"`

	// SkipPaths are exact paths that produce no records.
	SkipPaths []string `koanf:"skip_paths"`
}

// TenantConfig holds tenant resolution settings.
type TenantConfig struct {
	Header    string `koanf:"header" validate:"headername"`
	Claim     string `koanf:"claim" validate:"required"`
	JWTSecret string `koanf:"jwt_secret"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
