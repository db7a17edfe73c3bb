// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package services

import (
	"context"
	"fmt"

	"github.com/tomtom215/tenantlog/internal/logging"
)

// WatchFunc starts watching path and returns a function that stops it.
// config.WatchConfigFile has this shape.
type WatchFunc func(path string, onChange func()) (stop func() error, err error)

// ConfigWatchService keeps a config file watch alive for as long as the
// supervisor runs it. A failed watch is returned so suture restarts it.
type ConfigWatchService struct {
	path     string
	watch    WatchFunc
	onChange func()
}

// NewConfigWatchService creates a service calling onChange whenever the file
// at path changes.
func NewConfigWatchService(path string, watch WatchFunc, onChange func()) *ConfigWatchService {
	return &ConfigWatchService{
		path:     path,
		watch:    watch,
		onChange: onChange,
	}
}

// Serve implements suture.Service.
func (c *ConfigWatchService) Serve(ctx context.Context) error {
	stop, err := c.watch(c.path, c.onChange)
	if err != nil {
		return fmt.Errorf("config watch failed: %w", err)
	}
	logging.Info().Str("path", c.path).Msg("Watching config file")

	<-ctx.Done()

	if err := stop(); err != nil {
		logging.Warn().Err(err).Str("path", c.path).Msg("Failed to stop config watch")
	}
	return ctx.Err()
}

// String identifies the service in supervisor events.
func (c *ConfigWatchService) String() string {
	return "config-watcher"
}
