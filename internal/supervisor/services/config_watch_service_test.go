// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestConfigWatchService_Serve(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	var changes atomic.Int32
	started := make(chan func(), 1)

	watch := func(path string, onChange func()) (func() error, error) {
		if path != "config.yaml" {
			t.Errorf("unexpected path %q", path)
		}
		started <- onChange
		return func() error {
			stopped.Store(true)
			return nil
		}, nil
	}

	svc := NewConfigWatchService("config.yaml", watch, func() { changes.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	select {
	case onChange := <-started:
		onChange()
		onChange()
	case <-time.After(time.Second):
		t.Fatal("watch was not started")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !stopped.Load() {
		t.Error("expected the watch to be stopped")
	}
	if changes.Load() != 2 {
		t.Errorf("expected 2 change callbacks, got %d", changes.Load())
	}
}

func TestConfigWatchService_WatchFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("no such file")
	svc := NewConfigWatchService("missing.yaml", func(string, func()) (func() error, error) {
		return nil, wantErr
	}, func() {})

	if err := svc.Serve(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if svc.String() != "config-watcher" {
		t.Errorf("unexpected name %q", svc.String())
	}
}
