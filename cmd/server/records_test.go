// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/tenant"
)

func TestOpenRecordSink_Streams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		output string
		want   *os.File
	}{
		{"", os.Stdout},
		{"stdout", os.Stdout},
		{" STDERR ", os.Stderr},
	}
	for _, tt := range tests {
		w, closeFn, err := openRecordSink(tt.output)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.output, err)
		}
		if w != tt.want {
			t.Errorf("%q: unexpected writer", tt.output)
		}
		if err := closeFn(); err != nil {
			t.Errorf("%q: closing a process stream must be a no-op: %v", tt.output, err)
		}
	}
}

func TestOpenRecordSink_FileAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "records.jsonl")

	for i := 0; i < 2; i++ {
		w, closeFn, err := openRecordSink(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rec := logging.NewRecorder(w)
		rec.Info(tenant.WithTenant(context.Background(), "acme"), "Record written")
		if err := closeFn(); err != nil {
			t.Fatalf("unexpected close error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read records file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 appended records, got %d:\n%s", got, data)
	}
	if !strings.Contains(string(data), `"tenant":"acme"`) {
		t.Errorf("expected tenant in records, got %s", data)
	}
}

func TestOpenRecordSink_Unwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := openRecordSink(filepath.Join(blocker, "records.jsonl")); err == nil {
		t.Error("expected an error when the parent is a regular file")
	}
}
