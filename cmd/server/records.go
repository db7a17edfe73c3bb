// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// openRecordSink resolves the records output setting. "stdout" and "stderr"
// select the process streams; anything else is a file opened for appending,
// with its directory created as needed. The returned close function is a
// no-op for the process streams.
func openRecordSink(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	path := filepath.Clean(output)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create records directory: %w", err)
	}
	//nolint:gosec // path comes from operator configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open records file %s: %w", path, err)
	}
	return f, f.Close, nil
}
