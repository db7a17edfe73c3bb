// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package query

import (
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_Clauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func(*WhereBuilder)
		expected string
		args     int
	}{
		{
			name:     "equals",
			build:    func(wb *WhereBuilder) { wb.AddEquals("tenant_id", "acme") },
			expected: "tenant_id = ?",
			args:     1,
		},
		{
			name:     "in",
			build:    func(wb *WhereBuilder) { wb.AddIn("status", []interface{}{"open", "held", "paid"}) },
			expected: "status IN (?, ?, ?)",
			args:     3,
		},
		{
			name:     "empty in is skipped",
			build:    func(wb *WhereBuilder) { wb.AddIn("status", nil) },
			expected: "1=1",
			args:     0,
		},
		{
			name:     "full range",
			build:    func(wb *WhereBuilder) { wb.AddRange("total", 10, 100) },
			expected: "total >= ? AND total <= ?",
			args:     2,
		},
		{
			name:     "lower bound only",
			build:    func(wb *WhereBuilder) { wb.AddRange("total", 10, nil) },
			expected: "total >= ?",
			args:     1,
		},
		{
			name:     "upper bound only",
			build:    func(wb *WhereBuilder) { wb.AddRange("total", nil, 100) },
			expected: "total <= ?",
			args:     1,
		},
		{
			name: "raw clause chained with equals",
			build: func(wb *WhereBuilder) {
				wb.AddClause("created_at > NOW() - INTERVAL ? DAY", 7).AddEquals("tenant_id", "acme")
			},
			expected: "created_at > NOW() - INTERVAL ? DAY AND tenant_id = ?",
			args:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wb := NewWhereBuilder()
			tt.build(wb)

			whereClause, args := wb.Build()
			if whereClause != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, whereClause)
			}
			if len(args) != tt.args {
				t.Errorf("Expected %d args, got %d", tt.args, len(args))
			}
		})
	}
}

func TestWhereBuilder_ArgsOrder(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder().
		AddEquals("tenant_id", "acme").
		AddIn("status", []interface{}{"open", "held"}).
		AddRange("total", 1, 2)

	_, args := wb.Build()
	want := []interface{}{"acme", "open", "held", 1, 2}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: expected %v, got %v", i, want[i], args[i])
		}
	}
	if wb.Count() != 4 {
		t.Errorf("Expected count 4, got %d", wb.Count())
	}
}

func TestWhereBuilder_BuildWithPrefix(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	whereClause, _ := wb.BuildWithPrefix()
	if whereClause != "WHERE 1=1" {
		t.Errorf("Expected 'WHERE 1=1', got %q", whereClause)
	}

	wb.AddEquals("tenant_id", "acme")
	whereClause, args := wb.BuildWithPrefix()
	if whereClause != "WHERE tenant_id = ?" {
		t.Errorf("Expected 'WHERE tenant_id = ?', got %q", whereClause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}
