// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// ErrNoRunner is returned by Run when the query has no Runner to execute on.
var ErrNoRunner = errors.New("deferred query has no runner")

// Runner executes SQL. *sql.DB, *sql.Conn and *sql.Tx satisfy it.
type Runner interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Deferred is a SELECT that has been described but not executed. Building it,
// reading SQL or Plan, and logging it have no side effects; only Run touches
// the database. Deferred implements repr.Planner.
type Deferred struct {
	runner     Runner
	table      string
	columns    []string
	where      *WhereBuilder
	orderBy    string
	limit      int
	executions atomic.Int64
}

// New describes a query over table. Table and column names must be trusted.
func New(runner Runner, table string) *Deferred {
	return &Deferred{
		runner: runner,
		table:  table,
		where:  NewWhereBuilder(),
	}
}

// Select sets the selected columns. Without it every column is selected.
func (d *Deferred) Select(columns ...string) *Deferred {
	d.columns = append([]string(nil), columns...)
	return d
}

// Where replaces the filter.
func (d *Deferred) Where(wb *WhereBuilder) *Deferred {
	if wb == nil {
		wb = NewWhereBuilder()
	}
	d.where = wb
	return d
}

// OrderBy sets the ORDER BY expression.
func (d *Deferred) OrderBy(expr string) *Deferred {
	d.orderBy = expr
	return d
}

// Limit caps the number of rows; zero or less means no limit.
func (d *Deferred) Limit(n int) *Deferred {
	d.limit = n
	return d
}

// Table returns the queried table.
func (d *Deferred) Table() string {
	return d.table
}

// SQL returns the statement and its arguments.
func (d *Deferred) SQL() (string, []interface{}) {
	cols := "*"
	if len(d.columns) > 0 {
		cols = strings.Join(d.columns, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", cols, d.table)

	args := []interface{}{}
	if !d.where.IsEmpty() {
		whereClause, whereArgs := d.where.BuildWithPrefix()
		b.WriteString(" ")
		b.WriteString(whereClause)
		args = append(args, whereArgs...)
	}
	if d.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(d.orderBy)
	}
	if d.limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, d.limit)
	}
	return b.String(), args
}

// Plan describes the statement with placeholders; argument values are left out.
func (d *Deferred) Plan() string {
	stmt, _ := d.SQL()
	return stmt
}

// Run executes the query.
func (d *Deferred) Run(ctx context.Context) (*sql.Rows, error) {
	if d.runner == nil {
		return nil, ErrNoRunner
	}
	d.executions.Add(1)

	stmt, args := d.SQL()
	rows, err := d.runner.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query on %s: %w", d.table, err)
	}
	return rows, nil
}

// Collect runs the query and calls scan once per row.
func (d *Deferred) Collect(ctx context.Context, scan func(*sql.Rows) error) error {
	rows, err := d.Run(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error - rows.Err() below reports iteration failures
	}()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", d.table, err)
		}
	}
	return rows.Err()
}

// Executions returns how many times Run has been called.
func (d *Deferred) Executions() int64 {
	return d.executions.Load()
}
