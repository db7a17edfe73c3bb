// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

// Package repr renders arbitrary values as strings for structured records
// without running deferred work and without ever panicking.
package repr

import (
	"fmt"
	"strconv"
)

// Planner is implemented by values that describe pending work, such as a
// query that has not been executed yet. Plan must return the description
// without performing the work.
type Planner interface {
	Plan() string
}

// String returns a debug representation of v:
//
//	Planner       <Query: SELECT id FROM items WHERE tenant = ?>
//	nil           nil
//	string        "text" (Go-quoted)
//	error         "message" (Go-quoted)
//	fmt.Stringer  its String() result
//	other         %#v
//
// A panic raised while inspecting v yields "<unrepresentable T>".
func String(v interface{}) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Placeholder(v)
		}
	}()

	switch x := v.(type) {
	case nil:
		return "nil"
	case Planner:
		return "<Query: " + x.Plan() + ">"
	case string:
		return strconv.Quote(x)
	case error:
		return strconv.Quote(x.Error())
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// Strings represents every value of vs. The result is never nil.
func Strings(vs []interface{}) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = String(v)
	}
	return out
}

// Placeholder is the representation used when v cannot be inspected.
func Placeholder(v interface{}) string {
	return fmt.Sprintf("<unrepresentable %T>", v)
}
