// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package invocation

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/metrics"
	"github.com/tomtom215/tenantlog/internal/repr"
)

// Record field keys.
const (
	FunctionKey = "function"
	ResultKey   = "result"
	ArgsKey     = "args"
	KwargsKey   = "kwargs"
)

// Recorder is the part of *logging.Recorder used here.
type Recorder interface {
	Record(ctx context.Context, level logging.Level, fields ...logging.Field)
}

// Kwarg is a named argument.
type Kwarg struct {
	Name  string
	Value interface{}
}

// Call carries the arguments of one invocation. Named arguments keep the
// order they were given in.
type Call struct {
	Args   []interface{}
	Kwargs []Kwarg
}

// Func is the generic shape of a logged function.
type Func[R any] func(ctx context.Context, call Call) (R, error)

// Wrap returns a Func with the same behavior as fn that also emits one INFO
// record per successful call:
//
//	{"timestamp":"...","tenant":"acme","loglevel":"INFO","function":"loadReport","result":"...","args":[...],"kwargs":["limit=10"]}
//
// Arguments and result are rendered with repr.String after fn returns. When
// fn returns an error or panics, nothing is recorded and the error or panic
// reaches the caller unchanged. An empty name is replaced by fn's name.
func Wrap[R any](rec Recorder, name string, fn Func[R]) Func[R] {
	name = resolveName(name, fn)
	return func(ctx context.Context, call Call) (R, error) {
		result, err := fn(ctx, call)
		if err != nil {
			return result, err
		}
		record(ctx, rec, name, call, result)
		return result, nil
	}
}

// Wrap0 wraps a function taking no arguments besides the context.
func Wrap0[R any](rec Recorder, name string, fn func(context.Context) (R, error)) func(context.Context) (R, error) {
	name = resolveName(name, fn)
	return func(ctx context.Context) (R, error) {
		result, err := fn(ctx)
		if err != nil {
			return result, err
		}
		record(ctx, rec, name, Call{}, result)
		return result, nil
	}
}

// Wrap1 wraps a function of one argument.
func Wrap1[A, R any](rec Recorder, name string, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	name = resolveName(name, fn)
	return func(ctx context.Context, a A) (R, error) {
		result, err := fn(ctx, a)
		if err != nil {
			return result, err
		}
		record(ctx, rec, name, Call{Args: []interface{}{a}}, result)
		return result, nil
	}
}

// Wrap2 wraps a function of two arguments.
func Wrap2[A, B, R any](rec Recorder, name string, fn func(context.Context, A, B) (R, error)) func(context.Context, A, B) (R, error) {
	name = resolveName(name, fn)
	return func(ctx context.Context, a A, b B) (R, error) {
		result, err := fn(ctx, a, b)
		if err != nil {
			return result, err
		}
		record(ctx, rec, name, Call{Args: []interface{}{a, b}}, result)
		return result, nil
	}
}

// Wrap3 wraps a function of three arguments.
func Wrap3[A, B, C, R any](rec Recorder, name string, fn func(context.Context, A, B, C) (R, error)) func(context.Context, A, B, C) (R, error) {
	name = resolveName(name, fn)
	return func(ctx context.Context, a A, b B, c C) (R, error) {
		result, err := fn(ctx, a, b, c)
		if err != nil {
			return result, err
		}
		record(ctx, rec, name, Call{Args: []interface{}{a, b, c}}, result)
		return result, nil
	}
}

func record(ctx context.Context, rec Recorder, name string, call Call, result interface{}) {
	if rec == nil {
		return
	}

	kwargs := make([]string, len(call.Kwargs))
	for i, kw := range call.Kwargs {
		kwargs[i] = kw.Name + "=" + repr.String(kw.Value)
	}

	rec.Record(ctx, logging.LevelInfo,
		logging.F(FunctionKey, name),
		logging.F(ResultKey, repr.String(result)),
		logging.F(ArgsKey, repr.Strings(call.Args)),
		logging.F(KwargsKey, kwargs),
	)
	metrics.RecordInvocation(name)
}

// resolveName returns name, or the short runtime name of fn when name is
// empty: "pkg.loadReport" becomes "loadReport", closures keep their
// "outer.func1" suffix.
func resolveName(name string, fn interface{}) string {
	if name != "" {
		return name
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "unknown"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}
	full := f.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}
