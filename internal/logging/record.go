// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package logging

import (
	"context"
	"io"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tenantlog/internal/metrics"
	"github.com/tomtom215/tenantlog/internal/tenant"
)

// Level is the severity carried inside a record. It is data, not a transport
// filter: every record is written regardless of its level.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Fixed record keys. Fields using these keys are dropped.
const (
	TimestampKey = "timestamp"
	TenantKey    = "tenant"
	LevelKey     = "loglevel"
	MessageKey   = "message"
)

// TimestampFormat is ISO-8601 local time with microseconds and zone offset.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Field is one caller-supplied key/value pair of a record.
// Values should be JSON primitives, slices or maps of them, or strings
// produced by the repr package.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// Recorder writes structured records as single JSON lines:
//
//	{"timestamp":"...","tenant":"acme","loglevel":"INFO","message":"Incoming request","method":"GET",...}
//
// Records are level-less zerolog events, so neither the logger level nor the
// global zerolog level can drop them. A Recorder is safe for concurrent use
// when its writer is; wrap shared buffers with zerolog.SyncWriter.
type Recorder struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder writing one line per record to w.
func NewRecorder(w io.Writer, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		logger: zerolog.New(w),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Emit writes one record with the fixed keys, the message and fields.
// The tenant is read from ctx at emission time.
func (r *Recorder) Emit(ctx context.Context, level Level, message string, fields ...Field) {
	e := r.begin(ctx, level).Str(MessageKey, message)
	r.finish(e, level, fields)
}

// Record writes one record without a message key. Invocation records use
// this shape.
func (r *Recorder) Record(ctx context.Context, level Level, fields ...Field) {
	r.finish(r.begin(ctx, level), level, fields)
}

// Info emits an INFO record.
func (r *Recorder) Info(ctx context.Context, message string, fields ...Field) {
	r.Emit(ctx, LevelInfo, message, fields...)
}

// Warning emits a WARNING record.
func (r *Recorder) Warning(ctx context.Context, message string, fields ...Field) {
	r.Emit(ctx, LevelWarning, message, fields...)
}

// Error emits an ERROR record.
func (r *Recorder) Error(ctx context.Context, message string, fields ...Field) {
	r.Emit(ctx, LevelError, message, fields...)
}

// Exception emits a WARNING "Exception occurred" record for a handled error,
// with the error text and the current stack.
func (r *Recorder) Exception(ctx context.Context, err error) {
	text := ""
	if err != nil {
		text = err.Error()
	}
	r.Emit(ctx, LevelWarning, "Exception occurred",
		F("exception", text),
		F("stacktrace", string(debug.Stack())),
	)
}

func (r *Recorder) begin(ctx context.Context, level Level) *zerolog.Event {
	return r.logger.Log().
		Str(TimestampKey, r.now().Format(TimestampFormat)).
		Str(TenantKey, tenant.FromContext(ctx)).
		Str(LevelKey, string(level))
}

func (r *Recorder) finish(e *zerolog.Event, level Level, fields []Field) {
	for _, f := range fields {
		if isReserved(f.Key) {
			continue
		}
		e = appendField(e, f)
	}
	e.Send()
	metrics.RecordEmitted(string(level))
}

func isReserved(key string) bool {
	switch key {
	case TimestampKey, TenantKey, LevelKey, MessageKey:
		return true
	}
	return false
}

// appendField adds a field using zerolog's typed encoders where possible.
// Anything else goes through zerolog.InterfaceMarshalFunc (goccy/go-json).
func appendField(e *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case nil:
		return e.Interface(f.Key, nil)
	case string:
		return e.Str(f.Key, v)
	case []string:
		return e.Strs(f.Key, v)
	case bool:
		return e.Bool(f.Key, v)
	case int:
		return e.Int(f.Key, v)
	case int64:
		return e.Int64(f.Key, v)
	case float64:
		return e.Float64(f.Key, v)
	case error:
		return e.Str(f.Key, v.Error())
	default:
		return e.Interface(f.Key, v)
	}
}
