// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package interceptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tenantlog/internal/logging"
	"github.com/tomtom215/tenantlog/internal/metrics"
)

// Record messages.
const (
	MessageIncoming  = "Incoming request"
	MessageOutgoing  = "Outgoing response"
	MessageException = "Exception occurred"
)

// GenericErrorMessage is the only failure detail a client ever sees.
const GenericErrorMessage = "An internal server error occurred. Please try again later."

// DefaultMaxBodyBytes bounds how much of a request body is captured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Recorder is the part of *logging.Recorder used here.
type Recorder interface {
	Emit(ctx context.Context, level logging.Level, message string, fields ...logging.Field)
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithMaxBodyBytes limits the captured request body. Zero or less captures
// the whole body. The handler always receives the complete body.
func WithMaxBodyBytes(n int64) Option {
	return func(i *Interceptor) {
		i.maxBodyBytes = n
	}
}

// WithSkipper excludes requests for which skip returns true. Skipped
// requests are passed through untouched and produce no records.
func WithSkipper(skip func(*http.Request) bool) Option {
	return func(i *Interceptor) {
		i.skip = skip
	}
}

// Interceptor records every request, response and handler failure passing
// through it. Each request moves through received, then either responded or
// excepted:
//
//	received   INFO  "Incoming request"   before the handler runs
//	responded  INFO  "Outgoing response"  after the handler returns, before the client sees it
//	excepted   ERROR "Exception occurred" when the handler panics or returns an error
//
// On the excepted path the handler's output is discarded and the client
// gets a 500 with a generic JSON error body.
type Interceptor struct {
	rec          Recorder
	maxBodyBytes int64
	skip         func(*http.Request) bool
}

// New creates an Interceptor emitting through rec.
func New(rec Recorder, opts ...Option) *Interceptor {
	i := &Interceptor{
		rec:          rec,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Middleware wraps next. A panic in next is the request's failure;
// http.ErrAbortHandler is re-raised so the server can abort the connection.
//
// Installed around a whole router, it also records the router's own
// responses (404, 405) and those of any middleware it wraps, such as a
// rate limiter's 429.
func (i *Interceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if i.skip != nil && i.skip(r) {
			next.ServeHTTP(w, r)
			return
		}
		i.serve(w, r, func(bw http.ResponseWriter, r *http.Request) error {
			next.ServeHTTP(bw, r)
			return nil
		})
	})
}

// HandlerFunc adapts an error-returning handler. A returned error is treated
// exactly like a panic.
//
// The stacktrace of a returned error cannot point at where the error was
// created. It lists the error's wrap chain, outermost first, followed by the
// stack of the goroutine that received the error.
//
// Behind an enclosing Middleware the request is already being recorded, so
// the handler runs directly and a returned error is handed to the enclosing
// interceptor. A skipped request produces no records; a failure still gets
// the generic 500 and nothing the handler wrote reaches the client.
func (i *Interceptor) HandlerFunc(fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if intercepted(r.Context()) {
			if err := fn(w, r); err != nil {
				panic(returnedError{err: err})
			}
			return
		}
		if i.skip != nil && i.skip(r) {
			i.serveSkipped(w, r, fn)
			return
		}
		i.serve(w, r, fn)
	})
}

// interceptedKey marks a request context as being recorded by an Interceptor.
type interceptedKey struct{}

func intercepted(ctx context.Context) bool {
	v, _ := ctx.Value(interceptedKey{}).(bool)
	return v
}

// returnedError carries an error returned by a nested HandlerFunc up to the
// interceptor recording the request.
type returnedError struct {
	err error
}

func (i *Interceptor) serve(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request) error) {
	ctx := r.Context()

	i.received(ctx, r)

	r = r.WithContext(context.WithValue(ctx, interceptedKey{}, true))
	bw := newBufferedResponseWriter()
	if stack, err := invoke(fn, bw, r); err != nil {
		i.excepted(ctx, r, err, stack)
		writeGenericError(w)
		metrics.RecordIntercepted(r.Method, strconv.Itoa(http.StatusInternalServerError))
		return
	}

	i.responded(ctx, bw)
	if err := bw.flushTo(w); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("path", r.URL.Path).Msg("Failed to write buffered response")
	}
	metrics.RecordIntercepted(r.Method, strconv.Itoa(bw.status))
}

func (i *Interceptor) serveSkipped(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request) error) {
	bw := newBufferedResponseWriter()
	if err := fn(bw, r); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Skipped handler failed")
		writeGenericError(w)
		return
	}
	if err := bw.flushTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("Failed to write buffered response")
	}
}

func (i *Interceptor) received(ctx context.Context, r *http.Request) {
	data, err := readRequest(r, i.maxBodyBytes)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", r.URL.Path).Msg("Request captured partially")
	}
	fields := []logging.Field{
		logging.F("method", r.Method),
		logging.F("path", r.URL.Path),
		logging.F("GET", data.get),
		logging.F("POST", data.post),
		logging.F("body", data.body),
	}
	if data.truncated {
		fields = append(fields, logging.F("body_truncated", true))
		logging.Ctx(ctx).Warn().
			Int64("max_body_bytes", i.maxBodyBytes).
			Str("path", r.URL.Path).
			Msg("Request body exceeds capture limit, record truncated")
	}
	i.rec.Emit(ctx, logging.LevelInfo, MessageIncoming, fields...)
}

func (i *Interceptor) responded(ctx context.Context, bw *bufferedResponseWriter) {
	i.rec.Emit(ctx, logging.LevelInfo, MessageOutgoing,
		logging.F("status_code", bw.status),
		logging.F("reason_phrase", reasonPhrase(bw.status)),
		logging.F("content", strings.ToValidUTF8(bw.body.String(), "\uFFFD")),
	)
}

func (i *Interceptor) excepted(ctx context.Context, r *http.Request, err error, stack []byte) {
	i.rec.Emit(ctx, logging.LevelError, MessageException,
		logging.F("exception", err.Error()),
		logging.F("path", r.URL.Path),
		logging.F("stacktrace", string(stack)),
	)
	metrics.RecordInterceptorException()
	logging.Ctx(ctx).Debug().Str("path", r.URL.Path).Msg("Handler failed, generic error returned")
}

// invoke runs fn and reports its failure with the stack at the point of
// failure. A panic value that is not an error is formatted with %v.
func invoke(fn func(http.ResponseWriter, *http.Request) error, w http.ResponseWriter, r *http.Request) (stack []byte, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value is compared directly by net/http
			panic(p)
		}
		switch v := p.(type) {
		case returnedError:
			err = v.err
			stack = returnedErrorTrace(v.err)
		case error:
			err = v
			stack = debug.Stack()
		default:
			err = fmt.Errorf("%v", p)
			stack = debug.Stack()
		}
	}()

	if err = fn(w, r); err != nil {
		return returnedErrorTrace(err), err
	}
	return nil, nil
}

// returnedErrorTrace renders the wrap chain of err, one "type: message" line
// per layer, followed by the current goroutine stack.
func returnedErrorTrace(err error) []byte {
	var b bytes.Buffer
	b.WriteString("error chain:\n")
	for e := err; e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(&b, "\t%T: %s\n", e, e.Error())
	}
	b.WriteString("\n")
	b.Write(debug.Stack())
	return b.Bytes()
}

func reasonPhrase(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown Status Code"
}

var genericErrorBody = mustMarshal(map[string]string{"error": GenericErrorMessage})

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func writeGenericError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if _, err := w.Write(genericErrorBody); err != nil {
		logging.Debug().Err(err).Msg("Failed to write error response")
	}
}
