// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package interceptor

import (
	"bytes"
	"net/http"
)

// bufferedResponseWriter holds the handler's response until the interceptor
// decides whether it reaches the client. Headers written by the handler live
// in their own map so a failed request leaks none of them.
type bufferedResponseWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedResponseWriter() *bufferedResponseWriter {
	return &bufferedResponseWriter{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (bw *bufferedResponseWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedResponseWriter) WriteHeader(code int) {
	if bw.wroteHeader {
		return
	}
	bw.status = code
	bw.wroteHeader = true
}

func (bw *bufferedResponseWriter) Write(b []byte) (int, error) {
	if !bw.wroteHeader {
		bw.WriteHeader(http.StatusOK)
	}
	return bw.body.Write(b)
}

// flushTo copies the buffered response to w.
func (bw *bufferedResponseWriter) flushTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, v := range bw.header {
		dst[k] = v
	}
	w.WriteHeader(bw.status)
	if bw.body.Len() == 0 {
		return nil
	}
	_, err := w.Write(bw.body.Bytes())
	return err
}
