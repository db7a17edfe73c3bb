// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package interceptor

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeForm      = "application/x-www-form-urlencoded"
	contentTypeMultipart = "multipart/form-data"
)

// multipartMemory bounds the memory used while reading multipart form values.
const multipartMemory = 1 << 20

// requestData is what the "Incoming request" record reports.
type requestData struct {
	get  map[string]string
	post map[string]string
	body string
	// truncated is set when the body was longer than the capture limit.
	truncated bool
}

// readRequest extracts the logged request data without consuming the body:
// whatever is read is put back in front of the unread remainder.
func readRequest(r *http.Request, maxBody int64) (requestData, error) {
	data := requestData{
		get:  lastValues(r.URL.Query()),
		post: map[string]string{},
	}

	contentType := r.Header.Get("Content-Type")
	isJSON := contentType == contentTypeJSON
	mediaType, _, _ := mime.ParseMediaType(contentType)
	isForm := r.Method == http.MethodPost && (mediaType == contentTypeForm || mediaType == contentTypeMultipart)

	if r.Body == nil || r.Body == http.NoBody || (!isJSON && !isForm) {
		return data, nil
	}

	raw, truncated, err := peekBody(r, maxBody)
	data.truncated = truncated
	if err != nil {
		return data, fmt.Errorf("failed to read request body: %w", err)
	}

	if isJSON {
		data.body = string(raw)
	}

	switch {
	case isForm && mediaType == contentTypeForm:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return data, fmt.Errorf("failed to parse form body: %w", err)
		}
		data.post = lastValues(values)
	case isForm && mediaType == contentTypeMultipart:
		post, err := multipartValues(r, raw)
		if err != nil {
			return data, err
		}
		data.post = post
	}
	return data, nil
}

// peekBody reads up to maxBody bytes (all when maxBody <= 0) and restores
// r.Body so the handler sees the complete original stream. One byte past
// the limit is read to tell a body of exactly maxBody bytes from a longer
// one; that byte is replayed but not returned.
func peekBody(r *http.Request, maxBody int64) (raw []byte, truncated bool, err error) {
	var src io.Reader = r.Body
	if maxBody > 0 {
		src = io.LimitReader(r.Body, maxBody+1)
	}
	read, err := io.ReadAll(src)
	r.Body = &replayBody{
		Reader: io.MultiReader(bytes.NewReader(read), r.Body),
		closer: r.Body,
	}
	if maxBody > 0 && int64(len(read)) > maxBody {
		return read[:maxBody], true, err
	}
	return read, false, err
}

type replayBody struct {
	io.Reader
	closer io.Closer
}

func (b *replayBody) Close() error {
	return b.closer.Close()
}

// multipartValues parses non-file form values from a copy of the body.
func multipartValues(r *http.Request, raw []byte) (map[string]string, error) {
	clone := r.Clone(r.Context())
	clone.Body = io.NopCloser(bytes.NewReader(raw))
	clone.Form = nil
	clone.PostForm = nil
	clone.MultipartForm = nil

	if err := clone.ParseMultipartForm(multipartMemory); err != nil {
		return map[string]string{}, fmt.Errorf("failed to parse multipart body: %w", err)
	}
	defer func() {
		_ = clone.MultipartForm.RemoveAll() // Explicitly ignore error - temp files only
	}()
	return lastValues(clone.MultipartForm.Value), nil
}

// lastValues flattens multi-valued parameters, keeping the last value.
func lastValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[len(v)-1]
		}
	}
	return out
}
