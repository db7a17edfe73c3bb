// Tenantlog - Tenant-aware structured request logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tenantlog

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	serveErr    error
	serveBlock  bool
	shutdownErr error
	serveCount  atomic.Int32
	shutdownCnt atomic.Int32
	serveCalled chan struct{}
	stopCh      chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		serveCalled: make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
	}
}

func (m *mockHTTPServer) Serve(l net.Listener) error {
	defer l.Close()
	m.serveCount.Add(1)

	select {
	case m.serveCalled <- struct{}{}:
	default:
	}

	if m.serveErr != nil {
		return m.serveErr
	}
	if m.serveBlock {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCnt.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

const loopback = "127.0.0.1:0"

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero", 0, 10 * time.Second},
		{"negative", -5 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newMockHTTPServer(), loopback, tt.timeout)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, svc.shutdownTimeout)
		}
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("shuts down gracefully on context cancellation", func(t *testing.T) {
		t.Parallel()

		server := newMockHTTPServer()
		server.serveBlock = true
		svc := NewHTTPServerService(server, loopback, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		select {
		case <-server.serveCalled:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		if svc.Addr() == "" {
			t.Error("expected bound address while running")
		}

		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after context cancellation")
		}

		if server.shutdownCnt.Load() != 1 {
			t.Errorf("expected 1 Shutdown call, got %d", server.shutdownCnt.Load())
		}
		if svc.Addr() != "" {
			t.Errorf("expected no bound address after stop, got %q", svc.Addr())
		}
	})

	t.Run("returns serve failure", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("accept failed")
		server := newMockHTTPServer()
		server.serveErr = wantErr
		svc := NewHTTPServerService(server, loopback, time.Second)

		if err := svc.Serve(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})

	t.Run("returns bind failure without serving", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("address already in use")
		server := newMockHTTPServer()
		svc := NewHTTPServerService(server, ":1", time.Second)
		svc.listen = func(string, string) (net.Listener, error) {
			return nil, wantErr
		}

		if err := svc.Serve(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if server.serveCount.Load() != 0 {
			t.Error("server must not serve without a listener")
		}
	})

	t.Run("returns shutdown failure", func(t *testing.T) {
		t.Parallel()

		shutdownErr := errors.New("shutdown timeout")
		server := newMockHTTPServer()
		server.serveBlock = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, loopback, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		<-server.serveCalled
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("expected shutdown error, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerService_RealServer(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "pong")
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(srv, loopback, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for svc.Addr() == "" {
		if time.Now().After(deadline) {
			t.Fatal("server did not bind")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get("http://" + svc.Addr() + "/ping")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("expected pong, got %q", body)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	t.Parallel()

	server := newMockHTTPServer()
	server.serveBlock = true
	svc := NewHTTPServerService(server, loopback, time.Second)

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.serveCalled:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}

	cancel()
	<-errCh

	if server.shutdownCnt.Load() < 1 {
		t.Error("server Shutdown was not called")
	}
	if svc.String() != "http-server" {
		t.Errorf("expected 'http-server', got %q", svc.String())
	}
}
