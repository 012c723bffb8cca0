// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"GET /test": okHandler}))

	if s.config == nil {
		t.Fatal("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.httpServer.ReadHeaderTimeout != s.config.ReadHeaderTimeout {
		t.Errorf("expected ReadHeaderTimeout %v, got %v", s.config.ReadHeaderTimeout, s.httpServer.ReadHeaderTimeout)
	}
	if s.httpServer.ErrorLog == nil {
		t.Error("expected ErrorLog to route through the structured logger")
	}
}

func TestOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("semcmpd"),
		WithVersion("v1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"POST /v1/compare": okHandler}),
	)

	if s.config.Name != "semcmpd" || s.config.Version != "v1.2.3" {
		t.Errorf("unexpected identity %s %s", s.config.Name, s.config.Version)
	}
	if s.config.Port != 9090 || s.config.RateLimit != 500 {
		t.Errorf("expected custom config, got port=%d rate=%v", s.config.Port, s.config.RateLimit)
	}
	if _, ok := s.config.Handlers["POST /v1/compare"]; !ok {
		t.Error("expected compare handler")
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		t.Error("expected default root handler")
	}
	if !strings.HasSuffix(s.httpServer.Addr, ":9090") {
		t.Errorf("unexpected addr %s", s.httpServer.Addr)
	}
}

func TestDefaultServerName(t *testing.T) {
	if s := New(); s.config.Name != "server" {
		t.Errorf("expected default name 'server', got %s", s.config.Name)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestRouting(t *testing.T) {
	s := New(
		WithName("semcmpd"),
		WithHandler(map[string]http.HandlerFunc{"GET /v1/things/{id}": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.PathValue("id")))
		}}),
	)
	s.setReady(true)
	h := s.Handler()

	tests := []struct {
		name     string
		method   string
		path     string
		status   int
		contains string
	}{
		{"root lists routes", http.MethodGet, "/", http.StatusOK, "GET /v1/things/{id}"},
		{"root rejects post", http.MethodPost, "/", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, "NOT_FOUND"},
		{"path value", http.MethodGet, "/v1/things/abc", http.StatusOK, "abc"},
		{"health", http.MethodGet, "/health", http.StatusOK, "healthy"},
		{"ready", http.MethodGet, "/ready", http.StatusOK, "ready"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "semcmp_http_requests_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q, got %s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{"ready state", true, http.StatusOK},
		{"not ready state", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			rec := httptest.NewRecorder()
			s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}
			if tt.ready != (resp.Status == "ready") {
				t.Errorf("unexpected status %q", resp.Status)
			}
		})
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1

	s := New(WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{"GET /test": okHandler}))
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected first request to succeed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header to be set")
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	deadline := time.Now().Add(time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !s.isReady() {
		t.Fatal("server never became ready")
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
	if s.isReady() {
		t.Error("expected server to be not ready after shutdown")
	}
}

func TestRunStopsWorkers(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	var stopped atomic.Bool
	s := New(WithConfig(cfg), WithWorker(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !stopped.Load() {
		t.Error("expected worker to observe cancellation")
	}
}

func TestRunWorkerFailureStopsServer(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	boom := errors.New("worker failed")
	s := New(WithConfig(cfg), WithWorker(func(context.Context) error {
		return boom
	}))

	err := s.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected worker error, got %v", err)
	}
}
