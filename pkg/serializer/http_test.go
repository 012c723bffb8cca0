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

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/semcmp/pkg/defaults"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{Message: "success", Code: 200}

	RespondJSON(w, http.StatusCreated, data)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("got %+v, want %+v", result, data)
	}
}

func TestRespondJSON_BuffersBeforeWritingHeaders(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be encoded
	RespondJSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestNewHttpReader_Defaults(t *testing.T) {
	reader := NewHttpReader()

	if reader.Client == nil {
		t.Fatal("expected non-nil Client")
	}
	if reader.Client.Timeout != defaults.HTTPClientTimeout {
		t.Errorf("expected timeout %v, got %v", defaults.HTTPClientTimeout, reader.Client.Timeout)
	}
	if reader.UserAgent != HttpReaderUserAgent {
		t.Errorf("expected user agent %q, got %q", HttpReaderUserAgent, reader.UserAgent)
	}
	if reader.MaxBytes != HttpReaderMaxBytes {
		t.Errorf("expected max bytes %d, got %d", HttpReaderMaxBytes, reader.MaxBytes)
	}
}

func TestHttpReader_ReadWithContext(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	reader := NewHttpReader(
		WithClient(srv.Client()),
		WithUserAgent("semcmp-test"),
		WithTotalTimeout(5*time.Second),
		WithMaxBytes(32),
	)

	data, err := reader.ReadWithContext(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("ReadWithContext failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want hello", data)
	}
	if gotAgent != "semcmp-test" {
		t.Errorf("expected custom user agent, got %q", gotAgent)
	}

	if _, err := reader.ReadWithContext(context.Background(), srv.URL+"/big"); err == nil {
		t.Error("expected error for oversized body")
	}
	if _, err := reader.ReadWithContext(context.Background(), srv.URL+"/fail"); err == nil {
		t.Error("expected error for non-200 status")
	}
	if _, err := reader.ReadWithContext(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestHttpReader_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHttpReader(WithClient(srv.Client())).ReadWithContext(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
