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

// Package server provides the HTTP runtime shared by semcmp services.
//
// A Server owns the listener, the ServeMux, the middleware chain and the
// lifecycle. API packages contribute handlers keyed by ServeMux pattern and
// never touch the runtime directly.
//
// # Middleware
//
// Every API handler is wrapped, outermost first, with:
//
//   - Prometheus RED metrics labelled by the matched route pattern
//   - API version negotiation (Accept: application/vnd.nvidia.semcmp.v1+json)
//   - Request ID propagation via X-Request-Id
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request body size limit
//   - Debug request logging
//
// System routes (/health, /ready, /metrics) bypass the chain.
//
// # Usage
//
//	cfg, err := server.LoadConfig(os.Getenv("SEMCMPD_CONFIG"))
//	if err != nil {
//	    return err
//	}
//	s := server.New(
//	    server.WithConfig(cfg),
//	    server.WithName("semcmpd"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "POST /v1/compare": h.Compare,
//	    }),
//	    server.WithWorker(sweeper),
//	)
//	return s.Run(ctx)
//
// # Configuration
//
// LoadConfig layers defaults, an optional YAML file and SEMCMPD_* variables
// using koanf. PORT and SHUTDOWN_TIMEOUT_SECONDS are honoured as defaults.
//
// # Errors
//
// Handlers report failures with WriteErrorFromErr. A StructuredError from
// pkg/errors supplies the code; HTTPStatusFromCode picks the status:
//
//	INVALID_REQUEST, OVERFLOW, MALFORMED_IDENTIFIER  400
//	NOT_FOUND, OUT_OF_RANGE                          404
//	METHOD_NOT_ALLOWED                               405
//	NOT_STAGED                                       409
//	RATE_LIMIT_EXCEEDED                              429
//	INTERNAL                                         500
//	SERVICE_UNAVAILABLE                              503
//	TIMEOUT                                          504
package server
