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

// Package api wires the semcmpd HTTP API: the direct comparison endpoint,
// the staged comparison sessions, and the Serve entry point.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/semcmp/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Loading server configuration (defaults, optional YAML file named by
//     SEMCMPD_CONFIG, SEMCMPD_* environment variables)
//   - Owning the session store and its idle sweeper
//   - Mapping version and session errors to structured API errors
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, body limits, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - POST   /v1/compare                                  - Compare two operands
//   - POST   /v1/sessions                                 - Create a staging session
//   - GET    /v1/sessions/{id}                            - Describe a session
//   - PUT    /v1/sessions/{id}/{slot}                     - Stage operand a or b
//   - GET    /v1/sessions/{id}/predicates                 - Compare the staged pair
//   - GET    /v1/sessions/{id}/{slot}/identifiers         - List staged identifiers
//   - GET    /v1/sessions/{id}/{slot}/identifiers/{index} - One staged identifier
//   - DELETE /v1/sessions/{id}                            - Discard a session
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Operands
//
// An operand is either a full version string or an already decomposed core
// with an optional prerelease:
//
//	{"version": "1.0.0-alpha.1"}
//	{"core": [1, 0, 0], "prerelease": "alpha.1"}
//
// Core components are unsigned 64-bit integers. Wider values fail with
// OVERFLOW; prerelease identifiers outside [0-9A-Za-z-] or numeric
// identifiers with leading zeros fail with MALFORMED_IDENTIFIER.
//
// Example curl commands:
//
//	curl -s -X POST localhost:8080/v1/compare \
//	  -d '{"a":{"version":"1.0.0-alpha"},"b":{"core":[1,0,0]}}'
//
//	id=$(curl -s -X POST localhost:8080/v1/sessions | jq -r .id)
//	curl -s -X PUT localhost:8080/v1/sessions/$id/a -d '{"core":[1,0,0],"prerelease":"rc.1"}'
//	curl -s -X PUT localhost:8080/v1/sessions/$id/b -d '{"core":[1,0,0]}'
//	curl -s localhost:8080/v1/sessions/$id/predicates
//
// # Errors
//
// Querying predicates before both slots are staged returns 409 NOT_STAGED.
// An identifier index outside the staged sequence returns 404 OUT_OF_RANGE.
// Unknown or expired sessions return 404 NOT_FOUND, and a full store
// returns 503 SERVICE_UNAVAILABLE.
package api
