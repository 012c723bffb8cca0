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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/semcmp/pkg/logging"
	"github.com/NVIDIA/semcmp/pkg/server"
	"github.com/NVIDIA/semcmp/pkg/session"
)

const (
	name           = "semcmpd"
	versionDefault = "dev"

	// EnvConfigPath names an optional YAML file layered under SEMCMPD_* variables.
	EnvConfigPath = "SEMCMPD_CONFIG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/semcmp/pkg/api.buildVersion=1.0.0"
	buildVersion = versionDefault
	commit       = "unknown"
	date         = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, loads configuration, wires the comparison and
// session routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, buildVersion)
	slog.Info("starting",
		"name", name,
		"version", buildVersion,
		"commit", commit,
		"date", date,
	)

	cfg, err := server.LoadConfig(os.Getenv(EnvConfigPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s := newServer(cfg, clock.RealClock{})

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer wires the session store, handlers and sweeper into a server.
func newServer(cfg *server.Config, clk clock.WithTicker) *server.Server {
	store := session.NewStore(
		session.WithClock(clk),
		session.WithIdleTTL(cfg.SessionIdleTTL),
		session.WithMaxSessions(cfg.MaxSessions),
	)
	h := NewHandler(store)

	return server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(buildVersion),
		server.WithHandler(h.Routes()),
		server.WithWorker(Sweeper(store, clk, cfg.SessionSweepInterval)),
	)
}
