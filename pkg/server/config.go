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
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/semcmp/pkg/defaults"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig.
// SEMCMPD_RATE_LIMIT maps to the rate_limit key.
const EnvPrefix = "SEMCMPD_"

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string `koanf:"-"`
	Version string `koanf:"-"`

	// Additional Handlers to be added to the server, keyed by mux pattern
	Handlers map[string]http.HandlerFunc `koanf:"-"`

	// Server configuration
	Address string `koanf:"address"`
	Port    int    `koanf:"port"`

	// Rate limiting configuration
	RateLimit      rate.Limit `koanf:"rate_limit"`       // requests per second
	RateLimitBurst int        `koanf:"rate_limit_burst"` // burst size

	// Request limits
	MaxRequestBytes int64 `koanf:"max_request_bytes"`

	// Staging sessions
	SessionIdleTTL       time.Duration `koanf:"session_idle_ttl"`
	SessionSweepInterval time.Duration `koanf:"session_sweep_interval"`
	MaxSessions          int           `koanf:"max_sessions"`

	// Timeouts
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults, honouring PORT and SHUTDOWN_TIMEOUT_SECONDS.
func parseConfig() *Config {
	cfg := &Config{
		Name:                 "server",
		Version:              "undefined",
		Address:              "",
		Port:                 defaults.ServerPort,
		RateLimit:            defaults.ServerRateLimit,
		RateLimitBurst:       defaults.ServerRateLimitBurst,
		MaxRequestBytes:      defaults.MaxRequestBodyBytes,
		SessionIdleTTL:       defaults.SessionIdleTTL,
		SessionSweepInterval: defaults.SessionSweepInterval,
		MaxSessions:          defaults.MaxSessions,
		ReadTimeout:          defaults.ServerReadTimeout,
		ReadHeaderTimeout:    defaults.ServerReadHeaderTimeout,
		WriteTimeout:         defaults.ServerWriteTimeout,
		IdleTimeout:          defaults.ServerIdleTimeout,
		ShutdownTimeout:      defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt("PORT"); ok {
		cfg.Port = port
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if seconds, ok := envInt("SHUTDOWN_TIMEOUT_SECONDS"); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LoadConfig layers configuration, lowest precedence first: defaults
// (including PORT and SHUTDOWN_TIMEOUT_SECONDS), the optional YAML file at
// path, then SEMCMPD_* environment variables.
func LoadConfig(path string) (*Config, error) {
	base := parseConfig()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"address":                base.Address,
		"port":                   base.Port,
		"rate_limit":             float64(base.RateLimit),
		"rate_limit_burst":       base.RateLimitBurst,
		"max_request_bytes":      base.MaxRequestBytes,
		"session_idle_ttl":       base.SessionIdleTTL,
		"session_sweep_interval": base.SessionSweepInterval,
		"max_sessions":           base.MaxSessions,
		"read_timeout":           base.ReadTimeout,
		"read_header_timeout":    base.ReadHeaderTimeout,
		"write_timeout":          base.WriteTimeout,
		"idle_timeout":           base.IdleTimeout,
		"shutdown_timeout":       base.ShutdownTimeout,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if err := k.Unmarshal("", base); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive, got %d", c.RateLimitBurst)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions cannot be negative, got %d", c.MaxSessions)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}
