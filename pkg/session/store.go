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

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/semcmp/pkg/defaults"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrStoreFull is returned when the store is at capacity.
	ErrStoreFull = errors.New("session store is full")
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for idle expiry.
func WithClock(c clock.PassiveClock) StoreOption {
	return func(s *Store) {
		s.clock = c
	}
}

// WithIdleTTL sets how long an unused session survives. Zero disables expiry.
func WithIdleTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.idleTTL = ttl
	}
}

// WithMaxSessions caps the number of live sessions. Zero means unlimited.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		s.maxSessions = n
	}
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Store owns independent sessions keyed by ID, one per caller.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	clock       clock.PassiveClock
	idleTTL     time.Duration
	maxSessions int
}

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions:    make(map[string]*entry),
		clock:       clock.RealClock{},
		idleTTL:     defaults.SessionIdleTTL,
		maxSessions: defaults.MaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new empty session and returns its ID.
func (s *Store) Create() (string, *Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.sweepLocked()
		if len(s.sessions) >= s.maxSessions {
			return "", nil, fmt.Errorf("%w: %d sessions", ErrStoreFull, len(s.sessions))
		}
	}

	id := uuid.New().String()
	sess := New()
	s.sessions[id] = &entry{
		session:  sess,
		lastUsed: s.clock.Now(),
	}

	slog.Debug("session created", "id", id, "sessions", len(s.sessions))
	return id, sess, nil
}

// Get returns the session with the given ID and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if s.expiredLocked(e) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e.lastUsed = s.clock.Now()
	return e.session, nil
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of sessions, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes idle sessions and returns how many were evicted.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	evicted := 0
	for id, e := range s.sessions {
		if s.expiredLocked(e) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		slog.Debug("sessions evicted", "count", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

func (s *Store) expiredLocked(e *entry) bool {
	return s.idleTTL > 0 && s.clock.Since(e.lastUsed) > s.idleTTL
}
