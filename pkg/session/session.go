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
	"sync"

	"github.com/NVIDIA/semcmp/pkg/version"
)

var (
	// ErrNotStaged is returned by predicates when slot A or B has not been set.
	ErrNotStaged = errors.New("both versions must be staged before comparing")
	// ErrIndexOutOfRange is returned when an identifier index is outside the staged sequence.
	ErrIndexOutOfRange = errors.New("identifier index out of range")
	// ErrInvalidSlot is returned when a slot name is neither "a" nor "b".
	ErrInvalidSlot = errors.New("slot must be a or b")
)

// Slot names one of the two staged operands.
type Slot string

const (
	// SlotA holds the left-hand operand.
	SlotA Slot = "a"
	// SlotB holds the right-hand operand.
	SlotB Slot = "b"
)

// ParseSlot accepts "a", "A", "b" or "B".
func ParseSlot(s string) (Slot, error) {
	switch s {
	case "a", "A":
		return SlotA, nil
	case "b", "B":
		return SlotB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
}

// State describes which slots currently hold a version.
type State string

const (
	// StateEmpty means neither slot is set.
	StateEmpty State = "EMPTY"
	// StateASet means only A is set.
	StateASet State = "A_SET"
	// StateBSet means only B is set.
	StateBSet State = "B_SET"
	// StateBothSet means both slots are set and queries can be answered.
	StateBothSet State = "BOTH_SET"
)

// Session stages two versions, A and B, and answers precedence queries about
// the pair. Each setter replaces its slot wholesale and queries always read
// the most recent values. A Session must not be shared between tenants;
// create one per caller.
type Session struct {
	mu sync.RWMutex
	a  *version.Version
	b  *version.Version
}

// New returns an empty Session.
func New() *Session {
	return &Session{}
}

// SetA decomposes prerelease on "." and stages the result as operand A.
func (s *Session) SetA(core version.Core, prerelease string) {
	s.Set(SlotA, core, prerelease)
}

// SetB decomposes prerelease on "." and stages the result as operand B.
func (s *Session) SetB(core version.Core, prerelease string) {
	s.Set(SlotB, core, prerelease)
}

// Set stages a version into the given slot. Unknown slots are ignored.
func (s *Session) Set(slot Slot, core version.Core, prerelease string) {
	v := version.NewVersion(core, prerelease)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch slot {
	case SlotA:
		s.a = &v
	case SlotB:
		s.b = &v
	}
}

// State reports which slots are set.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.a != nil && s.b != nil:
		return StateBothSet
	case s.a != nil:
		return StateASet
	case s.b != nil:
		return StateBSet
	default:
		return StateEmpty
	}
}

// Compare returns the precedence of A relative to B.
func (s *Session) Compare() (version.Ordering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.a == nil || s.b == nil {
		return version.Equal, ErrNotStaged
	}
	return version.Compare(*s.a, *s.b), nil
}

// IsEqual reports whether A and B have the same precedence.
func (s *Session) IsEqual() (bool, error) {
	return s.query(version.Ordering.IsEqual)
}

// IsGreater reports whether A has strictly higher precedence than B.
func (s *Session) IsGreater() (bool, error) {
	return s.query(version.Ordering.IsGreater)
}

// IsGreaterOrEqual reports whether A has higher or equal precedence.
func (s *Session) IsGreaterOrEqual() (bool, error) {
	return s.query(version.Ordering.IsGreaterOrEqual)
}

// IsLesser reports whether A has strictly lower precedence than B.
func (s *Session) IsLesser() (bool, error) {
	return s.query(version.Ordering.IsLesser)
}

// IsLesserOrEqual reports whether A has lower or equal precedence.
func (s *Session) IsLesserOrEqual() (bool, error) {
	return s.query(version.Ordering.IsLesserOrEqual)
}

func (s *Session) query(view func(version.Ordering) bool) (bool, error) {
	o, err := s.Compare()
	if err != nil {
		return false, err
	}
	return view(o), nil
}

// ANumIdentifiers returns the number of staged identifiers in A, or 0 if A is unset.
func (s *Session) ANumIdentifiers() int {
	return s.NumIdentifiers(SlotA)
}

// AIdentifier returns identifier i of A.
func (s *Session) AIdentifier(i int) (string, error) {
	return s.Identifier(SlotA, i)
}

// BNumIdentifiers returns the number of staged identifiers in B, or 0 if B is unset.
func (s *Session) BNumIdentifiers() int {
	return s.NumIdentifiers(SlotB)
}

// BIdentifier returns identifier i of B.
func (s *Session) BIdentifier(i int) (string, error) {
	return s.Identifier(SlotB, i)
}

// NumIdentifiers returns the identifier count of a slot.
func (s *Session) NumIdentifiers(slot Slot) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v := s.slot(slot); v != nil {
		return v.Prerelease.Len()
	}
	return 0
}

// Identifier returns identifier i of a slot. An unset slot has no
// identifiers, so every index is out of range.
func (s *Session) Identifier(slot Slot, i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.slot(slot)
	n := 0
	if v != nil {
		n = v.Prerelease.Len()
	}
	if i < 0 || i >= n {
		return "", fmt.Errorf("%w: slot %s index %d, have %d", ErrIndexOutOfRange, slot, i, n)
	}
	return v.Prerelease[i].Value, nil
}

// Identifiers returns a copy of the raw identifiers staged in a slot.
func (s *Session) Identifiers(slot Slot) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v := s.slot(slot); v != nil {
		return v.Prerelease.Values()
	}
	return []string{}
}

// Staged returns the version held in a slot and whether it is set.
func (s *Session) Staged(slot Slot) (version.Version, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v := s.slot(slot); v != nil {
		return *v, true
	}
	return version.Version{}, false
}

// slot must be called with s.mu held.
func (s *Session) slot(slot Slot) *version.Version {
	switch slot {
	case SlotA:
		return s.a
	case SlotB:
		return s.b
	default:
		return nil
	}
}
