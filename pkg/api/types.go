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
	"encoding/json"
	"fmt"

	cerrors "github.com/NVIDIA/semcmp/pkg/errors"
	"github.com/NVIDIA/semcmp/pkg/session"
	"github.com/NVIDIA/semcmp/pkg/version"
)

// OperandRequest describes one version. Either Version is set, or Core
// (exactly three components) with an optional dot-separated Prerelease.
type OperandRequest struct {
	Version    string        `json:"version,omitempty"`
	Core       []json.Number `json:"core,omitempty"`
	Prerelease string        `json:"prerelease,omitempty"`
}

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	A *OperandRequest `json:"a"`
	B *OperandRequest `json:"b"`
}

// PredicatesResponse carries the three-way ordering of A relative to B and
// the five predicates derived from it.
type PredicatesResponse struct {
	Ordering         version.Ordering `json:"ordering"`
	IsEqual          bool             `json:"isEqual"`
	IsGreater        bool             `json:"isGreater"`
	IsGreaterOrEqual bool             `json:"isGreaterOrEqual"`
	IsLesser         bool             `json:"isLesser"`
	IsLesserOrEqual  bool             `json:"isLesserOrEqual"`
}

// SessionResponse describes a staging session.
type SessionResponse struct {
	ID    string         `json:"id"`
	State session.State  `json:"state"`
	A     *StagedOperand `json:"a,omitempty"`
	B     *StagedOperand `json:"b,omitempty"`
}

// StagedOperand is the content of one staged slot.
type StagedOperand struct {
	Version     string   `json:"version"`
	Identifiers []string `json:"identifiers"`
}

// IdentifiersResponse lists the prerelease identifiers staged in a slot.
type IdentifiersResponse struct {
	Slot        session.Slot `json:"slot"`
	Count       int          `json:"count"`
	Identifiers []string     `json:"identifiers"`
}

// IdentifierResponse is a single identifier at Index.
type IdentifierResponse struct {
	Slot       session.Slot `json:"slot"`
	Index      int          `json:"index"`
	Identifier string       `json:"identifier"`
}

func newPredicates(o version.Ordering) PredicatesResponse {
	return PredicatesResponse{
		Ordering:         o,
		IsEqual:          o.IsEqual(),
		IsGreater:        o.IsGreater(),
		IsGreaterOrEqual: o.IsGreaterOrEqual(),
		IsLesser:         o.IsLesser(),
		IsLesserOrEqual:  o.IsLesserOrEqual(),
	}
}

// Resolve decomposes the operand into a core and a validated prerelease string.
func (o *OperandRequest) Resolve() (version.Core, string, error) {
	if o == nil {
		return version.Core{}, "", cerrors.New(cerrors.ErrCodeInvalidRequest, "operand is required")
	}

	if o.Version != "" {
		if len(o.Core) > 0 || o.Prerelease != "" {
			return version.Core{}, "", cerrors.New(cerrors.ErrCodeInvalidRequest,
				"operand must set either version or core, not both")
		}
		v, err := version.ParseVersion(o.Version)
		if err != nil {
			return version.Core{}, "", classify(err, "invalid version")
		}
		return v.Core, v.Prerelease.String(), nil
	}

	if len(o.Core) != 3 {
		return version.Core{}, "", cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
			"core must have exactly 3 components", map[string]any{"components": len(o.Core)})
	}
	core, err := version.ParseCore(o.Core[0].String(), o.Core[1].String(), o.Core[2].String())
	if err != nil {
		return version.Core{}, "", classify(err, "invalid core")
	}
	if _, err := version.ParsePrerelease(o.Prerelease); err != nil {
		return version.Core{}, "", classify(err, fmt.Sprintf("invalid prerelease %q", o.Prerelease))
	}
	return core, o.Prerelease, nil
}
