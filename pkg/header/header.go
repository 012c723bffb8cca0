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

package header

import (
	"fmt"
	"time"
)

// APIVersion is the schema version of every semcmp document.
const APIVersion = "semcmp.nvidia.com/v1alpha1"

// Kind represents the type of a semcmp document.
type Kind string

// Valid Kind constants for all semcmp document types.
const (
	KindComparisonCases Kind = "ComparisonCases"
	KindBatchReport     Kind = "BatchReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindComparisonCases, KindBatchReport:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header contains the kind, schema version and free-form metadata of a
// document, in Kubernetes resource style.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and apiVersion and records the generation timestamp and the
// tool version in Metadata. Existing metadata entries are kept.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	opts := []Option{
		WithKind(kind),
		WithAPIVersion(apiVersion),
		WithMetadata("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if version != "" {
		opts = append(opts, WithMetadata("version", version))
	}
	for _, opt := range opts {
		opt(h)
	}
}

// Expect checks a header read from input. An empty header is accepted so
// that bare documents stay valid; a set kind or apiVersion must match.
func (h *Header) Expect(kind Kind, apiVersion string) error {
	if h.Kind != "" && !h.Kind.IsValid() {
		return fmt.Errorf("unknown kind %q", h.Kind)
	}
	if h.Kind != "" && h.Kind != kind {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, kind)
	}
	if h.APIVersion != "" && h.APIVersion != apiVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, apiVersion)
	}
	return nil
}
