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

package version

import (
	"strconv"
	"strings"
)

// Separator splits a prerelease string into identifiers.
const Separator = "."

// Core holds the numeric major, minor and patch components of a version.
type Core struct {
	Major uint64 `json:"major" yaml:"major"`
	Minor uint64 `json:"minor" yaml:"minor"`
	Patch uint64 `json:"patch" yaml:"patch"`
}

// NewCore creates a Core from its three components.
func NewCore(major, minor, patch uint64) Core {
	return Core{
		Major: major,
		Minor: minor,
		Patch: patch,
	}
}

// String returns "Major.Minor.Patch".
func (c Core) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(c.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(c.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(c.Patch, 10))
	return b.String()
}

// Identifier is a single prerelease token together with its classification.
// Numeric is true when Value is non-empty and made only of ASCII digits.
type Identifier struct {
	Value   string
	Numeric bool
}

// NewIdentifier classifies s and returns the resulting Identifier.
func NewIdentifier(s string) Identifier {
	return Identifier{
		Value:   s,
		Numeric: isNumeric(s),
	}
}

// String returns the raw identifier text.
func (id Identifier) String() string {
	return id.Value
}

// MarshalText renders the identifier as its raw text.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.Value), nil
}

// Prerelease is an ordered identifier sequence. An empty sequence means the
// version has no prerelease.
type Prerelease []Identifier

// SplitPrerelease decomposes s on Separator and classifies every token.
// An empty string yields an empty sequence.
func SplitPrerelease(s string) Prerelease {
	if s == "" {
		return nil
	}

	p := make(Prerelease, 0, strings.Count(s, Separator)+1)
	for {
		token, rest, found := strings.Cut(s, Separator)
		p = append(p, NewIdentifier(token))
		if !found {
			return p
		}
		s = rest
	}
}

// Len returns the number of identifiers.
func (p Prerelease) Len() int {
	return len(p)
}

// Values returns the raw identifier strings.
func (p Prerelease) Values() []string {
	out := make([]string, len(p))
	for i, id := range p {
		out[i] = id.Value
	}
	return out
}

// String joins the identifiers with Separator.
func (p Prerelease) String() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0].Value
	}

	var b strings.Builder
	for i, id := range p {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(id.Value)
	}
	return b.String()
}

// Version is the unit of comparison: a numeric core and a prerelease
// sequence. Build metadata is dropped before a Version is built.
type Version struct {
	Core       Core       `json:"core" yaml:"core"`
	Prerelease Prerelease `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
}

// NewVersion creates a Version from a core and a raw prerelease string.
func NewVersion(core Core, prerelease string) Version {
	return Version{
		Core:       core,
		Prerelease: SplitPrerelease(prerelease),
	}
}

// IsPrerelease reports whether the version carries prerelease identifiers.
func (v Version) IsPrerelease() bool {
	return len(v.Prerelease) > 0
}

// String returns "Major.Minor.Patch[-prerelease]".
func (v Version) String() string {
	if len(v.Prerelease) == 0 {
		return v.Core.String()
	}
	return v.Core.String() + "-" + v.Prerelease.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
