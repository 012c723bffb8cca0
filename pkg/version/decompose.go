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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Error types for decomposition and validation failures
var (
	ErrEmptyVersion        = errors.New("version string is empty")
	ErrInvalidVersion      = errors.New("version is not a valid semantic version")
	ErrNonNumeric          = errors.New("version component is not numeric")
	ErrNegativeComponent   = errors.New("version component cannot be negative")
	ErrOverflow            = errors.New("version component overflows 64 bits")
	ErrMalformedIdentifier = errors.New("prerelease identifier is malformed")
	ErrLeadingZero         = errors.New("numeric prerelease identifier has a leading zero")
)

// ParseVersion decomposes a full version string into a Version.
// Supported formats: "1.2.3", "v1.2.3", "1.2.3-alpha.1", "1.2.3-rc.1+build.5".
// The "v" prefix is optional and stripped if present. Build metadata is
// validated and then dropped. Components wider than 64 bits fail with
// ErrOverflow rather than wrapping.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		// surface overflow distinctly from grammar errors
		if oerr := checkCoreOverflow(s); oerr != nil {
			return Version{}, oerr
		}
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}

	return Version{
		Core:       NewCore(sv.Major(), sv.Minor(), sv.Patch()),
		Prerelease: SplitPrerelease(sv.Prerelease()),
	}, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
//
// Only use this for hardcoded strings or in tests. For user input or runtime data,
// always use ParseVersion and handle errors explicitly.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// ParseComponent parses a single core component.
func ParseComponent(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty component", ErrNonNumeric)
	}
	if s[0] == '-' {
		return 0, fmt.Errorf("%w: %s", ErrNegativeComponent, s)
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}
	return n, nil
}

// ParseCore parses the three core components given as decimal strings.
func ParseCore(major, minor, patch string) (Core, error) {
	var c Core
	for i, part := range [3]string{major, minor, patch} {
		n, err := ParseComponent(part)
		if err != nil {
			return Core{}, fmt.Errorf("%s: %w", componentName(i), err)
		}
		switch i {
		case 0:
			c.Major = n
		case 1:
			c.Minor = n
		case 2:
			c.Patch = n
		}
	}
	return c, nil
}

// ParseCoreString parses "Major.Minor.Patch" or "Major,Minor,Patch".
func ParseCoreString(s string) (Core, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Core{}, ErrEmptyVersion
	}

	sep := "."
	if strings.Contains(s, ",") {
		sep = ","
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Core{}, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidVersion, len(parts))
	}
	return ParseCore(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]))
}

// ParsePrerelease splits s into identifiers and validates every one of them.
func ParsePrerelease(s string) (Prerelease, error) {
	p := SplitPrerelease(s)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every identifier against the SemVer grammar.
func (p Prerelease) Validate() error {
	for i, id := range p {
		if err := ValidateIdentifier(id.Value); err != nil {
			return fmt.Errorf("identifier %d: %w", i, err)
		}
	}
	return nil
}

// ValidateIdentifier checks that s is non-empty, uses only [0-9A-Za-z-] and,
// when numeric, has no leading zero.
func ValidateIdentifier(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty identifier", ErrMalformedIdentifier)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !isAlpha(c) && c != '-' {
			return fmt.Errorf("%w: %q contains %q", ErrMalformedIdentifier, s, c)
		}
	}
	if len(s) > 1 && s[0] == '0' && isNumeric(s) {
		return fmt.Errorf("%w: %q", ErrLeadingZero, s)
	}
	return nil
}

// checkCoreOverflow reports ErrOverflow when any all-digit core component of
// s does not fit in 64 bits.
func checkCoreOverflow(s string) error {
	core := s
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	for i, part := range strings.Split(core, ".") {
		if !isNumeric(part) {
			continue
		}
		if _, err := strconv.ParseUint(part, 10, 64); errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%s: %w: %s", componentName(i), ErrOverflow, part)
		}
	}
	return nil
}

func componentName(i int) string {
	switch i {
	case 0:
		return "major"
	case 1:
		return "minor"
	case 2:
		return "patch"
	default:
		return "component " + strconv.Itoa(i)
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
