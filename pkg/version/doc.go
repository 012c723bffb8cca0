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

// Package version implements Semantic Versioning 2.0.0 precedence over
// already-decomposed versions.
//
// # Overview
//
// A Version is a numeric Core (major, minor, patch) paired with a Prerelease
// identifier sequence. Identifiers are classified as numeric or alphanumeric
// once, when the sequence is built, so repeated comparisons never re-scan
// identifier text to decide how to compare it.
//
// Precedence is decided by the first decisive step:
//
//  1. Major, then Minor, then Patch, compared numerically.
//  2. At equal cores a version without prerelease is greater than one with.
//  3. Identifiers are compared left to right: numeric by value, alphanumeric
//     byte-wise, and numeric is always lower than alphanumeric.
//  4. If one sequence is a prefix of the other, the shorter one is lower.
//  5. Otherwise the versions are equal.
//
// Build metadata never takes part in precedence and has no representation
// here.
//
// # Usage
//
// Compare decomposed operands directly:
//
//	a := version.NewVersion(version.NewCore(1, 0, 0), "alpha.1")
//	b := version.NewVersion(version.NewCore(1, 0, 0), "alpha.beta")
//	if version.Compare(a, b) == version.Less {
//	    fmt.Println("a has lower precedence")
//	}
//
// Or use the flat call surface with core triples and raw prerelease strings:
//
//	ok := version.IsLesserParts(version.NewCore(1, 0, 0), "rc.1", version.NewCore(1, 0, 0), "")
//
// Decompose a version string (the caller-side step; the comparator never
// parses):
//
//	v, err := version.ParseVersion("v1.0.0-beta.11+build.5")
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(v.String()) // Output: 1.0.0-beta.11
//
// # Malformed Input
//
// The comparator never rejects input. Identifiers outside [0-9A-Za-z-] are
// compared byte-wise as alphanumeric. A numeric identifier with leading zeros
// compares by value (01 equals 1). An empty identifier, as produced by
// "a..b", is alphanumeric and lower than any other alphanumeric identifier.
// Callers that need rejection run Prerelease.Validate or ParsePrerelease
// before comparing.
//
// # Cost
//
// A comparison is a single pass with no allocations. CostCeiling gives the
// upper bound on abstract steps for operands with n and m identifiers:
// three core steps, one presence step, one step per compared identifier
// pair and a final length step.
//
// # Error Handling
//
// ParseVersion, ParseCore and ParsePrerelease return errors wrapping:
//
//   - ErrEmptyVersion: input string is empty
//   - ErrInvalidVersion: input is not strict SemVer
//   - ErrNonNumeric: a core component is not numeric
//   - ErrNegativeComponent: a core component is negative
//   - ErrOverflow: a core component does not fit in 64 bits
//   - ErrMalformedIdentifier: identifier is empty or has illegal characters
//   - ErrLeadingZero: numeric identifier has a leading zero
package version
