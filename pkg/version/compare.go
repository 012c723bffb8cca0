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
	"strings"
)

// ErrUnknownOrdering is returned by ParseOrdering for unrecognised names.
var ErrUnknownOrdering = errors.New("unknown ordering")

// Ordering is the three-way result of a precedence comparison.
type Ordering int

const (
	// Less means the left operand has lower precedence.
	Less Ordering = -1
	// Equal means both operands have the same precedence.
	Equal Ordering = 0
	// Greater means the left operand has higher precedence.
	Greater Ordering = 1
)

// String returns LESS, EQUAL or GREATER.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the ordering by name.
func (o Ordering) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (o *Ordering) UnmarshalText(b []byte) error {
	parsed, err := ParseOrdering(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOrdering accepts LESS, EQUAL or GREATER in any case, the symbols
// "<", "=", "==", ">", or the integers -1, 0, 1.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LESS", "<", "-1":
		return Less, nil
	case "EQUAL", "=", "==", "0":
		return Equal, nil
	case "GREATER", ">", "1":
		return Greater, nil
	default:
		return Equal, fmt.Errorf("%w: %q", ErrUnknownOrdering, s)
	}
}

// Reverse returns the ordering seen from the other operand.
func (o Ordering) Reverse() Ordering {
	return -o
}

// IsEqual reports o == Equal.
func (o Ordering) IsEqual() bool { return o == Equal }

// IsGreater reports o == Greater.
func (o Ordering) IsGreater() bool { return o == Greater }

// IsGreaterOrEqual reports o is Greater or Equal.
func (o Ordering) IsGreaterOrEqual() bool { return o >= Equal }

// IsLesser reports o == Less.
func (o Ordering) IsLesser() bool { return o == Less }

// IsLesserOrEqual reports o is Less or Equal.
func (o Ordering) IsLesserOrEqual() bool { return o <= Equal }

// Compare returns the precedence of a relative to b.
// It never fails and never allocates.
func Compare(a, b Version) Ordering {
	return compare(&a, &b, nil)
}

// IsEqual returns true if v and other have the same precedence.
func (v Version) IsEqual(other Version) bool {
	return Compare(v, other).IsEqual()
}

// IsGreater returns true if v has strictly higher precedence than other.
func (v Version) IsGreater(other Version) bool {
	return Compare(v, other).IsGreater()
}

// IsGreaterOrEqual returns true if v has higher or equal precedence.
func (v Version) IsGreaterOrEqual(other Version) bool {
	return Compare(v, other).IsGreaterOrEqual()
}

// IsLesser returns true if v has strictly lower precedence than other.
func (v Version) IsLesser(other Version) bool {
	return Compare(v, other).IsLesser()
}

// IsLesserOrEqual returns true if v has lower or equal precedence.
func (v Version) IsLesserOrEqual(other Version) bool {
	return Compare(v, other).IsLesserOrEqual()
}

// CompareParts compares two versions given as core triples and raw
// prerelease strings. An empty prerelease string means no prerelease.
func CompareParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) Ordering {
	return Compare(NewVersion(coreA, prereleaseA), NewVersion(coreB, prereleaseB))
}

// IsEqualParts is the flat form of Version.IsEqual.
func IsEqualParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) bool {
	return CompareParts(coreA, prereleaseA, coreB, prereleaseB).IsEqual()
}

// IsGreaterParts is the flat form of Version.IsGreater.
func IsGreaterParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) bool {
	return CompareParts(coreA, prereleaseA, coreB, prereleaseB).IsGreater()
}

// IsGreaterOrEqualParts is the flat form of Version.IsGreaterOrEqual.
func IsGreaterOrEqualParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) bool {
	return CompareParts(coreA, prereleaseA, coreB, prereleaseB).IsGreaterOrEqual()
}

// IsLesserParts is the flat form of Version.IsLesser.
func IsLesserParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) bool {
	return CompareParts(coreA, prereleaseA, coreB, prereleaseB).IsLesser()
}

// IsLesserOrEqualParts is the flat form of Version.IsLesserOrEqual.
func IsLesserOrEqualParts(coreA Core, prereleaseA string, coreB Core, prereleaseB string) bool {
	return CompareParts(coreA, prereleaseA, coreB, prereleaseB).IsLesserOrEqual()
}

// CostCeiling returns the maximum number of abstract steps a comparison of
// operands with n and m prerelease identifiers may take.
func CostCeiling(n, m int) int {
	return 5 + min(n, m)
}

// meter counts abstract comparison steps. A nil meter counts nothing.
type meter struct {
	steps int
}

func (m *meter) tick() {
	if m != nil {
		m.steps++
	}
}

func compare(a, b *Version, m *meter) Ordering {
	m.tick()
	if o := compareUint(a.Core.Major, b.Core.Major); o != Equal {
		return o
	}
	m.tick()
	if o := compareUint(a.Core.Minor, b.Core.Minor); o != Equal {
		return o
	}
	m.tick()
	if o := compareUint(a.Core.Patch, b.Core.Patch); o != Equal {
		return o
	}
	return comparePrerelease(a.Prerelease, b.Prerelease, m)
}

func comparePrerelease(a, b Prerelease, m *meter) Ordering {
	m.tick()
	switch {
	case len(a) == 0 && len(b) == 0:
		return Equal
	case len(a) == 0:
		// no prerelease outranks any prerelease
		return Greater
	case len(b) == 0:
		return Less
	}

	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		m.tick()
		if o := compareIdentifier(a[i], b[i]); o != Equal {
			return o
		}
	}

	m.tick()
	return compareInt(len(a), len(b))
}

func compareIdentifier(a, b Identifier) Ordering {
	switch {
	case a.Numeric && b.Numeric:
		return compareNumeric(a.Value, b.Value)
	case a.Numeric:
		return Less
	case b.Numeric:
		return Greater
	default:
		return Ordering(strings.Compare(a.Value, b.Value))
	}
}

// compareNumeric compares two digit strings by value without converting
// them, so identifiers wider than 64 bits still order correctly.
func compareNumeric(a, b string) Ordering {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if o := compareInt(len(a), len(b)); o != Equal {
		return o
	}
	return Ordering(strings.Compare(a, b))
}

func compareUint(a, b uint64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareInt(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
