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
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplitPrerelease(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		numeric  []bool
	}{
		{
			name:     "empty",
			input:    "",
			expected: []string{},
			numeric:  []bool{},
		},
		{
			name:     "single alphanumeric",
			input:    "alpha",
			expected: []string{"alpha"},
			numeric:  []bool{false},
		},
		{
			name:     "mixed",
			input:    "beta.11.x-y",
			expected: []string{"beta", "11", "x-y"},
			numeric:  []bool{false, true, false},
		},
		{
			name:     "empty token kept",
			input:    "a..b",
			expected: []string{"a", "", "b"},
			numeric:  []bool{false, false, false},
		},
		{
			name:     "numeric only",
			input:    "999",
			expected: []string{"999"},
			numeric:  []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SplitPrerelease(tt.input)
			if p.Len() != len(tt.expected) {
				t.Fatalf("SplitPrerelease(%q) has %d identifiers, want %d", tt.input, p.Len(), len(tt.expected))
			}
			for i, id := range p {
				if id.Value != tt.expected[i] {
					t.Errorf("identifier %d = %q, want %q", i, id.Value, tt.expected[i])
				}
				if id.Numeric != tt.numeric[i] {
					t.Errorf("identifier %d numeric = %v, want %v", i, id.Numeric, tt.numeric[i])
				}
			}
			if got := p.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}
			if len(tt.expected) > 0 && !reflect.DeepEqual(p.Values(), tt.expected) {
				t.Errorf("Values() = %v, want %v", p.Values(), tt.expected)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      string
		core          Core
		identifiers   int
		expectedError error
	}{
		{
			name:     "release",
			input:    "1.2.3",
			expected: "1.2.3",
			core:     NewCore(1, 2, 3),
		},
		{
			name:     "v prefix",
			input:    "v1.2.3",
			expected: "1.2.3",
			core:     NewCore(1, 2, 3),
		},
		{
			name:        "prerelease",
			input:       "1.0.0-alpha.1",
			expected:    "1.0.0-alpha.1",
			core:        NewCore(1, 0, 0),
			identifiers: 2,
		},
		{
			name:        "build metadata dropped",
			input:       "1.0.0-rc.1+build.5",
			expected:    "1.0.0-rc.1",
			core:        NewCore(1, 0, 0),
			identifiers: 2,
		},
		{
			name:     "build metadata without prerelease",
			input:    "2.0.0+20250101",
			expected: "2.0.0",
			core:     NewCore(2, 0, 0),
		},
		{
			name:     "max uint64",
			input:    "18446744073709551615.0.0",
			expected: "18446744073709551615.0.0",
			core:     NewCore(18446744073709551615, 0, 0),
		},
		{
			name:          "empty",
			input:         "",
			expectedError: ErrEmptyVersion,
		},
		{
			name:          "whitespace only",
			input:         "   ",
			expectedError: ErrEmptyVersion,
		},
		{
			name:          "major overflow",
			input:         "18446744073709551616.0.0",
			expectedError: ErrOverflow,
		},
		{
			name:          "patch overflow with prerelease",
			input:         "1.0.99999999999999999999-alpha",
			expectedError: ErrOverflow,
		},
		{
			name:          "missing patch",
			input:         "1.2",
			expectedError: ErrInvalidVersion,
		},
		{
			name:          "leading zero in prerelease",
			input:         "1.0.0-01",
			expectedError: ErrInvalidVersion,
		},
		{
			name:          "illegal character in prerelease",
			input:         "1.0.0-alpha_1",
			expectedError: ErrInvalidVersion,
		},
		{
			name:          "non numeric core",
			input:         "a.b.c",
			expectedError: ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if v.Core != tt.core {
				t.Errorf("core = %+v, want %+v", v.Core, tt.core)
			}
			if v.Prerelease.Len() != tt.identifiers {
				t.Errorf("identifiers = %d, want %d", v.Prerelease.Len(), tt.identifiers)
			}
			if v.String() != tt.expected {
				t.Errorf("String() = %q, want %q", v.String(), tt.expected)
			}
			if v.IsPrerelease() != (tt.identifiers > 0) {
				t.Errorf("IsPrerelease() = %v", v.IsPrerelease())
			}
		})
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid version")
		}
	}()
	MustParseVersion("not-a-version")
}

func TestParseCore(t *testing.T) {
	tests := []struct {
		name          string
		parts         [3]string
		expected      Core
		expectedError error
	}{
		{name: "zeros", parts: [3]string{"0", "0", "0"}, expected: NewCore(0, 0, 0)},
		{name: "typical", parts: [3]string{"1", "22", "333"}, expected: NewCore(1, 22, 333)},
		{name: "max", parts: [3]string{"18446744073709551615", "0", "1"}, expected: NewCore(18446744073709551615, 0, 1)},
		{name: "overflow", parts: [3]string{"1", "18446744073709551616", "0"}, expectedError: ErrOverflow},
		{name: "negative", parts: [3]string{"-1", "0", "0"}, expectedError: ErrNegativeComponent},
		{name: "empty", parts: [3]string{"1", "", "0"}, expectedError: ErrNonNumeric},
		{name: "alpha", parts: [3]string{"1", "0", "x"}, expectedError: ErrNonNumeric},
		{name: "plus sign", parts: [3]string{"+1", "0", "0"}, expectedError: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCore(tt.parts[0], tt.parts[1], tt.parts[2])
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("ParseCore(%v) error = %v, want %v", tt.parts, err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCore(%v) unexpected error: %v", tt.parts, err)
			}
			if got != tt.expected {
				t.Errorf("ParseCore(%v) = %+v, want %+v", tt.parts, got, tt.expected)
			}
		})
	}
}

func TestParseCoreString(t *testing.T) {
	tests := []struct {
		input    string
		expected Core
		wantErr  bool
	}{
		{input: "1.2.3", expected: NewCore(1, 2, 3)},
		{input: "1,2,3", expected: NewCore(1, 2, 3)},
		{input: " 4, 5, 6 ", expected: NewCore(4, 5, 6)},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCoreString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoreString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseCoreString(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		input         string
		expectedError error
	}{
		{input: "alpha"},
		{input: "0"},
		{input: "10"},
		{input: "x-y-Z"},
		{input: "-"},
		{input: "0a"},
		{input: "", expectedError: ErrMalformedIdentifier},
		{input: "a_b", expectedError: ErrMalformedIdentifier},
		{input: "a+b", expectedError: ErrMalformedIdentifier},
		{input: "ß", expectedError: ErrMalformedIdentifier},
		{input: "01", expectedError: ErrLeadingZero},
		{input: "00", expectedError: ErrLeadingZero},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if tt.expectedError == nil {
				if err != nil {
					t.Errorf("ValidateIdentifier(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.expectedError) {
				t.Errorf("ValidateIdentifier(%q) error = %v, want %v", tt.input, err, tt.expectedError)
			}
		})
	}
}

func TestParsePrerelease(t *testing.T) {
	p, err := ParsePrerelease("rc.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 identifiers, got %d", p.Len())
	}

	_, err = ParsePrerelease("rc..1")
	if !errors.Is(err, ErrMalformedIdentifier) {
		t.Errorf("expected ErrMalformedIdentifier, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "identifier 1") {
		t.Errorf("expected error to name the identifier position, got %v", err)
	}

	p, err = ParsePrerelease("")
	if err != nil || p.Len() != 0 {
		t.Errorf("expected empty prerelease, got %v, %v", p, err)
	}
}

func TestVersionJSON(t *testing.T) {
	v := MustParseVersion("1.2.3-beta.11")
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"core":{"major":1,"minor":2,"patch":3},"prerelease":["beta","11"]}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}
