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

package serializer

import "context"

// Serializer writes a value to some destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer releases resources held by a Serializer or Reader.
type Closer interface {
	Close() error
}

// Tabular is implemented by values that render as a multi-column table
// rather than as flattened FIELD/VALUE pairs.
type Tabular interface {
	// Columns returns the column names.
	Columns() []string
	// Rows returns one slice per row, each with len(Columns()) cells.
	Rows() [][]string
}
