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

// Package serializer provides encoding and decoding of comparison results and
// batch inputs in multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable representation
//   - Used for API responses via RespondJSON
//
// YAML:
//   - Human-readable, suited to hand-written batch case files
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Aligned columns for terminal viewing
//   - Values implementing Tabular render as rows, others as FIELD/VALUE pairs
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, outputPath)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// # Usage - Decoding
//
// FromFile picks the format from the file extension and accepts local paths
// as well as http(s) URLs:
//
//	cases, err := serializer.FromFile[BatchInput](ctx, "https://example.com/cases.yaml")
//
// Remote fetches use HttpReader, which applies the connect, TLS and response
// timeouts from pkg/defaults and caps the body at HttpReaderMaxBytes.
package serializer
