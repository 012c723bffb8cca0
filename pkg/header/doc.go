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

// Package header provides the common document header for semcmp files.
//
// Batch case files and batch reports carry a Kubernetes-style header:
//
//	kind: ComparisonCases
//	apiVersion: semcmp.nvidia.com/v1alpha1
//	metadata:
//	  owner: release-team
//
// Generated documents are stamped with Init, which records a UTC timestamp
// and the tool version. Input documents are checked with Expect; a missing
// header is accepted.
package header
