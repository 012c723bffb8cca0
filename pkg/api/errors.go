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
	"errors"

	cerrors "github.com/NVIDIA/semcmp/pkg/errors"
	"github.com/NVIDIA/semcmp/pkg/session"
	"github.com/NVIDIA/semcmp/pkg/version"
)

// classify wraps a domain sentinel into a StructuredError carrying the code
// the API reports for it. Already structured errors pass through.
func classify(err error, message string) error {
	var se *cerrors.StructuredError
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, version.ErrOverflow):
		return cerrors.Wrap(cerrors.ErrCodeOverflow, message, err)
	case errors.Is(err, version.ErrMalformedIdentifier), errors.Is(err, version.ErrLeadingZero):
		return cerrors.Wrap(cerrors.ErrCodeMalformedIdentifier, message, err)
	case errors.Is(err, version.ErrEmptyVersion), errors.Is(err, version.ErrInvalidVersion),
		errors.Is(err, version.ErrNonNumeric), errors.Is(err, version.ErrNegativeComponent):
		return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, message, err)
	case errors.Is(err, session.ErrNotStaged):
		return cerrors.Wrap(cerrors.ErrCodeNotStaged, message, err)
	case errors.Is(err, session.ErrIndexOutOfRange):
		return cerrors.Wrap(cerrors.ErrCodeOutOfRange, message, err)
	case errors.Is(err, session.ErrInvalidSlot), errors.Is(err, session.ErrSessionNotFound):
		return cerrors.Wrap(cerrors.ErrCodeNotFound, message, err)
	case errors.Is(err, session.ErrStoreFull):
		return cerrors.Wrap(cerrors.ErrCodeUnavailable, message, err)
	default:
		return cerrors.Wrap(cerrors.ErrCodeInternal, message, err)
	}
}
