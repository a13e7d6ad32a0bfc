// Copyright 2025 Axelwave Technologies
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


package analysis

import "errors"

var (
	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrInvalidWeights indicates the criterion weights failed validation.
	ErrInvalidWeights = errors.New("invalid criterion weights")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called with
	// a non-positive attempt bound.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be positive")

	// ErrEmptyRationale indicates the generator returned blank text; it is
	// retried like any other generation failure.
	ErrEmptyRationale = errors.New("generator returned empty rationale")
)
