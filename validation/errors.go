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


package validation

import "errors"

var (
	// ErrInvalidK is returned when the shortlist size is not positive.
	ErrInvalidK = errors.New("shortlist size must be positive")

	// ErrInvalidThreshold is returned when the minimum score is outside [0,1].
	ErrInvalidThreshold = errors.New("minimum score must be in [0,1]")
)
