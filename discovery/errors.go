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


package discovery

import "errors"

var (
	// ErrProviderRequired is returned when an AI provider is not supplied.
	ErrProviderRequired = errors.New("ai provider required")

	// ErrEmptyKnowledgeBase is returned when a run starts with no records to
	// search over.
	ErrEmptyKnowledgeBase = errors.New("knowledge base is empty")

	// ErrBackendUnavailable indicates the model backend could not serve the
	// run at all; the partial pipeline state is discarded.
	ErrBackendUnavailable = errors.New("model backend unavailable")

	// ErrInvalidConfig wraps engine configuration validation failures.
	ErrInvalidConfig = errors.New("invalid engine config")
)
