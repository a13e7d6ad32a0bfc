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


package index

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRecordRequired is returned when a nil record is passed.
	ErrRecordRequired = errors.New("record required")

	// ErrEmbeddingFailed indicates the embedding backend failed for a record.
	// The record is excluded from retrieval for the current run.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrInvalidLimit is returned for a non-positive query limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)
