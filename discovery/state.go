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

// State is the engine's position in the pipeline lifecycle.
type State int

const (
	// StateIdle means no run is in progress.
	StateIdle State = iota
	// StateSearching means the run is retrieving candidates.
	StateSearching
	// StateAnalyzing means the run is scoring candidates and generating
	// rationales.
	StateAnalyzing
	// StateValidating means the run is filtering and ranking candidates.
	StateValidating
	// StateDone means the last run completed and produced a result.
	StateDone
	// StateFailed means the last run aborted with a fatal error.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateAnalyzing:
		return "analyzing"
	case StateValidating:
		return "validating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
