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

import (
	"fmt"
	"time"

	"github.com/axelwave/dealerscout/analysis"
)

// Config holds the tunable parameters of a discovery engine. It is copied at
// engine construction and immutable afterwards.
type Config struct {
	// K is the target shortlist size.
	K int

	// MinScore is the minimum composite score a candidate needs to survive
	// validation, in [0,1].
	MinScore float64

	// Weights are the analysis criterion weights; they must sum to 1.
	Weights analysis.Weights

	// SearchLimitFactor sizes the first search round at factor*K so that
	// validation losses can be absorbed without another round. Must be >= 3.
	SearchLimitFactor int

	// MaxExtraRounds bounds how many times search is re-invoked with a
	// doubled limit when validation under-produces.
	MaxExtraRounds int

	// GenerationAttempts bounds rationale generation retries per candidate.
	GenerationAttempts int

	// GenerationBackoff is the base delay between generation retries.
	GenerationBackoff time.Duration
}

// DefaultConfig returns the recommended engine configuration.
func DefaultConfig() Config {
	return Config{
		K:                  10,
		MinScore:           0.3,
		Weights:            analysis.DefaultWeights(),
		SearchLimitFactor:  3,
		MaxExtraRounds:     2,
		GenerationAttempts: 2,
		GenerationBackoff:  500 * time.Millisecond,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("%w: K must be positive, got %d", ErrInvalidConfig, c.K)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("%w: min score must be in [0,1], got %v", ErrInvalidConfig, c.MinScore)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.SearchLimitFactor < 3 {
		return fmt.Errorf("%w: search limit factor must be >= 3, got %d", ErrInvalidConfig, c.SearchLimitFactor)
	}
	if c.MaxExtraRounds < 0 {
		return fmt.Errorf("%w: max extra rounds must be >= 0, got %d", ErrInvalidConfig, c.MaxExtraRounds)
	}
	if c.GenerationAttempts <= 0 {
		return fmt.Errorf("%w: generation attempts must be positive, got %d", ErrInvalidConfig, c.GenerationAttempts)
	}
	if c.GenerationBackoff < 0 {
		return fmt.Errorf("%w: generation backoff must be >= 0, got %v", ErrInvalidConfig, c.GenerationBackoff)
	}
	return nil
}
