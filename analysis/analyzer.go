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


// Package analysis scores retrieved candidates against the target profile
// and generates a short rationale for each one.
//
// Scoring is a pure function of (record, profile, weights) and fully
// deterministic. Rationale generation calls the generative backend and runs
// concurrently on a bounded worker pool; results are collected by index so
// completion order never affects candidate order or ranking.
package analysis

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/axelwave/dealerscout/ai"
	"github.com/axelwave/dealerscout/core"
)

// Analyzer is the analysis stage of the discovery pipeline.
type Analyzer struct {
	generator   ai.Generator
	weights     Weights
	maxAttempts int
	baseDelay   time.Duration
	pool        *ants.Pool
	logger      *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithPoolSize sets the worker pool size for concurrent rationale generation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(a *Analyzer) error {
		if size < 1 {
			size = 1
		}

		if a.pool != nil {
			a.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// WithRetry sets the generation retry bound and backoff base delay.
// Default is 2 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(a *Analyzer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		a.maxAttempts = maxAttempts
		a.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates a new analyzer using the given generator and weights.
func NewAnalyzer(generator ai.Generator, weights Weights, opts ...Option) (*Analyzer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		generator:   generator,
		weights:     weights,
		maxAttempts: 2,
		baseDelay:   500 * time.Millisecond,
		pool:        pool,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.Release()
			return nil, optErr
		}
	}

	return a, nil
}

// Analyze scores each retrieved match and generates its rationale. The
// returned candidates preserve the input order: generation fans out on the
// worker pool and is collected by index, so concurrency never reorders them.
//
// Generation failures are candidate-scoped: after the retry bound is
// exhausted the candidate is marked rationale-failed and passed downstream
// for Validation to decide on.
func (a *Analyzer) Analyze(ctx context.Context, matches []core.Match, profile *core.TargetProfile) ([]core.Candidate, error) {
	if err := core.ValidateTargetProfile(profile); err != nil {
		return nil, err
	}

	candidates := make([]core.Candidate, len(matches))
	for i, match := range matches {
		candidates[i] = core.Candidate{
			Record:     match.Record,
			Similarity: match.Similarity,
			Score:      Score(match.Record, profile, a.weights),
		}
	}

	// Fan out generation, collect by index.
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		task := func(i int) func() {
			return func() {
				defer wg.Done()
				candidates[i].Rationale = a.generateRationale(ctx, candidates[i].Record, profile)
			}
		}(i)

		if err := a.pool.Submit(task); err != nil {
			// Pool unavailable; degrade to inline execution.
			a.logger.Warn("worker pool submit failed, running inline", "err", err)
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// generateRationale runs the bounded retry loop for one candidate.
func (a *Analyzer) generateRationale(ctx context.Context, record *core.CompanyRecord, profile *core.TargetProfile) core.Rationale {
	prompt := buildRationalePrompt(record, profile)

	attempts := 0
	var text string
	err := RetryWithBackoff(ctx, a.logger, func() error {
		attempts++
		generated, genErr := a.generator.Generate(ctx, rationaleSystemPrompt, prompt)
		if genErr != nil {
			return genErr
		}
		generated = strings.TrimSpace(generated)
		if generated == "" {
			return ErrEmptyRationale
		}
		text = generated
		return nil
	}, a.maxAttempts, a.baseDelay)

	if err != nil {
		a.logger.Warn("rationale generation failed",
			"record", record.Name,
			"attempts", attempts,
			"err", err)
		return core.Rationale{Attempts: attempts, Failed: true}
	}

	return core.Rationale{Text: text, Attempts: attempts}
}

// RetryRationale makes a single fresh generation attempt for a candidate
// whose earlier attempts failed. Validation uses it before deciding whether
// a rationale-failed candidate must be dropped.
func (a *Analyzer) RetryRationale(ctx context.Context, record *core.CompanyRecord, profile *core.TargetProfile) (core.Rationale, error) {
	prompt := buildRationalePrompt(record, profile)

	text, err := a.generator.Generate(ctx, rationaleSystemPrompt, prompt)
	if err != nil {
		return core.Rationale{Attempts: 1, Failed: true}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Rationale{Attempts: 1, Failed: true}, ErrEmptyRationale
	}
	return core.Rationale{Text: text, Attempts: 1}, nil
}

// Release releases the worker pool.
// The analyzer should not be used after calling Release.
func (a *Analyzer) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}
