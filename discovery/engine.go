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


// Package discovery orchestrates the Search -> Analysis -> Validation
// pipeline into complete discovery runs.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/axelwave/dealerscout/ai"
	"github.com/axelwave/dealerscout/analysis"
	"github.com/axelwave/dealerscout/core"
	"github.com/axelwave/dealerscout/index"
	"github.com/axelwave/dealerscout/search"
	"github.com/axelwave/dealerscout/validation"
)

// Engine runs the discovery pipeline over an in-memory company pool.
// Runs are sequential per engine; the zero-value state is Idle.
type Engine struct {
	config    Config
	pool      []*core.CompanyRecord
	searcher  *search.Searcher
	analyzer  *analysis.Analyzer
	validator *validation.Validator
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine wires the pipeline stages over the given provider and company
// pool. The config is validated and copied; changing the caller's copy later
// has no effect on the engine.
func NewEngine(provider ai.Provider, records []*core.CompanyRecord, config Config, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config,
		pool:   records,
		logger: slog.Default(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	ix, err := index.New(provider.Embedder(), index.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	e.searcher, err = search.NewSearcher(ix, provider.Embedder(), search.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	e.analyzer, err = analysis.NewAnalyzer(provider.Generator(), config.Weights,
		analysis.WithRetry(config.GenerationAttempts, config.GenerationBackoff),
		analysis.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	e.validator, err = validation.NewValidator(config.K, config.MinScore,
		validation.WithRetryFunc(e.analyzer.RetryRationale),
		validation.WithLogger(e.logger))
	if err != nil {
		e.analyzer.Release()
		return nil, err
	}

	return e, nil
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Run executes one discovery run for the given profile and returns the
// ranked shortlist with run metadata.
//
// When validation leaves fewer than K entries, search is re-invoked with a
// doubled limit up to the configured extra-round bound, then the partial
// result is returned with its shortfall recorded. Fatal conditions (empty
// pool, unreachable backend) transition the engine to Failed and return an
// error instead of a partial result.
func (e *Engine) Run(ctx context.Context, profile *core.TargetProfile) (*core.DiscoveryResult, error) {
	if err := core.ValidateTargetProfile(profile); err != nil {
		return nil, err
	}
	if len(e.pool) == 0 {
		e.setState(StateFailed)
		return nil, ErrEmptyKnowledgeBase
	}

	runID := uuid.NewString()
	logger := e.logger.With("runId", runID, "mode", profile.Mode)
	logger.Info("discovery run started", "pool", len(e.pool), "k", e.config.K)

	var (
		entries    []core.RankedEntry
		rejected   core.RejectionCounts
		stages     core.StageDurations
		considered int
		rounds     int
	)

	limit := e.config.SearchLimitFactor * e.config.K
	for {
		rounds++

		e.setState(StateSearching)
		searchStart := time.Now()
		matches, err := e.searcher.Search(ctx, profile, e.pool, limit)
		stages.Search += time.Since(searchStart)
		if err != nil {
			e.setState(StateFailed)
			return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
		considered += len(matches)

		e.setState(StateAnalyzing)
		analysisStart := time.Now()
		candidates, err := e.analyzer.Analyze(ctx, matches, profile)
		stages.Analysis += time.Since(analysisStart)
		if err != nil {
			e.setState(StateFailed)
			return nil, err
		}

		e.setState(StateValidating)
		validationStart := time.Now()
		entries, rejected, err = e.validator.Validate(ctx, candidates, profile)
		stages.Validation += time.Since(validationStart)
		if err != nil {
			e.setState(StateFailed)
			return nil, err
		}

		if len(entries) >= e.config.K {
			break
		}
		if rounds > e.config.MaxExtraRounds {
			break
		}
		if len(matches) < limit {
			// The filtered pool is already exhausted; a larger limit cannot
			// surface new candidates.
			break
		}

		limit *= 2
		logger.Info("shortlist under-filled, widening search",
			"entries", len(entries), "round", rounds+1, "limit", limit)
	}

	shortfall := e.config.K - len(entries)
	if shortfall < 0 {
		shortfall = 0
	}
	if shortfall > 0 {
		logger.Warn("run completed with shortfall", "entries", len(entries), "shortfall", shortfall)
	}

	e.setState(StateDone)
	logger.Info("discovery run complete",
		"entries", len(entries),
		"considered", considered,
		"rejected", rejected.Total,
		"rounds", rounds)

	return &core.DiscoveryResult{
		Entries: entries,
		Meta: core.RunMetadata{
			RunID:        runID,
			Considered:   considered,
			Rejected:     rejected,
			Shortfall:    shortfall,
			SearchRounds: rounds,
			Stages:       stages,
		},
	}, nil
}

// Close releases pipeline resources. The engine cannot run after Close.
func (e *Engine) Close() {
	if e.analyzer != nil {
		e.analyzer.Release()
	}
}
