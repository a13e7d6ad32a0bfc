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


// Package validation turns scored candidates into the final ranked
// shortlist. It deduplicates by record ID, applies the minimum-score
// threshold, decides the fate of rationale-failed candidates, and ranks
// deterministically.
package validation

import (
	"context"
	"log/slog"
	"sort"

	"github.com/axelwave/dealerscout/core"
)

// RetryFunc makes one fresh rationale attempt for a candidate whose earlier
// attempts failed. The analysis stage provides it.
type RetryFunc func(ctx context.Context, record *core.CompanyRecord, profile *core.TargetProfile) (core.Rationale, error)

// Validator is the validation stage of the discovery pipeline.
type Validator struct {
	k        int
	minScore float64
	retry    RetryFunc
	logger   *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithRetryFunc sets the rationale retry hook invoked before a
// rationale-failed candidate's final accept/reject decision.
func WithRetryFunc(retry RetryFunc) Option {
	return func(v *Validator) {
		v.retry = retry
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
	}
}

// NewValidator creates a validator producing shortlists of up to k entries
// with composite scores of at least minScore.
func NewValidator(k int, minScore float64, opts ...Option) (*Validator, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if minScore < 0 || minScore > 1 {
		return nil, ErrInvalidThreshold
	}

	v := &Validator{
		k:        k,
		minScore: minScore,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate filters, ranks and truncates candidates into the final shortlist.
//
// Rationale-failed candidates are dropped when enough clean candidates exist
// to fill the shortlist. When they are needed to reach k, each gets one
// fresh generation attempt first, then is admitted regardless so a flaky
// generation backend degrades the output instead of emptying it. The
// returned entries are sorted by composite score descending with record ID
// as the tie-break, so identical inputs always rank identically.
func (v *Validator) Validate(ctx context.Context, candidates []core.Candidate, profile *core.TargetProfile) ([]core.RankedEntry, core.RejectionCounts, error) {
	var rejected core.RejectionCounts

	unique := v.dedupe(candidates, &rejected)
	passed := v.applyThreshold(unique, &rejected)
	kept := v.resolveFailedRationales(ctx, passed, profile, &rejected)

	sortCandidates(kept)
	if len(kept) > v.k {
		kept = kept[:v.k]
	}

	entries := make([]core.RankedEntry, len(kept))
	for i, candidate := range kept {
		entries[i] = core.RankedEntry{Rank: i + 1, Candidate: candidate}
	}

	rejected.Total = rejected.Duplicates + rejected.BelowThreshold + rejected.RationaleFailed

	v.logger.Debug("validation complete",
		"entries", len(entries),
		"duplicates", rejected.Duplicates,
		"belowThreshold", rejected.BelowThreshold,
		"rationaleFailed", rejected.RationaleFailed)

	return entries, rejected, nil
}

// dedupe collapses candidates sharing a record ID, keeping the occurrence
// with the highest composite score.
func (v *Validator) dedupe(candidates []core.Candidate, rejected *core.RejectionCounts) []core.Candidate {
	seen := make(map[core.ID]int, len(candidates))
	unique := make([]core.Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		idx, dup := seen[candidate.Record.Id]
		if !dup {
			seen[candidate.Record.Id] = len(unique)
			unique = append(unique, candidate)
			continue
		}

		rejected.Duplicates++
		if candidate.Score.Composite > unique[idx].Score.Composite {
			unique[idx] = candidate
		}
	}
	return unique
}

func (v *Validator) applyThreshold(candidates []core.Candidate, rejected *core.RejectionCounts) []core.Candidate {
	passed := candidates[:0]
	for _, candidate := range candidates {
		if candidate.Score.Composite < v.minScore {
			rejected.BelowThreshold++
			v.logger.Debug("candidate below threshold",
				"record", candidate.Record.Name,
				"composite", candidate.Score.Composite,
				"minScore", v.minScore)
			continue
		}
		passed = append(passed, candidate)
	}
	return passed
}

// resolveFailedRationales decides which rationale-failed candidates survive.
// Failed candidates are only admitted to cover the gap between the clean
// candidates and k, best scores first, after one retry each.
func (v *Validator) resolveFailedRationales(ctx context.Context, candidates []core.Candidate, profile *core.TargetProfile, rejected *core.RejectionCounts) []core.Candidate {
	var clean, failed []core.Candidate
	for _, candidate := range candidates {
		if candidate.Rationale.Failed {
			failed = append(failed, candidate)
		} else {
			clean = append(clean, candidate)
		}
	}

	if len(failed) == 0 {
		return clean
	}
	if len(clean) >= v.k {
		rejected.RationaleFailed += len(failed)
		return clean
	}

	sortCandidates(failed)
	needed := v.k - len(clean)
	for i, candidate := range failed {
		if i >= needed {
			rejected.RationaleFailed++
			continue
		}

		if v.retry != nil {
			if rationale, err := v.retry(ctx, candidate.Record, profile); err == nil {
				candidate.Rationale = rationale
			} else {
				candidate.Rationale.Attempts++
				v.logger.Warn("rationale retry failed, keeping candidate without rationale",
					"record", candidate.Record.Name,
					"err", err)
			}
		}
		clean = append(clean, candidate)
	}
	return clean
}

// sortCandidates orders by composite score descending, breaking ties by
// record ID so ranking is stable across runs.
func sortCandidates(candidates []core.Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score.Composite != candidates[j].Score.Composite {
			return candidates[i].Score.Composite > candidates[j].Score.Composite
		}
		return candidates[i].Record.Id < candidates[j].Record.Id
	})
}
