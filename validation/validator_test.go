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

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelwave/dealerscout/core"
)

func candidate(id core.ID, name string, composite float64) core.Candidate {
	return core.Candidate{
		Record: &core.CompanyRecord{
			Id:       id,
			Name:     name,
			Category: core.CategoryDealership,
		},
		Score:     core.CandidateScore{Composite: composite},
		Rationale: core.Rationale{Text: "fits the profile", Attempts: 1},
	}
}

func failedCandidate(id core.ID, name string, composite float64) core.Candidate {
	c := candidate(id, name, composite)
	c.Rationale = core.Rationale{Attempts: 2, Failed: true}
	return c
}

func profile() *core.TargetProfile {
	return &core.TargetProfile{
		Description: "Dealership platform",
		Mode:        core.ModeCustomers,
	}
}

func TestNewValidator_Validation(t *testing.T) {
	t.Run("invalid k", func(t *testing.T) {
		_, err := NewValidator(0, 0.3)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := NewValidator(10, 1.5)
		assert.ErrorIs(t, err, ErrInvalidThreshold)

		_, err = NewValidator(10, -0.1)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}

func TestValidate_RanksAndTruncates(t *testing.T) {
	validator, err := NewValidator(3, 0.0)
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "a", 0.4),
		candidate(2, "b", 0.9),
		candidate(3, "c", 0.7),
		candidate(4, "d", 0.8),
		candidate(5, "e", 0.6),
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, core.ID(2), entries[0].Record.Id)
	assert.Equal(t, core.ID(4), entries[1].Record.Id)
	assert.Equal(t, core.ID(3), entries[2].Record.Id)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
	}
	assert.Equal(t, 0, rejected.Total)
}

func TestValidate_TieBreakByRecordID(t *testing.T) {
	validator, err := NewValidator(10, 0.0)
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(42, "later", 0.5),
		candidate(7, "earlier", 0.5),
	}

	entries, _, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.ID(7), entries[0].Record.Id)
	assert.Equal(t, core.ID(42), entries[1].Record.Id)
}

func TestValidate_DeduplicatesKeepingBestScore(t *testing.T) {
	validator, err := NewValidator(10, 0.0)
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "dup", 0.3),
		candidate(2, "other", 0.5),
		candidate(1, "dup", 0.8),
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, core.ID(1), entries[0].Record.Id)
	assert.Equal(t, 0.8, entries[0].Score.Composite)
	assert.Equal(t, 1, rejected.Duplicates)
	assert.Equal(t, 1, rejected.Total)
}

func TestValidate_ThresholdDropsLowScores(t *testing.T) {
	validator, err := NewValidator(10, 0.5)
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "low", 0.2),
		candidate(2, "exactly", 0.5),
		candidate(3, "high", 0.9),
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.ID(3), entries[0].Record.Id)
	assert.Equal(t, core.ID(2), entries[1].Record.Id)
	assert.Equal(t, 1, rejected.BelowThreshold)
}

func TestValidate_FailedRationalesDroppedWhenEnoughClean(t *testing.T) {
	validator, err := NewValidator(2, 0.0)
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "a", 0.9),
		candidate(2, "b", 0.8),
		failedCandidate(3, "c", 0.95), // outranks both, but has no rationale
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.ID(1), entries[0].Record.Id)
	assert.Equal(t, core.ID(2), entries[1].Record.Id)
	assert.Equal(t, 1, rejected.RationaleFailed)
}

func TestValidate_FailedRationalesKeptToFillShortlist(t *testing.T) {
	retried := 0
	retry := func(ctx context.Context, record *core.CompanyRecord, profile *core.TargetProfile) (core.Rationale, error) {
		retried++
		return core.Rationale{}, errors.New("still failing")
	}

	validator, err := NewValidator(3, 0.0, WithRetryFunc(retry))
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "clean", 0.9),
		failedCandidate(2, "needed", 0.8),
		failedCandidate(3, "surplus", 0.4),
		failedCandidate(4, "needed-too", 0.7),
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, core.ID(1), entries[0].Record.Id)
	assert.Equal(t, core.ID(2), entries[1].Record.Id)
	assert.Equal(t, core.ID(4), entries[2].Record.Id)
	assert.True(t, entries[1].Rationale.Failed)
	assert.True(t, entries[2].Rationale.Failed)

	// Only the two needed candidates were retried; the surplus one was not.
	assert.Equal(t, 2, retried)
	assert.Equal(t, 1, rejected.RationaleFailed)
}

func TestValidate_RetrySuccessClearsFailure(t *testing.T) {
	retry := func(ctx context.Context, record *core.CompanyRecord, profile *core.TargetProfile) (core.Rationale, error) {
		return core.Rationale{Text: "recovered rationale", Attempts: 1}, nil
	}

	validator, err := NewValidator(2, 0.0, WithRetryFunc(retry))
	require.NoError(t, err)

	candidates := []core.Candidate{
		candidate(1, "clean", 0.9),
		failedCandidate(2, "recoverable", 0.8),
	}

	entries, _, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].Rationale.Failed)
	assert.Equal(t, "recovered rationale", entries[1].Rationale.Text)
}

func TestValidate_AllFailedNeverAborts(t *testing.T) {
	validator, err := NewValidator(5, 0.0)
	require.NoError(t, err)

	candidates := []core.Candidate{
		failedCandidate(1, "a", 0.9),
		failedCandidate(2, "b", 0.8),
		failedCandidate(3, "c", 0.7),
	}

	entries, rejected, err := validator.Validate(context.Background(), candidates, profile())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.True(t, entry.Rationale.Failed)
	}
	assert.Equal(t, 0, rejected.RationaleFailed)
}

func TestValidate_EmptyInput(t *testing.T) {
	validator, err := NewValidator(10, 0.3)
	require.NoError(t, err)

	entries, rejected, err := validator.Validate(context.Background(), nil, profile())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, rejected.Total)
}
