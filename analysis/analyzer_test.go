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

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelwave/dealerscout/ai/mock"
	"github.com/axelwave/dealerscout/core"
)

func testProfile() *core.TargetProfile {
	return &core.TargetProfile{
		Vendor:      "Axelwave Technologies",
		Product:     "DealerFlow Cloud",
		Description: "Cloud dealership management platform with inventory and CRM modules",
		Mode:        core.ModeCustomers,
		Regions:     []string{"US"},
		Keywords:    []string{"dealership", "inventory"},
	}
}

func testMatches(n int) []core.Match {
	matches := make([]core.Match, n)
	for i := range matches {
		name := fmt.Sprintf("Dealer Group %02d", i)
		matches[i] = core.Match{
			Record: &core.CompanyRecord{
				Id:          core.IDFromContent(name),
				Name:        name,
				Category:    core.CategoryDealership,
				Description: "Regional dealership group managing inventory across multiple rooftops",
				Size:        core.SizeMedium,
				Region:      "US",
			},
			Similarity: 1.0 - float32(i)*0.01,
		}
	}
	return matches
}

func TestNewAnalyzer_Validation(t *testing.T) {
	t.Run("nil generator", func(t *testing.T) {
		_, err := NewAnalyzer(nil, DefaultWeights())
		assert.ErrorIs(t, err, ErrGeneratorRequired)
	})

	t.Run("invalid weights", func(t *testing.T) {
		_, err := NewAnalyzer(mock.NewMockGenerator(), Weights{CriterionCategoryFit: 0.5})
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("invalid retry option", func(t *testing.T) {
		_, err := NewAnalyzer(mock.NewMockGenerator(), DefaultWeights(), WithRetry(0, time.Millisecond))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

func TestAnalyze_ScoresAndRationales(t *testing.T) {
	generator := mock.NewMockGenerator()
	analyzer, err := NewAnalyzer(generator, DefaultWeights(), WithPoolSize(4))
	require.NoError(t, err)
	defer analyzer.Release()

	matches := testMatches(8)
	candidates, err := analyzer.Analyze(context.Background(), matches, testProfile())
	require.NoError(t, err)
	require.Len(t, candidates, len(matches))

	for i, candidate := range candidates {
		// Input order preserved regardless of generation completion order.
		assert.Equal(t, matches[i].Record.Id, candidate.Record.Id)
		assert.Equal(t, matches[i].Similarity, candidate.Similarity)

		assert.GreaterOrEqual(t, candidate.Score.Composite, 0.0)
		assert.LessOrEqual(t, candidate.Score.Composite, 1.0)
		assert.Len(t, candidate.Score.Criteria, len(DefaultWeights()))

		assert.False(t, candidate.Rationale.Failed)
		assert.NotEmpty(t, candidate.Rationale.Text)
	}

	assert.Equal(t, len(matches), generator.CallCount())
}

func TestAnalyze_ScoringDeterministic(t *testing.T) {
	analyzer, err := NewAnalyzer(mock.NewMockGenerator(), DefaultWeights())
	require.NoError(t, err)
	defer analyzer.Release()

	matches := testMatches(5)
	profile := testProfile()

	first, err := analyzer.Analyze(context.Background(), matches, profile)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), matches, profile)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestAnalyze_GenerationFailureIsCandidateScoped(t *testing.T) {
	generator := mock.NewMockGenerator()
	failName := "Dealer Group 02"
	generator.GenerateFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		if strings.Contains(userPrompt, failName) {
			return "", errors.New("backend overloaded")
		}
		return "Solid regional fit.", nil
	}

	analyzer, err := NewAnalyzer(generator, DefaultWeights(),
		WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer analyzer.Release()

	candidates, err := analyzer.Analyze(context.Background(), testMatches(5), testProfile())
	require.NoError(t, err)

	for _, candidate := range candidates {
		if candidate.Record.Name == failName {
			assert.True(t, candidate.Rationale.Failed)
			assert.Equal(t, 2, candidate.Rationale.Attempts)
			assert.Empty(t, candidate.Rationale.Text)
			// Scoring is independent of generation failures.
			assert.Greater(t, candidate.Score.Composite, 0.0)
		} else {
			assert.False(t, candidate.Rationale.Failed)
			assert.Equal(t, "Solid regional fit.", candidate.Rationale.Text)
		}
	}
}

func TestAnalyze_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("transient")
		}
		return "Recovered rationale.", nil
	}

	analyzer, err := NewAnalyzer(generator, DefaultWeights(),
		WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	defer analyzer.Release()

	candidates, err := analyzer.Analyze(context.Background(), testMatches(1), testProfile())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.False(t, candidates[0].Rationale.Failed)
	assert.Equal(t, "Recovered rationale.", candidates[0].Rationale.Text)
	assert.Equal(t, 2, candidates[0].Rationale.Attempts)
}

func TestAnalyze_BlankCompletionIsFailure(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return "  \n", nil
	}

	analyzer, err := NewAnalyzer(generator, DefaultWeights(),
		WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer analyzer.Release()

	candidates, err := analyzer.Analyze(context.Background(), testMatches(1), testProfile())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	// A nil-error blank completion counts as a failed attempt, same as an
	// error, and is retried up to the bound.
	assert.True(t, candidates[0].Rationale.Failed)
	assert.Equal(t, 2, candidates[0].Rationale.Attempts)

	record := testMatches(1)[0].Record
	_, err = analyzer.RetryRationale(context.Background(), record, testProfile())
	assert.ErrorIs(t, err, ErrEmptyRationale)
}

func TestAnalyze_EmptyMatches(t *testing.T) {
	analyzer, err := NewAnalyzer(mock.NewMockGenerator(), DefaultWeights())
	require.NoError(t, err)
	defer analyzer.Release()

	candidates, err := analyzer.Analyze(context.Background(), nil, testProfile())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAnalyze_InvalidProfile(t *testing.T) {
	analyzer, err := NewAnalyzer(mock.NewMockGenerator(), DefaultWeights())
	require.NoError(t, err)
	defer analyzer.Release()

	_, err = analyzer.Analyze(context.Background(), testMatches(1), &core.TargetProfile{})
	assert.ErrorIs(t, err, core.ErrInvalidTargetProfile)
}

func TestRetryRationale(t *testing.T) {
	generator := mock.NewMockGenerator()
	analyzer, err := NewAnalyzer(generator, DefaultWeights())
	require.NoError(t, err)
	defer analyzer.Release()

	record := testMatches(1)[0].Record

	t.Run("success", func(t *testing.T) {
		rationale, err := analyzer.RetryRationale(context.Background(), record, testProfile())
		require.NoError(t, err)
		assert.False(t, rationale.Failed)
		assert.NotEmpty(t, rationale.Text)
		assert.Equal(t, 1, rationale.Attempts)
	})

	t.Run("failure", func(t *testing.T) {
		generator.GenerateFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("still down")
		}
		rationale, err := analyzer.RetryRationale(context.Background(), record, testProfile())
		assert.Error(t, err)
		assert.True(t, rationale.Failed)
	})
}
