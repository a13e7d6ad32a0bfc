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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/axelwave/dealerscout/core"
)

// Criterion names. Each criterion is a pure function of
// (CompanyRecord, TargetProfile) bounded to [0,1].
const (
	CriterionCategoryFit    = "category_fit"
	CriterionSizeFit        = "size_fit"
	CriterionRegionFit      = "region_fit"
	CriterionKeywordOverlap = "keyword_overlap"
)

// criteria maps criterion names to their scoring functions.
var criteria = map[string]func(*core.CompanyRecord, *core.TargetProfile) float64{
	CriterionCategoryFit:    categoryFit,
	CriterionSizeFit:        sizeFit,
	CriterionRegionFit:      regionFit,
	CriterionKeywordOverlap: keywordOverlap,
}

// Weights assigns a weight to each scoring criterion. Weights must be
// non-negative and sum to 1.
type Weights map[string]float64

// DefaultWeights returns the recommended criterion weights.
func DefaultWeights() Weights {
	return Weights{
		CriterionCategoryFit:    0.2,
		CriterionSizeFit:        0.2,
		CriterionRegionFit:      0.2,
		CriterionKeywordOverlap: 0.4,
	}
}

// Validate checks that every weighted criterion exists, no weight is
// negative, and the weights sum to 1 within floating-point tolerance.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no criteria weighted", ErrInvalidWeights)
	}

	var sum float64
	for name, weight := range w {
		if _, ok := criteria[name]; !ok {
			return fmt.Errorf("%w: unknown criterion %q", ErrInvalidWeights, name)
		}
		if weight < 0 {
			return fmt.Errorf("%w: criterion %q has negative weight", ErrInvalidWeights, name)
		}
		sum += weight
	}

	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Score computes the per-criterion sub-scores and their weighted composite
// for a candidate. The composite is deterministic for identical inputs:
// criteria are summed in sorted name order, since float addition over a map's
// random iteration order would produce bit-different composites.
func Score(record *core.CompanyRecord, profile *core.TargetProfile, weights Weights) core.CandidateScore {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	subScores := make(map[string]float64, len(weights))
	var composite float64

	for _, name := range names {
		score := clamp01(criteria[name](record, profile))
		subScores[name] = score
		composite += weights[name] * score
	}

	return core.CandidateScore{
		Composite: clamp01(composite),
		Criteria:  subScores,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// categoryFit scores whether the record's category matches the category the
// discovery mode targets. Search already filters on this, so mismatches only
// appear when a caller bypasses the search stage.
func categoryFit(record *core.CompanyRecord, profile *core.TargetProfile) float64 {
	if record.Category == profile.Mode.TargetCategory() {
		return 1.0
	}
	return 0.0
}

// sizeFit scores company size against the discovery mode. Customer discovery
// favors large groups with many rooftops to consolidate; partner discovery
// favors mid-size vendors open to integrations.
func sizeFit(record *core.CompanyRecord, profile *core.TargetProfile) float64 {
	if record.Size == 0 {
		return 0.5
	}

	if profile.Mode == core.ModePartners {
		switch record.Size {
		case core.SizeMedium:
			return 1.0
		case core.SizeLarge:
			return 0.7
		default:
			return 0.5
		}
	}

	switch record.Size {
	case core.SizeLarge:
		return 1.0
	case core.SizeMedium:
		return 0.8
	default:
		return 0.4
	}
}

// regionFit scores geographic overlap between the record and the profile's
// target regions, by token overlap so "US" regions phrased differently still
// match loosely.
func regionFit(record *core.CompanyRecord, profile *core.TargetProfile) float64 {
	if len(profile.Regions) == 0 {
		return 0.5
	}
	if record.Region == "" {
		return 0.25
	}

	recordTokens := wordSet(record.Region)
	for _, region := range profile.Regions {
		for _, token := range tokenizeAndFilter(region) {
			if recordTokens[token] {
				return 1.0
			}
		}
	}
	return 0.25
}

// keywordOverlap scores the fraction of profile keywords present in the
// record's description and industry tags. Without explicit keywords it falls
// back to word overlap with the profile description.
func keywordOverlap(record *core.CompanyRecord, profile *core.TargetProfile) float64 {
	recordText := record.Description + " " + strings.Join(record.Industries, " ")
	recordTokens := wordSet(recordText)

	if len(profile.Keywords) > 0 {
		matched := 0
		for _, keyword := range profile.Keywords {
			if containsAllWords(recordTokens, keyword) {
				matched++
			}
		}
		return float64(matched) / float64(len(profile.Keywords))
	}

	profileWords := tokenizeAndFilter(profile.Description)
	if len(profileWords) == 0 {
		return 0.0
	}
	matched := 0
	for _, word := range profileWords {
		if recordTokens[word] {
			matched++
		}
	}
	return float64(matched) / float64(len(profileWords))
}
