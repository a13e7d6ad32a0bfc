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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelwave/dealerscout/core"
)

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{
			name:    "default weights valid",
			weights: DefaultWeights(),
		},
		{
			name: "single criterion at full weight",
			weights: Weights{
				CriterionKeywordOverlap: 1.0,
			},
		},
		{
			name:    "empty",
			weights: Weights{},
			wantErr: true,
		},
		{
			name: "unknown criterion",
			weights: Weights{
				"vibes": 1.0,
			},
			wantErr: true,
		},
		{
			name: "negative weight",
			weights: Weights{
				CriterionCategoryFit: -0.5,
				CriterionSizeFit:     1.5,
			},
			wantErr: true,
		},
		{
			name: "sum not one",
			weights: Weights{
				CriterionCategoryFit: 0.5,
				CriterionSizeFit:     0.3,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeights)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScore_CompositeBounds(t *testing.T) {
	record := &core.CompanyRecord{
		Name:        "Summit Auto Group",
		Category:    core.CategoryDealership,
		Description: "Large dealership group with modern inventory management",
		Size:        core.SizeLarge,
		Region:      "US West",
		Industries:  []string{"automotive retail"},
	}
	profile := &core.TargetProfile{
		Description: "Dealership management platform for inventory and sales",
		Mode:        core.ModeCustomers,
		Regions:     []string{"US"},
		Keywords:    []string{"inventory", "dealership"},
	}

	score := Score(record, profile, DefaultWeights())

	assert.GreaterOrEqual(t, score.Composite, 0.0)
	assert.LessOrEqual(t, score.Composite, 1.0)
	require.Len(t, score.Criteria, 4)
	for name, sub := range score.Criteria {
		assert.GreaterOrEqual(t, sub, 0.0, name)
		assert.LessOrEqual(t, sub, 1.0, name)
	}

	// Ideal customer-mode candidate: matching category, large size, region
	// and keyword hits all present.
	assert.Equal(t, 1.0, score.Criteria[CriterionCategoryFit])
	assert.Equal(t, 1.0, score.Criteria[CriterionSizeFit])
	assert.Equal(t, 1.0, score.Criteria[CriterionRegionFit])
	assert.Equal(t, 1.0, score.Criteria[CriterionKeywordOverlap])
	assert.InDelta(t, 1.0, score.Composite, 1e-9)
}

func TestScore_CompositeBitStable(t *testing.T) {
	record := &core.CompanyRecord{
		Name:        "Summit Auto Group",
		Category:    core.CategoryDealership,
		Description: "Large dealership group with modern inventory management",
		Size:        core.SizeMedium,
		Region:      "US West",
		Industries:  []string{"automotive retail"},
	}
	profile := &core.TargetProfile{
		Description: "Dealership management platform for inventory and sales",
		Mode:        core.ModeCustomers,
		Regions:     []string{"US"},
		Keywords:    []string{"inventory", "dealership", "crm"},
	}

	// Float addition is order-sensitive, so a composite summed in map
	// iteration order drifts in the last bit between calls. Every call must
	// produce the identical composite down to the bit.
	first := Score(record, profile, DefaultWeights()).Composite
	for i := 0; i < 100000; i++ {
		require.Equal(t, first, Score(record, profile, DefaultWeights()).Composite)
	}
}

func TestCategoryFit(t *testing.T) {
	dealership := &core.CompanyRecord{Category: core.CategoryDealership}
	partner := &core.CompanyRecord{Category: core.CategoryTechnologyPartner}

	customers := &core.TargetProfile{Mode: core.ModeCustomers}
	partners := &core.TargetProfile{Mode: core.ModePartners}

	assert.Equal(t, 1.0, categoryFit(dealership, customers))
	assert.Equal(t, 0.0, categoryFit(partner, customers))
	assert.Equal(t, 1.0, categoryFit(partner, partners))
	assert.Equal(t, 0.0, categoryFit(dealership, partners))
}

func TestSizeFit(t *testing.T) {
	customers := &core.TargetProfile{Mode: core.ModeCustomers}
	partners := &core.TargetProfile{Mode: core.ModePartners}

	tests := []struct {
		name    string
		size    core.CompanySize
		profile *core.TargetProfile
		want    float64
	}{
		{"customers favor large", core.SizeLarge, customers, 1.0},
		{"customers medium", core.SizeMedium, customers, 0.8},
		{"customers small", core.SizeSmall, customers, 0.4},
		{"partners favor medium", core.SizeMedium, partners, 1.0},
		{"partners large", core.SizeLarge, partners, 0.7},
		{"partners small", core.SizeSmall, partners, 0.5},
		{"unknown size neutral", 0, customers, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &core.CompanyRecord{Size: tt.size}
			assert.Equal(t, tt.want, sizeFit(record, tt.profile))
		})
	}
}

func TestRegionFit(t *testing.T) {
	tests := []struct {
		name    string
		region  string
		targets []string
		want    float64
	}{
		{"no target regions is neutral", "US Southeast", nil, 0.5},
		{"record missing region", "", []string{"US"}, 0.25},
		{"token overlap", "US Southeast", []string{"US"}, 1.0},
		{"no overlap", "Germany", []string{"US", "Canada"}, 0.25},
		{"case insensitive", "us southeast", []string{"US"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &core.CompanyRecord{Region: tt.region}
			profile := &core.TargetProfile{Regions: tt.targets}
			assert.Equal(t, tt.want, regionFit(record, profile))
		})
	}
}

func TestKeywordOverlap(t *testing.T) {
	record := &core.CompanyRecord{
		Description: "Cloud inventory platform for automotive dealers",
		Industries:  []string{"dealer software"},
	}

	t.Run("explicit keywords", func(t *testing.T) {
		profile := &core.TargetProfile{
			Keywords: []string{"inventory", "crm", "dealer software", "payments"},
		}
		// "inventory" and "dealer software" hit, "crm" and "payments" miss.
		assert.Equal(t, 0.5, keywordOverlap(record, profile))
	})

	t.Run("fallback to description overlap", func(t *testing.T) {
		profile := &core.TargetProfile{
			Description: "inventory platform",
		}
		assert.Equal(t, 1.0, keywordOverlap(record, profile))
	})

	t.Run("no overlap", func(t *testing.T) {
		profile := &core.TargetProfile{
			Keywords: []string{"restaurants"},
		}
		assert.Equal(t, 0.0, keywordOverlap(record, profile))
	})
}
