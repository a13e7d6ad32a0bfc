package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelwave/dealerscout/analysis"
	"github.com/axelwave/dealerscout/core"
)

func TestLoadProfile_Builtin(t *testing.T) {
	profile, weights, err := loadProfile("", core.ModeCustomers)
	require.NoError(t, err)

	assert.Equal(t, "Axelwave Technologies", profile.Vendor)
	assert.Equal(t, core.ModeCustomers, profile.Mode)
	assert.Contains(t, profile.Keywords, "automotive dealership")
	assert.Equal(t, analysis.DefaultWeights(), weights)

	partners, _, err := loadProfile("", core.ModePartners)
	require.NoError(t, err)
	assert.Contains(t, partners.Keywords, "dms software")
}

func TestLoadProfile_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	content := `
vendor = "Acme Motors Software"
product = "LotPilot"
description = "Inventory tooling for independent dealers"
regions = ["United States"]

[keywords]
customers = ["used car dealer"]

[weights]
category_fit = 0.5
keyword_overlap = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, weights, err := loadProfile(path, core.ModeCustomers)
	require.NoError(t, err)

	assert.Equal(t, "Acme Motors Software", profile.Vendor)
	assert.Equal(t, []string{"used car dealer"}, profile.Keywords)
	assert.Equal(t, 0.5, weights[analysis.CriterionCategoryFit])
	require.NoError(t, weights.Validate())
}

func TestLoadProfile_InvalidWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	content := `
description = "Inventory tooling"

[weights]
category_fit = 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, _, err := loadProfile(path, core.ModeCustomers)
	assert.ErrorIs(t, err, analysis.ErrInvalidWeights)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, _, err := loadProfile(filepath.Join(t.TempDir(), "nope.toml"), core.ModeCustomers)
	assert.Error(t, err)
}
