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


package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/axelwave/dealerscout/analysis"
	"github.com/axelwave/dealerscout/core"
)

// profileFile is the TOML shape of a vendor profile. Keywords are keyed by
// discovery mode so one file serves both customer and partner runs.
type profileFile struct {
	Vendor      string              `toml:"vendor"`
	Product     string              `toml:"product"`
	Description string              `toml:"description"`
	Regions     []string            `toml:"regions"`
	Keywords    map[string][]string `toml:"keywords"`
	Weights     map[string]float64  `toml:"weights"`
}

// defaultProfileFile is the built-in vendor profile used when no --profile
// file is given.
func defaultProfileFile() profileFile {
	return profileFile{
		Vendor:  "Axelwave Technologies",
		Product: "DealerFlow Cloud",
		Description: "Cloud-native dealership management platform unifying sales, " +
			"F&I, service, parts, CRM and accounting, with AI copilots for desking " +
			"and service triage and open REST/GraphQL APIs. Replaces fragmented " +
			"legacy DMS, CRM and accounting systems and speeds up month-end close.",
		Regions: []string{"North America", "United States", "Canada", "Mexico"},
		Keywords: map[string][]string{
			core.ModeCustomers.String(): {
				"automotive dealership", "car dealership", "auto dealer",
				"franchise dealer", "automotive retail", "car retail",
				"automotive group", "dealership network",
			},
			core.ModePartners.String(): {
				"dms software", "automotive software", "dealership software",
				"crm automotive", "auto retail technology", "automotive saas",
				"vehicle software", "dealership management system",
			},
		},
	}
}

// loadProfile resolves the target profile and criterion weights for a run.
// An empty path selects the built-in profile; weights fall back to the
// defaults when the file does not set them.
func loadProfile(path string, mode core.Mode) (*core.TargetProfile, analysis.Weights, error) {
	file := defaultProfileFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, nil, fmt.Errorf("loading profile %s: %w", path, err)
		}
	}

	profile := &core.TargetProfile{
		Vendor:      file.Vendor,
		Product:     file.Product,
		Description: file.Description,
		Mode:        mode,
		Regions:     file.Regions,
		Keywords:    file.Keywords[mode.String()],
	}
	if err := core.ValidateTargetProfile(profile); err != nil {
		return nil, nil, err
	}

	weights := analysis.DefaultWeights()
	if len(file.Weights) > 0 {
		weights = analysis.Weights(file.Weights)
		if err := weights.Validate(); err != nil {
			return nil, nil, err
		}
	}

	return profile, weights, nil
}
