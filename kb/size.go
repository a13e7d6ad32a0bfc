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


package kb

import (
	"strings"

	"github.com/axelwave/dealerscout/core"
)

// sizeSignals maps size buckets to the phrases that indicate them, checked
// largest bucket first.
var sizeSignals = []struct {
	size     core.CompanySize
	keywords []string
}{
	{core.SizeLarge, []string{"fortune 500", "global", "international", "largest", "nationwide", "multinational"}},
	{core.SizeMedium, []string{"regional", "multiple locations", "growing", "expanding"}},
	{core.SizeSmall, []string{"local", "family-owned", "independent", "boutique"}},
}

// estimateSize infers a size bucket for a record that does not declare one,
// by scanning the name and description for size signals. Records with no
// signal default to medium.
func estimateSize(name, description string) core.CompanySize {
	text := strings.ToLower(name) + " " + strings.ToLower(description)
	for _, bucket := range sizeSignals {
		for _, keyword := range bucket.keywords {
			if strings.Contains(text, keyword) {
				return bucket.size
			}
		}
	}
	return core.SizeMedium
}
