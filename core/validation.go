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


package core

import "fmt"

// ValidateCompanyRecord validates a CompanyRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Category must be valid
//   - Description must not be empty
//   - Size, when set, must be a valid bucket
//
// NOT validated:
//   - ID (0 is replaced by IDFromContent(Name) at load time)
//   - Region and Industries (optional attributes)
func ValidateCompanyRecord(record *CompanyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCompanyRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, ErrEmptyName)
	}

	if err := ValidateCategory(record.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, err)
	}

	if record.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, ErrEmptyDescription)
	}

	if record.Size != 0 {
		if err := ValidateCompanySize(record.Size); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, err)
		}
	}

	return nil
}

// ValidateTargetProfile validates a TargetProfile according to domain rules.
//
// Validation rules:
//   - Description must not be empty (it is the retrieval query)
//   - Mode must be valid
func ValidateTargetProfile(profile *TargetProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidTargetProfile)
	}

	if profile.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTargetProfile, ErrEmptyDescription)
	}

	if err := ValidateMode(profile.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTargetProfile, err)
	}

	return nil
}

// ValidateCategory validates that a Category has a valid value.
func ValidateCategory(category Category) error {
	if category != CategoryDealership && category != CategoryTechnologyPartner {
		return fmt.Errorf("%w: value %d", ErrInvalidCategory, category)
	}
	return nil
}

// ValidateMode validates that a Mode has a valid value.
func ValidateMode(mode Mode) error {
	if mode != ModeCustomers && mode != ModePartners {
		return fmt.Errorf("%w: value %d", ErrInvalidMode, mode)
	}
	return nil
}

// ValidateCompanySize validates that a CompanySize has a valid value.
func ValidateCompanySize(size CompanySize) error {
	if size != SizeSmall && size != SizeMedium && size != SizeLarge {
		return fmt.Errorf("%w: value %d", ErrInvalidSize, size)
	}
	return nil
}

// ParseCategory converts a wire name to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "dealership":
		return CategoryDealership, nil
	case "technology_partner":
		return CategoryTechnologyPartner, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// ParseMode converts a wire name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "customers":
		return ModeCustomers, nil
	case "partners":
		return ModePartners, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// ParseCompanySize converts a wire name to a CompanySize.
func ParseCompanySize(s string) (CompanySize, error) {
	switch s {
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
}
