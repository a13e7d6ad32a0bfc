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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCompanyRecord indicates a CompanyRecord failed validation.
	ErrInvalidCompanyRecord = errors.New("invalid company record")

	// ErrInvalidTargetProfile indicates a TargetProfile failed validation.
	ErrInvalidTargetProfile = errors.New("invalid target profile")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("company name cannot be empty")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidCategory indicates an invalid Category value.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidMode indicates an invalid discovery Mode value.
	ErrInvalidMode = errors.New("invalid discovery mode")

	// ErrInvalidSize indicates an invalid CompanySize value.
	ErrInvalidSize = errors.New("invalid company size")
)
