// Copyright 2025 Poiesic Systems
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

import (
	"fmt"
)

// ValidateSection validates a Section according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Jurisdiction must have a state and a city (StatewideCity for state-wide law)
//
// NOT validated:
//   - Content (an empty source file still produces one fallback section)
//   - Title (falls back to the anchor during splitting)
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}

	if section.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyID)
	}

	if err := ValidateJurisdiction(section.Jurisdiction); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSection, section.ID, err)
	}

	return nil
}

// ValidateDocument validates a SourceDocument before it is split.
func ValidateDocument(doc *SourceDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Stem == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyStem)
	}

	if !doc.Format.Valid() {
		return fmt.Errorf("%w: %s: %w %q", ErrInvalidDocument, doc.Stem, ErrUnknownFormat, doc.Format)
	}

	if err := ValidateJurisdiction(doc.Jurisdiction); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, doc.Stem, err)
	}

	return nil
}

// ValidateJurisdiction checks that both state and city are set.
func ValidateJurisdiction(j Jurisdiction) error {
	if j.State == "" {
		return ErrEmptyState
	}
	if j.City == "" {
		return ErrEmptyCity
	}
	return nil
}
