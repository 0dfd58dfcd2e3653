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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSection indicates a Section failed validation.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidDocument indicates a SourceDocument failed validation.
	ErrInvalidDocument = errors.New("invalid source document")

	// ErrEmptyID indicates the section id is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyStem indicates the document stem is empty.
	ErrEmptyStem = errors.New("stem cannot be empty")

	// ErrEmptyState indicates the jurisdiction has no state.
	ErrEmptyState = errors.New("state cannot be empty")

	// ErrEmptyCity indicates the jurisdiction has no city. State-wide scope uses StatewideCity.
	ErrEmptyCity = errors.New("city cannot be empty")

	// ErrUnknownFormat indicates a format tag that no splitter handles.
	ErrUnknownFormat = errors.New("unknown format")
)
