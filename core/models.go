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
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// StatewideCity is the city value for sections that apply to a whole state.
// Retrieval filters match on this literal string, so it must not change.
const StatewideCity = "null"

// DefaultState is assumed for records that carry no state.
const DefaultState = "or"

// Format identifies the header convention used by a source document.
type Format string

const (
	// FormatStatute is the state statute layout: "      90.260 Title." header lines.
	FormatStatute Format = "statute"
	// FormatAdminRule is the administrative rule layout: rule number alone on a line,
	// title on the following line.
	FormatAdminRule Format = "admin-rule"
	// FormatMunicipal is the municipal code layout. Headers repeat between the table of
	// contents and the body, so only the last occurrence of each id is kept.
	FormatMunicipal Format = "municipal"
	// FormatLiteral emits the whole document as a single section.
	FormatLiteral Format = "literal"
)

// Formats lists every known Format in a stable order.
func Formats() []Format {
	return []Format{FormatStatute, FormatAdminRule, FormatMunicipal, FormatLiteral}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// Jurisdiction is the scope a section of law applies to.
type Jurisdiction struct {
	State string
	City  string // StatewideCity when the section is not city-specific
}

// Statewide reports whether the jurisdiction has no city-level scope.
func (j Jurisdiction) Statewide() bool {
	return j.City == StatewideCity
}

// Section is one indivisible unit of legal text.
type Section struct {
	ID           string // <document-prefix>_<anchor>, unique within the corpus
	Title        string
	Content      string // trimmed text span of the section
	Jurisdiction Jurisdiction
}

// SourceDocument is a raw source text together with what is needed to split it.
type SourceDocument struct {
	Stem         string // document id prefix, e.g. "ORS090"
	Title        string // used by literal documents; optional otherwise
	Format       Format
	Pattern      string // optional override of the format's header pattern
	Text         string
	Jurisdiction Jurisdiction
}

// ContentHash returns a hex-encoded BLAKE2b digest of text that is size bytes long.
// Identical input always yields identical output.
func ContentHash(text string, size int) string {
	h, _ := blake2b.New(size, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
