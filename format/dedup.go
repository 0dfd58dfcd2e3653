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

package format

import "github.com/tenantfirstaid/lawcorpus/core"

// LastWins folds sections by id and keeps the most recently encountered entry for
// each id. Output order follows the first appearance of each id.
//
// Municipal code sources open with a table of contents whose lines look exactly like
// section headers. The real sections come later with the same ids, so the last
// occurrence is the one carrying the section body.
func LastWins(sections []core.Section) []core.Section {
	index := make(map[string]int, len(sections))
	out := make([]core.Section, 0, len(sections))
	for _, s := range sections {
		if i, ok := index[s.ID]; ok {
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}
