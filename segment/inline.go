package segment

import (
	"regexp"
	"strings"

	"github.com/tenantfirstaid/lawcorpus/core"
)

// InlineRule splits text whose headers carry anchor and title on one line.
//
// Each section spans from its header's start offset to the next header's start
// offset (or end of text), trimmed. Sections therefore partition the text from the
// first header onward.
type InlineRule struct {
	header *regexp.Regexp
}

var _ Rule = (*InlineRule)(nil)

// NewInlineRule compiles pattern into an InlineRule.
// The pattern must capture the anchor in group 1 and may capture a title in group 2.
func NewInlineRule(pattern string) (*InlineRule, error) {
	re, err := compileHeader(pattern)
	if err != nil {
		return nil, err
	}
	return &InlineRule{header: re}, nil
}

// MustInlineRule is like NewInlineRule but panics on an invalid pattern.
func MustInlineRule(pattern string) *InlineRule {
	r, err := NewInlineRule(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Split implements Rule.
func (r *InlineRule) Split(text, prefix string) []core.Section {
	matches := r.header.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []core.Section{}
	}

	sections := make([]core.Section, 0, len(matches))
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		anchor := strings.TrimSpace(text[m[0]:m[1]])
		if m[2] >= 0 {
			anchor = text[m[2]:m[3]]
		}

		// Title falls back to the anchor when no title group participated.
		title := anchor
		if len(m) >= 6 && m[4] >= 0 {
			if t := cleanTitle(text[m[4]:m[5]]); t != "" {
				title = t
			}
		}

		sections = append(sections, core.Section{
			ID:      sectionID(prefix, anchor),
			Title:   title,
			Content: strings.TrimSpace(text[start:end]),
		})
	}

	return sections
}
