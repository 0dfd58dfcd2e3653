package segment

import (
	"regexp"
	"strings"

	"github.com/tenantfirstaid/lawcorpus/core"
)

// StackedRule splits text whose anchors stand alone on a line.
//
// The first non-empty line after the anchor is the title. The section content is
// every line after the anchor line up to, not including, the next anchor line.
type StackedRule struct {
	anchor *regexp.Regexp
}

var _ Rule = (*StackedRule)(nil)

// NewStackedRule compiles pattern into a StackedRule.
// The pattern is matched against single lines and must capture the anchor in group 1.
func NewStackedRule(pattern string) (*StackedRule, error) {
	re, err := compileHeader(pattern)
	if err != nil {
		return nil, err
	}
	return &StackedRule{anchor: re}, nil
}

// MustStackedRule is like NewStackedRule but panics on an invalid pattern.
func MustStackedRule(pattern string) *StackedRule {
	r, err := NewStackedRule(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Split implements Rule.
func (r *StackedRule) Split(text, prefix string) []core.Section {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	sections := []core.Section{}

	i := 0
	for i < len(lines) {
		m := r.anchor.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		anchor := m[1]

		j := i + 1
		for j < len(lines) && !r.anchor.MatchString(lines[j]) {
			j++
		}
		body := lines[i+1 : j]

		title := anchor
		for _, line := range body {
			if t := strings.TrimSpace(line); t != "" {
				title = t
				break
			}
		}

		sections = append(sections, core.Section{
			ID:      sectionID(prefix, anchor),
			Title:   title,
			Content: strings.TrimSpace(strings.Join(body, "\n")),
		})
		i = j
	}

	return sections
}
