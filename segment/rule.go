package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tenantfirstaid/lawcorpus/core"
)

// Header patterns for the source formats. Group 1 is the anchor, group 2 the title.
const (
	// StatuteHeader matches state statute headers. The six-space indent is how the
	// legislature's plain-text exports mark a section start.
	StatuteHeader = `(?m)^      (\d+\.\d+) (.+?)(?:\.\s|$)`

	// AdminRuleAnchor matches an administrative rule number alone on its line.
	AdminRuleAnchor = `^(411-\d+-\d+)\s*$`

	// MunicipalHeader matches municipal code headers such as
	// "30.01.085 Portland Renter Additional Protections."
	MunicipalHeader = `(?m)^(30\.\d+\.\d+)\s+(.+?)\.?\s*$`
)

// Rule finds section headers in text and cuts the text into sections.
type Rule interface {
	// Split returns sections in text order with ids "<prefix>_<anchor>".
	// It returns an empty slice when no header is found.
	Split(text, prefix string) []core.Section
}

// Split applies rule to text.
func Split(text string, rule Rule, prefix string) []core.Section {
	return rule.Split(text, prefix)
}

func compileHeader(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %q", ErrNoAnchorGroup, pattern)
	}
	return re, nil
}

func sectionID(prefix, anchor string) string {
	return prefix + "_" + anchor
}

// cleanTitle trims whitespace and trailing punctuation from a captured title.
func cleanTitle(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".,;:"))
}
