package source

import (
	"fmt"
	"os"
	"regexp"

	"github.com/tenantfirstaid/lawcorpus/core"
	"gopkg.in/yaml.v3"
)

// Manifest lists the source documents that make up a corpus.
type Manifest struct {
	Documents []Entry `yaml:"documents"`
}

// Entry describes one source file.
type Entry struct {
	// Stem is the document's id prefix, e.g. "ORS090".
	Stem string `yaml:"stem"`
	// Path is relative to the documents directory.
	Path   string      `yaml:"path"`
	Format core.Format `yaml:"format"`
	State  string      `yaml:"state"`
	// City is empty for state-wide law.
	City string `yaml:"city,omitempty"`
	// Title is used by literal documents.
	Title string `yaml:"title,omitempty"`
	// Pattern overrides the header regexp of the format's rule.
	Pattern string `yaml:"pattern,omitempty"`
	// HTML marks sources exported as HTML.
	HTML bool `yaml:"html,omitempty"`
}

// Jurisdiction returns the entry's jurisdiction, mapping an empty city to core.StatewideCity.
func (e Entry) Jurisdiction() core.Jurisdiction {
	city := e.City
	if city == "" {
		city = core.StatewideCity
	}
	return core.Jurisdiction{State: e.State, City: city}
}

// DefaultManifest returns the built-in registry of Oregon housing law sources.
func DefaultManifest() *Manifest {
	m := &Manifest{}
	for _, stem := range []string{"ORS090", "ORS091", "ORS105", "ORS109", "ORS659A"} {
		m.Documents = append(m.Documents, Entry{
			Stem:   stem,
			Path:   "or/" + stem + ".txt",
			Format: core.FormatStatute,
			State:  core.DefaultState,
		})
	}
	m.Documents = append(m.Documents,
		Entry{
			Stem:   "OAR54",
			Path:   "or/OAR54.txt",
			Format: core.FormatAdminRule,
			State:  core.DefaultState,
		},
		Entry{
			Stem:   "PCC30.01",
			Path:   "or/portland/PCC30.01.txt",
			Format: core.FormatMunicipal,
			State:  core.DefaultState,
			City:   "portland",
		},
		Entry{
			Stem:   "EHC8.425",
			Path:   "or/eugene/EHC8.425.txt",
			Format: core.FormatLiteral,
			State:  core.DefaultState,
			City:   "eugene",
			Title:  "Eugene Housing Code 8.425",
		},
	)
	return m
}

// LoadManifest reads a YAML manifest from path and validates it.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry. Stems must be unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Documents))
	for i, e := range m.Documents {
		if e.Stem == "" {
			return fmt.Errorf("%w: entry %d: %w", ErrInvalidManifest, i+1, core.ErrEmptyStem)
		}
		if _, dup := seen[e.Stem]; dup {
			return fmt.Errorf("%w: %w: %s", ErrInvalidManifest, ErrDuplicateStem, e.Stem)
		}
		seen[e.Stem] = struct{}{}

		if e.Path == "" {
			return fmt.Errorf("%w: %s: %w", ErrInvalidManifest, e.Stem, ErrEmptyPath)
		}
		if !e.Format.Valid() {
			return fmt.Errorf("%w: %s: %w %q", ErrInvalidManifest, e.Stem, core.ErrUnknownFormat, e.Format)
		}
		if err := core.ValidateJurisdiction(e.Jurisdiction()); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidManifest, e.Stem, err)
		}
		if e.Pattern != "" {
			if _, err := regexp.Compile(e.Pattern); err != nil {
				return fmt.Errorf("%w: %s: pattern: %w", ErrInvalidManifest, e.Stem, err)
			}
		}
	}
	return nil
}
