package corpus

import "github.com/tenantfirstaid/lawcorpus/core"

// Record is one line of the corpus file.
type Record struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// FromSection flattens a section into a Record.
func FromSection(s core.Section) Record {
	return Record{
		ID:      s.ID,
		Title:   s.Title,
		Content: s.Content,
		State:   s.Jurisdiction.State,
		City:    s.Jurisdiction.City,
	}
}

// Section converts r back to a core.Section.
func (r Record) Section() core.Section {
	return core.Section{
		ID:      r.ID,
		Title:   r.Title,
		Content: r.Content,
		Jurisdiction: core.Jurisdiction{
			State: r.State,
			City:  r.City,
		},
	}
}
