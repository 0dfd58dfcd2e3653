package core

import (
	"testing"
)

func TestContentHash(t *testing.T) {
	tests := []struct {
		name    string
		content string
		size    int
	}{
		{name: "short content", content: "ORS090_90.260", size: 4},
		{name: "empty string", content: "", size: 4},
		{name: "wide digest", content: "This is a much longer piece of content that should still hash consistently", size: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := ContentHash(tt.content, tt.size)
			h2 := ContentHash(tt.content, tt.size)

			if h1 != h2 {
				t.Errorf("ContentHash() produced different hashes for same content: %s vs %s", h1, h2)
			}
			if len(h1) != tt.size*2 {
				t.Errorf("ContentHash() length = %d, want %d", len(h1), tt.size*2)
			}
		})
	}
}

func TestContentHash_Different(t *testing.T) {
	if ContentHash("content1", 4) == ContentHash("content2", 4) {
		t.Errorf("ContentHash() produced same hash for different content")
	}
}

func TestFormat_Valid(t *testing.T) {
	for _, f := range Formats() {
		if !f.Valid() {
			t.Errorf("Format(%q).Valid() = false, want true", f)
		}
	}

	if Format("pdf").Valid() {
		t.Errorf("Format(\"pdf\").Valid() = true, want false")
	}
}

func TestJurisdiction_Statewide(t *testing.T) {
	if !(Jurisdiction{State: "or", City: StatewideCity}).Statewide() {
		t.Errorf("state-wide jurisdiction not reported as statewide")
	}
	if (Jurisdiction{State: "or", City: "portland"}).Statewide() {
		t.Errorf("city jurisdiction reported as statewide")
	}
}
