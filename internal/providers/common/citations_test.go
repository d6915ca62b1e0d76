package common_test

import (
	"testing"

	"github.com/brandbeacon/brandbeacon-workflows/internal/providers/common"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{"plain host", "https://example.com/page", "example.com"},
		{"www stripped", "https://www.example.com/page", "example.com"},
		{"subdomain kept", "https://docs.example.com/guide", "docs.example.com"},
		{"www only stripped once", "https://www.www.example.com", "www.example.com"},
		{"port ignored", "https://example.com:8443/x", "example.com"},
		{"unparseable falls back to raw", "not a url", "not a url"},
		{"scheme without host falls back", "https://", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := common.NormalizeDomain(tt.rawURL)
			if got != tt.expected {
				t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.rawURL, got, tt.expected)
			}
		})
	}
}

func TestCitationSetDedupesByURL(t *testing.T) {
	title1 := "First"
	title2 := "Second"

	set := common.NewCitationSet()
	set.Add("https://a.example/one", &title1, "")
	set.Add("https://a.example/one", &title2, "")
	set.Add("https://b.example/two", nil, "quoted text")
	set.Add("", &title1, "")

	citations := set.Citations()
	if len(citations) != 2 {
		t.Fatalf("Expected 2 citations, got %d", len(citations))
	}

	if citations[0].Title == nil || *citations[0].Title != "First" {
		t.Errorf("First occurrence should win the title")
	}
	if citations[1].CitedText != "quoted text" {
		t.Errorf("Expected cited text preserved, got %q", citations[1].CitedText)
	}
}

func TestCitationSetEmptyTitleBecomesNil(t *testing.T) {
	empty := ""
	set := common.NewCitationSet()
	set.Add("https://a.example/one", &empty, "")

	citations := set.Citations()
	if citations[0].Title != nil {
		t.Errorf("Empty title should normalize to nil")
	}
}

func TestCitationSetEmptyIsNonNil(t *testing.T) {
	set := common.NewCitationSet()
	if set.Citations() == nil {
		t.Errorf("Citations() must return an empty slice, not nil")
	}
}
