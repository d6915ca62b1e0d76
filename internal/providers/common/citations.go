package common

import (
	"net/url"
	"strings"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

// NormalizeDomain derives a display domain from a citation URL: the
// hostname with a leading "www." stripped. A URL that cannot be parsed
// falls back to the raw string rather than failing the citation.
func NormalizeDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// CitationSet accumulates citations in arrival order, dropping duplicate
// URLs. Every provider adapter dedupes within a single call before
// returning.
type CitationSet struct {
	citations []models.Citation
	seen      map[string]bool
}

func NewCitationSet() *CitationSet {
	return &CitationSet{seen: make(map[string]bool)}
}

func (s *CitationSet) Add(rawURL string, title *string, citedText string) {
	if rawURL == "" || s.seen[rawURL] {
		return
	}
	s.seen[rawURL] = true

	if title != nil && *title == "" {
		title = nil
	}
	s.citations = append(s.citations, models.Citation{
		URL:       rawURL,
		Title:     title,
		Domain:    NormalizeDomain(rawURL),
		CitedText: citedText,
	})
}

func (s *CitationSet) Citations() []models.Citation {
	if s.citations == nil {
		return []models.Citation{}
	}
	return s.citations
}
