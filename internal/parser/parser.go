// internal/parser/parser.go
package parser

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

const (
	mentionContextRadius = 150
	sourceContextRadius  = 100
	citationProximity    = 200
)

var (
	urlPattern          = regexp.MustCompile(`https?://[^\s)\]}]+`)
	urlSchemePattern    = regexp.MustCompile(`https?://`)
	trailingPunctuation = regexp.MustCompile(`[.,;:!?]+$`)
)

// ResponseParser extracts brand mentions and cited sources from AI answer
// text. It is constructed once per scan with the full entity-name set (the
// tracked brand plus all competitors) and is safe for reuse across every
// (prompt, provider) unit of the job: it holds only immutable state.
type ResponseParser struct {
	brandNames      []string
	competitorNames []string
}

func NewResponseParser(brandNames, competitorNames []string) *ResponseParser {
	return &ResponseParser{
		brandNames:      brandNames,
		competitorNames: competitorNames,
	}
}

// Parse is a pure function of the response text and the provider-native
// citations. It never fails; malformed input degrades to empty results.
func (p *ResponseParser) Parse(responseText string, apiCitations []models.Citation) models.ParsedResponse {
	textSources := p.extractSources(responseText)
	mergedSources := p.mergeCitations(apiCitations, textSources)

	return models.ParsedResponse{
		Mentions: p.extractMentions(responseText),
		Sources:  mergedSources,
		RawText:  responseText,
	}
}

// mergeCitations keeps API citations first, in their original order; they
// carry real titles from search results so they win over text-scanned URLs.
func (p *ResponseParser) mergeCitations(apiCitations []models.Citation, textSources []models.ExtractedSource) []models.ExtractedSource {
	merged := []models.ExtractedSource{}
	seenURLs := make(map[string]bool)

	for _, citation := range apiCitations {
		if seenURLs[citation.URL] {
			continue
		}
		seenURLs[citation.URL] = true
		merged = append(merged, models.ExtractedSource{
			URL:     citation.URL,
			Domain:  citation.Domain,
			Title:   citation.Title,
			Context: citation.CitedText,
		})
	}

	for _, source := range textSources {
		if seenURLs[source.URL] {
			continue
		}
		seenURLs[source.URL] = true
		merged = append(merged, source)
	}

	return merged
}

type firstMatch struct {
	index int
	brand string
}

func (p *ResponseParser) extractMentions(text string) []models.ExtractedMention {
	allBrands := append(append([]string{}, p.brandNames...), p.competitorNames...)

	var matches []firstMatch
	seen := make(map[string]bool)

	// Find first occurrence of each entity; duplicate names beyond the
	// first use are ignored
	for _, brand := range allBrands {
		key := strings.ToLower(brand)
		if seen[key] {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
		if err != nil {
			continue
		}
		loc := re.FindStringIndex(text)
		if loc == nil {
			// Entity absent from the text: omitted from the result
			// entirely, no placeholder record
			continue
		}
		seen[key] = true
		matches = append(matches, firstMatch{index: loc[0], brand: brand})
	}

	// Rank is the 1-based order of first appearance
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].index < matches[j].index
	})

	mentions := make([]models.ExtractedMention, 0, len(matches))
	for i, m := range matches {
		mentions = append(mentions, models.ExtractedMention{
			BrandName:    m.brand,
			RankPosition: i + 1,
			Context:      extractContext(text, m.index, mentionContextRadius),
			IsCited:      p.hasCitation(text, m.brand),
			Confidence:   p.calculateConfidence(text, m.brand),
		})
	}

	return mentions
}

func (p *ResponseParser) extractSources(text string) []models.ExtractedSource {
	var sources []models.ExtractedSource

	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		rawURL := trailingPunctuation.ReplaceAllString(text[loc[0]:loc[1]], "")

		parsed, err := url.Parse(rawURL)
		if err != nil || parsed.Hostname() == "" {
			// Invalid URL, skip
			continue
		}
		domain := strings.TrimPrefix(parsed.Hostname(), "www.")

		sources = append(sources, models.ExtractedSource{
			URL:     rawURL,
			Domain:  domain,
			Title:   nil,
			Context: extractContext(text, loc[0], sourceContextRadius),
		})
	}

	return sources
}

func extractContext(text string, position, chars int) string {
	start := position - chars
	if start < 0 {
		start = 0
	}
	end := position + chars
	if end > len(text) {
		end = len(text)
	}

	// The radius is measured in bytes, so a cut point can land inside a
	// multibyte rune; pull each back to the nearest rune start
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	context := text[start:end]
	if start > 0 {
		context = "..." + context
	}
	if end < len(text) {
		context = context + "..."
	}

	return strings.TrimSpace(context)
}

// hasCitation reports whether an http(s) URL appears within 200 characters
// of the entity's first occurrence (plain substring match, not word-bounded)
func (p *ResponseParser) hasCitation(text, brand string) bool {
	brandIndex := strings.Index(strings.ToLower(text), strings.ToLower(brand))
	if brandIndex == -1 {
		return false
	}

	start := brandIndex - citationProximity
	if start < 0 {
		start = 0
	}
	end := brandIndex + len(brand) + citationProximity
	if end > len(text) {
		end = len(text)
	}

	return urlSchemePattern.MatchString(text[start:end])
}

// calculateConfidence scores how strongly a detected mention indicates a
// genuine recommendation rather than an incidental text match. Base 0.5,
// positive signals only, clamped at 1.0.
func (p *ResponseParser) calculateConfidence(text, brand string) float64 {
	score := 0.5
	escaped := regexp.QuoteMeta(brand)

	// Exact case match anywhere in the text
	if strings.Contains(text, brand) {
		score += 0.15
	}

	// Appears in a numbered list line ("1. Acme ...")
	numberedListRe, err := regexp.Compile(`(?i)\d+\.\s*[^.]*\b` + escaped + `\b`)
	if err == nil && numberedListRe.MatchString(text) {
		score += 0.15
	}

	// Appears in a bullet list line
	bulletListRe, err := regexp.Compile(`(?i)[-•*]\s*[^.]*\b` + escaped + `\b`)
	if err == nil && bulletListRe.MatchString(text) {
		score += 0.1
	}

	if p.hasCitation(text, brand) {
		score += 0.1
	}

	// Repeat occurrences beyond the first, 0.02 each, capped at 0.10
	wordRe, err := regexp.Compile(`(?i)\b` + escaped + `\b`)
	if err == nil {
		occurrences := len(wordRe.FindAllStringIndex(text, -1))
		if occurrences > 1 {
			extra := float64(occurrences-1) * 0.02
			if extra > 0.10 {
				extra = 0.10
			}
			score += extra
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
