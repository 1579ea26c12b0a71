package report

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/seocopilot/seo-copilot/internal/models"
	"github.com/seocopilot/seo-copilot/internal/serp"
	"github.com/seocopilot/seo-copilot/internal/suggest"
)

// DefaultMaxResults caps the per-result breakdown in the narrative report.
const DefaultMaxResults = 10

const placeholder = "N/A"

// BuildAnalysis assembles the structured response from a suggestion run and
// the full competitor title list.
func BuildAnalysis(result *suggest.Result, competitorTitles []string) models.AnalysisResponse {
	return models.AnalysisResponse{
		Query:            result.Query,
		UserTitle:        result.UserTitle,
		CompetitorTitles: competitorTitles,
		Suggestions:      result.Suggestions,
		ModelUsed:        result.ModelUsed,
	}
}

// RenderText builds the narrative markdown report. Pure function of its
// inputs: rendering the same data twice yields byte-identical output.
func RenderText(query, userTitle string, titles []string, organic []models.OrganicResult, paaQuestions []string, suggestions []models.Suggestion, serpResult *serp.Result, maxResults int) string {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var b strings.Builder

	b.WriteString("# SEO Title Analysis Results\n\n")
	fmt.Fprintf(&b, "**Query analyzed:** %s\n", query)
	fmt.Fprintf(&b, "**Current title:** %s\n", userTitle)
	fmt.Fprintf(&b, "**Competitor titles found:** %d\n", len(titles))
	fmt.Fprintf(&b, "**Total organic results:** %d\n", len(organic))
	fmt.Fprintf(&b, "**People Also Ask questions:** %d\n\n", len(paaQuestions))

	if len(paaQuestions) > 0 {
		b.WriteString("## People Also Ask Questions:\n\n")
		for i, question := range paaQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, question)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Detailed Competitor Analysis:\n\n")
	limit := maxResults
	if len(organic) < limit {
		limit = len(organic)
	}
	for i := 0; i < limit; i++ {
		result := organic[i]
		fmt.Fprintf(&b, "### Result #%d\n", i+1)
		fmt.Fprintf(&b, "**Title:** %s\n", orPlaceholder(result.Title))
		fmt.Fprintf(&b, "**URL:** %s\n", orPlaceholder(result.URL))
		fmt.Fprintf(&b, "**Domain:** %s\n", DeriveDomain(result.URL))
		fmt.Fprintf(&b, "**Description:** %s\n", orPlaceholder(result.Description))
		fmt.Fprintf(&b, "**Position:** %d\n\n", result.Position)
	}

	b.WriteString("\n## SEO Title Suggestions:\n\n")
	if len(suggestions) > 0 {
		for i, suggestion := range suggestions {
			fmt.Fprintf(&b, "### Suggestion %d\n", i+1)
			fmt.Fprintf(&b, "**Title:** %s\n", orPlaceholder(suggestion.Title))
			fmt.Fprintf(&b, "**Meta Description:** %s\n", orPlaceholder(suggestion.Description))
			fmt.Fprintf(&b, "**Rationale:** %s\n\n", orPlaceholder(suggestion.Rationale))
		}
	} else {
		b.WriteString("No suggestions were generated. Please check your API configuration.\n")
	}

	b.WriteString("\n## Additional SERP Data for Analysis\n")
	fmt.Fprintf(&b, "**Total SERP results:** %d\n", serpResult.SEResultsCount)
	fmt.Fprintf(&b, "**Search performed:** %s\n", orPlaceholder(serpResult.Datetime))
	fmt.Fprintf(&b, "**Location:** %d\n", serpResult.LocationCode)
	fmt.Fprintf(&b, "**Device:** %s\n", orPlaceholder(serpResult.Device))

	if features := serp.Features(serpResult); len(features) > 0 {
		fmt.Fprintf(&b, "**SERP Features present:** %s\n", strings.Join(features, ", "))
	}

	domains := organicDomains(organic)
	fmt.Fprintf(&b, "**Unique domains ranking:** %d\n", countUnique(domains))

	if distribution := TLDDistribution(domains); distribution != "" {
		fmt.Fprintf(&b, "**TLD distribution:** %s\n", distribution)
	}

	return b.String()
}

// DeriveDomain extracts the authority component of a URL, or a placeholder
// when the URL is empty, schemeless or unparseable.
func DeriveDomain(rawURL string) string {
	if rawURL == "" {
		return placeholder
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return placeholder
	}
	return u.Host
}

// DeriveTLD returns the final dot-separated segment of a domain, or "" when
// the domain has no dot.
func DeriveTLD(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 || idx == len(domain)-1 {
		return ""
	}
	return domain[idx+1:]
}

// TLDDistribution renders "tld: n" pairs sorted by count descending, ties
// broken alphabetically so the report stays deterministic.
func TLDDistribution(domains []string) string {
	counts := make(map[string]int)
	for _, domain := range domains {
		if tld := DeriveTLD(domain); tld != "" {
			counts[tld]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	tlds := make([]string, 0, len(counts))
	for tld := range counts {
		tlds = append(tlds, tld)
	}
	sort.Slice(tlds, func(i, j int) bool {
		if counts[tlds[i]] != counts[tlds[j]] {
			return counts[tlds[i]] > counts[tlds[j]]
		}
		return tlds[i] < tlds[j]
	})

	parts := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		parts = append(parts, fmt.Sprintf("%s: %d", tld, counts[tld]))
	}
	return strings.Join(parts, ", ")
}

func organicDomains(organic []models.OrganicResult) []string {
	domains := make([]string, 0, len(organic))
	for _, result := range organic {
		if domain := DeriveDomain(result.URL); domain != placeholder {
			domains = append(domains, domain)
		}
	}
	return domains
}

func countUnique(values []string) int {
	seen := make(map[string]bool)
	for _, value := range values {
		seen[value] = true
	}
	return len(seen)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
