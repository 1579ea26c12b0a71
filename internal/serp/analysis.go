package serp

import (
	"strings"
	"unicode"

	"github.com/seocopilot/seo-copilot/internal/apperr"
	"github.com/seocopilot/seo-copilot/internal/models"
)

// AnalyzeTitles computes length statistics over the titles of the given
// organic results. Entries with empty titles count toward the total but not
// the length stats.
func AnalyzeTitles(results []models.OrganicResult) (models.SerpStats, error) {
	var lengths []int
	for _, result := range results {
		if result.Title == "" {
			continue
		}
		lengths = append(lengths, len(result.Title))
	}

	if len(lengths) == 0 {
		return models.SerpStats{}, apperr.MalformedData("no valid titles found in data", nil)
	}

	stats := models.SerpStats{
		TotalEntries:  len(results),
		ShortestTitle: lengths[0],
		LongestTitle:  lengths[0],
	}

	sum := 0
	for _, length := range lengths {
		sum += length
		if length < stats.ShortestTitle {
			stats.ShortestTitle = length
		}
		if length > stats.LongestTitle {
			stats.LongestTitle = length
		}
	}
	stats.AvgTitleLength = float64(sum) / float64(len(lengths))

	return stats, nil
}

// ProposeTitles builds a heuristic "Keyword | domain" rewrite for every
// result that has both a keyword and a title.
func ProposeTitles(results []models.OrganicResult, domain string) map[string]models.TitleProposal {
	proposals := make(map[string]models.TitleProposal)
	for _, result := range results {
		if result.Keyword == "" || result.Title == "" {
			continue
		}
		proposals[result.Keyword] = models.TitleProposal{
			OriginalTitle: result.Title,
			ProposedTitle: capitalize(strings.TrimSpace(result.Keyword)) + " | " + domain,
		}
	}
	return proposals
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
