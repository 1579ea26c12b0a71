package serp

import (
	"sort"

	"github.com/seocopilot/seo-copilot/internal/models"
)

const (
	itemTypeOrganic = "organic"
	itemTypePAA     = "people_also_ask"
)

// ExtractTitles returns the titles of organic results in SERP rank order.
// Organic items without a title are skipped.
func ExtractTitles(r *Result) []string {
	titles := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Type != itemTypeOrganic || item.Title == "" {
			continue
		}
		titles = append(titles, item.Title)
	}
	return titles
}

// ExtractOrganicResults returns structured records for every organic item in
// rank order. Missing per-item fields default to zero values; keyword and
// locale come from the response envelope.
func ExtractOrganicResults(r *Result) []models.OrganicResult {
	results := make([]models.OrganicResult, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Type != itemTypeOrganic {
			continue
		}
		results = append(results, models.OrganicResult{
			Keyword:      r.Keyword,
			Title:        item.Title,
			URL:          item.URL,
			Position:     item.RankGroup,
			Language:     r.Language(),
			LocationName: r.Location(),
			Description:  item.Description,
		})
	}
	return results
}

// ExtractPAAQuestions returns the "People Also Ask" questions in order.
// A SERP without a PAA block yields an empty list.
func ExtractPAAQuestions(r *Result) []string {
	questions := []string{}
	for _, item := range r.Items {
		if item.Type != itemTypePAA {
			continue
		}
		for _, element := range item.Items {
			if element.Title == "" {
				continue
			}
			questions = append(questions, element.Title)
		}
	}
	return questions
}

// Features returns the distinct non-organic item types present, sorted.
func Features(r *Result) []string {
	seen := make(map[string]bool)
	for _, item := range r.Items {
		if item.Type == "" || item.Type == itemTypeOrganic {
			continue
		}
		seen[item.Type] = true
	}

	features := make([]string, 0, len(seen))
	for feature := range seen {
		features = append(features, feature)
	}
	sort.Strings(features)
	return features
}
