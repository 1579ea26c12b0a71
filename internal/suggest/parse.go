package suggest

import (
	"encoding/json"
	"strings"

	"github.com/seocopilot/seo-copilot/internal/models"
)

// ParseOutcome tags which parsing layer produced the suggestions.
type ParseOutcome string

const (
	// OutcomeParsedJSON means the whole reply was valid JSON.
	OutcomeParsedJSON ParseOutcome = "parsed_json"
	// OutcomeFencedJSON means JSON was recovered from a markdown code fence.
	OutcomeFencedJSON ParseOutcome = "fenced_json"
	// OutcomeUnparseable means no JSON could be recovered; the suggestion
	// list is empty rather than an error, since the model's output format
	// is not contractually guaranteed.
	OutcomeUnparseable ParseOutcome = "unparseable"
)

type suggestionsPayload struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}

// ParseSuggestions decodes an LLM reply into suggestions, trying the whole
// reply first and a fenced code block second. It never fails.
func ParseSuggestions(content string) ([]models.Suggestion, ParseOutcome) {
	trimmed := strings.TrimSpace(content)

	if suggestions, ok := decodeSuggestions(trimmed); ok {
		return suggestions, OutcomeParsedJSON
	}

	if fenced, ok := extractFencedBlock(trimmed); ok {
		if suggestions, ok := decodeSuggestions(fenced); ok {
			return suggestions, OutcomeFencedJSON
		}
	}

	return []models.Suggestion{}, OutcomeUnparseable
}

func decodeSuggestions(s string) ([]models.Suggestion, bool) {
	if s == "" {
		return nil, false
	}

	var payload suggestionsPayload
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil, false
	}

	if payload.Suggestions == nil {
		payload.Suggestions = []models.Suggestion{}
	}
	return payload.Suggestions, true
}

// extractFencedBlock returns the contents of the first ``` fence, tolerating
// a language tag after the opening backticks.
func extractFencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}

	rest := s[start+3:]
	if newline := strings.Index(rest, "\n"); newline >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		rest = rest[newline+1:]
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}
