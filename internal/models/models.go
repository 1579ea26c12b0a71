package models

// OrganicResult is a flat view over one organic SERP item, enriched with the
// request-scoped keyword and locale from the response envelope.
type OrganicResult struct {
	Keyword      string `json:"keyword"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Position     int    `json:"position"`
	Language     string `json:"language"`
	LocationName string `json:"location_name"`
	Description  string `json:"description,omitempty"`
}

// Suggestion is one LLM-proposed title/description pair with its rationale.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
}

// AnalysisResponse is the structured result of one analyze_title run.
// Constructed fresh per request and never mutated afterwards.
type AnalysisResponse struct {
	Query            string       `json:"query"`
	UserTitle        string       `json:"user_title"`
	CompetitorTitles []string     `json:"competitor_titles"`
	Suggestions      []Suggestion `json:"suggestions"`
	ModelUsed        string       `json:"model_used"`
}

// SerpStats summarizes title lengths across a set of organic results.
type SerpStats struct {
	TotalEntries   int     `json:"total_entries"`
	AvgTitleLength float64 `json:"avg_title_length"`
	ShortestTitle  int     `json:"shortest_title"`
	LongestTitle   int     `json:"longest_title"`
}

// TitleProposal is a heuristic rewrite of an existing ranking title,
// keyed by the keyword it ranks for.
type TitleProposal struct {
	OriginalTitle string `json:"original_title"`
	ProposedTitle string `json:"proposed_title"`
}
