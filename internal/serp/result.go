package serp

import (
	"encoding/json"

	"github.com/seocopilot/seo-copilot/internal/apperr"
)

// Item is a single SERP entry. Non-organic entries (ads, featured snippets,
// People Also Ask blocks) share the same shape with most fields empty.
// People Also Ask blocks nest their questions as child items.
type Item struct {
	Type        string `json:"type"`
	RankGroup   int    `json:"rank_group,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Items       []Item `json:"items,omitempty"`
}

// Result is the unwrapped SERP result block for one keyword: the contents of
// tasks[0].result[0] in the provider's task-queue envelope. Device and
// LocationName come from the task's request echo, not the result block, and
// fall back to defaults when the envelope omits them.
type Result struct {
	Keyword        string `json:"keyword"`
	Datetime       string `json:"datetime"`
	LocationCode   int    `json:"location_code"`
	LanguageCode   string `json:"language_code"`
	SEResultsCount int64  `json:"se_results_count"`
	Items          []Item `json:"items"`

	Device       string `json:"device,omitempty"`
	LocationName string `json:"location_name,omitempty"`
}

// Language returns the envelope language code, defaulting to "en".
func (r *Result) Language() string {
	if r.LanguageCode == "" {
		return "en"
	}
	return r.LanguageCode
}

// Location returns the envelope location name, defaulting to "Unknown".
func (r *Result) Location() string {
	if r.LocationName == "" {
		return "Unknown"
	}
	return r.LocationName
}

type envelope struct {
	Tasks []struct {
		Data struct {
			Device       string `json:"device"`
			LanguageCode string `json:"language_code"`
			LocationName string `json:"location_name"`
		} `json:"data"`
		Result []json.RawMessage `json:"result"`
	} `json:"tasks"`
}

// DecodeEnvelope unwraps a full provider response. The provider uses a
// task-queue shape even for live calls, so exactly one task and one result
// entry are expected; anything else is a malformed response.
func DecodeEnvelope(raw []byte) (*Result, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.MalformedData("failed to parse SERP response", err)
	}

	if len(env.Tasks) == 0 || len(env.Tasks[0].Result) == 0 {
		return nil, apperr.MalformedData("SERP response is missing tasks[0].result[0]", nil)
	}

	result, err := decodeResult(env.Tasks[0].Result[0])
	if err != nil {
		return nil, err
	}

	// Request echo from the task envelope wins over result-block fields
	// the provider leaves empty.
	if result.Device == "" {
		result.Device = env.Tasks[0].Data.Device
	}
	if result.LanguageCode == "" {
		result.LanguageCode = env.Tasks[0].Data.LanguageCode
	}
	if result.LocationName == "" {
		result.LocationName = env.Tasks[0].Data.LocationName
	}

	return result, nil
}

// Decode accepts either a full provider envelope or a bare result block.
// Fixtures and caller-supplied SERP JSON arrive in both shapes.
func Decode(raw []byte) (*Result, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperr.MalformedData("failed to parse SERP JSON", err)
	}

	if _, ok := probe["tasks"]; ok {
		return DecodeEnvelope(raw)
	}

	return decodeResult(raw)
}

func decodeResult(raw []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperr.MalformedData("failed to parse SERP result block", err)
	}

	// An absent items array means the result block is structurally broken,
	// unlike an empty one which is a valid zero-result SERP.
	if result.Items == nil {
		return nil, apperr.MalformedData("SERP result block has no items array", nil)
	}

	return &result, nil
}
