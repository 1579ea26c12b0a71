package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/seocopilot/seo-copilot/internal/apperr"
	"github.com/seocopilot/seo-copilot/internal/config"
	"github.com/seocopilot/seo-copilot/internal/models"
)

// maxPromptTitles caps how many competitor titles reach the prompt.
const maxPromptTitles = 10

const systemPrompt = "You are an expert SEO assistant. You respond with strict JSON and nothing else."

// Engine builds prompts from SERP evidence and asks the LLM provider for
// improved titles and descriptions.
type Engine struct {
	apiKey      string
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	client      *resty.Client
}

// Result is the outcome of one suggestion run.
type Result struct {
	Query         string              `json:"query"`
	UserTitle     string              `json:"user_title"`
	TopSerpTitles []string            `json:"top_serp_titles"`
	Suggestions   []models.Suggestion `json:"suggestions"`
	ModelUsed     string              `json:"model_used"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	System      string       `json:"system"`
	Messages    []llmMessage `json:"messages"`
}

type llmResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewEngine creates a new suggestion engine
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		apiKey:      cfg.AnthropicAPIKey,
		endpoint:    cfg.LLMEndpoint,
		model:       cfg.LLMModel,
		maxTokens:   cfg.LLMMaxTokens,
		temperature: cfg.LLMTemperature,
		client:      resty.New().SetTimeout(60 * time.Second),
	}
}

// IsEnabled reports whether the LLM credential is configured.
func (e *Engine) IsEnabled() bool {
	return e.apiKey != ""
}

// Suggest asks the LLM for improved titles/descriptions for the query. Only
// the first ten competitor titles are used, in SERP rank order. A reply the
// model delivers in the wrong shape degrades to an empty suggestion list;
// a transport or status failure does not.
func (e *Engine) Suggest(ctx context.Context, query, userTitle string, competitorTitles []string) (*Result, error) {
	if !e.IsEnabled() {
		return nil, apperr.Configuration("ANTHROPIC_API_KEY is not set")
	}

	topTitles := competitorTitles
	if len(topTitles) > maxPromptTitles {
		topTitles = topTitles[:maxPromptTitles]
	}

	prompt := BuildPrompt(query, userTitle, topTitles)

	body := llmRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		System:      systemPrompt,
		Messages:    []llmMessage{{Role: "user", Content: prompt}},
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", e.apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(e.endpoint)

	if err != nil {
		return nil, apperr.Upstream("LLM request failed", err)
	}

	if resp.IsError() {
		return nil, apperr.UpstreamStatus("LLM", resp.StatusCode(), resp.String())
	}

	// A delivered reply in an unexpected shape is not fatal, unlike the
	// transport failures above. It falls through to an empty content
	// string and an empty suggestion list.
	var reply llmResponse
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		logrus.Warnf("LLM reply envelope did not parse: %v", err)
	}

	var content string
	for _, block := range reply.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	suggestions, outcome := ParseSuggestions(content)
	logrus.Debugf("Parsed %d suggestions from LLM reply (%s)", len(suggestions), outcome)

	return &Result{
		Query:         query,
		UserTitle:     userTitle,
		TopSerpTitles: topTitles,
		Suggestions:   suggestions,
		ModelUsed:     "anthropic:" + e.model,
	}, nil
}

// BuildPrompt renders the instructional template. Deterministic for a given
// (query, userTitle, titles) triple.
func BuildPrompt(query, userTitle string, titles []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your task is to generate compelling, optimized meta titles and meta descriptions for the search query: %q.\n\n", query)
	fmt.Fprintf(&b, "The page currently uses this title:\n%q\n\n", userTitle)

	b.WriteString("Here are the top titles currently ranking in Google for this query:\n")
	for _, title := range titles {
		fmt.Fprintf(&b, "- %s\n", title)
	}

	b.WriteString(`
Use the SERP data above to guide your suggestions. Match the tone, length and structure where needed, but aim to outperform these titles by being more relevant, clickable and unique.

Follow these rules:
- Prioritize CTR (click-through rate) above all
- Titles must be between 50 and 65 characters; you may relax this only when the ranking SERP titles justify it
- Descriptions must be between 120 and 160 characters
- Emojis, if used at all, go only at the very start or very end of a title
- Look for angles the current titles miss: CTAs, emotional appeal, specificity, uniqueness

Return exactly 5 suggestions. Respond with strict JSON in this shape and nothing else:
{"suggestions": [{"title": "...", "description": "...", "rationale": "..."}]}
`)

	return b.String()
}
