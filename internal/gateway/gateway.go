package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/seocopilot/seo-copilot/internal/apperr"
	"github.com/seocopilot/seo-copilot/internal/config"
	"github.com/seocopilot/seo-copilot/internal/fixtures"
	"github.com/seocopilot/seo-copilot/internal/models"
	"github.com/seocopilot/seo-copilot/internal/report"
	"github.com/seocopilot/seo-copilot/internal/serp"
	"github.com/seocopilot/seo-copilot/internal/suggest"
)

const (
	// ToolAnalyzeTitle is the single callable tool exposed on both transports.
	ToolAnalyzeTitle = "analyze_title"

	// ResourceSampleSERP is the canned SERP payload resource.
	ResourceSampleSERP = "sample_serp_data"

	sampleFixtureFile = "serp-sample.json"
)

// SerpFetcher is the live SERP dependency of the gateway.
type SerpFetcher interface {
	Fetch(ctx context.Context, keyword string, locationCode int, languageCode, device string) (*serp.Result, error)
}

// Suggester is the LLM dependency of the gateway.
type Suggester interface {
	Suggest(ctx context.Context, query, userTitle string, competitorTitles []string) (*suggest.Result, error)
}

// Service validates tool invocations and drives the analysis pipeline:
// SERP fetch (or fixture), normalization, suggestion, formatting.
type Service struct {
	cfg      *config.Config
	serp     SerpFetcher
	engine   Suggester
	fixtures fixtures.Store
}

// AnalyzeArgs are the arguments of the analyze_title tool.
type AnalyzeArgs struct {
	Query        string `json:"query"`
	UserTitle    string `json:"user_title"`
	LocationCode int    `json:"location_code,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	Device       string `json:"device,omitempty"`
	UserDomain   string `json:"user_domain,omitempty"`
	MaxResults   int    `json:"max_results,omitempty"`
	UseTestData  bool   `json:"use_test_data,omitempty"`
}

// NewService creates a new tool gateway
func NewService(cfg *config.Config, serpClient SerpFetcher, engine Suggester, store fixtures.Store) *Service {
	return &Service{
		cfg:      cfg,
		serp:     serpClient,
		engine:   engine,
		fixtures: store,
	}
}

// Validate checks required fields before any provider call is made.
func (a AnalyzeArgs) Validate() error {
	if strings.TrimSpace(a.Query) == "" {
		return apperr.Validation("query", "query is required")
	}
	if strings.TrimSpace(a.UserTitle) == "" {
		return apperr.Validation("user_title", "user_title is required")
	}
	return nil
}

// CallTool dispatches a named tool invocation with a generic argument map.
func (s *Service) CallTool(ctx context.Context, name string, arguments map[string]any) (any, error) {
	switch name {
	case ToolAnalyzeTitle:
		args, err := decodeArgs(arguments)
		if err != nil {
			return nil, err
		}
		return s.AnalyzeTitle(ctx, args)
	default:
		return nil, apperr.NotFound(fmt.Sprintf("unknown tool: %s", name))
	}
}

func decodeArgs(arguments map[string]any) (AnalyzeArgs, error) {
	var args AnalyzeArgs
	raw, err := json.Marshal(arguments)
	if err != nil {
		return args, apperr.Validation("arguments", "arguments are not a JSON object")
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, apperr.Validation("arguments", fmt.Sprintf("invalid arguments: %v", err))
	}
	return args, nil
}

// AnalyzeTitle runs the full pipeline and returns the structured response.
func (s *Service) AnalyzeTitle(ctx context.Context, args AnalyzeArgs) (*models.AnalysisResponse, error) {
	run, err := s.run(ctx, args)
	if err != nil {
		return nil, err
	}

	analysis := report.BuildAnalysis(run.suggestion, run.titles)
	return &analysis, nil
}

// AnalyzeTitleReport runs the full pipeline and renders the narrative report.
func (s *Service) AnalyzeTitleReport(ctx context.Context, args AnalyzeArgs) (string, error) {
	_, text, err := s.AnalyzeTitleFull(ctx, args)
	return text, err
}

// AnalyzeTitleFull runs the pipeline once and returns both render targets.
func (s *Service) AnalyzeTitleFull(ctx context.Context, args AnalyzeArgs) (*models.AnalysisResponse, string, error) {
	run, err := s.run(ctx, args)
	if err != nil {
		return nil, "", err
	}

	analysis := report.BuildAnalysis(run.suggestion, run.titles)
	text := report.RenderText(
		args.Query,
		args.UserTitle,
		run.titles,
		run.organic,
		run.paaQuestions,
		run.suggestion.Suggestions,
		run.serpResult,
		args.MaxResults,
	)
	return &analysis, text, nil
}

type pipelineRun struct {
	serpResult   *serp.Result
	titles       []string
	organic      []models.OrganicResult
	paaQuestions []string
	suggestion   *suggest.Result
}

func (s *Service) run(ctx context.Context, args AnalyzeArgs) (*pipelineRun, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	serpResult, err := s.loadSERP(ctx, args)
	if err != nil {
		return nil, err
	}

	titles := serp.ExtractTitles(serpResult)
	logrus.Infof("Extracted %d competitor titles for query %q", len(titles), args.Query)

	suggestion, err := s.engine.Suggest(ctx, args.Query, args.UserTitle, titles)
	if err != nil {
		return nil, err
	}

	return &pipelineRun{
		serpResult:   serpResult,
		titles:       titles,
		organic:      serp.ExtractOrganicResults(serpResult),
		paaQuestions: serp.ExtractPAAQuestions(serpResult),
		suggestion:   suggestion,
	}, nil
}

// loadSERP picks fixture data over a live call when the caller or the
// configuration asks for it. The fixture path exists so demos do not burn
// paid API quota.
func (s *Service) loadSERP(ctx context.Context, args AnalyzeArgs) (*serp.Result, error) {
	if args.UseTestData || s.cfg.UseFixtureData || strings.EqualFold(args.Query, s.cfg.FixtureKeyword) {
		logrus.Info("Using fixture SERP data instead of a live call")
		return s.loadFixtureSERP()
	}

	locationCode := args.LocationCode
	if locationCode == 0 {
		locationCode = s.cfg.DefaultLocationCode
	}
	languageCode := args.LanguageCode
	if languageCode == "" {
		languageCode = s.cfg.DefaultLanguageCode
	}
	device := args.Device
	if device == "" {
		device = s.cfg.DefaultDevice
	}

	return s.serp.Fetch(ctx, args.Query, locationCode, languageCode, device)
}

func (s *Service) loadFixtureSERP() (*serp.Result, error) {
	data, err := s.fixtures.Retrieve(sampleFixtureFile)
	if err != nil {
		return nil, apperr.MalformedData("failed to load fixture SERP data", err)
	}
	return serp.Decode(data)
}

// AnalyzeProvided runs suggestion generation over caller-supplied SERP JSON
// instead of a provider call. Backs POST /analyze.
func (s *Service) AnalyzeProvided(ctx context.Context, query, userTitle string, serpJSON []byte) (*suggest.Result, error) {
	args := AnalyzeArgs{Query: query, UserTitle: userTitle}
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if len(serpJSON) == 0 {
		return nil, apperr.Validation("serp_json", "serp_json is required")
	}

	serpResult, err := serp.Decode(serpJSON)
	if err != nil {
		return nil, err
	}

	titles := serp.ExtractTitles(serpResult)
	return s.engine.Suggest(ctx, query, userTitle, titles)
}

// DemoAnalysis is the fixture-driven payload served by GET /analyze.
type DemoAnalysis struct {
	Domain      string                          `json:"domain"`
	Analysis    models.SerpStats                `json:"analysis"`
	Suggestions map[string]models.TitleProposal `json:"suggestions"`
}

// Demo analyzes the fixture SERP with the heuristic title rewriter. The
// domain defaults to the configured target site.
func (s *Service) Demo(domain string) (*DemoAnalysis, error) {
	if domain == "" {
		domain = s.cfg.Domain
	}

	serpResult, err := s.loadFixtureSERP()
	if err != nil {
		return nil, err
	}

	organic := serp.ExtractOrganicResults(serpResult)
	stats, err := serp.AnalyzeTitles(organic)
	if err != nil {
		return nil, err
	}

	return &DemoAnalysis{
		Domain:      domain,
		Analysis:    stats,
		Suggestions: serp.ProposeTitles(organic, domain),
	}, nil
}

// ReadResource returns the raw bytes of a named resource.
func (s *Service) ReadResource(uri string) ([]byte, error) {
	switch uri {
	case ResourceSampleSERP:
		return s.fixtures.Retrieve(sampleFixtureFile)
	default:
		return nil, apperr.NotFound(fmt.Sprintf("unknown resource URI: %s", uri))
	}
}
