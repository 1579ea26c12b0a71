package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seocopilot/seo-copilot/internal/apperr"
	"github.com/seocopilot/seo-copilot/internal/config"
	"github.com/seocopilot/seo-copilot/internal/fixtures"
	"github.com/seocopilot/seo-copilot/internal/models"
	"github.com/seocopilot/seo-copilot/internal/serp"
	"github.com/seocopilot/seo-copilot/internal/suggest"
)

// MockSerpFetcher is a mock implementation of the SERP client
type MockSerpFetcher struct {
	mock.Mock
}

func (m *MockSerpFetcher) Fetch(ctx context.Context, keyword string, locationCode int, languageCode, device string) (*serp.Result, error) {
	args := m.Called(ctx, keyword, locationCode, languageCode, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serp.Result), args.Error(1)
}

// MockSuggester is a mock implementation of the suggestion engine
type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Suggest(ctx context.Context, query, userTitle string, competitorTitles []string) (*suggest.Result, error) {
	args := m.Called(ctx, query, userTitle, competitorTitles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggest.Result), args.Error(1)
}

const fixtureEnvelope = `{
	"tasks": [
		{
			"data": {"location_name": "United States", "language_code": "en", "device": "desktop"},
			"result": [
				{
					"keyword": "sweepstakes casinos",
					"datetime": "2024-08-30 06:36:10 +00:00",
					"location_code": 2840,
					"se_results_count": 1000,
					"items": [
						{"type": "organic", "rank_group": 1, "title": "Fixture Title A", "url": "https://a.com/1"},
						{"type": "organic", "rank_group": 2, "title": "Fixture Title B", "url": "https://b.com/2"},
						{"type": "people_also_ask", "items": [
							{"type": "people_also_ask_element", "title": "Is it legal?"}
						]}
					]
				}
			]
		}
	]
}`

func testService(t *testing.T) (*Service, *MockSerpFetcher, *MockSuggester) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "serp-sample.json"), []byte(fixtureEnvelope), 0o644))

	cfg := &config.Config{
		DefaultLocationCode: 2840,
		DefaultLanguageCode: "en",
		DefaultDevice:       "desktop",
		Domain:              "example.com",
		FixtureDir:          dir,
		FixtureKeyword:      "sweepstakes casinos",
	}

	serpMock := &MockSerpFetcher{}
	engineMock := &MockSuggester{}
	service := NewService(cfg, serpMock, engineMock, fixtures.NewLocalStore(dir))
	return service, serpMock, engineMock
}

func suggestResult(query, userTitle string, titles []string) *suggest.Result {
	return &suggest.Result{
		Query:         query,
		UserTitle:     userTitle,
		TopSerpTitles: titles,
		Suggestions:   []models.Suggestion{{Title: "S", Description: "D", Rationale: "R"}},
		ModelUsed:     "anthropic:claude-3-5-sonnet-20241022",
	}
}

func TestAnalyzeArgs_Validate(t *testing.T) {
	tests := []struct {
		name  string
		args  AnalyzeArgs
		field string
	}{
		{name: "Missing query", args: AnalyzeArgs{UserTitle: "x"}, field: "query"},
		{name: "Blank query", args: AnalyzeArgs{Query: "  ", UserTitle: "x"}, field: "query"},
		{name: "Missing user title", args: AnalyzeArgs{Query: "q"}, field: "user_title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.field, apperr.FieldOf(err))
		})
	}

	assert.NoError(t, AnalyzeArgs{Query: "q", UserTitle: "t"}.Validate())
}

func TestCallTool_ValidationStopsPipeline(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	_, err := service.CallTool(context.Background(), ToolAnalyzeTitle, map[string]any{
		"query":      "",
		"user_title": "x",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	serpMock.AssertNotCalled(t, "Fetch")
	engineMock.AssertNotCalled(t, "Suggest")
}

func TestCallTool_UnknownTool(t *testing.T) {
	service, _, _ := testService(t)

	_, err := service.CallTool(context.Background(), "nonexistent", map[string]any{})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAnalyzeTitle_FixtureKeywordShortCircuit(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	engineMock.On("Suggest", mock.Anything, "Sweepstakes Casinos", "My Title",
		[]string{"Fixture Title A", "Fixture Title B"}).
		Return(suggestResult("Sweepstakes Casinos", "My Title", []string{"Fixture Title A", "Fixture Title B"}), nil)

	// Keyword match is case-insensitive
	analysis, err := service.AnalyzeTitle(context.Background(), AnalyzeArgs{
		Query:     "Sweepstakes Casinos",
		UserTitle: "My Title",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Fixture Title A", "Fixture Title B"}, analysis.CompetitorTitles)
	require.Len(t, analysis.Suggestions, 1)
	serpMock.AssertNotCalled(t, "Fetch")
	engineMock.AssertExpectations(t)
}

func TestAnalyzeTitle_UseTestDataFlag(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	engineMock.On("Suggest", mock.Anything, "anything else", "Title", mock.Anything).
		Return(suggestResult("anything else", "Title", nil), nil)

	_, err := service.AnalyzeTitle(context.Background(), AnalyzeArgs{
		Query:       "anything else",
		UserTitle:   "Title",
		UseTestData: true,
	})

	require.NoError(t, err)
	serpMock.AssertNotCalled(t, "Fetch")
}

func TestAnalyzeTitle_LivePathUsesDefaults(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	live := &serp.Result{
		Keyword: "live query",
		Items: []serp.Item{
			{Type: "organic", RankGroup: 1, Title: "Live Title", URL: "https://live.com/"},
		},
	}
	serpMock.On("Fetch", mock.Anything, "live query", 2840, "en", "desktop").Return(live, nil)
	engineMock.On("Suggest", mock.Anything, "live query", "Title", []string{"Live Title"}).
		Return(suggestResult("live query", "Title", []string{"Live Title"}), nil)

	analysis, err := service.AnalyzeTitle(context.Background(), AnalyzeArgs{
		Query:     "live query",
		UserTitle: "Title",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Live Title"}, analysis.CompetitorTitles)
	serpMock.AssertExpectations(t)
	engineMock.AssertExpectations(t)
}

func TestAnalyzeTitle_OverridesReachClient(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	live := &serp.Result{Keyword: "q", Items: []serp.Item{}}
	serpMock.On("Fetch", mock.Anything, "q", 2826, "de", "mobile").Return(live, nil)
	engineMock.On("Suggest", mock.Anything, "q", "t", mock.Anything).
		Return(suggestResult("q", "t", nil), nil)

	_, err := service.AnalyzeTitle(context.Background(), AnalyzeArgs{
		Query:        "q",
		UserTitle:    "t",
		LocationCode: 2826,
		LanguageCode: "de",
		Device:       "mobile",
	})

	require.NoError(t, err)
	serpMock.AssertExpectations(t)
}

func TestAnalyzeTitle_UpstreamErrorPropagates(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	serpMock.On("Fetch", mock.Anything, "q", 2840, "en", "desktop").
		Return(nil, apperr.UpstreamStatus("DataForSEO", 500, "boom"))

	_, err := service.AnalyzeTitle(context.Background(), AnalyzeArgs{Query: "q", UserTitle: "t"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	engineMock.AssertNotCalled(t, "Suggest")
}

func TestAnalyzeTitleFull_ReportContents(t *testing.T) {
	service, _, engineMock := testService(t)

	engineMock.On("Suggest", mock.Anything, "sweepstakes casinos", "My Title", mock.Anything).
		Return(suggestResult("sweepstakes casinos", "My Title", []string{"Fixture Title A", "Fixture Title B"}), nil)

	analysis, text, err := service.AnalyzeTitleFull(context.Background(), AnalyzeArgs{
		Query:     "sweepstakes casinos",
		UserTitle: "My Title",
	})

	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Contains(t, text, "# SEO Title Analysis Results")
	assert.Contains(t, text, "**Competitor titles found:** 2")
	assert.Contains(t, text, "1. Is it legal?")
	assert.Contains(t, text, "**Domain:** a.com")
	assert.Contains(t, text, "### Suggestion 1")
}

func TestAnalyzeProvided(t *testing.T) {
	service, serpMock, engineMock := testService(t)

	engineMock.On("Suggest", mock.Anything, "q", "t", []string{"Fixture Title A", "Fixture Title B"}).
		Return(suggestResult("q", "t", []string{"Fixture Title A", "Fixture Title B"}), nil)

	result, err := service.AnalyzeProvided(context.Background(), "q", "t", []byte(fixtureEnvelope))

	require.NoError(t, err)
	assert.Len(t, result.Suggestions, 1)
	serpMock.AssertNotCalled(t, "Fetch")
}

func TestAnalyzeProvided_MissingSerpJSON(t *testing.T) {
	service, _, engineMock := testService(t)

	_, err := service.AnalyzeProvided(context.Background(), "q", "t", nil)

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "serp_json", apperr.FieldOf(err))
	engineMock.AssertNotCalled(t, "Suggest")
}

func TestDemo(t *testing.T) {
	service, _, _ := testService(t)

	demo, err := service.Demo("")
	require.NoError(t, err)

	assert.Equal(t, "example.com", demo.Domain)
	assert.Equal(t, 2, demo.Analysis.TotalEntries)
	require.Contains(t, demo.Suggestions, "sweepstakes casinos")
	assert.Equal(t, "Sweepstakes casinos | example.com", demo.Suggestions["sweepstakes casinos"].ProposedTitle)
}

func TestDemo_DomainOverride(t *testing.T) {
	service, _, _ := testService(t)

	demo, err := service.Demo("mysite.io")
	require.NoError(t, err)
	assert.Equal(t, "mysite.io", demo.Domain)
}

func TestReadResource(t *testing.T) {
	service, _, _ := testService(t)

	data, err := service.ReadResource(ResourceSampleSERP)
	require.NoError(t, err)
	assert.JSONEq(t, fixtureEnvelope, string(data))
}

func TestReadResource_Unknown(t *testing.T) {
	service, _, _ := testService(t)

	_, err := service.ReadResource("nope")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
