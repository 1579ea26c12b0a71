// Manual debug script: exercises the SERP and LLM providers directly with
// real credentials. Not wired into any test suite.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/seocopilot/seo-copilot/internal/config"
	"github.com/seocopilot/seo-copilot/internal/serp"
	"github.com/seocopilot/seo-copilot/internal/suggest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	keyword := "best running shoes"
	if len(os.Args) > 1 {
		keyword = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Fetching live SERP for %q...\n", keyword)
	client := serp.NewClient(cfg.DataForSEOLogin, cfg.DataForSEOPassword, cfg.SerpEndpoint)
	result, err := client.Fetch(ctx, keyword, cfg.DefaultLocationCode, cfg.DefaultLanguageCode, cfg.DefaultDevice)
	if err != nil {
		log.Fatalf("SERP fetch failed: %v", err)
	}

	titles := serp.ExtractTitles(result)
	fmt.Printf("Got %d organic titles (of %d items, %d total results)\n",
		len(titles), len(result.Items), result.SEResultsCount)
	for i, title := range titles {
		fmt.Printf("  %2d. %s\n", i+1, title)
	}

	if paa := serp.ExtractPAAQuestions(result); len(paa) > 0 {
		fmt.Printf("People Also Ask (%d):\n", len(paa))
		for _, question := range paa {
			fmt.Printf("  - %s\n", question)
		}
	}

	if features := serp.Features(result); len(features) > 0 {
		fmt.Printf("SERP features: %v\n", features)
	}

	if cfg.AnthropicAPIKey == "" {
		fmt.Println("ANTHROPIC_API_KEY not set, skipping suggestion test")
		return
	}

	fmt.Println("Requesting title suggestions...")
	engine := suggest.NewEngine(cfg)
	suggestion, err := engine.Suggest(ctx, keyword, "My page about "+keyword, titles)
	if err != nil {
		log.Fatalf("Suggestion call failed: %v", err)
	}

	fmt.Printf("Model: %s, %d suggestions\n", suggestion.ModelUsed, len(suggestion.Suggestions))
	for i, s := range suggestion.Suggestions {
		fmt.Printf("  %d. %s\n     %s\n     (%s)\n", i+1, s.Title, s.Description, s.Rationale)
	}
}
