package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/seocopilot/seo-copilot/internal/apperr"
	"github.com/seocopilot/seo-copilot/internal/config"
	"github.com/seocopilot/seo-copilot/internal/fixtures"
	"github.com/seocopilot/seo-copilot/internal/gateway"
	"github.com/seocopilot/seo-copilot/internal/models"
	"github.com/seocopilot/seo-copilot/internal/serp"
	"github.com/seocopilot/seo-copilot/internal/suggest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Stdout carries protocol frames; logrus already writes to stderr.
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	serpClient := serp.NewClient(cfg.DataForSEOLogin, cfg.DataForSEOPassword, cfg.SerpEndpoint)
	engine := suggest.NewEngine(cfg)
	store := fixtures.NewLocalStore(cfg.FixtureDir)
	service := gateway.NewService(cfg, serpClient, engine, store)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "seo-copilot",
		Version: "1.0.0",
	}, nil)

	registerAnalyzeTitle(server, service)
	registerSampleResource(server, service)

	logrus.Info("Starting SEO Copilot stdio server")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logrus.Fatalf("Stdio server failed: %v", err)
	}
}

func registerAnalyzeTitle(server *mcp.Server, service *gateway.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        gateway.ToolAnalyzeTitle,
		Description: "Analyze a webpage title and suggest SEO improvements based on SERP data",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args gateway.AnalyzeArgs) (*mcp.CallToolResult, *models.AnalysisResponse, error) {
		logrus.Infof("Analyzing title for query: %s", args.Query)

		analysis, text, err := service.AnalyzeTitleFull(ctx, args)
		if err != nil {
			// The loop must survive every failure; the assistant gets the
			// message plus a remediation hint instead of a dead server.
			kind := apperr.KindOf(err)
			logrus.Errorf("analyze_title failed (%s): %v", kind, err)
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{
					Text: fmt.Sprintf("Error analyzing title: %v\n\nHint: %s", err, apperr.Hint(kind)),
				}},
			}, nil, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, analysis, nil
	})
}

func registerSampleResource(server *mcp.Server, service *gateway.Service) {
	server.AddResource(&mcp.Resource{
		URI:         gateway.ResourceSampleSERP,
		Name:        "Sample SERP Data",
		Description: "Sample SERP data for demos without live API calls",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := service.ReadResource(gateway.ResourceSampleSERP)
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      gateway.ResourceSampleSERP,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	})
}
