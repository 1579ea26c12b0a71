package gateway

// ToolSchema describes one callable tool in the catalog.
type ToolSchema struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"input_schema"`
	OutputSchema map[string]any `json:"output_schema"`
}

// ResourceSchema describes one readable resource in the catalog.
type ResourceSchema struct {
	URI         string `json:"uri"`
	Description string `json:"description"`
}

// ServerInfo is the catalog served on GET /mcp.
type ServerInfo struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Tools       []ToolSchema     `json:"tools"`
	Resources   []ResourceSchema `json:"resources"`
}

// Info returns the tool and resource catalog.
func (s *Service) Info() ServerInfo {
	return ServerInfo{
		Name:        "SEO Copilot",
		Description: "Provides SEO analysis and title suggestions based on SERP data",
		Tools: []ToolSchema{
			{
				Name:        ToolAnalyzeTitle,
				Description: "Analyzes a webpage title and suggests improvements based on SERP data",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query":         map[string]any{"type": "string", "description": "The search query to analyze"},
						"user_title":    map[string]any{"type": "string", "description": "The current title of the user's page"},
						"location_code": map[string]any{"type": "integer", "description": "Location code for SERP data (default: 2840 for US)"},
						"language_code": map[string]any{"type": "string", "description": "Language code for SERP data (default: en)"},
						"device":        map[string]any{"type": "string", "description": "Device type for SERP data (default: desktop)"},
						"user_domain":   map[string]any{"type": "string", "description": "Domain of the user's site, used by heuristic proposals"},
						"max_results":   map[string]any{"type": "integer", "description": "Cap for the per-result breakdown (default: 10)"},
						"use_test_data": map[string]any{"type": "boolean", "description": "Use local fixture data instead of a live API call"},
					},
					"required": []string{"query", "user_title"},
				},
				OutputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query":             map[string]any{"type": "string"},
						"user_title":        map[string]any{"type": "string"},
						"competitor_titles": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"suggestions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title":       map[string]any{"type": "string"},
									"description": map[string]any{"type": "string"},
									"rationale":   map[string]any{"type": "string"},
								},
							},
						},
						"model_used": map[string]any{"type": "string"},
					},
				},
			},
		},
		Resources: []ResourceSchema{
			{
				URI:         ResourceSampleSERP,
				Description: "Sample SERP data for testing",
			},
		},
	}
}
