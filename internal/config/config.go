package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// DataForSEO credentials and endpoint
	DataForSEOLogin    string
	DataForSEOPassword string
	SerpEndpoint       string

	// LLM provider configuration
	AnthropicAPIKey string
	LLMEndpoint     string
	LLMModel        string
	LLMMaxTokens    int
	LLMTemperature  float64

	// SERP request defaults
	DefaultLocationCode int
	DefaultLanguageCode string
	DefaultDevice       string

	// Target site for heuristic title proposals
	Domain string

	// Fixture configuration (demo mode without burning API quota)
	FixtureDir     string
	FixtureKeyword string
	UseFixtureData bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		DataForSEOLogin:    getEnv("DATAFORSEO_LOGIN", ""),
		DataForSEOPassword: getEnv("DATAFORSEO_PASSWORD", ""),
		SerpEndpoint:       getEnv("SERP_ENDPOINT", "https://api.dataforseo.com/v3/serp/google/organic/live/advanced"),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		LLMEndpoint:     getEnv("LLM_ENDPOINT", "https://api.anthropic.com/v1/messages"),
		LLMModel:        getEnv("LLM_MODEL", "claude-3-5-sonnet-20241022"),
		LLMMaxTokens:    getIntEnv("LLM_MAX_TOKENS", 1024),
		LLMTemperature:  getFloatEnv("LLM_TEMPERATURE", 0.7),

		DefaultLocationCode: getIntEnv("DEFAULT_LOCATION_CODE", 2840),
		DefaultLanguageCode: getEnv("DEFAULT_LANGUAGE_CODE", "en"),
		DefaultDevice:       getEnv("DEFAULT_DEVICE", "desktop"),

		Domain: getEnv("DOMAIN", "example.com"),

		FixtureDir:     getEnv("FIXTURE_DIR", "data"),
		FixtureKeyword: getEnv("FIXTURE_KEYWORD", "sweepstakes casinos"),
		UseFixtureData: getBoolEnv("USE_FIXTURE_DATA", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate covers values that must be structurally sane at startup. Missing
// provider credentials are deliberately not checked here: they surface at
// call time so fixture-driven demos work without them.
func (c *Config) validate() error {
	if c.DefaultLocationCode <= 0 {
		return fmt.Errorf("DEFAULT_LOCATION_CODE must be a positive location code")
	}

	if c.DefaultDevice != "desktop" && c.DefaultDevice != "mobile" {
		return fmt.Errorf("DEFAULT_DEVICE must be 'desktop' or 'mobile'")
	}

	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
