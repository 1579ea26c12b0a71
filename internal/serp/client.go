package serp

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/seocopilot/seo-copilot/internal/apperr"
)

// Client fetches live SERP data from the DataForSEO API.
type Client struct {
	login    string
	password string
	endpoint string
	client   *resty.Client
}

type liveTask struct {
	Keyword      string `json:"keyword"`
	LocationCode int    `json:"location_code"`
	LanguageCode string `json:"language_code"`
	Device       string `json:"device"`
}

// NewClient creates a new DataForSEO client
func NewClient(login, password, endpoint string) *Client {
	return &Client{
		login:    login,
		password: password,
		endpoint: endpoint,
		client:   resty.New().SetTimeout(30 * time.Second),
	}
}

// IsEnabled reports whether provider credentials are configured.
func (c *Client) IsEnabled() bool {
	return c.login != "" && c.password != ""
}

// Fetch issues exactly one live SERP request for the keyword and unwraps the
// first task's first result. No retry on failure.
func (c *Client) Fetch(ctx context.Context, keyword string, locationCode int, languageCode, device string) (*Result, error) {
	if !c.IsEnabled() {
		return nil, apperr.Configuration("missing DataForSEO credentials")
	}

	if device == "" {
		device = "desktop"
	}

	payload := []liveTask{
		{
			Keyword:      keyword,
			LocationCode: locationCode,
			LanguageCode: languageCode,
			Device:       device,
		},
	}

	logrus.Debugf("Fetching live SERP for keyword %q (location=%d language=%s device=%s)",
		keyword, locationCode, languageCode, device)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.login, c.password).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.endpoint)

	if err != nil {
		return nil, apperr.Upstream("DataForSEO request failed", err)
	}

	if resp.StatusCode() != 200 {
		return nil, apperr.UpstreamStatus("DataForSEO", resp.StatusCode(), resp.String())
	}

	result, err := DecodeEnvelope(resp.Body())
	if err != nil {
		return nil, apperr.Upstream("malformed DataForSEO response", err)
	}

	return result, nil
}
