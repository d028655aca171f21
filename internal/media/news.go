package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"learnrag/internal/logging"
)

// DefaultNewsBaseURL is the NewsData.io API root.
const DefaultNewsBaseURL = "https://newsdata.io/api/1"

// NewsConfig configures the news client.
type NewsConfig struct {
	BaseURL    string
	APIKeyEnv  string
	Category   string
	Language   string
	Timeout    time.Duration
	MaxRetries int
}

// NewsClient fetches the latest technology headlines.
type NewsClient struct {
	fetcher
	baseURL  string
	apiKey   string
	category string
	language string
}

// NewNewsClient reads the API key from cfg.APIKeyEnv.
func NewNewsClient(cfg NewsConfig) (*NewsClient, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("news: %w in env %s", ErrMissingAPIKey, cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNewsBaseURL
	}
	if cfg.Category == "" {
		cfg.Category = "technology"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &NewsClient{
		fetcher: fetcher{
			service:    "news",
			http:       &http.Client{Timeout: cfg.Timeout},
			maxRetries: cfg.MaxRetries,
			log:        logging.With().Str("component", "news").Logger(),
			sleep:      sleepCtx,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   key,
		category: cfg.Category,
		language: cfg.Language,
	}, nil
}

// Latest returns the most recent articles.
func (c *NewsClient) Latest(ctx context.Context) (*NewsFeed, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("category", c.category)
	q.Set("language", c.language)

	var feed NewsFeed
	if err := c.getJSON(ctx, c.baseURL+"/latest?"+q.Encode(), &feed); err != nil {
		return nil, err
	}
	if feed.Results == nil {
		feed.Results = []Article{}
	}
	return &feed, nil
}
