package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"learnrag/internal/logging"
)

// DefaultYouTubeBaseURL is the YouTube Data API v3 root.
const DefaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeConfig configures the video search client.
type YouTubeConfig struct {
	BaseURL    string
	APIKeyEnv  string
	MaxResults int
	Timeout    time.Duration
	MaxRetries int
}

// YouTubeClient searches embeddable medium-length videos.
type YouTubeClient struct {
	fetcher
	baseURL    string
	apiKey     string
	maxResults int
}

// NewYouTubeClient reads the API key from cfg.APIKeyEnv.
func NewYouTubeClient(cfg YouTubeConfig) (*YouTubeClient, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("youtube: %w in env %s", ErrMissingAPIKey, cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultYouTubeBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &YouTubeClient{
		fetcher: fetcher{
			service:    "youtube",
			http:       &http.Client{Timeout: cfg.Timeout},
			maxRetries: cfg.MaxRetries,
			log:        logging.With().Str("component", "youtube").Logger(),
			sleep:      sleepCtx,
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     key,
		maxResults: cfg.MaxResults,
	}, nil
}

// LevelSuffix returns the search phrase appended to a topic for a skill level.
func LevelSuffix(level string) string {
	switch level {
	case "beginner":
		return "tutorial for beginners"
	case "intermediate":
		return "intermediate guide"
	case "advanced":
		return "advanced concepts"
	default:
		return "tutorial"
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos looks up videos for topic at the given skill level.
func (c *YouTubeClient) SearchVideos(ctx context.Context, topic, level string) ([]Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", topic+" "+LevelSuffix(level))
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(c.maxResults))
	q.Set("order", "relevance")
	q.Set("videoDuration", "medium")
	q.Set("videoEmbeddable", "true")
	q.Set("key", c.apiKey)

	var resp searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	videos := make([]Video, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.ID.VideoID == "" {
			continue
		}
		thumb := it.Snippet.Thumbnails["high"].URL
		if thumb == "" {
			thumb = it.Snippet.Thumbnails["medium"].URL
		}
		videos = append(videos, Video{
			ID:           it.ID.VideoID,
			Title:        it.Snippet.Title,
			Description:  it.Snippet.Description,
			Thumbnail:    thumb,
			ChannelTitle: it.Snippet.ChannelTitle,
			PublishedAt:  it.Snippet.PublishedAt,
			URL:          "https://www.youtube.com/watch?v=" + it.ID.VideoID,
		})
	}
	return videos, nil
}
