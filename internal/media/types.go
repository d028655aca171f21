// Package media fetches learning videos and technology news from external
// HTTP APIs.
package media

import "errors"

// ErrMissingAPIKey is returned when a client is built without a key.
var ErrMissingAPIKey = errors.New("missing API key")

// Video is a single video search hit.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
}

// Article is one news item in the NewsData.io shape.
type Article struct {
	ID          string   `json:"article_id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	PubDate     string   `json:"pubDate"`
	SourceID    string   `json:"source_id"`
	ImageURL    string   `json:"image_url"`
	Category    []string `json:"category"`
}

// NewsFeed is a page of articles.
type NewsFeed struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Results      []Article `json:"results"`
	NextPage     string    `json:"nextPage,omitempty"`
}
