package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCategory is returned when a category name is not part of the closed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidTopK is returned for negative result limits.
	ErrInvalidTopK = errors.New("topK must be >= 0")
)

// Category groups knowledge-base snippets by editorial topic.
type Category string

const (
	CategoryResumeFormat    Category = "resume_format"
	CategoryAchievements    Category = "achievements"
	CategoryATS             Category = "ats"
	CategoryTechnicalSkills Category = "technical_skills"
	CategorySoftSkills      Category = "soft_skills"
	CategoryIndustryTrends  Category = "industry_trends"
	CategoryLearningPaths   Category = "learning_paths"
)

var knownCategories = []Category{
	CategoryResumeFormat,
	CategoryAchievements,
	CategoryATS,
	CategoryTechnicalSkills,
	CategorySoftSkills,
	CategoryIndustryTrends,
	CategoryLearningPaths,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, k := range knownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory maps a name to a Category, rejecting names outside the set.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(name)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// KnowledgeItem is a single curated snippet of the knowledge base.
type KnowledgeItem struct {
	Content  string   `yaml:"content" json:"content"`
	Category Category `yaml:"category" json:"category"`
}

// ScoredResult is a knowledge item ranked against one query.
// Scores are only comparable within a single retrieval call.
type ScoredResult struct {
	Content  string   `json:"content"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
}

// Document is a raw text source that is split into knowledge items.
type Document struct {
	ID       string
	Path     string
	Category Category
	Content  string
}

// Chunk is a contiguous run of sentences taken from a document.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
}

// Chunker splits documents into chunks suitable for indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Searcher ranks the knowledge base against a query.
type Searcher interface {
	Search(query string, topK int) ([]ScoredResult, error)
	SearchByCategory(query string, categories []Category, topK int) ([]ScoredResult, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
