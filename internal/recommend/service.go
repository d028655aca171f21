// Package recommend turns retrieved context into course recommendations and
// resume reviews through a completion provider.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"learnrag/internal/completion"
	"learnrag/internal/contextbuilder"
	"learnrag/internal/logging"
	"learnrag/internal/media"
)

// UnavailableInsight is returned when the completion step fails.
const UnavailableInsight = "Unable to generate AI recommendations at this time."

// ContextBuilder assembles reference material for a query.
type ContextBuilder interface {
	Build(queryDocument string) contextbuilder.Result
}

// VideoSearcher finds learning videos for a topic.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, topic, level string) ([]media.Video, error)
}

// Service combines context assembly with a completion provider and an
// optional video search.
type Service struct {
	provider completion.Provider
	contexts ContextBuilder
	videos   VideoSearcher
}

// Option configures a Service.
type Option func(*Service)

// WithVideoSearcher enables video results in recommendations.
func WithVideoSearcher(v VideoSearcher) Option {
	return func(s *Service) { s.videos = v }
}

// NewService returns a service. provider may be nil, in which case
// recommendations degrade to the unavailable answer and analysis fails.
func NewService(provider completion.Provider, contexts ContextBuilder, opts ...Option) *Service {
	s := &Service{provider: provider, contexts: contexts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend asks the provider for courses on req.Topic while searching
// videos concurrently. Failures on either side are not returned as errors:
// they yield empty lists and UnavailableInsight so callers can still render
// a page.
func (s *Service) Recommend(ctx context.Context, req Request) (*Recommendations, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, ErrTopicRequired
	}
	if req.SkillLevel == "" {
		req.SkillLevel = LevelBeginner
	}

	out := &Recommendations{Videos: []media.Video{}, Courses: []Course{}, Insights: UnavailableInsight}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if v := s.searchVideos(gctx, req); v != nil {
			out.Videos = v
		}
		return nil
	})
	g.Go(func() error {
		built := s.contexts.Build(req.Topic)
		out.ContextSource = string(built.Source)
		if courses, insights, ok := s.suggestCourses(gctx, req, built.Text); ok {
			out.Courses = courses
			out.Insights = insights
		}
		return nil
	})
	_ = g.Wait()
	return out, nil
}

func (s *Service) searchVideos(ctx context.Context, req Request) []media.Video {
	if s.videos == nil {
		return nil
	}
	videos, err := s.videos.SearchVideos(ctx, req.Topic, string(req.SkillLevel))
	if err != nil {
		logging.Error().Err(err).Str("topic", req.Topic).Msg("video search failed")
		return nil
	}
	return videos
}

func (s *Service) suggestCourses(ctx context.Context, req Request, reference string) ([]Course, string, bool) {
	if s.provider == nil {
		logging.Warn().Str("topic", req.Topic).Msg("no completion provider configured")
		return nil, "", false
	}
	resp, err := s.provider.Complete(ctx, completion.Request{
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: recommendSystemPrompt},
			{Role: completion.RoleUser, Content: recommendPrompt(req, reference)},
		},
		JSONMode: true,
	})
	if err != nil {
		logging.Error().Err(err).Str("provider", s.provider.Name()).Msg("recommendation completion failed")
		return nil, "", false
	}

	var parsed struct {
		Courses  []Course `json:"courses"`
		Insights string   `json:"insights"`
	}
	content := resp.Content
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logging.Error().Err(err).Msg("recommendation response is not valid JSON")
		return nil, "", false
	}
	if parsed.Courses == nil {
		parsed.Courses = []Course{}
	}
	return parsed.Courses, parsed.Insights, true
}

// AnalyzeResume reviews resume text against retrieved market standards.
func (s *Service) AnalyzeResume(ctx context.Context, resume string) (*Analysis, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, ErrResumeRequired
	}
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	built := s.contexts.Build(resume)
	resp, err := s.provider.Complete(ctx, completion.Request{
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: analyzeSystemPrompt},
			{Role: completion.RoleUser, Content: analyzePrompt(resume, built.Text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("resume analysis: %w", err)
	}
	return &Analysis{Text: resp.Content, ContextSource: string(built.Source)}, nil
}
