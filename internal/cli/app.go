package cli

import (
	"fmt"
	"time"

	"learnrag/internal/chunker"
	"learnrag/internal/completion"
	"learnrag/internal/config"
	"learnrag/internal/contextbuilder"
	"learnrag/internal/knowledge"
	"learnrag/internal/logging"
	"learnrag/internal/media"
	"learnrag/internal/recommend"
	"learnrag/internal/retriever"
)

// app bundles the components built from one configuration.
type app struct {
	cfg       *config.AppConfig
	base      *knowledge.Base
	retriever *retriever.Retriever
	contexts  *contextbuilder.Builder
}

func newApp(cfg *config.AppConfig) (*app, error) {
	base, err := loadKnowledge(cfg.Knowledge)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	cats, err := cfg.Retrieval.Categories()
	if err != nil {
		return nil, err
	}
	r := retriever.New(base)
	opts := contextbuilder.Options{
		BestPracticeQuery:      cfg.Retrieval.BestPracticeQuery,
		BestPracticeCategories: cats,
		BestPracticeTopK:       cfg.Retrieval.BestPracticeTopK,
		ContentTopK:            cfg.Retrieval.ContentTopK,
		PrefixLength:           cfg.Retrieval.DedupPrefixLength,
	}
	logging.Debug().Int("items", base.Len()).Str("source", cfg.Knowledge.Source).Msg("knowledge base loaded")
	return &app{cfg: cfg, base: base, retriever: r, contexts: contextbuilder.New(r, opts)}, nil
}

func loadKnowledge(kc config.KnowledgeConfig) (*knowledge.Base, error) {
	switch kc.Source {
	case "builtin", "":
		return knowledge.Default(), nil
	case "file":
		return knowledge.LoadFile(kc.Path)
	case "dir":
		return knowledge.LoadDir(kc.Path, chunker.NewSentenceChunker(kc.SentencesPerChunk, kc.OverlapSentences))
	default:
		return nil, fmt.Errorf("unknown knowledge source: %s", kc.Source)
	}
}

// recommender builds the recommendation service. A missing API key leaves the
// provider unset so recommendations degrade instead of failing startup.
func (a *app) recommender() *recommend.Service {
	cc := a.cfg.Completion
	client, err := completion.NewClient(completion.Config{
		BaseURL:     cc.BaseURL,
		APIKeyEnv:   cc.APIKeyEnv,
		Model:       cc.Model,
		Timeout:     time.Duration(cc.TimeoutSecs) * time.Second,
		MaxRetries:  cc.MaxRetries,
		Temperature: cc.Temperature,
		MaxTokens:   cc.MaxTokens,
	})
	var opts []recommend.Option
	if yt := a.videoSearcher(); yt != nil {
		opts = append(opts, recommend.WithVideoSearcher(yt))
	}
	if err != nil {
		logging.Warn().Err(err).Msg("completion provider disabled")
		return recommend.NewService(nil, a.contexts, opts...)
	}
	return recommend.NewService(client, a.contexts, opts...)
}

func (a *app) videoSearcher() *media.YouTubeClient {
	mc := a.cfg.Media
	yt, err := media.NewYouTubeClient(media.YouTubeConfig{
		BaseURL:    mc.YouTubeBaseURL,
		APIKeyEnv:  mc.YouTubeAPIKeyEnv,
		MaxResults: mc.MaxVideos,
		Timeout:    time.Duration(mc.TimeoutSecs) * time.Second,
		MaxRetries: mc.MaxRetries,
	})
	if err != nil {
		logging.Debug().Err(err).Msg("video search disabled")
		return nil
	}
	return yt
}

func (a *app) newsClient() *media.NewsClient {
	mc := a.cfg.Media
	nc, err := media.NewNewsClient(media.NewsConfig{
		BaseURL:    mc.NewsBaseURL,
		APIKeyEnv:  mc.NewsAPIKeyEnv,
		Timeout:    time.Duration(mc.TimeoutSecs) * time.Second,
		MaxRetries: mc.MaxRetries,
	})
	if err != nil {
		logging.Debug().Err(err).Msg("news disabled")
		return nil
	}
	return nc
}
