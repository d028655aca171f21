// Package server exposes retrieval, context assembly and recommendations
// over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"learnrag/internal/contextbuilder"
	"learnrag/internal/domain"
	"learnrag/internal/logging"
	"learnrag/internal/media"
	"learnrag/internal/recommend"
	"learnrag/internal/retriever"
)

// Config holds server configuration.
type Config struct {
	Addr              string
	AllowedOrigins    []string
	RequestsPerMinute int // 0 disables rate limiting
	// DefaultTopK applies to search requests without topK.
	DefaultTopK int
	Timeout           time.Duration
}

// ContextBuilder assembles reference context for a query document.
type ContextBuilder interface {
	Build(queryDocument string) contextbuilder.Result
}

// Recommender produces course recommendations and resume reviews.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Recommendations, error)
	AnalyzeResume(ctx context.Context, resume string) (*recommend.Analysis, error)
}

// NewsSource returns the latest technology headlines.
type NewsSource interface {
	Latest(ctx context.Context) (*media.NewsFeed, error)
}

// Server wires the HTTP routes to the retrieval core.
type Server struct {
	cfg         Config
	searcher    domain.Searcher
	contexts    ContextBuilder
	recommender Recommender
	news        NewsSource
	log         zerolog.Logger
	router      chi.Router
	httpServer  *http.Server
}

// Option configures optional server dependencies.
type Option func(*Server)

// WithNews enables GET /api/news.
func WithNews(n NewsSource) Option {
	return func(s *Server) { s.news = n }
}

// New creates a server with all dependencies.
func New(cfg Config, searcher domain.Searcher, contexts ContextBuilder, recommender Recommender, opts ...Option) *Server {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = retriever.DefaultTopK
	}
	s := &Server{
		cfg:         cfg,
		searcher:    searcher,
		contexts:    contexts,
		recommender: recommender,
		log:         logging.With().Str("component", "http").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RequestsPerMinute > 0 {
			r.Use(httprate.Limit(s.cfg.RequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Post("/search", s.handleSearch)
		r.Post("/context", s.handleContext)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/news", s.handleNews)
	})
	return r
}

// Router returns the HTTP handler.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("http server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
