package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"learnrag/internal/domain"
	"learnrag/internal/logging"
	"learnrag/internal/recommend"
)

const maxBodyBytes = 1 << 20

type searchRequest struct {
	Query      string   `json:"query" validate:"max=50000"`
	Categories []string `json:"categories" validate:"max=16"`
	TopK       *int     `json:"topK" validate:"omitempty,min=0,max=100"`
}

type searchResponse struct {
	Results []domain.ScoredResult `json:"results"`
}

type contextRequest struct {
	Text string `json:"text" validate:"max=50000"`
}

type contextResponse struct {
	Context  string `json:"context"`
	Source   string `json:"source"`
	Snippets int    `json:"snippets"`
}

type analyzeRequest struct {
	Resume string `json:"resume" validate:"required,max=50000"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	topK := s.cfg.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	var (
		results []domain.ScoredResult
		err     error
	)
	if len(req.Categories) == 0 {
		results, err = s.searcher.Search(req.Query, topK)
	} else {
		cats := make([]domain.Category, 0, len(req.Categories))
		for _, name := range req.Categories {
			c, perr := domain.ParseCategory(name)
			if perr != nil {
				respondError(w, http.StatusBadRequest, "UNKNOWN_CATEGORY", perr.Error(), nil)
				return
			}
			cats = append(cats, c)
		}
		results, err = s.searcher.SearchByCategory(req.Query, cats, topK)
	}
	if err != nil {
		status, code := http.StatusInternalServerError, "SEARCH_FAILED"
		if errors.Is(err, domain.ErrInvalidTopK) || errors.Is(err, domain.ErrUnknownCategory) {
			status, code = http.StatusBadRequest, "INVALID_REQUEST"
		}
		respondError(w, status, code, err.Error(), err)
		return
	}
	respondJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	res := s.contexts.Build(req.Text)
	respondJSON(w, http.StatusOK, contextResponse{Context: res.Text, Source: string(res.Source), Snippets: res.Snippets})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := s.recommender.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, recommend.ErrTopicRequired) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Topic is required", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "Failed to fetch recommendations", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	out, err := s.recommender.AnalyzeResume(r.Context(), req.Resume)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, out)
	case errors.Is(err, recommend.ErrResumeRequired):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Resume text is required", nil)
	case errors.Is(err, recommend.ErrNoProvider):
		respondError(w, http.StatusServiceUnavailable, "COMPLETION_UNAVAILABLE", "Resume analysis is not configured", err)
	default:
		respondError(w, http.StatusBadGateway, "COMPLETION_FAILED", "Failed to analyze resume", err)
	}
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		respondError(w, http.StatusServiceUnavailable, "NEWS_UNAVAILABLE", "News is not configured", nil)
		return
	}
	feed, err := s.news.Latest(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "NEWS_FAILED", "Invalid response from News API", err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", nil)
		return false
	}
	if err := validateStruct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Err(err).Str("code", code).Msg("api error")
	}
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
