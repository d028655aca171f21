// Package retriever ranks knowledge-base items against a query with TF-IDF.
package retriever

import (
	"fmt"
	"sort"
	"time"

	"learnrag/internal/domain"
	"learnrag/internal/knowledge"
	"learnrag/internal/logging"
	"learnrag/internal/metrics"
	"learnrag/internal/tfidf"
)

// DefaultTopK is the result limit callers use when they have no preference.
const DefaultTopK = 5

const (
	opSearch           = "search"
	opSearchByCategory = "search_by_category"
)

// Retriever scores an immutable knowledge base. It holds no mutable state and
// is safe for concurrent use.
type Retriever struct {
	base *knowledge.Base
}

// New returns a retriever over base. A nil base behaves as an empty one.
func New(base *knowledge.Base) *Retriever {
	return &Retriever{base: base}
}

// Search ranks the whole knowledge base against query.
func (r *Retriever) Search(query string, topK int) ([]domain.ScoredResult, error) {
	if topK < 0 {
		metrics.RecordRetrievalError(opSearch, "invalid_top_k")
		return nil, fmt.Errorf("search: %w (got %d)", domain.ErrInvalidTopK, topK)
	}
	return rank(opSearch, query, r.base.Items(), topK), nil
}

// SearchByCategory restricts the collection to categories before scoring, so
// document frequencies reflect only the filtered items.
func (r *Retriever) SearchByCategory(query string, categories []domain.Category, topK int) ([]domain.ScoredResult, error) {
	if topK < 0 {
		metrics.RecordRetrievalError(opSearchByCategory, "invalid_top_k")
		return nil, fmt.Errorf("search by category: %w (got %d)", domain.ErrInvalidTopK, topK)
	}
	for _, c := range categories {
		if !c.Valid() {
			metrics.RecordRetrievalError(opSearchByCategory, "unknown_category")
			return nil, fmt.Errorf("search by category: %w: %q", domain.ErrUnknownCategory, c)
		}
	}
	return rank(opSearchByCategory, query, r.base.Filter(categories), topK), nil
}

func rank(op, query string, items []domain.KnowledgeItem, topK int) []domain.ScoredResult {
	start := time.Now()
	results := []domain.ScoredResult{}
	if topK > 0 && len(items) > 0 {
		docs := make([]string, len(items))
		for i, it := range items {
			docs[i] = it.Content
		}
		scores := tfidf.Score(query, docs)
		idxs := argsortDesc(scores)
		if topK > len(idxs) {
			topK = len(idxs)
		}
		results = make([]domain.ScoredResult, 0, topK)
		for _, j := range idxs[:topK] {
			results = append(results, domain.ScoredResult{
				Content:  items[j].Content,
				Category: items[j].Category,
				Score:    scores[j],
			})
		}
	}
	elapsed := time.Since(start)
	metrics.RecordRetrieval(op, len(items), elapsed)
	logging.Debug().
		Str("operation", op).
		Int("collection", len(items)).
		Int("results", len(results)).
		Dur("elapsed", elapsed).
		Msg("retrieval complete")
	return results
}

// argsortDesc orders indexes by descending value; equal values keep their
// original relative order.
func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}
