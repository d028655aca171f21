// Package contextbuilder assembles retrieved knowledge into a single context
// block for a downstream completion prompt.
package contextbuilder

import (
	"errors"
	"fmt"
	"strings"

	"learnrag/internal/domain"
	"learnrag/internal/logging"
	"learnrag/internal/metrics"
)

// Source tells whether a Result was assembled from retrieval or is the
// static fallback.
type Source string

const (
	SourceAssembled Source = metrics.SourceAssembled
	SourceFallback  Source = metrics.SourceFallback
)

// Result is the outcome of Build. Text is always usable; Err is set only for
// fallback results and carries the cause.
type Result struct {
	Text   string
	Source Source
	// Snippets is the number of distinct snippets in an assembled Text.
	Snippets int
	Err      error
}

// Fallback reports whether the result is the static fallback block.
func (r Result) Fallback() bool { return r.Source == SourceFallback }

// Options configures a Builder.
type Options struct {
	BestPracticeQuery      string
	BestPracticeCategories []domain.Category
	BestPracticeTopK       int
	ContentTopK            int
	// PrefixLength is the number of leading characters compared for dedup.
	PrefixLength int
	Separator    string
	Header       string
}

// DefaultOptions returns the standard assembly protocol.
func DefaultOptions() Options {
	return Options{
		BestPracticeQuery: "resume format structure best practices",
		BestPracticeCategories: []domain.Category{
			domain.CategoryResumeFormat,
			domain.CategoryAchievements,
			domain.CategoryATS,
		},
		BestPracticeTopK: 3,
		ContentTopK:      4,
		PrefixLength:     50,
		Separator:        "\n\n---\n\n",
		Header:           "## Retrieved Market Standards:\n\n",
	}
}

// Builder runs the two retrieval calls and renders their union.
type Builder struct {
	searcher domain.Searcher
	opts     Options
}

// New returns a builder over searcher. Zero-valued option fields take their
// defaults, except the top-K values, which are used as given.
func New(searcher domain.Searcher, opts Options) *Builder {
	def := DefaultOptions()
	if opts.BestPracticeQuery == "" {
		opts.BestPracticeQuery = def.BestPracticeQuery
	}
	if opts.BestPracticeCategories == nil {
		opts.BestPracticeCategories = def.BestPracticeCategories
	}
	if opts.PrefixLength <= 0 {
		opts.PrefixLength = def.PrefixLength
	}
	if opts.Separator == "" {
		opts.Separator = def.Separator
	}
	if opts.Header == "" {
		opts.Header = def.Header
	}
	return &Builder{searcher: searcher, opts: opts}
}

// Build never fails: any error or panic during assembly yields the fallback
// block, never partial context.
func (b *Builder) Build(queryDocument string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = fallback(fmt.Errorf("context assembly panicked: %v", p))
		}
		metrics.RecordContextBuild(string(res.Source))
	}()

	text, n, err := b.assemble(queryDocument)
	if err != nil {
		return fallback(err)
	}
	return Result{Text: text, Source: SourceAssembled, Snippets: n}
}

func (b *Builder) assemble(queryDocument string) (string, int, error) {
	if b.searcher == nil {
		return "", 0, errors.New("no searcher configured")
	}
	practice, err := b.searcher.SearchByCategory(b.opts.BestPracticeQuery, b.opts.BestPracticeCategories, b.opts.BestPracticeTopK)
	if err != nil {
		return "", 0, fmt.Errorf("best-practice retrieval: %w", err)
	}
	content, err := b.searcher.Search(queryDocument, b.opts.ContentTopK)
	if err != nil {
		return "", 0, fmt.Errorf("content retrieval: %w", err)
	}

	all := make([]domain.ScoredResult, 0, len(practice)+len(content))
	all = append(all, practice...)
	all = append(all, content...)
	snippets := Dedup(all, b.opts.PrefixLength)
	return b.opts.Header + strings.Join(snippets, b.opts.Separator), len(snippets), nil
}

// Dedup keeps the content of each result whose first prefixLen characters
// have not been seen before. Empty contents are skipped. Characters are
// Unicode code points, so a character outside the BMP counts once.
func Dedup(results []domain.ScoredResult, prefixLen int) []string {
	seen := make(map[string]struct{}, len(results))
	out := make([]string, 0, len(results))
	for _, r := range results {
		if r.Content == "" {
			continue
		}
		key := prefix(r.Content, prefixLen)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r.Content)
	}
	return out
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func fallback(err error) Result {
	logging.Warn().Err(err).Str("fallback_version", FallbackVersion).Msg("context assembly failed, using fallback")
	return Result{Text: FallbackContext, Source: SourceFallback, Err: err}
}
