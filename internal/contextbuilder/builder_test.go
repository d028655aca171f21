package contextbuilder

import (
	"errors"
	"strings"
	"testing"

	"learnrag/internal/domain"
	"learnrag/internal/knowledge"
	"learnrag/internal/retriever"
)

type stubSearcher struct {
	practice    []domain.ScoredResult
	content     []domain.ScoredResult
	practiceErr error
	contentErr  error
	panicOn     string

	gotCategories []domain.Category
	gotTopKs      []int
	gotQueries    []string
}

func (s *stubSearcher) Search(query string, topK int) ([]domain.ScoredResult, error) {
	if s.panicOn == "search" {
		panic("corrupt knowledge base")
	}
	s.gotQueries = append(s.gotQueries, query)
	s.gotTopKs = append(s.gotTopKs, topK)
	return s.content, s.contentErr
}

func (s *stubSearcher) SearchByCategory(query string, categories []domain.Category, topK int) ([]domain.ScoredResult, error) {
	if s.panicOn == "category" {
		panic("corrupt knowledge base")
	}
	s.gotQueries = append(s.gotQueries, query)
	s.gotCategories = categories
	s.gotTopKs = append(s.gotTopKs, topK)
	return s.practice, s.practiceErr
}

func sr(content string) domain.ScoredResult {
	return domain.ScoredResult{Content: content, Category: domain.CategoryATS}
}

func TestBuildProtocol(t *testing.T) {
	s := &stubSearcher{
		practice: []domain.ScoredResult{sr("practice one"), sr("practice two")},
		content:  []domain.ScoredResult{sr("content one")},
	}
	res := New(s, DefaultOptions()).Build("my resume text")
	if res.Fallback() || res.Err != nil {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	want := "## Retrieved Market Standards:\n\npractice one\n\n---\n\npractice two\n\n---\n\ncontent one"
	if res.Text != want {
		t.Errorf("Text =\n%q\nwant\n%q", res.Text, want)
	}
	if res.Snippets != 3 {
		t.Errorf("Snippets = %d, want 3", res.Snippets)
	}
	if s.gotQueries[0] != "resume format structure best practices" || s.gotQueries[1] != "my resume text" {
		t.Errorf("queries = %v", s.gotQueries)
	}
	if s.gotTopKs[0] != 3 || s.gotTopKs[1] != 4 {
		t.Errorf("topKs = %v, want [3 4]", s.gotTopKs)
	}
	if len(s.gotCategories) != 3 || s.gotCategories[0] != domain.CategoryResumeFormat {
		t.Errorf("categories = %v", s.gotCategories)
	}
}

func TestBuildDeduplicatesByPrefix(t *testing.T) {
	shared := strings.Repeat("x", 50)
	s := &stubSearcher{
		practice: []domain.ScoredResult{sr(shared + " first tail"), sr("")},
		content:  []domain.ScoredResult{sr(shared + " second tail"), sr("unique"), sr("unique")},
	}
	res := New(s, DefaultOptions()).Build("q")
	if strings.Contains(res.Text, "second tail") {
		t.Errorf("later duplicate survived: %q", res.Text)
	}
	if !strings.Contains(res.Text, "first tail") {
		t.Errorf("first occurrence dropped: %q", res.Text)
	}
	if strings.Count(res.Text, "unique") != 1 {
		t.Errorf("exact duplicate not removed: %q", res.Text)
	}
	if res.Snippets != 2 {
		t.Errorf("Snippets = %d, want 2", res.Snippets)
	}
}

func TestDedupPrefixCountsCharacters(t *testing.T) {
	a := strings.Repeat("é", 50) + "a"
	b := strings.Repeat("é", 50) + "b"
	got := Dedup([]domain.ScoredResult{sr(a), sr(b), sr("short"), sr("shorter")}, 50)
	if len(got) != 3 {
		t.Errorf("got %v", got)
	}
}

func TestBuildFallbackOnError(t *testing.T) {
	boom := errors.New("scoring failed")
	tests := []struct {
		name string
		s    domain.Searcher
	}{
		{name: "best-practice error", s: &stubSearcher{practiceErr: boom}},
		{name: "content error", s: &stubSearcher{practice: []domain.ScoredResult{sr("kept?")}, contentErr: boom}},
		{name: "panic during category search", s: &stubSearcher{panicOn: "category"}},
		{name: "panic during search", s: &stubSearcher{panicOn: "search"}},
		{name: "nil searcher", s: nil},
		{name: "nil retriever", s: (*retriever.Retriever)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(tt.s, DefaultOptions()).Build("resume")
			if !res.Fallback() {
				t.Fatalf("expected fallback, got %q", res.Text)
			}
			if res.Text != FallbackContext {
				t.Errorf("fallback text not verbatim")
			}
			if res.Err == nil {
				t.Error("fallback result should carry its cause")
			}
		})
	}
}

func TestBuildUnknownCategoryFallsBack(t *testing.T) {
	r := retriever.New(knowledge.Default())
	opts := DefaultOptions()
	opts.BestPracticeCategories = []domain.Category{"cooking"}
	res := New(r, opts).Build("resume")
	if !res.Fallback() || !errors.Is(res.Err, domain.ErrUnknownCategory) {
		t.Fatalf("expected fallback caused by unknown category, got %+v", res)
	}
}

func TestBuildWithRetriever(t *testing.T) {
	b, err := knowledge.New([]domain.KnowledgeItem{
		{Content: "Use action verbs and quantify achievements", Category: domain.CategoryAchievements},
		{Content: "Keep resumes to one page", Category: domain.CategoryResumeFormat},
		{Content: "Kubernetes and Terraform are in demand", Category: domain.CategoryTechnicalSkills},
	})
	if err != nil {
		t.Fatal(err)
	}
	res := New(retriever.New(b), DefaultOptions()).Build("Senior engineer running Kubernetes clusters")
	if res.Fallback() {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if !strings.HasPrefix(res.Text, "## Retrieved Market Standards:\n\n") {
		t.Errorf("missing header: %q", res.Text)
	}
	// two best-practice items plus the three content matches, deduplicated
	if res.Snippets != 3 {
		t.Errorf("Snippets = %d, want 3", res.Snippets)
	}
	for _, s := range []string{"quantify achievements", "one page", "Kubernetes and Terraform"} {
		if strings.Count(res.Text, s) != 1 {
			t.Errorf("expected %q exactly once in %q", s, res.Text)
		}
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	b := New(&stubSearcher{}, Options{BestPracticeTopK: 3, ContentTopK: 4})
	def := DefaultOptions()
	if b.opts.BestPracticeQuery != def.BestPracticeQuery || b.opts.PrefixLength != 50 || b.opts.Separator != def.Separator || b.opts.Header != def.Header {
		t.Errorf("defaults not applied: %+v", b.opts)
	}
}
