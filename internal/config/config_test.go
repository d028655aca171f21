package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"learnrag/internal/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Knowledge.Source != "builtin" {
		t.Errorf("knowledge.source = %q", cfg.Knowledge.Source)
	}
	if cfg.Retrieval.BestPracticeTopK != 3 || cfg.Retrieval.ContentTopK != 4 || cfg.Retrieval.TopK != 5 {
		t.Errorf("unexpected retrieval defaults: %+v", cfg.Retrieval)
	}
	cats, err := cfg.Retrieval.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []domain.Category{domain.CategoryResumeFormat, domain.CategoryAchievements, domain.CategoryATS}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v", cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := defaultConfig()
	original.Knowledge = KnowledgeConfig{Source: "file", Path: "kb.yaml", SentencesPerChunk: 3}
	original.Retrieval.BestPracticeCategories = []string{"ats"}
	original.Completion.Model = "gpt-4o-mini"

	if err := Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Knowledge != original.Knowledge {
		t.Errorf("knowledge: got %+v, want %+v", loaded.Knowledge, original.Knowledge)
	}
	if len(loaded.Retrieval.BestPracticeCategories) != 1 || loaded.Retrieval.BestPracticeCategories[0] != "ats" {
		t.Errorf("categories: got %v", loaded.Retrieval.BestPracticeCategories)
	}
	if loaded.Completion.Model != "gpt-4o-mini" {
		t.Errorf("model: got %q", loaded.Completion.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LEARNRAG_COMPLETION__MODEL", "mixtral")
	t.Setenv("LEARNRAG_RETRIEVAL__CONTENT_TOP_K", "7")
	t.Setenv("LEARNRAG_LOG__LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Completion.Model != "mixtral" {
		t.Errorf("model = %q", cfg.Completion.Model)
	}
	if cfg.Retrieval.ContentTopK != 7 {
		t.Errorf("content_top_k = %d", cfg.Retrieval.ContentTopK)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestEnvOverridesSplitLists(t *testing.T) {
	t.Setenv("LEARNRAG_RETRIEVAL__BEST_PRACTICE_CATEGORIES", "ats, achievements")
	t.Setenv("LEARNRAG_SERVER__ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cats, err := cfg.Retrieval.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != domain.CategoryATS || cats[1] != domain.CategoryAchievements {
		t.Errorf("categories = %v", cats)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("allowed_origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestMediaDefaults(t *testing.T) {
	t.Setenv("LEARNRAG_MEDIA__MAX_VIDEOS", "4")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Media.YouTubeAPIKeyEnv != "YOUTUBE_API_KEY" || cfg.Media.NewsAPIKeyEnv != "NEWSDATA_API_KEY" {
		t.Errorf("key envs = %q, %q", cfg.Media.YouTubeAPIKeyEnv, cfg.Media.NewsAPIKeyEnv)
	}
	if cfg.Media.MaxVideos != 4 {
		t.Errorf("max_videos = %d", cfg.Media.MaxVideos)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{name: "unknown category", yaml: "retrieval:\n  best_practice_categories: [cooking]\n", wantErr: domain.ErrUnknownCategory},
		{name: "negative top k", yaml: "retrieval:\n  top_k: -1\n", wantErr: domain.ErrInvalidTopK},
		{name: "zero default top k", yaml: "retrieval:\n  top_k: 0\n", wantErr: domain.ErrInvalidTopK},
		{name: "file source without path", yaml: "knowledge:\n  source: file\n"},
		{name: "unknown source", yaml: "knowledge:\n  source: s3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadDefaultWritesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, path, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if path != filepath.Join(home, ".config", "learnrag", "config.yaml") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
}
