package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"learnrag/internal/domain"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: LEARNRAG_COMPLETION__MODEL sets completion.model.
const EnvPrefix = "LEARNRAG_"

// KnowledgeConfig selects where the knowledge base comes from.
type KnowledgeConfig struct {
	// Source is builtin, file (YAML) or dir (<category>.txt files).
	Source            string `yaml:"source" koanf:"source"`
	Path              string `yaml:"path" koanf:"path"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk" koanf:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences" koanf:"overlap_sentences"`
}

// RetrievalConfig holds ranking and context assembly parameters.
type RetrievalConfig struct {
	// TopK is the result limit for searches that do not set one.
	TopK                   int      `yaml:"top_k" koanf:"top_k"`
	BestPracticeQuery      string   `yaml:"best_practice_query" koanf:"best_practice_query"`
	BestPracticeCategories []string `yaml:"best_practice_categories" koanf:"best_practice_categories"`
	BestPracticeTopK       int      `yaml:"best_practice_top_k" koanf:"best_practice_top_k"`
	ContentTopK            int      `yaml:"content_top_k" koanf:"content_top_k"`
	DedupPrefixLength      int      `yaml:"dedup_prefix_length" koanf:"dedup_prefix_length"`
}

// CompletionConfig configures the OpenAI-compatible chat completion client.
type CompletionConfig struct {
	BaseURL     string  `yaml:"base_url" koanf:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env" koanf:"api_key_env"`
	Model       string  `yaml:"model" koanf:"model"`
	TimeoutSecs int     `yaml:"timeout_secs" koanf:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" koanf:"max_retries"`
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string   `yaml:"addr" koanf:"addr"`
	AllowedOrigins    []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	RequestsPerMinute int      `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	TimeoutSecs       int      `yaml:"timeout_secs" koanf:"timeout_secs"`
}

// MediaConfig configures the video search and news clients. Each is enabled
// only when its API key variable is set.
type MediaConfig struct {
	YouTubeBaseURL   string `yaml:"youtube_base_url" koanf:"youtube_base_url"`
	YouTubeAPIKeyEnv string `yaml:"youtube_api_key_env" koanf:"youtube_api_key_env"`
	MaxVideos        int    `yaml:"max_videos" koanf:"max_videos"`
	NewsBaseURL      string `yaml:"news_base_url" koanf:"news_base_url"`
	NewsAPIKeyEnv    string `yaml:"news_api_key_env" koanf:"news_api_key_env"`
	TimeoutSecs      int    `yaml:"timeout_secs" koanf:"timeout_secs"`
	MaxRetries       int    `yaml:"max_retries" koanf:"max_retries"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Knowledge  KnowledgeConfig  `yaml:"knowledge" koanf:"knowledge"`
	Retrieval  RetrievalConfig  `yaml:"retrieval" koanf:"retrieval"`
	Completion CompletionConfig `yaml:"completion" koanf:"completion"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Media      MediaConfig      `yaml:"media" koanf:"media"`
	Log        LogConfig        `yaml:"log" koanf:"log"`
}

// Load reads a config from path and overlays LEARNRAG_* environment
// variables. A missing file yields defaults plus the overlay.
func Load(path string) (*AppConfig, error) {
	k := koanf.New(".")
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/learnrag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err != nil {
		if err := Save(userPath, defaultConfig()); err != nil {
			return nil, "", err
		}
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and category names.
func (c *AppConfig) Validate() error {
	switch c.Knowledge.Source {
	case "builtin":
	case "file", "dir":
		if c.Knowledge.Path == "" {
			return fmt.Errorf("knowledge.path is required for source %q", c.Knowledge.Source)
		}
	default:
		return fmt.Errorf("invalid knowledge.source %q: must be one of builtin, file, dir", c.Knowledge.Source)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be at least 1: %w", domain.ErrInvalidTopK)
	}
	if c.Retrieval.BestPracticeTopK < 0 || c.Retrieval.ContentTopK < 0 {
		return fmt.Errorf("retrieval top-k values must be non-negative: %w", domain.ErrInvalidTopK)
	}
	if _, err := c.Retrieval.Categories(); err != nil {
		return fmt.Errorf("retrieval.best_practice_categories: %w", err)
	}
	return nil
}

// Categories parses BestPracticeCategories into the closed category set.
func (r RetrievalConfig) Categories() ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.BestPracticeCategories))
	for _, name := range r.BestPracticeCategories {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// sliceKeys are list-valued settings; their env values are comma-separated.
var sliceKeys = map[string]struct{}{
	"retrieval.best_practice_categories": {},
	"server.allowed_origins":             {},
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func envValue(key, value string) (string, interface{}) {
	k := envKey(key)
	if _, ok := sliceKeys[k]; !ok {
		return k, value
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return k, out
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "learnrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Knowledge: KnowledgeConfig{Source: "builtin", SentencesPerChunk: 2},
		Retrieval: RetrievalConfig{
			TopK:                   5,
			BestPracticeQuery:      "resume format structure best practices",
			BestPracticeCategories: []string{"resume_format", "achievements", "ats"},
			BestPracticeTopK:       3,
			ContentTopK:            4,
			DedupPrefixLength:      50,
		},
		Completion: CompletionConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			APIKeyEnv:   "GROQ_API_KEY",
			Model:       "llama-3.3-70b-versatile",
			TimeoutSecs: 30,
			MaxRetries:  3,
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			AllowedOrigins:    []string{"http://localhost:*", "http://127.0.0.1:*"},
			RequestsPerMinute: 60,
			TimeoutSecs:       60,
		},
		Media: MediaConfig{
			YouTubeBaseURL:   "https://www.googleapis.com/youtube/v3",
			YouTubeAPIKeyEnv: "YOUTUBE_API_KEY",
			MaxVideos:        10,
			NewsBaseURL:      "https://newsdata.io/api/1",
			NewsAPIKeyEnv:    "NEWSDATA_API_KEY",
			TimeoutSecs:      10,
			MaxRetries:       2,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Knowledge.Source == "" {
		cfg.Knowledge.Source = "builtin"
	}
	if cfg.Knowledge.SentencesPerChunk == 0 {
		cfg.Knowledge.SentencesPerChunk = 2
	}
	if cfg.Retrieval.DedupPrefixLength == 0 {
		cfg.Retrieval.DedupPrefixLength = 50
	}
	if cfg.Media.YouTubeAPIKeyEnv == "" {
		cfg.Media.YouTubeAPIKeyEnv = "YOUTUBE_API_KEY"
	}
	if cfg.Media.NewsAPIKeyEnv == "" {
		cfg.Media.NewsAPIKeyEnv = "NEWSDATA_API_KEY"
	}
	if cfg.Completion.BaseURL == "" {
		cfg.Completion.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Completion.APIKeyEnv == "" {
		cfg.Completion.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Completion.Model == "" {
		cfg.Completion.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Completion.TimeoutSecs == 0 {
		cfg.Completion.TimeoutSecs = 30
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = 60
	}
}
