package knowledge

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"learnrag/internal/domain"
)

type fileFormat struct {
	Items []domain.KnowledgeItem `yaml:"items"`
}

// LoadFile reads a YAML knowledge base of the form
//
//	items:
//	  - category: ats
//	    content: ...
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base %s: %w", path, err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing knowledge base %s: %w", path, err)
	}
	return New(f.Items)
}

// LoadDir builds a knowledge base from <category>.txt files in dir. Each file
// is split by ch and every chunk becomes one item. Files are read in name
// order so item order is stable across runs.
func LoadDir(dir string, ch domain.Chunker) (*Base, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .txt documents found in %s", dir)
	}
	sort.Strings(matches)

	var items []domain.KnowledgeItem
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("knowledge file %s: %w", m, err)
		}
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, err
		}
		doc := domain.Document{ID: hashString(m), Path: m, Category: cat, Content: string(data)}
		chunks, err := ch.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", m, err)
		}
		for _, c := range chunks {
			items = append(items, domain.KnowledgeItem{Content: c.Text, Category: cat})
		}
	}
	return New(items)
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
