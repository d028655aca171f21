// Package knowledge holds the curated snippet corpus the retriever ranks.
// A Base is built once at start-up and never mutated afterwards, so it can be
// shared by any number of concurrent retrieval calls without locking.
package knowledge

import (
	"fmt"
	"strings"

	"learnrag/internal/domain"
)

// Base is an immutable, ordered sequence of knowledge items.
type Base struct {
	items []domain.KnowledgeItem
}

// New validates and copies items into a Base. Item order is preserved and is
// the tie-break order for equal scores.
func New(items []domain.KnowledgeItem) (*Base, error) {
	cp := make([]domain.KnowledgeItem, len(items))
	for i, it := range items {
		if !it.Category.Valid() {
			return nil, fmt.Errorf("knowledge item %d: %w: %q", i, domain.ErrUnknownCategory, it.Category)
		}
		cp[i] = it
	}
	return &Base{items: cp}, nil
}

// Len returns the number of items.
func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns a copy of every item in base order.
func (b *Base) Items() []domain.KnowledgeItem {
	if b == nil {
		return nil
	}
	out := make([]domain.KnowledgeItem, len(b.items))
	copy(out, b.items)
	return out
}

// Filter returns the items whose category is in categories, in base order.
func (b *Base) Filter(categories []domain.Category) []domain.KnowledgeItem {
	if b == nil || len(categories) == 0 {
		return nil
	}
	want := make(map[domain.Category]struct{}, len(categories))
	for _, c := range categories {
		want[c] = struct{}{}
	}
	var out []domain.KnowledgeItem
	for _, it := range b.items {
		if _, ok := want[it.Category]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists the distinct categories present, in first-seen order.
func (b *Base) Categories() []domain.Category {
	if b == nil {
		return nil
	}
	seen := make(map[domain.Category]struct{})
	var out []domain.Category
	for _, it := range b.items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Text concatenates every snippet, one per line.
func (b *Base) Text() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for _, it := range b.items {
		sb.WriteString(it.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
