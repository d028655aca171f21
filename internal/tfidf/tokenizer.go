// Package tfidf implements the term weighting used to rank knowledge-base
// snippets: a trivial tokenizer, collection-scoped document frequencies and
// a TF-IDF scorer. Statistics are computed per call over the collection that
// is passed in; nothing is cached between calls.
package tfidf

import (
	"regexp"
	"strings"
)

// MinTermLength is the shortest token kept as an index term.
const MinTermLength = 3

var separatorPattern = regexp.MustCompile(`\W+`)

// Tokenize lower-cases text, splits it on runs of non-word characters and
// drops tokens shorter than MinTermLength. Duplicates are kept in order.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := separatorPattern.Split(lower, -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < MinTermLength {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TermSet returns the distinct terms of text in first-seen order.
func TermSet(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
