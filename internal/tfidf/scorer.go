package tfidf

import "math"

// Score returns one TF-IDF score per document, in input order. Only distinct
// query terms contribute. IDF is ln(N/df) over this collection, so a
// single-document collection always scores 0 and scores from different calls
// are not comparable.
func Score(query string, docs []string) []float64 {
	scores := make([]float64, len(docs))
	if len(docs) == 0 {
		return scores
	}
	terms := TermSet(query)
	if len(terms) == 0 {
		return scores
	}
	df := DocumentFrequency(docs)
	n := float64(len(docs))

	for i, doc := range docs {
		tokens := Tokenize(doc)
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		total := float64(len(tokens))
		score := 0.0
		for _, term := range terms {
			c, ok := counts[term]
			if !ok {
				continue
			}
			tf := float64(c) / total
			idf := math.Log(n / float64(df[term]))
			score += tf * idf
		}
		scores[i] = score
	}
	return scores
}
