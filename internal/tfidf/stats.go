package tfidf

// DocumentFrequency counts, for every term, how many documents of the
// collection contain it at least once.
func DocumentFrequency(docs []string) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		for _, term := range TermSet(doc) {
			df[term]++
		}
	}
	return df
}
