package textnorm

import (
	_ "embed"
	"strings"
)

// English stop list applied during normalization and TF-IDF vectorization.
// Kept as data so the matching behavior is reproducible across releases.
//
//go:embed stopwords.txt
var stopWordsRaw string

var stopWords = loadStopWords()

func loadStopWords() map[string]struct{} {
	words := make(map[string]struct{}, 256)
	for _, line := range strings.Split(stopWordsRaw, "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}

// IsStopWord reports whether the term belongs to the built-in English stop list.
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}
