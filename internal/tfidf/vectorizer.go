// Package tfidf implements term-frequency / inverse-document-frequency
// weighting over a small corpus. Vectorizers are fit per comparison: the IDF
// is always relative to the documents being compared, never to a persistent
// vocabulary, so weights from different calls are not comparable by design.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no document in the corpus contributes a
// single usable term. Callers must surface it instead of defaulting to a zero
// score, which would be indistinguishable from a genuine no-overlap result.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no usable terms")

// Tokens are sequences of at least two word characters.
var wordPattern = regexp.MustCompile(`[a-zA-Z0-9_]{2,}`)

// Vectorizer turns documents into l2-normalized TF-IDF vectors over a
// vocabulary learned by Fit. A Vectorizer is cheap to construct and must not
// be reused across unrelated comparisons.
type Vectorizer struct {
	ngramMin int
	ngramMax int
	stop     func(string) bool

	terms []string
	index map[string]int
	idf   []float64
}

// NewVectorizer creates a vectorizer producing n-grams in [ngramMin, ngramMax].
// The stop function filters tokens before n-gram assembly; nil keeps all tokens.
func NewVectorizer(ngramMin, ngramMax int, stop func(string) bool) *Vectorizer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return &Vectorizer{ngramMin: ngramMin, ngramMax: ngramMax, stop: stop}
}

// Fit learns the vocabulary and smoothed IDF from the given corpus.
func (v *Vectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.analyze(doc) {
			seen[term] = struct{}{}
		}
		for term := range seen {
			df[term]++
		}
	}

	if len(df) == 0 {
		return ErrEmptyVocabulary
	}

	v.terms = make([]string, 0, len(df))
	for term := range df {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)

	n := float64(len(docs))
	v.index = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform maps one document onto the fitted vocabulary. Terms outside the
// vocabulary are ignored. The returned vector is l2-normalized.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, term := range v.analyze(doc) {
		if i, ok := v.index[term]; ok {
			vec[i]++
		}
	}

	var sumSquares float64
	for i := range vec {
		vec[i] *= v.idf[i]
		sumSquares += vec[i] * vec[i]
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// FitTransform fits the vocabulary on the corpus and returns one vector per document.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		rows[i] = v.Transform(doc)
	}
	return rows, nil
}

// Terms returns the fitted vocabulary in vector order.
func (v *Vectorizer) Terms() []string {
	return v.terms
}

func (v *Vectorizer) analyze(doc string) []string {
	words := wordPattern.FindAllString(strings.ToLower(doc), -1)
	if v.stop != nil {
		kept := words[:0]
		for _, w := range words {
			if !v.stop(w) {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	if v.ngramMax == 1 {
		return words
	}

	grams := make([]string, 0, len(words)*(v.ngramMax-v.ngramMin+1))
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+n], " "))
		}
	}
	return grams
}
