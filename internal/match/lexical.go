package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/formfiller/resume-matcher/internal/textnorm"
	"github.com/formfiller/resume-matcher/internal/tfidf"
)

// missingStopTerms are job-posting filler words excluded from the
// missing-keyword output. They dominate JD weight without describing skills
// and inflate false skill-gap signals.
var missingStopTerms = map[string]struct{}{
	"requirements":     {},
	"responsibilities": {},
	"qualifications":   {},
	"preferred":        {},
	"skills":           {},
	"experience":       {},
	"knowledge":        {},
	"looking":          {},
	"look":             {},
	"must":             {},
	"ability":          {},
}

// Lexical compares documents with TF-IDF vectors and cosine similarity. The
// vectorizer is fit on exactly the two-document corpus per call, so weights
// are scoped to the comparison at hand.
type Lexical struct {
	normalizer *textnorm.Normalizer
}

func NewLexical(normalizer *textnorm.Normalizer) *Lexical {
	return &Lexical{normalizer: normalizer}
}

func (m *Lexical) Name() string { return MethodLexical }

// Match returns the cosine similarity in [0,1] and the JD terms absent from
// the resume, sorted by descending TF-IDF weight. Both inputs normalizing to
// nothing yields ErrEmptyVocabulary, never a silent zero score.
func (m *Lexical) Match(_ context.Context, resumeText, jobDescription string) (*Result, error) {
	resumeTokens := m.normalizer.Normalize(resumeText)
	jdTokens := m.normalizer.Normalize(jobDescription)

	vectorizer := tfidf.NewVectorizer(1, 1, textnorm.IsStopWord)
	rows, err := vectorizer.FitTransform([]string{
		m.normalizer.Join(resumeTokens),
		m.normalizer.Join(jdTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("fit resume/jd corpus: %w", err)
	}

	present := make(map[string]struct{}, len(resumeTokens))
	for _, tok := range resumeTokens {
		present[tok] = struct{}{}
	}

	missing := make([]Keyword, 0)
	for i, term := range vectorizer.Terms() {
		weight := rows[1][i]
		if weight <= 0 {
			continue
		}
		if _, ok := missingStopTerms[term]; ok {
			continue
		}
		if _, ok := present[term]; ok {
			continue
		}
		missing = append(missing, Keyword{Term: term, Weight: weight})
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Weight > missing[j].Weight
	})

	return &Result{
		Score:   tfidf.Cosine(rows[0], rows[1]),
		Missing: missing,
		Method:  MethodLexical,
	}, nil
}
