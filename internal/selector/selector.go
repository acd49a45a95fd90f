// Package selector ranks candidate resumes against a single job description.
// Unlike the pairwise matcher, one TF-IDF vectorizer is fit across the whole
// corpus {jd, candidates...}, so IDF is shared by all candidates.
package selector

import (
	"regexp"
	"sort"
	"strings"

	"github.com/formfiller/resume-matcher/internal/textnorm"
	"github.com/formfiller/resume-matcher/internal/tfidf"
)

// Candidate is one resume offered for ranking. Identity is supplied by the caller.
type Candidate struct {
	ID   string
	Text string
}

// RankingEntry pairs a candidate with its bumped similarity score. Scores are
// unrounded; rounding is a boundary concern.
type RankingEntry struct {
	ID    string
	Score float64
}

// EmptyCorpusError reports that the documents required for ranking all
// normalized to nothing. Scope names which side of the comparison was empty.
type EmptyCorpusError struct {
	Scope string
}

func (e *EmptyCorpusError) Error() string {
	return "empty corpus: " + e.Scope + " contain no usable text"
}

// DefaultBumpTerms weights domain-significant terms. When such a term appears
// in both the job description and a candidate, the candidate receives a small
// deterministic bonus: 0.02 x (multiplier - 1). The bonus nudges ties, it
// never dominates the similarity signal.
var DefaultBumpTerms = map[string]float64{
	"java":       1.25,
	"python":     1.15,
	"react":      1.25,
	"android":    1.2,
	"aws":        1.2,
	"sql":        1.2,
	"kubernetes": 1.2,
	"docker":     1.15,
}

// Selector ranks resumes by TF-IDF cosine similarity plus bump-term bonuses.
type Selector struct {
	bump map[string]float64
}

// New returns a Selector using the provided bump table, or DefaultBumpTerms
// when nil.
func New(bump map[string]float64) *Selector {
	if bump == nil {
		bump = DefaultBumpTerms
	}
	return &Selector{bump: bump}
}

var keepPattern = regexp.MustCompile(`[^a-z0-9\s\-\+\.#]`)
var spacePattern = regexp.MustCompile(`\s+`)

// prep lowercases and keeps only characters meaningful in tech terms,
// preserving tokens like c++, c# and node.js.
func prep(text string) string {
	text = strings.ToLower(text)
	text = keepPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Select ranks the candidates against the job description and returns the best
// one along with the full descending ranking. An empty candidate list yields
// (nil, empty, nil). An empty job description with non-empty candidates is not
// an error: every similarity is simply zero. Entirely empty corpora raise an
// EmptyCorpusError naming the empty side.
func (s *Selector) Select(jobDescription string, candidates []Candidate) (*Candidate, []RankingEntry, error) {
	if len(candidates) == 0 {
		return nil, []RankingEntry{}, nil
	}

	docs := make([]string, 0, len(candidates)+1)
	docs = append(docs, prep(jobDescription))
	candidatesEmpty := true
	for _, c := range candidates {
		doc := prep(c.Text)
		if doc != "" {
			candidatesEmpty = false
		}
		docs = append(docs, doc)
	}

	if candidatesEmpty && docs[0] == "" {
		return nil, nil, &EmptyCorpusError{Scope: "job description and candidates"}
	}
	if candidatesEmpty {
		return nil, nil, &EmptyCorpusError{Scope: "candidates"}
	}

	vectorizer := tfidf.NewVectorizer(1, 2, textnorm.IsStopWord)
	rows, err := vectorizer.FitTransform(docs)
	if err != nil {
		return nil, nil, err
	}

	jdTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(docs[0]) {
		jdTokens[tok] = struct{}{}
	}

	ranking := make([]RankingEntry, len(candidates))
	for i, c := range candidates {
		score := tfidf.Cosine(rows[0], rows[i+1])

		lowered := strings.ToLower(c.Text)
		for term, multiplier := range s.bump {
			if _, inJD := jdTokens[term]; !inJD {
				continue
			}
			if strings.Contains(lowered, term) {
				score += 0.02 * (multiplier - 1.0)
			}
		}

		ranking[i] = RankingEntry{ID: c.ID, Score: score}
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranking[order[a]].Score > ranking[order[b]].Score
	})

	sorted := make([]RankingEntry, len(order))
	for rank, idx := range order {
		sorted[rank] = ranking[idx]
	}

	best := candidates[order[0]]
	return &best, sorted, nil
}
