package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/formfiller/resume-matcher/internal/ai"
	"github.com/formfiller/resume-matcher/internal/textnorm"
	"github.com/formfiller/resume-matcher/internal/tfidf"
	"github.com/formfiller/resume-matcher/internal/utils"
)

// Semantic compares raw documents with sentence embeddings. Scores are
// percentages in [0,100]; missing skills come from a POS-filtered keyword-set
// difference, unweighted, unlike the lexical path.
type Semantic struct {
	normalizer *textnorm.Normalizer
	encoder    ai.Encoder
}

func NewSemantic(normalizer *textnorm.Normalizer, encoder ai.Encoder) *Semantic {
	return &Semantic{normalizer: normalizer, encoder: encoder}
}

func (m *Semantic) Name() string { return MethodSemantic }

// Match encodes both raw texts, reports cosine similarity scaled to a
// two-decimal percentage, and lists JD noun keywords absent from the resume.
func (m *Semantic) Match(ctx context.Context, resumeText, jobDescription string) (*Result, error) {
	resumeVec, err := m.encoder.Embed(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}
	jdVec, err := m.encoder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("embed job description: %w", err)
	}

	score := tfidf.Cosine32(resumeVec, jdVec)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	resumeKW := m.normalizer.Keywords(resumeText)
	jdKW := m.normalizer.Keywords(jobDescription)

	missing := make([]Keyword, 0)
	for term := range jdKW {
		if _, ok := resumeKW[term]; !ok {
			missing = append(missing, Keyword{Term: term})
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Term < missing[j].Term
	})

	return &Result{
		Score:   utils.Round(score*100, 2),
		Missing: missing,
		Method:  MethodSemantic,
	}, nil
}
