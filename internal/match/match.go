// Package match scores resume-to-job-description relevance and surfaces
// missing skill terms via interchangeable strategies: lexical TF-IDF and
// semantic sentence embeddings.
package match

import (
	"context"
	"strings"
	"sync"

	"github.com/formfiller/resume-matcher/internal/ai"
	"github.com/formfiller/resume-matcher/internal/textnorm"
	"github.com/formfiller/resume-matcher/internal/tfidf"
	"go.uber.org/zap"
)

// Method tags reported with every result so callers can interpret the score
// scale: lexical scores are in [0,1], semantic scores in [0,100].
const (
	MethodLexical  = "tfidf"
	MethodSemantic = "embedding"
)

// ErrEmptyVocabulary is returned when both inputs normalize to nothing.
var ErrEmptyVocabulary = tfidf.ErrEmptyVocabulary

// Keyword is a job-description term missing from the resume. The lexical
// strategy reports TF-IDF weights; the semantic strategy reports plain terms
// with zero weight.
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Result is the outcome of one resume/job-description comparison.
type Result struct {
	Score   float64   `json:"similarity_score"`
	Missing []Keyword `json:"missing_keywords"`
	Method  string    `json:"method"`
}

// Strategy compares a resume against a job description. Implementations are
// stateless per call and safe for concurrent use.
type Strategy interface {
	Name() string
	Match(ctx context.Context, resumeText, jobDescription string) (*Result, error)
}

// Factory holds the strategies constructed at process start. Semantic
// availability is decided exactly once, when the encoder is (or is not)
// handed in; there is no per-call probing.
type Factory struct {
	lexical  *Lexical
	semantic *Semantic
	logger   *zap.Logger
	degraded sync.Once
}

// NewFactory wires the lexical matcher and, when an encoder is available, the
// semantic matcher. Pass a nil encoder when the embedding backend failed to
// load; the factory then serves lexical matching only.
func NewFactory(normalizer *textnorm.Normalizer, encoder ai.Encoder, logger *zap.Logger) *Factory {
	f := &Factory{
		lexical: NewLexical(normalizer),
		logger:  logger,
	}
	if encoder != nil {
		f.semantic = NewSemantic(normalizer, encoder)
	}
	return f
}

// SemanticAvailable reports whether the embedding strategy was loaded.
func (f *Factory) SemanticAvailable() bool {
	return f.semantic != nil
}

// Pick returns the strategy for the requested method. Requests for an
// unavailable semantic matcher fall back to the lexical matcher transparently;
// the degradation is logged once per process. Unknown or empty methods
// resolve to the lexical matcher.
func (f *Factory) Pick(method string) Strategy {
	if strings.EqualFold(strings.TrimSpace(method), MethodSemantic) {
		if f.semantic != nil {
			return f.semantic
		}
		f.degraded.Do(func() {
			if f.logger != nil {
				f.logger.Warn("semantic matcher unavailable, falling back to lexical matching",
					zap.String("requested", MethodSemantic),
					zap.String("fallback", MethodLexical),
				)
			}
		})
	}
	return f.lexical
}
