package match

import (
	"context"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubEncoder struct {
	vectors map[string][]float32
}

func (s *stubEncoder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 1, 1}, nil
}

func (s *stubEncoder) Model() string { return "stub-encoder" }

func TestSemanticScoreScaledToPercentage(t *testing.T) {
	t.Parallel()

	resume := "Python developer with Flask and SQL"
	jd := "Looking for Python developer with Django and SQL"

	encoder := &stubEncoder{vectors: map[string][]float32{
		resume: {3, 4},
		jd:     {4, 3},
	}}
	m := NewSemantic(newTestNormalizer(t), encoder)

	result, err := m.Match(context.Background(), resume, jd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != MethodSemantic {
		t.Fatalf("expected method %q, got %q", MethodSemantic, result.Method)
	}
	// cos([3,4],[4,3]) = 24/25
	if result.Score != 96 {
		t.Fatalf("expected score 96, got %v", result.Score)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of bounds: %v", result.Score)
	}
}

func TestSemanticIdenticalTextsScoreHundred(t *testing.T) {
	t.Parallel()

	text := "Senior Go engineer with Kubernetes"
	encoder := &stubEncoder{vectors: map[string][]float32{text: {1, 2, 3}}}
	m := NewSemantic(newTestNormalizer(t), encoder)

	result, err := m.Match(context.Background(), text, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %v", result.Score)
	}
	if len(result.Missing) != 0 {
		t.Fatalf("identical texts must have no missing skills, got %v", result.Missing)
	}
}

func TestSemanticMissingSkills(t *testing.T) {
	t.Parallel()

	resume := "Python developer with Django and Flask"
	jd := "Looking for Python developer with Django and SQL experience"

	m := NewSemantic(newTestNormalizer(t), &stubEncoder{})

	result, err := m.Match(context.Background(), resume, jd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resumeLower := strings.ToLower(resume)
	for _, kw := range result.Missing {
		// Presence suppression: words appearing in the resume never show up.
		if strings.Contains(resumeLower, kw.Term) {
			t.Fatalf("term %q is present in the resume and must not be missing", kw.Term)
		}
		// The semantic path reports unweighted terms.
		if kw.Weight != 0 {
			t.Fatalf("semantic missing skills are unweighted, got %v", kw)
		}
	}

	if !sort.SliceIsSorted(result.Missing, func(i, j int) bool {
		return result.Missing[i].Term < result.Missing[j].Term
	}) {
		t.Fatalf("missing skills must be sorted for deterministic output: %v", result.Missing)
	}
}

func TestFactoryFallsBackWithoutEncoder(t *testing.T) {
	t.Parallel()

	f := NewFactory(newTestNormalizer(t), nil, zap.NewNop())

	if f.SemanticAvailable() {
		t.Fatalf("semantic matcher must be absent without an encoder")
	}
	if got := f.Pick(MethodSemantic).Name(); got != MethodLexical {
		t.Fatalf("expected fallback to %q, got %q", MethodLexical, got)
	}
	if got := f.Pick("unknown").Name(); got != MethodLexical {
		t.Fatalf("unknown method must resolve to %q, got %q", MethodLexical, got)
	}
}

func TestFactoryPicksSemanticWhenAvailable(t *testing.T) {
	t.Parallel()

	f := NewFactory(newTestNormalizer(t), &stubEncoder{}, zap.NewNop())

	if !f.SemanticAvailable() {
		t.Fatalf("semantic matcher must be available with an encoder")
	}
	if got := f.Pick("embedding").Name(); got != MethodSemantic {
		t.Fatalf("expected %q, got %q", MethodSemantic, got)
	}
	if got := f.Pick("").Name(); got != MethodLexical {
		t.Fatalf("empty method must resolve to %q, got %q", MethodLexical, got)
	}
}
