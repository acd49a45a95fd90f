package selector

import (
	"errors"
	"math"
	"testing"
)

func TestSelectBestCandidate(t *testing.T) {
	t.Parallel()

	s := New(nil)
	jd := "React developer with AWS and Docker"
	candidates := []Candidate{
		{ID: "r1", Text: "Java Spring Boot SQL"},
		{ID: "r2", Text: "React Next.js AWS Docker CI/CD"},
	}

	best, ranking, err := s.Select(jd, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if best == nil || best.ID != "r2" {
		t.Fatalf("expected best candidate r2, got %+v", best)
	}
	if len(ranking) != 2 {
		t.Fatalf("expected full ranking, got %v", ranking)
	}
	if ranking[0].ID != "r2" {
		t.Fatalf("expected r2 at rank 0, got %v", ranking)
	}
	if ranking[0].Score < ranking[1].Score {
		t.Fatalf("ranking must be descending: %v", ranking)
	}
}

func TestSelectEmptyCandidates(t *testing.T) {
	t.Parallel()

	best, ranking, err := New(nil).Select("any job description", nil)
	if err != nil {
		t.Fatalf("empty candidate list must not error, got %v", err)
	}
	if best != nil {
		t.Fatalf("expected no best candidate, got %+v", best)
	}
	if len(ranking) != 0 {
		t.Fatalf("expected empty ranking, got %v", ranking)
	}
}

func TestSelectEmptyCorpusErrors(t *testing.T) {
	t.Parallel()

	s := New(nil)

	var corpusErr *EmptyCorpusError
	_, _, err := s.Select("", []Candidate{{ID: "r1", Text: "  "}})
	if !errors.As(err, &corpusErr) {
		t.Fatalf("expected EmptyCorpusError, got %v", err)
	}

	_, _, err = s.Select("Go developer", []Candidate{{ID: "r1", Text: ""}, {ID: "r2", Text: " \n"}})
	if !errors.As(err, &corpusErr) {
		t.Fatalf("expected EmptyCorpusError for empty candidates, got %v", err)
	}
	if corpusErr.Scope != "candidates" {
		t.Fatalf("error must name candidates specifically, got %q", corpusErr.Scope)
	}
}

func TestSelectEmptyJobDescriptionProceeds(t *testing.T) {
	t.Parallel()

	_, ranking, err := New(nil).Select("", []Candidate{
		{ID: "r1", Text: "Go developer"},
		{ID: "r2", Text: "Python developer"},
	})
	if err != nil {
		t.Fatalf("empty JD with non-empty candidates must not error, got %v", err)
	}

	for _, entry := range ranking {
		if entry.Score != 0 {
			t.Fatalf("expected zero similarity against empty JD, got %v", ranking)
		}
	}
	// Ties preserve input order.
	if ranking[0].ID != "r1" || ranking[1].ID != "r2" {
		t.Fatalf("tied candidates must keep input order, got %v", ranking)
	}
}

func TestSelectStableTies(t *testing.T) {
	t.Parallel()

	_, ranking, err := New(nil).Select("Go developer", []Candidate{
		{ID: "first", Text: "Go developer"},
		{ID: "second", Text: "Go developer"},
		{ID: "third", Text: "Go developer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if ranking[i].ID != id {
			t.Fatalf("tie order not stable: %v", ranking)
		}
	}
}

func TestBumpBonusIsAdditiveAndSmall(t *testing.T) {
	t.Parallel()

	jd := "python backend engineer"
	candidates := []Candidate{{ID: "r1", Text: "backend engineer who writes python"}}

	_, bumped, err := New(nil).Select(jd, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, plain, err := New(map[string]float64{}).Select(jd, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// python carries multiplier 1.15: bonus = 0.02 x 0.15.
	bonus := bumped[0].Score - plain[0].Score
	if math.Abs(bonus-0.003) > 1e-12 {
		t.Fatalf("expected bump bonus 0.003, got %v", bonus)
	}
}

func TestBumpRequiresTermOnBothSides(t *testing.T) {
	t.Parallel()

	// docker is absent from the JD, so no bonus applies even though the
	// candidate mentions it.
	jd := "backend engineer"
	candidates := []Candidate{{ID: "r1", Text: "backend engineer docker"}}

	_, bumped, err := New(nil).Select(jd, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, plain, err := New(map[string]float64{}).Select(jd, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bumped[0].Score != plain[0].Score {
		t.Fatalf("no bonus expected without the term in the JD: %v vs %v", bumped[0].Score, plain[0].Score)
	}
}
