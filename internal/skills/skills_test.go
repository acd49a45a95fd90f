package skills

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractFromSentence(t *testing.T) {
	t.Parallel()

	dict := DefaultDictionary()
	text := "Experienced with Python, SQL, React and Docker. Also used AWS Lambda."

	got := Extract(text, dict)

	want := []string{"aws", "aws lambda", "docker", "python", "react", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractSymbolHeavyTerms(t *testing.T) {
	t.Parallel()

	dict := DefaultDictionary()
	got := Extract("Built services in C++ and C#, frontend in Node.js", dict)

	for _, term := range []string{"c++", "c#", "node.js"} {
		found := false
		for _, g := range got {
			if g == term {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q in %v", term, got)
		}
	}
}

func TestExtractDoesNotMatchSubstringsOfTokens(t *testing.T) {
	t.Parallel()

	dict, err := Parse(strings.NewReader("java\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "javascript" contains "java" but is a different token.
	if got := Extract("Senior JavaScript developer", dict); len(got) != 0 {
		t.Fatalf("expected no match inside a longer token, got %v", got)
	}
	if got := Extract("Senior Java developer", dict); !reflect.DeepEqual(got, []string{"java"}) {
		t.Fatalf("expected exact token match, got %v", got)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Extract("", DefaultDictionary()); len(got) != 0 {
		t.Fatalf("expected no skills in empty text, got %v", got)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	t.Parallel()

	dict := DefaultDictionary()
	text := "Kubernetes, Docker, Terraform, AWS, Python, PostgreSQL"

	first := Extract(text, dict)
	for i := 0; i < 5; i++ {
		if got := Extract(text, dict); !reflect.DeepEqual(got, first) {
			t.Fatalf("extraction not deterministic: %v vs %v", got, first)
		}
	}
}

func TestParseDictionary(t *testing.T) {
	t.Parallel()

	input := "# comment\n\nPython\npython\nMachine Learning\n  sql  \n"
	dict, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"python", "machine learning", "sql"}
	if !reflect.DeepEqual(dict.Terms(), want) {
		t.Fatalf("Terms() = %v, want %v", dict.Terms(), want)
	}
	if dict.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dict.Len())
	}
}

func TestParseEmptyDictionary(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("# only comments\n\n")); err == nil {
		t.Fatalf("expected error for empty dictionary")
	}
}
