package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the serialized form of the offline-trained label model: a
// character n-gram TF-IDF vectorizer with a fixed vocabulary plus a
// multinomial linear classifier. It is exported to JSON by the training
// pipeline and never refit at request time.
type Artifact struct {
	FormatVersion int    `json:"format_version"`
	Analyzer      string `json:"analyzer"`
	NgramMin      int    `json:"ngram_min"`
	NgramMax      int    `json:"ngram_max"`
	Lowercase     bool   `json:"lowercase"`
	StripAccents  bool   `json:"strip_accents"`
	SublinearTF   bool   `json:"sublinear_tf"`
	// Probabilities is false when the underlying model exposes no
	// probability estimates; predictions then report confidence 1.0.
	Probabilities bool `json:"probabilities"`

	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Classes    []string       `json:"classes"`
	Coef       [][]float64    `json:"coef"`
	Intercept  []float64      `json:"intercept"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parsing model artifact %q: %w", path, err)
	}

	if err := art.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %q: %w", path, err)
	}
	return &art, nil
}

func (a *Artifact) validate() error {
	if a.Analyzer != "char_wb" {
		return fmt.Errorf("unsupported analyzer %q", a.Analyzer)
	}
	if a.NgramMin < 1 || a.NgramMax < a.NgramMin {
		return fmt.Errorf("invalid ngram range [%d,%d]", a.NgramMin, a.NgramMax)
	}
	if len(a.Vocabulary) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(a.IDF), len(a.Vocabulary))
	}
	if len(a.Classes) < 2 {
		return fmt.Errorf("expected at least two classes, got %d", len(a.Classes))
	}
	if len(a.Coef) != len(a.Classes) {
		return fmt.Errorf("coef rows %d do not match classes %d", len(a.Coef), len(a.Classes))
	}
	for i, row := range a.Coef {
		if len(row) != len(a.Vocabulary) {
			return fmt.Errorf("coef row %d length %d does not match vocabulary size %d", i, len(row), len(a.Vocabulary))
		}
	}
	if len(a.Intercept) != len(a.Classes) {
		return fmt.Errorf("intercept length %d does not match classes %d", len(a.Intercept), len(a.Classes))
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return fmt.Errorf("vocabulary index %d for %q out of range", idx, term)
		}
	}
	return nil
}
