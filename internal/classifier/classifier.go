// Package classifier maps free-text form-field labels to canonical field-type
// categories. Labels are short, inconsistent and typo-prone ("Zip Code",
// "zipcode", "Postal Code"), so features are word-boundary-aware character
// n-grams rather than whole-word tokens.
package classifier

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidInput is returned for blank or whitespace-only labels. A blank
// label never reaches the model.
var ErrInvalidInput = errors.New("label must not be blank")

// Prediction is one classified label. Confidence is the maximum class
// probability in [0,1].
type Prediction struct {
	Label      string  `json:"label"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Classifier performs stateless inference over a loaded artifact. It is safe
// for concurrent use: the artifact is read-only after construction.
type Classifier struct {
	art          *Artifact
	stripAccents transform.Transformer
}

// New wraps a validated artifact.
func New(art *Artifact) (*Classifier, error) {
	if art == nil {
		return nil, errors.New("artifact is required")
	}
	if err := art.validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		art:          art,
		stripAccents: transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}, nil
}

// Load reads the artifact from disk and wraps it.
func Load(path string) (*Classifier, error) {
	art, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return New(art)
}

// Predict classifies a single label and reports the category with the highest
// probability.
func (c *Classifier) Predict(label string) (*Prediction, error) {
	if strings.TrimSpace(label) == "" {
		return nil, ErrInvalidInput
	}

	category, confidence := c.predict(label)
	return &Prediction{Label: label, Category: category, Confidence: confidence}, nil
}

// PredictBatch classifies labels positionally. A blank label yields a
// zero-value prediction (no category, confidence 0) for its position without
// failing the batch.
func (c *Classifier) PredictBatch(labels []string) []Prediction {
	predictions := make([]Prediction, len(labels))
	for i, label := range labels {
		predictions[i].Label = label
		if strings.TrimSpace(label) == "" {
			continue
		}
		predictions[i].Category, predictions[i].Confidence = c.predict(label)
	}
	return predictions
}

// Classes returns the categories the model can predict.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.art.Classes))
	copy(out, c.art.Classes)
	return out
}

func (c *Classifier) predict(label string) (string, float64) {
	features := c.features(label)

	scores := make([]float64, len(c.art.Classes))
	for k := range scores {
		scores[k] = c.art.Intercept[k]
		row := c.art.Coef[k]
		for idx, x := range features {
			scores[k] += row[idx] * x
		}
	}

	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}

	if !c.art.Probabilities {
		return c.art.Classes[best], 1.0
	}

	probs := softmax(scores)
	return c.art.Classes[best], probs[best]
}

// features builds the sparse l2-normalized TF-IDF vector for one label.
func (c *Classifier) features(label string) map[int]float64 {
	text := label
	if c.art.Lowercase {
		text = strings.ToLower(text)
	}
	if c.art.StripAccents {
		if folded, _, err := transform.String(c.stripAccents, text); err == nil {
			text = folded
		}
	}

	counts := make(map[int]float64)
	for _, gram := range charWBNgrams(text, c.art.NgramMin, c.art.NgramMax) {
		if idx, ok := c.art.Vocabulary[gram]; ok {
			counts[idx]++
		}
	}

	var sumSquares float64
	for idx, count := range counts {
		tf := count
		if c.art.SublinearTF {
			tf = 1 + math.Log(count)
		}
		w := tf * c.art.IDF[idx]
		counts[idx] = w
		sumSquares += w * w
	}
	if sumSquares > 0 {
		normFactor := math.Sqrt(sumSquares)
		for idx := range counts {
			counts[idx] /= normFactor
		}
	}
	return counts
}

// charWBNgrams emits character n-grams that never cross word boundaries:
// every whitespace-split word is padded with single spaces and a word shorter
// than n is counted once as a whole.
func charWBNgrams(text string, minN, maxN int) []string {
	grams := make([]string, 0, 64)
	for _, word := range strings.Fields(text) {
		padded := []rune(" " + word + " ")
		length := len(padded)
		for n := minN; n <= maxN; n++ {
			end := n
			if end > length {
				end = length
			}
			grams = append(grams, string(padded[0:end]))
			offset := 0
			for offset+n < length {
				offset++
				grams = append(grams, string(padded[offset:offset+n]))
			}
			if offset == 0 {
				break
			}
		}
	}
	return grams
}

func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
