package textnorm

import (
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"golang.org/x/text/unicode/norm"
)

// Normalizer converts raw documents into ordered lemma token sequences.
// It is stateless apart from the loaded lemma dictionary, so a single value
// may be shared by concurrent callers.
type Normalizer struct {
	lemmas *golem.Lemmatizer
}

// New loads the English lemma dictionary and returns a ready Normalizer.
func New() (*Normalizer, error) {
	lemmas, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Normalizer{lemmas: lemmas}, nil
}

// Normalize lowercases the text, strips everything but letters, tokenizes on
// whitespace, lemmatizes dictionary words and drops stop words. Empty input
// yields an empty slice, never an error. Normalizing already normalized text
// returns it unchanged.
func (n *Normalizer) Normalize(text string) []string {
	cleaned := stripNonLetters(strings.ToLower(norm.NFKC.String(text)))

	tokens := make([]string, 0, 16)
	for _, tok := range strings.Fields(cleaned) {
		if IsStopWord(tok) {
			continue
		}
		if n.lemmas.InDict(tok) {
			tok = n.lemmas.Lemma(tok)
		}
		if tok == "" || IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Join renders a normalized token sequence back into a single document string.
func (n *Normalizer) Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Keywords runs POS tagging over the lowercased text and returns the set of
// noun and proper-noun tokens that are not stop words. Used by the semantic
// missing-skill path, which works on unweighted keyword sets.
func (n *Normalizer) Keywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})

	text = strings.TrimSpace(strings.ToLower(norm.NFKC.String(text)))
	if text == "" {
		return keywords
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return keywords
	}

	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(tok.Text))
		if word == "" || IsStopWord(word) || !hasLetter(word) {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}

func stripNonLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}
