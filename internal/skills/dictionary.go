// Package skills extracts known skill terms from free text against a
// dictionary. Matching is purely deterministic: no model, no fuzzy logic.
package skills

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	_ "embed"
)

//go:embed skill_terms.txt
var defaultTerms string

// Dictionary is the set of recognizable skill terms. Single-word terms are
// matched against tokens, multi-word terms by substring containment.
type Dictionary struct {
	single map[string]struct{}
	multi  []string
	// terms preserves first-seen order for introspection.
	terms []string
}

// DefaultDictionary parses the embedded term list. The embedded list is part
// of the build, so a parse failure here is a programming error.
func DefaultDictionary() *Dictionary {
	dict, err := Parse(strings.NewReader(defaultTerms))
	if err != nil {
		panic(fmt.Sprintf("embedded skill terms are invalid: %v", err))
	}
	return dict
}

// LoadFile parses a dictionary from a term-per-line file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening skill terms: %w", err)
	}
	defer f.Close()

	dict, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing skill terms %q: %w", path, err)
	}
	return dict, nil
}

// Parse reads one term per line. Blank lines and lines starting with # are
// skipped, terms are lowercased, duplicates keep their first occurrence.
func Parse(r io.Reader) (*Dictionary, error) {
	dict := &Dictionary{single: make(map[string]struct{})}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		term := strings.ToLower(line)
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		dict.terms = append(dict.terms, term)

		if strings.ContainsAny(term, " \t") {
			dict.multi = append(dict.multi, term)
		} else {
			dict.single[term] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(dict.terms) == 0 {
		return nil, fmt.Errorf("no terms found")
	}
	return dict, nil
}

// Terms returns the dictionary terms in their original order.
func (d *Dictionary) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

// Len reports the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}
