package skills

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern splits on anything that cannot occur inside a tech term, so
// c++, c# and node.js survive as single tokens.
var tokenPattern = regexp.MustCompile(`[^a-z0-9+#.]+`)

// Extract returns the dictionary terms present in text, sorted and
// deduplicated. The same input and dictionary always produce the same output.
func Extract(text string, dict *Dictionary) []string {
	found := make(map[string]struct{})

	lowered := strings.ToLower(text)

	tokens := make(map[string]struct{})
	for _, tok := range tokenPattern.Split(lowered, -1) {
		// Trailing sentence punctuation sticks to the token ("docker.").
		tok = strings.TrimRight(tok, ".")
		if tok != "" {
			tokens[tok] = struct{}{}
		}
	}

	for term := range dict.single {
		if _, ok := tokens[term]; ok {
			found[term] = struct{}{}
		}
	}
	for _, term := range dict.multi {
		if strings.Contains(lowered, term) {
			found[term] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for term := range found {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
