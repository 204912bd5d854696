package textnorm

import (
	"strings"
	"unicode"
)

// Normalizer cleans raw response text ahead of tokenization. It applies, in
// order: lower-casing, punctuation and digit removal, custom-vocabulary
// removal, and whitespace collapse. Normalize is pure, total, and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
type Normalizer struct {
	vocabulary map[string]struct{}
}

// NewNormalizer creates a normalizer. vocabulary lists whole words removed
// wholesale after punctuation stripping; it is empty in the default setup.
func NewNormalizer(vocabulary []string) *Normalizer {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		vocab[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Normalizer{vocabulary: vocab}
}

// Normalize returns the cleaned form of text. Only letters survive;
// punctuation and digits are deleted in place (not replaced by spaces), so
// "it's" becomes "its". Runs of whitespace collapse to a single space and
// the result carries no leading or trailing space.
func (n *Normalizer) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	if len(n.vocabulary) == 0 {
		return strings.Join(words, " ")
	}

	kept := words[:0]
	for _, w := range words {
		if _, drop := n.vocabulary[w]; drop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
