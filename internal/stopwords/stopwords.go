package stopwords

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Set decides which words are excluded from stemming and frequency analysis.
// The default construction layers caller-supplied additions on top of the
// snowball English stopword list; NewExplicit builds a closed set for callers
// that need full control over the filter.
type Set struct {
	base  bool
	words map[string]struct{}
}

// New returns a set containing the base English stopwords plus custom
// additions.
func New(custom ...string) *Set {
	return &Set{base: true, words: toSet(custom)}
}

// NewExplicit returns a set containing exactly the given words and nothing
// else.
func NewExplicit(words ...string) *Set {
	return &Set{words: toSet(words)}
}

// Contains reports whether word is a stopword. Matching is case-insensitive.
func (s *Set) Contains(word string) bool {
	w := strings.ToLower(word)
	if s.base && english.IsStopWord(w) {
		return true
	}
	_, ok := s.words[w]
	return ok
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			m[w] = struct{}{}
		}
	}
	return m
}
