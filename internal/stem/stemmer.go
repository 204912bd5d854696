package stem

import (
	"github.com/kljensen/snowball"
	gocache "github.com/patrickmn/go-cache"
)

// Stemmer reduces words to their snowball English stems. Survey corpora
// repeat a small vocabulary across thousands of records, so results are
// memoized; the cache is safe for concurrent use by parallel counting
// shards.
type Stemmer struct {
	cache *gocache.Cache
}

// NewStemmer creates a stemmer with an empty memoization cache.
func NewStemmer() *Stemmer {
	return &Stemmer{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Stem returns the stem of word. It is deterministic and total: empty or
// non-stemmable input comes back unchanged rather than failing.
func (s *Stemmer) Stem(word string) string {
	if word == "" {
		return word
	}

	if cached, found := s.cache.Get(word); found {
		return cached.(string)
	}

	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil || stemmed == "" {
		stemmed = word
	}

	s.cache.Set(word, stemmed, gocache.NoExpiration)
	return stemmed
}
