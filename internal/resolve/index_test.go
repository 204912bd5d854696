package resolve

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/stopwords"
	"github.com/pmatveev/stemma/internal/textnorm"
)

// fixtureStemmer maps words to stems via a fixed table, identity otherwise.
// It lets tests pin the many-to-one stem mapping independent of the real
// stemming rules.
type fixtureStemmer struct {
	stems map[string]string
}

func (f *fixtureStemmer) Stem(word string) string {
	if s, ok := f.stems[word]; ok {
		return s
	}
	return word
}

func runStemmer() *fixtureStemmer {
	return &fixtureStemmer{stems: map[string]string{
		"running": "run",
		"runner":  "run",
		"runs":    "run",
	}}
}

func recordsFromCounts(counts map[string]int) []model.Record {
	var records []model.Record
	id := 1
	for word, n := range counts {
		for i := 0; i < n; i++ {
			records = append(records, model.Record{ID: id, RawText: word})
			id++
		}
	}
	return records
}

func TestBuildIndex_FrequencyMode(t *testing.T) {
	r := NewResolver(textnorm.NewNormalizer(nil), runStemmer(), stopwords.NewExplicit(), 1)

	records := recordsFromCounts(map[string]int{
		"running": 5,
		"runner":  3,
		"runs":    5,
	})

	index := r.BuildIndex(context.Background(), records)

	entry, ok := index["run"]
	if !ok {
		t.Fatal("expected an entry for stem \"run\"")
	}

	// "running" and "runs" tie at 5; the lexicographically smaller wins.
	if entry.Word != "running" {
		t.Errorf("expected resolved word \"running\", got %q", entry.Word)
	}
	if entry.Support != 5 {
		t.Errorf("expected support 5, got %d", entry.Support)
	}
}

func TestBuildIndex_CoversEverySurvivingStem(t *testing.T) {
	stops := stopwords.NewExplicit("the", "a")
	stemmer := runStemmer()
	r := NewResolver(textnorm.NewNormalizer(nil), stemmer, stops, 1)

	records := []model.Record{
		{ID: 1, RawText: "the runner crossed a finish line"},
		{ID: 2, RawText: "running is running"},
		{ID: 3, RawText: "the the the"},
	}

	index := r.BuildIndex(context.Background(), records)

	norm := textnorm.NewNormalizer(nil)
	for _, rec := range records {
		for _, word := range textnorm.Tokenize(norm.Normalize(rec.RawText)) {
			if stops.Contains(word) {
				continue
			}
			s := stemmer.Stem(word)
			if _, ok := index[s]; !ok {
				t.Errorf("stem %q (from %q) missing from index", s, word)
			}
		}
	}

	// Stopword-only stems must not appear.
	if _, ok := index["the"]; ok {
		t.Error("stopword \"the\" should never get an index entry")
	}
}

func TestBuildIndex_EmptyCorpus(t *testing.T) {
	r := NewResolver(textnorm.NewNormalizer(nil), runStemmer(), stopwords.NewExplicit(), 1)

	index := r.BuildIndex(context.Background(), nil)
	if len(index) != 0 {
		t.Errorf("expected empty index for empty corpus, got %d entries", len(index))
	}
}

func TestBuildIndex_MalformedTextTreatedAsEmpty(t *testing.T) {
	r := NewResolver(textnorm.NewNormalizer(nil), runStemmer(), stopwords.NewExplicit(), 1)

	records := []model.Record{
		{ID: 1, RawText: ""},
		{ID: 2, RawText: "?!42"},
	}

	index := r.BuildIndex(context.Background(), records)
	if len(index) != 0 {
		t.Errorf("expected no entries from empty/punctuation-only records, got %d", len(index))
	}
}

func TestBuildIndex_ParallelMatchesSerial(t *testing.T) {
	// Large enough to cross the parallel threshold.
	words := []string{"running", "runs", "runner", "friend", "happy", "garden", "gardens"}
	var records []model.Record
	for i := 0; i < 400; i++ {
		text := fmt.Sprintf("%s %s %s",
			words[i%len(words)], words[(i*3+1)%len(words)], words[(i*7+2)%len(words)])
		records = append(records, model.Record{ID: i + 1, RawText: text})
	}

	stemmer := runStemmer()
	serial := NewResolver(textnorm.NewNormalizer(nil), stemmer, stopwords.NewExplicit(), 1)
	parallel := NewResolver(textnorm.NewNormalizer(nil), stemmer, stopwords.NewExplicit(), 4)

	ctx := context.Background()
	want := serial.BuildIndex(ctx, records)
	got := parallel.BuildIndex(ctx, records)

	if !reflect.DeepEqual(want, got) {
		t.Errorf("parallel index differs from serial: %d vs %d entries", len(got), len(want))
	}
}

func TestIndex_CompletionsSorted(t *testing.T) {
	idx := Index{
		"run":    model.Completion{Stem: "run", Word: "running", Support: 2},
		"friend": model.Completion{Stem: "friend", Word: "friend", Support: 1},
	}

	entries := idx.Completions()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	stems := []string{entries[0].Stem, entries[1].Stem}
	if strings.Join(stems, ",") != "friend,run" {
		t.Errorf("expected stems sorted as friend,run, got %v", stems)
	}
}
