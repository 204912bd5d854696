package resolve

import (
	"context"
	"sort"

	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/textnorm"
	"github.com/pmatveev/stemma/internal/worker"
)

// Normalizer cleans raw text ahead of tokenization.
type Normalizer interface {
	Normalize(text string) string
}

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Stopwords filters words out of the corpus pass.
type Stopwords interface {
	Contains(word string) bool
}

// Index maps each stem observed in the corpus to its completion. It is built
// once per run and read-only afterwards; every downstream consumer shares the
// same instance.
type Index map[string]model.Completion

// pairCounts accumulates stem -> original word -> occurrence count.
// Per-shard instances are disjoint and merged by summation, which is
// commutative, so shard completion order does not affect the result.
type pairCounts map[string]map[string]int

// minParallelRecords is the corpus size below which sharding costs more than
// it saves.
const minParallelRecords = 256

// Resolver owns the corpus-wide stem-completion pass. It binds the exact
// normalizer, stemmer, and stopword set used for both index construction and
// sentence reconstruction, so the two passes can never diverge.
type Resolver struct {
	norm    Normalizer
	stemmer Stemmer
	stops   Stopwords
	workers int
}

// NewResolver creates a resolver. workers controls how many shards the
// counting pass fans out across; values below 2 select the serial path.
func NewResolver(norm Normalizer, stemmer Stemmer, stops Stopwords, workers int) *Resolver {
	return &Resolver{
		norm:    norm,
		stemmer: stemmer,
		stops:   stops,
		workers: workers,
	}
}

// BuildIndex runs the corpus-wide pass: it counts every (stem, original
// word) pair across all records after stopword filtering, then selects per
// stem the word with the highest count, breaking ties toward the
// lexicographically smallest word. An empty corpus yields an empty index.
//
// The pass must complete before any record is reconstructed, because the
// completion choice depends on global frequency, not per-record context.
func (r *Resolver) BuildIndex(ctx context.Context, records []model.Record) Index {
	counts := r.countPairs(ctx, records)

	index := make(Index, len(counts))
	for s, words := range counts {
		best, support := "", 0
		for w, c := range words {
			if c > support || (c == support && w < best) {
				best, support = w, c
			}
		}
		index[s] = model.Completion{Stem: s, Word: best, Support: support}
	}
	return index
}

// countPairs shards the corpus across the worker pool when it is large
// enough to pay for the fan-out, and merges the per-shard accumulators
// serially. The merged result is identical to a single serial pass.
func (r *Resolver) countPairs(ctx context.Context, records []model.Record) pairCounts {
	if r.workers < 2 || len(records) < minParallelRecords {
		return r.countShard(records)
	}

	pool := worker.NewPool(r.workers)
	pool.Start()

	shardSize := (len(records) + r.workers - 1) / r.workers
	for start := 0; start < len(records); start += shardSize {
		end := start + shardSize
		if end > len(records) {
			end = len(records)
		}
		pool.Submit(&countJob{resolver: r, records: records[start:end]})
	}

	merged := make(pairCounts)
	for _, result := range pool.Wait() {
		for s, words := range result.(*countResult).counts {
			m := merged[s]
			if m == nil {
				m = make(map[string]int, len(words))
				merged[s] = m
			}
			for w, c := range words {
				m[w] += c
			}
		}
	}
	return merged
}

// countShard accumulates pair counts for one slice of records.
func (r *Resolver) countShard(records []model.Record) pairCounts {
	counts := make(pairCounts)
	for _, rec := range records {
		for _, word := range textnorm.Tokenize(r.norm.Normalize(rec.RawText)) {
			if r.stops.Contains(word) {
				continue
			}
			s := r.stemmer.Stem(word)
			m := counts[s]
			if m == nil {
				m = make(map[string]int)
				counts[s] = m
			}
			m[word]++
		}
	}
	return counts
}

// countJob is one shard of the corpus counting pass.
type countJob struct {
	resolver *Resolver
	records  []model.Record
}

func (j *countJob) Execute(ctx context.Context) worker.Result {
	return &countResult{counts: j.resolver.countShard(j.records)}
}

type countResult struct {
	counts pairCounts
}

func (res *countResult) Err() error { return nil }

// Completions returns all index entries sorted by stem, for rendering.
func (idx Index) Completions() []model.Completion {
	entries := make([]model.Completion, 0, len(idx))
	for _, e := range idx {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Stem < entries[j].Stem })
	return entries
}
