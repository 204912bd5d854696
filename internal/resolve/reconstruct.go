package resolve

import (
	"strings"

	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/textnorm"
)

// Reconstruct re-emits one record as a cleaned sentence: the record is
// normalized and tokenized with the same functions the index pass used,
// stopword tokens are dropped, and each survivor is replaced with the
// completion of its stem, joined with single spaces in original order.
//
// A record whose every token is a stopword yields empty text. Tokens whose
// stem has no index entry are dropped; this only happens for records outside
// the corpus the index was built from.
func (r *Resolver) Reconstruct(rec model.Record, index Index) model.CleanedRecord {
	tokens := textnorm.Tokenize(r.norm.Normalize(rec.RawText))

	words := make([]string, 0, len(tokens))
	for _, word := range tokens {
		if r.stops.Contains(word) {
			continue
		}
		entry, ok := index[r.stemmer.Stem(word)]
		if !ok {
			continue
		}
		words = append(words, entry.Word)
	}

	return model.CleanedRecord{ID: rec.ID, Text: strings.Join(words, " ")}
}

// ReconstructAll reconstructs every record against the shared index,
// preserving input order.
func (r *Resolver) ReconstructAll(records []model.Record, index Index) []model.CleanedRecord {
	cleaned := make([]model.CleanedRecord, len(records))
	for i, rec := range records {
		cleaned[i] = r.Reconstruct(rec, index)
	}
	return cleaned
}
