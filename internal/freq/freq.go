package freq

import (
	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/textnorm"
)

// Aggregator counts n-grams over cleaned records. Input text is already
// normalized, completed, and stopword-free, so no further filtering or
// stemming happens here.
type Aggregator struct{}

// NewAggregator creates an aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Count builds an ungrouped n-gram table over the cleaned records. Records
// with fewer than n tokens contribute nothing; for n > 1, records with
// exactly one surviving token are excluded outright.
func (a *Aggregator) Count(cleaned []model.CleanedRecord, n int) *model.FrequencyTable {
	table := model.NewFrequencyTable(n, "")
	for _, rec := range cleaned {
		a.add(table, rec.Text, "", n)
	}
	return table
}

// CountBy builds an n-gram table grouped by one demographic attribute. The
// join between cleaned text and attributes is keyed by record id, never by
// row position, so upstream filtering or reordering cannot mispair them.
// Records with a missing group value, or a value outside allowed (when
// allowed is non-empty), are excluded from the table.
func (a *Aggregator) CountBy(cleaned []model.CleanedRecord, records []model.Record, attribute string, allowed []string, n int) *model.FrequencyTable {
	groups := make(map[int]string, len(records))
	for _, rec := range records {
		if v := rec.Attribute(attribute); v != "" {
			groups[rec.ID] = v
		}
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = struct{}{}
	}

	table := model.NewFrequencyTable(n, attribute)
	for _, rec := range cleaned {
		group, ok := groups[rec.ID]
		if !ok {
			continue
		}
		if len(allowedSet) > 0 {
			if _, ok := allowedSet[group]; !ok {
				continue
			}
		}
		a.add(table, rec.Text, group, n)
	}
	return table
}

func (a *Aggregator) add(table *model.FrequencyTable, text, group string, n int) {
	if n > 1 && len(textnorm.Tokenize(text)) == 1 {
		return
	}
	for _, gram := range textnorm.NGrams(text, n) {
		table.Add(gram, group)
	}
}
