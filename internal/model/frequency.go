package model

import "sort"

// GramKey identifies one count bucket in a FrequencyTable. Group is empty
// when the table is ungrouped.
type GramKey struct {
	Gram  string `json:"gram"`
	Group string `json:"group,omitempty"`
}

// GramCount is one row of a rendered frequency table.
type GramCount struct {
	Gram  string `json:"gram"`
	Group string `json:"group,omitempty"`
	Count int    `json:"count"`
}

// FrequencyTable holds n-gram counts, optionally partitioned by the value of
// one categorical respondent attribute. For an ungrouped unigram table the
// sum of all counts equals the total surviving token count across records.
type FrequencyTable struct {
	N       int
	GroupBy string // attribute name, "" when ungrouped
	Counts  map[GramKey]int
}

// NewFrequencyTable creates an empty table for n-grams of width n.
func NewFrequencyTable(n int, groupBy string) *FrequencyTable {
	return &FrequencyTable{
		N:       n,
		GroupBy: groupBy,
		Counts:  make(map[GramKey]int),
	}
}

// Add increments the count for gram within group ("" for ungrouped tables).
func (t *FrequencyTable) Add(gram, group string) {
	t.Counts[GramKey{Gram: gram, Group: group}]++
}

// Total returns the sum of all counts in the table.
func (t *FrequencyTable) Total() int {
	total := 0
	for _, c := range t.Counts {
		total += c
	}
	return total
}

// Rows returns all counts sorted by count descending, then group, then gram.
// The ordering is total, so repeated calls render identical output.
func (t *FrequencyTable) Rows() []GramCount {
	rows := make([]GramCount, 0, len(t.Counts))
	for k, c := range t.Counts {
		rows = append(rows, GramCount{Gram: k.Gram, Group: k.Group, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Group != rows[j].Group {
			return rows[i].Group < rows[j].Group
		}
		return rows[i].Gram < rows[j].Gram
	})
	return rows
}

// Top returns at most limit rows in Rows() order.
func (t *FrequencyTable) Top(limit int) []GramCount {
	rows := t.Rows()
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
