package freq

import (
	"testing"

	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/textnorm"
)

func count(t *model.FrequencyTable, gram, group string) int {
	return t.Counts[model.GramKey{Gram: gram, Group: group}]
}

func TestCount_Unigrams(t *testing.T) {
	a := NewAggregator()

	cleaned := []model.CleanedRecord{
		{ID: 1, Text: "went running best friend"},
		{ID: 2, Text: "running makes me happy"},
	}

	table := a.Count(cleaned, 1)

	expected := map[string]int{
		"running": 2,
		"friend":  1,
		"happy":   1,
		"best":    1,
		"makes":   1,
		"me":      1,
		"went":    1,
	}
	for gram, want := range expected {
		if got := count(table, gram, ""); got != want {
			t.Errorf("unigram %q: expected %d, got %d", gram, want, got)
		}
	}
}

func TestCount_ConservesTokenTotal(t *testing.T) {
	a := NewAggregator()

	cleaned := []model.CleanedRecord{
		{ID: 1, Text: "one two three"},
		{ID: 2, Text: "two three"},
		{ID: 3, Text: ""},
		{ID: 4, Text: "three"},
	}

	table := a.Count(cleaned, 1)

	wantTotal := 0
	for _, rec := range cleaned {
		wantTotal += len(textnorm.Tokenize(rec.Text))
	}

	if got := table.Total(); got != wantTotal {
		t.Errorf("unigram total %d must equal surviving token count %d", got, wantTotal)
	}
}

func TestCount_BigramExclusions(t *testing.T) {
	a := NewAggregator()

	cleaned := []model.CleanedRecord{
		{ID: 1, Text: "solo"},          // exactly one token: no bigram rows
		{ID: 2, Text: ""},              // zero tokens: no rows anywhere
		{ID: 3, Text: "pair of words"}, // 2 bigrams
	}

	bigrams := a.Count(cleaned, 2)
	if total := bigrams.Total(); total != 2 {
		t.Errorf("expected 2 bigrams, got %d (%v)", total, bigrams.Counts)
	}
	if got := count(bigrams, "pair of", ""); got != 1 {
		t.Errorf("expected bigram \"pair of\" once, got %d", got)
	}

	unigrams := a.Count(cleaned, 1)
	if got := count(unigrams, "solo", ""); got != 1 {
		t.Errorf("single-token record still counts in unigrams, got %d", got)
	}
}

func TestCountBy_GroupsAndExcludes(t *testing.T) {
	a := NewAggregator()

	records := []model.Record{
		{ID: 1, Attributes: map[string]string{"gender": "f"}},
		{ID: 2, Attributes: map[string]string{"gender": "m"}},
		{ID: 3, Attributes: map[string]string{"gender": "x"}}, // outside allowed set
		{ID: 4}, // no attributes at all
	}
	cleaned := []model.CleanedRecord{
		{ID: 1, Text: "running friend"},
		{ID: 2, Text: "running happy"},
		{ID: 3, Text: "running"},
		{ID: 4, Text: "running"},
	}

	table := a.CountBy(cleaned, records, "gender", []string{"m", "f"}, 1)

	if got := count(table, "running", "f"); got != 1 {
		t.Errorf("expected running/f = 1, got %d", got)
	}
	if got := count(table, "running", "m"); got != 1 {
		t.Errorf("expected running/m = 1, got %d", got)
	}
	if got := count(table, "running", "x"); got != 0 {
		t.Errorf("unrecognized group value must be excluded, got %d", got)
	}
	if total := table.Total(); total != 4 {
		t.Errorf("expected 4 grouped tokens (f:2, m:2), got %d", total)
	}
}

func TestCountBy_JoinIsKeyedByID(t *testing.T) {
	a := NewAggregator()

	// Attribute rows arrive in a different order than the cleaned rows;
	// a positional join would mispair them.
	records := []model.Record{
		{ID: 2, Attributes: map[string]string{"gender": "m"}},
		{ID: 1, Attributes: map[string]string{"gender": "f"}},
	}
	cleaned := []model.CleanedRecord{
		{ID: 1, Text: "friend"},
		{ID: 2, Text: "happy"},
	}

	table := a.CountBy(cleaned, records, "gender", []string{"m", "f"}, 1)

	if got := count(table, "friend", "f"); got != 1 {
		t.Errorf("expected friend counted under f, got %d", got)
	}
	if got := count(table, "happy", "m"); got != 1 {
		t.Errorf("expected happy counted under m, got %d", got)
	}
}

func TestFrequencyTable_RowsOrdering(t *testing.T) {
	table := model.NewFrequencyTable(1, "")
	table.Add("beta", "")
	table.Add("beta", "")
	table.Add("alpha", "")
	table.Add("gamma", "")

	rows := table.Rows()
	if rows[0].Gram != "beta" || rows[0].Count != 2 {
		t.Errorf("expected beta first with count 2, got %+v", rows[0])
	}
	// Ties sort lexicographically for stable rendering.
	if rows[1].Gram != "alpha" || rows[2].Gram != "gamma" {
		t.Errorf("expected alpha before gamma among ties, got %v then %v", rows[1].Gram, rows[2].Gram)
	}
}
