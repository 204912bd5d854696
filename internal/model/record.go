package model

// Record is one raw survey response joined with its respondent attributes.
// The id is assigned once at ingestion (sequential, 1-based) and is the only
// key used to correlate derived data back to the respondent, never row order.
type Record struct {
	ID         int               `json:"id"`
	RawText    string            `json:"raw_text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attribute returns the value of a demographic attribute, or "" when the
// record has no value for it.
func (r Record) Attribute(name string) string {
	return r.Attributes[name]
}

// CleanedRecord is the analysis-ready form of a Record: every surviving token
// replaced with its corpus-wide completion, joined with single spaces in
// original token order. All-stopword input yields an empty Text.
type CleanedRecord struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Completion is the resolved representative word for one stem: the most
// frequent original word observed anywhere in the corpus for that stem,
// ties broken toward the lexicographically smallest word.
type Completion struct {
	Stem    string `json:"stem"`
	Word    string `json:"word"`
	Support int    `json:"support"`
}
