package model

import "time"

// Report is the JSON artifact handed to the reporting collaborator. It
// carries corpus-level statistics and the head of each frequency table;
// the full tables are written as separate CSV files.
type Report struct {
	GeneratedAt   time.Time `json:"generated_at"`
	RecordCount   int       `json:"record_count"`
	EmptyCleaned  int       `json:"empty_cleaned"`  // records whose cleaned text is empty
	DistinctStems int       `json:"distinct_stems"` // completion index size
	TokenCount    int       `json:"token_count"`    // surviving tokens across all records

	Tables []TableSummary `json:"tables"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional narrative, never affects counts
}

// TableSummary describes one frequency table in the report.
type TableSummary struct {
	Name     string      `json:"name"`
	N        int         `json:"n"`
	GroupBy  string      `json:"group_by,omitempty"`
	Distinct int         `json:"distinct"`
	Total    int         `json:"total"`
	Top      []GramCount `json:"top"`
}

// LLMSummary contains the optional LLM-generated narrative.
// It is produced after counting and clearly separated from the statistics.
type LLMSummary struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}
