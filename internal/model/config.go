package model

// Config holds the complete pipeline configuration
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Text        TextConfig        `yaml:"text"`
	Grouping    GroupingConfig    `yaml:"grouping"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// InputConfig describes the flat tabular sources
type InputConfig struct {
	TextColumn string `yaml:"text_column"` // column holding the free-text response
	KeyColumn  string `yaml:"key_column"`  // demographics column holding the respondent id
	StripHTML  bool   `yaml:"strip_html"`  // strip markup from responses exported off web forms
}

// TextConfig controls normalization and counting
type TextConfig struct {
	Stopwords  []string `yaml:"stopwords"`  // custom additions to the base English set
	Vocabulary []string `yaml:"vocabulary"` // whole words removed during normalization
	NGram      int      `yaml:"ngram"`      // n-gram width for the phrase table (2 = bigrams)
}

// GroupingConfig controls grouped frequency tables
type GroupingConfig struct {
	// Attributes lists demographic attributes to slice unigram counts by.
	Attributes []string `yaml:"attributes"`

	// AllowedValues restricts each attribute to a fixed value set; records
	// with any other value are excluded from that attribute's grouped table.
	AllowedValues map[string][]string `yaml:"allowed_values"`
}

// ConcurrencyConfig controls the corpus-wide counting pass
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"` // shard count for the pair-counting pass
}

// OutputConfig controls rendering
type OutputConfig struct {
	Dir      string `yaml:"dir"`       // output directory for CSV/JSON artifacts
	TopTerms int    `yaml:"top_terms"` // rows included in the JSON report per table
	Verbose  bool   `yaml:"verbose"`
}

// LLMConfig controls the optional narrative summary (never affects counts)
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			TextColumn: "response",
			KeyColumn:  "id",
			StripHTML:  true,
		},
		Text: TextConfig{
			Stopwords:  []string{},
			Vocabulary: []string{},
			NGram:      2,
		},
		Grouping: GroupingConfig{
			Attributes: []string{"gender", "marital", "parenthood"},
			AllowedValues: map[string][]string{
				"gender":     {"m", "f"},
				"marital":    {"single", "married", "divorced", "widowed"},
				"parenthood": {"y", "n"},
			},
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:      "./stemma-out",
			TopTerms: 25,
			Verbose:  false,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}
