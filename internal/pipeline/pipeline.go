package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pmatveev/stemma/internal/freq"
	"github.com/pmatveev/stemma/internal/ingest"
	"github.com/pmatveev/stemma/internal/llm"
	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/resolve"
	"github.com/pmatveev/stemma/internal/stem"
	"github.com/pmatveev/stemma/internal/stopwords"
	"github.com/pmatveev/stemma/internal/textnorm"
)

// Pipeline orchestrates the complete corpus transformation: ingest ->
// stem-completion index -> sentence reconstruction -> frequency aggregation.
type Pipeline struct {
	loader     *ingest.Loader
	resolver   *resolve.Resolver
	aggregator *freq.Aggregator
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	config     *model.Config
}

// New creates a pipeline with the given configuration
func New(cfg *model.Config) *Pipeline {
	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		loader: ingest.NewLoader(cfg.Input.TextColumn, cfg.Input.KeyColumn, cfg.Input.StripHTML),
		resolver: resolve.NewResolver(
			textnorm.NewNormalizer(cfg.Text.Vocabulary),
			stem.NewStemmer(),
			stopwords.New(cfg.Text.Stopwords...),
			cfg.Concurrency.Workers,
		),
		aggregator: freq.NewAggregator(),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Result contains the complete pipeline output
type Result struct {
	Records  []model.Record
	Cleaned  []model.CleanedRecord
	Index    resolve.Index
	Unigrams *model.FrequencyTable
	Phrases  *model.FrequencyTable            // n-grams of configured width (bigrams by default)
	Grouped  map[string]*model.FrequencyTable // unigram tables keyed by grouping attribute
	LLM      *model.LLMSummary
}

// RunFiles loads the records CSV (and the optional demographics CSV), then
// runs the corpus transformation.
func (p *Pipeline) RunFiles(ctx context.Context, recordsPath, demographicsPath string) (*Result, error) {
	records, err := p.loader.LoadRecords(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	if demographicsPath != "" {
		demo, err := p.loader.LoadDemographics(demographicsPath)
		if err != nil {
			return nil, fmt.Errorf("load demographics: %w", err)
		}
		records = ingest.JoinAttributes(records, demo)
	}

	return p.Run(ctx, records)
}

// Run executes the transformation over pre-loaded records.
//
// The completion index is built over the entire corpus before the first
// record is reconstructed; grouped tables are produced only for attributes
// named in the configuration, restricted to their allowed value sets.
func (p *Pipeline) Run(ctx context.Context, records []model.Record) (*Result, error) {
	// 1. Corpus-wide pass: build the stem-completion index
	index := p.resolver.BuildIndex(ctx, records)

	// 2. Per-record pass: reconstruct cleaned sentences
	cleaned := p.resolver.ReconstructAll(records, index)

	// 3. Frequency aggregation
	unigrams := p.aggregator.Count(cleaned, 1)

	n := p.config.Text.NGram
	if n < 2 {
		n = 2
	}
	phrases := p.aggregator.Count(cleaned, n)

	grouped := make(map[string]*model.FrequencyTable, len(p.config.Grouping.Attributes))
	for _, attr := range p.config.Grouping.Attributes {
		grouped[attr] = p.aggregator.CountBy(cleaned, records, attr, p.config.Grouping.AllowedValues[attr], 1)
	}

	result := &Result{
		Records:  records,
		Cleaned:  cleaned,
		Index:    index,
		Unigrams: unigrams,
		Phrases:  phrases,
		Grouped:  grouped,
	}

	// 4. Optional LLM narrative (AFTER counting, never affects the tables)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		top := p.config.Output.TopTerms
		summary, err := p.summarizer.GenerateSummary(ctx, len(records), unigrams.Top(top), phrases.Top(top))
		if err != nil {
			// Don't fail the run, just warn
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			result.LLM = summary
		}
	}

	return result, nil
}

// Report summarizes a result for the JSON artifact.
func (p *Pipeline) Report(result *Result) *model.Report {
	empty := 0
	for _, c := range result.Cleaned {
		if c.Text == "" {
			empty++
		}
	}

	top := p.config.Output.TopTerms
	tables := []model.TableSummary{
		tableSummary("unigrams", result.Unigrams, top),
		tableSummary("phrases", result.Phrases, top),
	}
	for _, attr := range p.config.Grouping.Attributes {
		if t, ok := result.Grouped[attr]; ok {
			tables = append(tables, tableSummary("unigrams_by_"+attr, t, top))
		}
	}

	return &model.Report{
		GeneratedAt:   time.Now().UTC(),
		RecordCount:   len(result.Records),
		EmptyCleaned:  empty,
		DistinctStems: len(result.Index),
		TokenCount:    result.Unigrams.Total(),
		Tables:        tables,
		LLM:           result.LLM,
	}
}

func tableSummary(name string, t *model.FrequencyTable, top int) model.TableSummary {
	return model.TableSummary{
		Name:     name,
		N:        t.N,
		GroupBy:  t.GroupBy,
		Distinct: len(t.Counts),
		Total:    t.Total(),
		Top:      t.Top(top),
	}
}
