package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pmatveev/stemma/internal/model"
	"github.com/pmatveev/stemma/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	demographics string
	outputDir    string
	textColumn   string
	keyColumn    string
	groupBy      []string
	extraStops   []string
	vocabulary   []string
	ngram        int
	topTerms     int
	workers      int
	noHTMLStrip  bool
	runTimeout   time.Duration
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <records.csv>",
	Short: "Normalize a response corpus and compute frequency tables",
	Long: `Analyze runs the full pipeline over a corpus of free-text responses:
- Normalize each response (lower-case, strip punctuation/digits/markup)
- Build the corpus-wide stem-completion index
- Re-emit every response as a cleaned sentence
- Count word and phrase frequencies, optionally sliced by attributes

Example:
  stemma analyze responses.csv
  stemma analyze responses.csv --demographics demo.csv --group-by gender
  stemma analyze responses.csv --stopword today --stopword etc --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&demographics, "demographics", "", "demographics CSV keyed by respondent id (optional)")
	analyzeCmd.Flags().StringVar(&textColumn, "text-column", "response", "records column holding the response text")
	analyzeCmd.Flags().StringVar(&keyColumn, "key-column", "id", "demographics column holding the respondent id")
	analyzeCmd.Flags().BoolVar(&noHTMLStrip, "no-html-strip", false, "keep markup in responses instead of stripping it")

	// Text flags
	analyzeCmd.Flags().StringSliceVar(&extraStops, "stopword", nil, "stopword added to the base English set (repeatable)")
	analyzeCmd.Flags().StringSliceVar(&vocabulary, "remove-word", nil, "word removed during normalization (repeatable)")
	analyzeCmd.Flags().IntVar(&ngram, "ngram", 2, "n-gram width for the phrase table")

	// Grouping / output flags
	analyzeCmd.Flags().StringSliceVar(&groupBy, "group-by", []string{"gender", "marital", "parenthood"}, "attributes to slice word counts by")
	analyzeCmd.Flags().StringVar(&outputDir, "output-dir", "./stemma-out", "output directory for CSV/JSON artifacts")
	analyzeCmd.Flags().IntVar(&topTerms, "top", 25, "rows per table included in the JSON report")

	// Concurrency flags
	analyzeCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "shard count for the corpus counting pass")
	analyzeCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall run timeout")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summary of the tables")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	recordsPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Input.TextColumn = textColumn
	cfg.Input.KeyColumn = keyColumn
	cfg.Input.StripHTML = !noHTMLStrip
	cfg.Text.Stopwords = extraStops
	cfg.Text.Vocabulary = vocabulary
	cfg.Text.NGram = ngram
	cfg.Grouping.Attributes = nil
	if demographics != "" {
		cfg.Grouping.Attributes = groupBy
	}
	cfg.Concurrency.Workers = workers
	cfg.Output.Dir = outputDir
	cfg.Output.TopTerms = topTerms
	cfg.Output.Verbose = verbose

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Records:      %s\n", recordsPath)
		if demographics != "" {
			fmt.Fprintf(os.Stderr, "Demographics: %s\n", demographics)
			fmt.Fprintf(os.Stderr, "Group by:     %v\n", groupBy)
		}
		fmt.Fprintf(os.Stderr, "Workers:      %d\n", workers)
		fmt.Fprintf(os.Stderr, "Output dir:   %s\n", outputDir)
		fmt.Fprintln(os.Stderr)
	}

	// Create and run pipeline
	p := pipeline.New(cfg)

	result, err := p.RunFiles(ctx, recordsPath, demographics)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d records\n", len(result.Records))
		fmt.Fprintf(os.Stderr, "✓ Resolved %d stems\n", len(result.Index))
		fmt.Fprintf(os.Stderr, "✓ Counted %d surviving tokens\n", result.Unigrams.Total())
		if result.LLM != nil {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", result.LLM.Provider, result.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	renderer := pipeline.NewRenderer(outputDir)
	written, err := renderer.RenderAll(p, result)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	for _, path := range written {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}

	return nil
}
