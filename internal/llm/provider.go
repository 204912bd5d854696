package llm

import (
	"context"
	"fmt"

	"github.com/pmatveev/stemma/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of the frequency tables
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization. Only the
// aggregate statistics are sent, never raw responses: respondents' free text
// stays local.
type SummarizeRequest struct {
	// RecordCount is the number of responses in the corpus
	RecordCount int

	// TopWords are the highest-frequency unigrams
	TopWords []model.GramCount

	// TopPhrases are the highest-frequency bigrams
	TopPhrases []model.GramCount

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., a local Ollama server)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 500,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is
// restricted to the supplied statistics and must not bring in outside facts.
func BuildPrompt(req SummarizeRequest) string {
	prompt := fmt.Sprintf(`You are summarizing word-frequency statistics computed from %d free-text survey responses.

RULES:
1. Describe ONLY the terms and counts listed below. Do not speculate about terms that are not listed.
2. Do not make claims about individual respondents; the statistics are corpus-wide.
3. If the counts are too small to support a theme, say so explicitly.

Top words:
%s
Top phrases:
%s`, req.RecordCount, formatCounts(req.TopWords), formatCounts(req.TopPhrases))

	prompt += "\nProvide a 3-4 sentence summary of the dominant themes suggested by these frequencies."

	return prompt
}

func formatCounts(rows []model.GramCount) string {
	if len(rows) == 0 {
		return "(none)\n"
	}
	result := ""
	for i, row := range rows {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("... and %d more\n", len(rows)-20)
			break
		}
		result += fmt.Sprintf("- %q: %d\n", row.Gram, row.Count)
	}
	return result
}
