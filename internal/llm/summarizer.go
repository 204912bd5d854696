package llm

import (
	"context"
	"fmt"

	"github.com/pmatveev/stemma/internal/model"
)

// Summarizer turns frequency tables into an optional narrative summary.
// It runs after all counting is finished and its output never feeds back
// into the statistics.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces a narrative for the given statistics. It returns
// (nil, nil) when the summarizer is disabled, and an error when the provider
// is configured but unreachable; the caller decides whether that warrants
// failing the whole run.
func (s *Summarizer) GenerateSummary(ctx context.Context, recordCount int, topWords, topPhrases []model.GramCount) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("provider %s is not available", s.provider.Name())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		RecordCount: recordCount,
		TopWords:    topWords,
		TopPhrases:  topPhrases,
		Model:       s.config.Model,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &model.LLMSummary{
		Provider: s.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Summary,
	}, nil
}
