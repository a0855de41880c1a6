package models

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms/anthropic"
)

// NewAnthropic creates a Generator backed by the Anthropic API. The model
// is selected per call via duet.GenerateOptions.Model.
func NewAnthropic(apiKey string, opts ...anthropic.Option) (*LCGWrapper, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	allOpts := append([]anthropic.Option{anthropic.WithToken(apiKey)}, opts...)
	llm, err := anthropic.New(allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
	}

	return NewLCGWrapper(llm), nil
}
