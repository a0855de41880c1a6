package models

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAI creates a Generator backed by the OpenAI API. The model is
// selected per call via duet.GenerateOptions.Model.
//
// Additional openai.Option values customize the underlying LangChainGo
// client (organization, API version, HTTP client, and so on).
func NewOpenAI(apiKey string, opts ...openai.Option) (*LCGWrapper, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	allOpts := append([]openai.Option{openai.WithToken(apiKey)}, opts...)
	llm, err := openai.New(allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLCGWrapper(llm), nil
}
