package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// GitHubModelsBaseURL is the base URL for the GitHub Models API.
	// The OpenAI-compatible chat completions endpoint is at
	// {baseURL}/chat/completions.
	GitHubModelsBaseURL = "https://models.github.ai/inference"
)

// NewOpenAICompatible creates a Generator backed by any OpenAI-compatible
// endpoint: xAI, Ollama, vLLM, LM Studio, and most inference gateways.
//
// Example:
//
//	gen, err := models.NewOpenAICompatible(
//	    "https://api.x.ai/v1",
//	    os.Getenv("XAI_API_KEY"),
//	)
func NewOpenAICompatible(baseURL, apiKey string, opts ...openai.Option) (*LCGWrapper, error) {
	if baseURL == "" {
		return nil, errors.New("base url is required")
	}

	baseOpts := []openai.Option{
		openai.WithBaseURL(baseURL),
		openai.WithToken(apiKey),
	}

	// Caller options come after so they can override defaults.
	allOpts := append(baseOpts, opts...)

	llm, err := openai.New(allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI-compatible client: %w", err)
	}

	return NewLCGWrapper(llm), nil
}

// githubHeaderTransport wraps an http.RoundTripper and injects
// GitHub-specific headers into every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(
	req *http.Request,
) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModels creates a Generator backed by the GitHub Models API. This
// lets you use models available through a GitHub Copilot subscription (or
// the free tier with lower rate limits).
//
// The token must be a GitHub Personal Access Token (fine-grained) with the
// models:read permission under Account permissions.
//
// Model ids use the publisher/model format, selected per call:
//
//	duet.ModelGitHubGPT41       // "openai/gpt-4.1"
//	duet.ModelGitHubLlama33_70B // "meta/llama-3.3-70b-instruct"
func NewGitHubModels(token string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, errors.New(
			"github token is required: " +
				"create a fine-grained PAT with models:read " +
				"at https://github.com/settings/personal-access-tokens/new",
		)
	}

	baseOpts := []openai.Option{
		openai.WithHTTPClient(&githubHeaderTransport{
			base: http.DefaultTransport,
		}),
	}
	allOpts := append(baseOpts, opts...)

	return NewOpenAICompatible(GitHubModelsBaseURL, token, allOpts...)
}
