// Package models provides duet.Generator implementations backed by hosted
// LLM providers, built on LangChainGo.
//
// [LCGWrapper] adapts any llms.Model to the Generator contract and
// normalizes token usage across providers, which report usage under
// different keys. Constructors cover the common providers:
//
//   - [NewOpenAI] - OpenAI's API
//   - [NewAnthropic] - Anthropic's API
//   - [NewOpenAICompatible] - any OpenAI-compatible endpoint (xAI, Ollama,
//     vLLM, and similar)
//   - [NewGitHubModels] - the GitHub Models API, an OpenAI-compatible
//     endpoint with GitHub-specific headers
//
// The model is chosen per call through duet.GenerateOptions.Model, so one
// client serves every model its provider hosts:
//
//	gen, err := models.NewOpenAI(os.Getenv("OPENAI_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, "Write a haiku about Go.", duet.GenerateOptions{
//	    Model:       duet.ModelOpenAIGPT41Mini,
//	    Temperature: 0.7,
//	})
//
// [Registry] maps stable names ("openai", "anthropic") to Generator
// instances so session inputs can reference generators by name.
package models
