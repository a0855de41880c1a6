package models

import (
	"context"
	"errors"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/duet"
)

// LCGWrapper wraps an llms.Model and implements duet.Generator. It builds
// the chat messages from the prompt and system prompt, maps
// duet.GenerateOptions onto LangChainGo call options, and normalizes token
// usage across providers.
//
// Example:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	gen := models.NewLCGWrapper(llm)
//	result, err := gen.Generate(ctx, prompt, duet.GenerateOptions{
//	    Model:       duet.ModelOpenAIGPT41,
//	    Temperature: 0.7,
//	})
type LCGWrapper struct {
	model llms.Model
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{model: model}
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// Generate implements duet.Generator.
func (m *LCGWrapper) Generate(
	ctx context.Context,
	prompt string,
	opts duet.GenerateOptions,
) (*duet.GenerationResult, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, opts.SystemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	callOpts := make([]llms.CallOption, 0, 3)
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	start := time.Now()
	response, err := m.model.GenerateContent(ctx, messages, callOpts...)
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}
	if response == nil || len(response.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	return convertResponse(response, duration), nil
}

// convertResponse maps an llms.ContentResponse onto a GenerationResult with
// normalized token counts.
func convertResponse(response *llms.ContentResponse, duration time.Duration) *duet.GenerationResult {
	result := &duet.GenerationResult{
		Text: response.Choices[0].Content,
		Info: &duet.GenerationInfo{Duration: duration},
	}

	rawInfo := response.Choices[0].GenerationInfo
	if rawInfo != nil {
		result.Info.Raw = rawInfo
		result.Info.InputTokens = extractInputTokens(rawInfo)
		result.Info.OutputTokens = extractOutputTokens(rawInfo)
		result.Info.TotalTokens = extractTotalTokens(
			rawInfo,
			result.Info.InputTokens,
			result.Info.OutputTokens,
		)
	}

	return result
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractOutputTokens extracts output/completion token count from
// GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	// Compute if not available
	return input + output
}

// getIntFromMap extracts an int value from a map, handling various numeric
// types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements duet.Generator.
var _ duet.Generator = (*LCGWrapper)(nil)
