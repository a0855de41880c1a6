package duet

import (
	"context"
	"time"
)

// Generator is the capability both loop roles are written against. A
// Generator turns one prompt into one completion; it carries no conversation
// state between calls.
//
// Implementations MUST surface provider failures (auth, quota, network,
// server-side errors) as a non-nil error. Returning empty or placeholder text
// for a failed call corrupts the loop: the controller would treat it as a
// legitimate draft or critique.
//
// Every Generate call is a suspension point for the session that issued it.
// The controller never retries a failed call; transient-failure retry policy
// belongs to the Generator implementation or the layer beneath it. Repeated
// calls must produce fresh generations, never replay a cached one.
//
// The models package adapts langchaingo-backed providers to this interface.
type Generator interface {
	// Generate produces a completion for prompt using the given options.
	// The returned result is never nil when error is nil.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*GenerationResult, error)
}

// GenerateOptions selects the model and sampling behavior for one call.
type GenerateOptions struct {
	// Model is the provider-specific model id (see const.go for common ids).
	// Required; Generators should reject an empty model id.
	Model string

	// Temperature is the sampling temperature. The convergence loop sets
	// this from its schedule: high for the initial draft, cooling toward the
	// final rounds.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int

	// SystemPrompt, when non-empty, is sent as the system message. The loop
	// uses it for the standing role instructions so the task prompt stays
	// focused on the current round.
	SystemPrompt string
}

// GenerationResult is the outcome of a single Generate call.
type GenerationResult struct {
	// Text is the raw completion text.
	Text string

	// Info carries normalized usage and timing metadata. May be nil when
	// the backing provider reports nothing.
	Info *GenerationInfo
}

// GenerationInfo is normalized metadata about one generation.
//
// Token counts are best-effort placeholders: providers report usage under
// different keys and the models package maps what it finds onto these
// fields, leaving the rest zero. Zero means "not reported", not "zero
// tokens". Duet does no cost accounting with them; they exist so hooks and
// stats have something consistent to read.
type GenerationInfo struct {
	// InputTokens is the prompt-side token count.
	InputTokens int

	// OutputTokens is the completion-side token count.
	OutputTokens int

	// TotalTokens is the provider-reported total, when present. Not
	// guaranteed to equal InputTokens + OutputTokens.
	TotalTokens int

	// Duration is the wall-clock time of the provider call.
	Duration time.Duration

	// Raw preserves the provider's unnormalized generation info for
	// anything the fields above do not capture.
	Raw map[string]any
}
