// Package tt provides test helpers shared across duet's test suites.
package tt

import (
	"context"
	"encoding/json"

	"github.com/rickchristie/duet"
)

// -----------------------------------------------------------------------------
// MockGenerator - implements duet.Generator with scripted responses
// -----------------------------------------------------------------------------

// MockGenerator is a configurable mock that implements duet.Generator.
// Responses are consumed in order; past the end of the script it returns a
// deterministic placeholder so loop tests never hang on a missing entry.
type MockGenerator struct {
	name      string
	responses []*duet.GenerationResult
	errors    []error
	callCount int

	// CapturedPrompts stores the prompt passed to each Generate call.
	CapturedPrompts []string

	// CapturedOptions stores the options passed to each Generate call.
	CapturedOptions []duet.GenerateOptions
}

// NewMockGenerator creates a new MockGenerator with the default name
// "test-generator".
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{name: "test-generator"}
}

// WithName sets the generator name, used only for test diagnostics.
func (m *MockGenerator) WithName(name string) *MockGenerator {
	m.name = name
	return m
}

// AddResponse queues a response with the given text and token counts.
func (m *MockGenerator) AddResponse(text string, inputTokens, outputTokens int) *MockGenerator {
	m.responses = append(m.responses, &duet.GenerationResult{
		Text: text,
		Info: &duet.GenerationInfo{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
		},
	})
	return m
}

// AddRawResponse queues a raw GenerationResult. Use this when the test
// needs full control over the result structure (e.g. nil Info).
func (m *MockGenerator) AddRawResponse(res *duet.GenerationResult) *MockGenerator {
	m.responses = append(m.responses, res)
	return m
}

// AddError queues an error for the next call.
func (m *MockGenerator) AddError(err error) *MockGenerator {
	// Pad errors with nils so the error lands at the next unscripted call,
	// then keep responses the same length so the slices stay parallel.
	for len(m.errors) < len(m.responses) {
		m.errors = append(m.errors, nil)
	}
	m.errors = append(m.errors, err)
	for len(m.responses) < len(m.errors) {
		m.responses = append(m.responses, nil)
	}
	return m
}

// CallCount returns the number of times Generate has been called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Generate implements duet.Generator.
func (m *MockGenerator) Generate(
	_ context.Context,
	prompt string,
	opts duet.GenerateOptions,
) (*duet.GenerationResult, error) {
	idx := m.callCount
	m.callCount++

	m.CapturedPrompts = append(m.CapturedPrompts, prompt)
	m.CapturedOptions = append(m.CapturedOptions, opts)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) && m.responses[idx] != nil {
		return m.responses[idx], nil
	}
	return &duet.GenerationResult{
		Text: "placeholder response",
		Info: &duet.GenerationInfo{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

// -----------------------------------------------------------------------------
// Feedback scripting helpers
// -----------------------------------------------------------------------------

// FeedbackJSON marshals a Feedback into the JSON string a scripted
// collaborator would reply with.
func FeedbackJSON(fb duet.Feedback) string {
	b, err := json.Marshal(fb)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// ScoredFeedback builds a minimal collaborator reply: just a score and
// readiness, no findings.
func ScoredFeedback(score float64, ready bool) string {
	return FeedbackJSON(duet.Feedback{Score: score, Ready: ready})
}
