package duet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
	opts   GenerateOptions
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, opts GenerateOptions) (*GenerationResult, error) {
	g.prompt = prompt
	g.opts = opts
	if g.err != nil {
		return nil, g.err
	}
	return &GenerationResult{Text: g.text}, nil
}

func TestGenerate_ReturnsCompletionText(t *testing.T) {
	gen := &stubGenerator{text: "Hello, World!"}
	opts := GenerateOptions{Model: "gpt-4.1-mini", Temperature: 0.2}

	got, err := Generate(context.Background(), gen, "Say hello.", opts)

	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", got)
	assert.Equal(t, "Say hello.", gen.prompt)
	assert.Equal(t, opts, gen.opts)
}

func TestGenerate_PropagatesError(t *testing.T) {
	upstream := errors.New("quota exceeded")
	gen := &stubGenerator{err: upstream}

	got, err := Generate(context.Background(), gen, "Write a haiku.", GenerateOptions{Model: "gpt-4.1-mini"})

	assert.ErrorIs(t, err, upstream)
	assert.Empty(t, got)
}
