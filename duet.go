package duet

import "context"

// Generate is a convenience for one-off calls against a Generator outside
// the loop, returning just the completion text.
func Generate(ctx context.Context, g Generator, prompt string, opts GenerateOptions) (string, error) {
	res, err := g.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
