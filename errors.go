package duet

import "errors"

// Sentinel errors for the input taxonomy. The service boundary returns these
// (wrapped with detail) before any round runs; match with errors.Is.
var (
	// ErrEmptyIdea means SessionInputs.Idea was empty or whitespace.
	ErrEmptyIdea = errors.New("session idea is empty")

	// ErrInvalidTemplate means a template failed to parse or validate.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrUnknownTemplate means SessionInputs.TemplateID matched nothing in
	// the store.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrUnknownGenerator means a binding referenced a generator name the
	// registry does not know.
	ErrUnknownGenerator = errors.New("unknown generator")

	// ErrNoModel means a binding did not name a model id.
	ErrNoModel = errors.New("binding has no model id")

	// ErrRateLimited means the admitter rejected the caller. No session ran.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidJSON wraps parse failures inside the repair pipeline.
	ErrInvalidJSON = errors.New("invalid JSON")
)
