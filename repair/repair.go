package repair

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/schema"
)

// GenerateFunc produces one fresh completion. Produce calls it once per
// attempt; implementations must not cache or replay.
type GenerateFunc func(ctx context.Context) (string, error)

// SchemaValidationError means every attempt failed to yield a schema-valid
// value. LastErr is the final attempt's parse or validation error.
type SchemaValidationError struct {
	// Attempts is the total number of generations tried (maxRetries + 1).
	Attempts int

	// LastErr is the last attempt's error.
	LastErr error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("no schema-valid response after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.LastErr
}

// Produce obtains a value of type T from gen, validated against sch. It
// makes at most maxRetries+1 generation attempts (negative maxRetries counts
// as 0); each retry is a fresh generation. A nil sch skips schema validation
// and only requires the text to parse into T.
//
// Error cases:
//   - gen fails: that error returns immediately, no retry. Transient
//     provider failures are not this package's concern.
//   - ctx is done between attempts: ctx.Err() returns immediately.
//   - all attempts fail to parse or validate: *SchemaValidationError.
func Produce[T any](ctx context.Context, gen GenerateFunc, sch *schema.Schema, maxRetries int) (T, error) {
	var zero T

	if maxRetries < 0 {
		maxRetries = 0
	}
	attempts := maxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		raw, err := gen(ctx)
		if err != nil {
			return zero, err
		}

		value, err := decode[T](raw, sch)
		if err == nil {
			return value, nil
		}
		lastErr = err
	}

	return zero, &SchemaValidationError{Attempts: attempts, LastErr: lastErr}
}

// decode runs the clean-parse-validate steps for one attempt: fence strip,
// direct parse, then payload extraction as the fallback.
func decode[T any](raw string, sch *schema.Schema) (T, error) {
	cleaned := StripFence(raw)

	value, directErr := parseAndValidate[T](cleaned, sch)
	if directErr == nil {
		return value, nil
	}

	payload, ok := ExtractPayload(cleaned)
	if !ok {
		var zero T
		return zero, directErr
	}

	return parseAndValidate[T](payload, sch)
}

// parseAndValidate parses text as JSON, validates the decoded form against
// sch, then unmarshals into T.
func parseAndValidate[T any](text string, sch *schema.Schema) (T, error) {
	var zero T

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return zero, fmt.Errorf("%w: %s", duet.ErrInvalidJSON, err.Error())
	}

	if err := sch.Validate(decoded); err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return zero, fmt.Errorf("%w: %s", duet.ErrInvalidJSON, err.Error())
	}
	return out, nil
}
