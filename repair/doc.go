// Package repair forces free-form model output into a schema-validated
// value, with a bounded number of fresh generations.
//
// Models asked for JSON return JSON wrapped in prose, code fences, or both.
// Each attempt runs generate -> clean -> parse -> validate: strip one code
// fence (preferring a json-tagged fence), try a direct parse against the
// target type and schema, and if that fails slice from the first opening
// brace or bracket to the last closing one of the same kind and parse the
// slice. When an attempt fails entirely the model is asked AGAIN, because
// malformed output is a generation-quality problem; re-parsing the same text
// harder cannot fix it.
//
//	fb, err := repair.Produce[duet.Feedback](ctx, func(ctx context.Context) (string, error) {
//	    return duet.Generate(ctx, gen, prompt, opts)
//	}, feedbackSchema, 2)
//
// After maxRetries+1 failed attempts Produce returns a
// *SchemaValidationError wrapping the last attempt's error. Generator
// failures are not retried here; they propagate immediately so the caller
// can apply its own failure policy.
package repair
