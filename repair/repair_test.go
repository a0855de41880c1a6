package repair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/schema"
)

var feedbackSchema = schema.MustCompile(schema.For[duet.Feedback]())

// script returns a GenerateFunc that replays responses in order and a
// counter of how many generations were asked for.
func script(responses ...string) (GenerateFunc, *int) {
	calls := 0
	gen := func(ctx context.Context) (string, error) {
		if calls >= len(responses) {
			return "", fmt.Errorf("script exhausted after %d calls", calls)
		}
		resp := responses[calls]
		calls++
		return resp, nil
	}
	return gen, &calls
}

func TestProduce_FencedJSONFirstAttempt(t *testing.T) {
	gen, calls := script("```json\n{\"score\": 8, \"ready\": false, \"mustFix\": [\"shorten intro\"]}\n```")

	fb, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 2)
	require.NoError(t, err)

	assert.Equal(t, 8.0, fb.Score)
	assert.False(t, fb.Ready)
	assert.Equal(t, []string{"shorten intro"}, fb.MustFix)
	assert.Equal(t, 1, *calls, "valid first attempt must not retry")
}

func TestProduce_ProseWrappedJSON(t *testing.T) {
	gen, calls := script(`Here's my honest take on the draft.

{"score": 6.5, "ready": false, "questions": ["Who is the audience?"]}

Happy to elaborate.`)

	fb, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 2)
	require.NoError(t, err)

	assert.Equal(t, 6.5, fb.Score)
	assert.Equal(t, []string{"Who is the audience?"}, fb.Questions)
	assert.Equal(t, 1, *calls)
}

func TestProduce_RoundTrip(t *testing.T) {
	// Any schema-valid payload wrapped in a fence must come back equal.
	want := duet.Feedback{
		Score:         9,
		Ready:         true,
		ShouldImprove: []string{"vary sentence length"},
		Patches: []duet.Patch{
			{Path: "subject", Operation: duet.PatchReplace, Content: "V2 is live"},
		},
	}
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	gen, _ := script("```json\n" + string(payload) + "\n```")

	got, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProduce_RetriesWithFreshGeneration(t *testing.T) {
	gen, calls := script(
		"I'd rate this a solid 7 out of 10!",
		`{"score": 7, "ready": false}`,
	)

	fb, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 2)
	require.NoError(t, err)

	assert.Equal(t, 7.0, fb.Score)
	assert.Equal(t, 2, *calls, "malformed output must trigger a regeneration")
}

func TestProduce_SchemaInvalidRetries(t *testing.T) {
	// Parses as JSON but fails validation (score is a string), then a valid
	// response on the second attempt.
	gen, calls := script(
		`{"score": "eight", "ready": false}`,
		`{"score": 8, "ready": false}`,
	)

	fb, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 1)
	require.NoError(t, err)
	assert.Equal(t, 8.0, fb.Score)
	assert.Equal(t, 2, *calls)
}

func TestProduce_Exhaustion(t *testing.T) {
	gen, calls := script(
		"no json here",
		"still no json",
		"definitely prose",
	)

	_, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 2)
	require.Error(t, err)

	var serr *SchemaValidationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Attempts)
	assert.ErrorIs(t, err, duet.ErrInvalidJSON)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, *calls)
}

func TestProduce_ExhaustionKeepsLastValidationError(t *testing.T) {
	gen, _ := script(
		`{"score": "high", "ready": false}`,
		`{"ready": false}`,
	)

	_, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 1)
	require.Error(t, err)

	var serr *SchemaValidationError
	require.ErrorAs(t, err, &serr)
	var verr *schema.ValidationError
	assert.ErrorAs(t, serr.LastErr, &verr)
}

func TestProduce_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("quota exceeded")
	calls := 0
	gen := func(ctx context.Context) (string, error) {
		calls++
		return "", boom
	}

	_, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, 5)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "generator failures are not retried here")
}

func TestProduce_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen, calls := script(`{"score": 8, "ready": true}`)
	_, err := Produce[duet.Feedback](ctx, gen, feedbackSchema, 2)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, *calls)
}

func TestProduce_NegativeRetriesMeansOneAttempt(t *testing.T) {
	gen, calls := script("garbage")

	_, err := Produce[duet.Feedback](context.Background(), gen, feedbackSchema, -3)
	var serr *SchemaValidationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Attempts)
	assert.Equal(t, 1, *calls)
}

func TestProduce_NilSchemaParsesOnly(t *testing.T) {
	type tiny struct {
		Name string `json:"name"`
	}
	gen, _ := script(`{"name": "x"}`)

	got, err := Produce[tiny](context.Background(), gen, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}
