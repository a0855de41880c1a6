package convergence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/duet"
)

func TestEvaluateStop(t *testing.T) {
	type input struct {
		fb        duet.Feedback
		state     StopState
		threshold float64
	}
	type expected struct {
		stop      bool
		reason    duet.StopReason
		nextLast  float64
		nextStall int
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "threshold met and ready stops",
			input: input{
				fb:        duet.Feedback{Score: 9, Ready: true},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{
				stop:   true,
				reason: duet.StopThresholdMet,
				// State is untouched on a stop decision.
				nextLast: 5,
			},
		},
		{
			name: "score exactly at threshold stops",
			input: input{
				fb:        duet.Feedback{Score: 8.5, Ready: true},
				state:     StopState{LastScore: 8},
				threshold: 8.5,
			},
			expected: expected{stop: true, reason: duet.StopThresholdMet, nextLast: 8},
		},
		{
			name: "high score without ready continues",
			input: input{
				fb:        duet.Feedback{Score: 9, Ready: false},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{stop: false, nextLast: 9, nextStall: 0},
		},
		{
			name: "ready below threshold continues",
			input: input{
				fb:        duet.Feedback{Score: 7, Ready: true},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{stop: false, nextLast: 7, nextStall: 0},
		},
		{
			name: "improvement resets stall count",
			input: input{
				fb:        duet.Feedback{Score: 6},
				state:     StopState{LastScore: 5, StallCount: 1},
				threshold: 8.5,
			},
			expected: expected{stop: false, nextLast: 6, nextStall: 0},
		},
		{
			name: "non-increasing score stalls once and continues",
			input: input{
				fb:        duet.Feedback{Score: 5},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{stop: false, nextLast: 5, nextStall: 1},
		},
		{
			name: "second consecutive stall stops",
			input: input{
				fb:        duet.Feedback{Score: 5},
				state:     StopState{LastScore: 5, StallCount: 1},
				threshold: 8.5,
			},
			expected: expected{
				stop:      true,
				reason:    duet.StopNoImprovement,
				nextLast:  5,
				nextStall: 2,
			},
		},
		{
			name: "score drop counts as stall",
			input: input{
				fb:        duet.Feedback{Score: 4},
				state:     StopState{LastScore: 5, StallCount: 1},
				threshold: 8.5,
			},
			expected: expected{
				stop:      true,
				reason:    duet.StopNoImprovement,
				nextLast:  4,
				nextStall: 2,
			},
		},
		{
			name: "no material improvements stops immediately even with rising score",
			input: input{
				fb:        duet.Feedback{Score: 7, NoMaterialImprovements: true},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{
				stop:      true,
				reason:    duet.StopNoImprovement,
				nextLast:  7,
				nextStall: 1,
			},
		},
		{
			name: "explicit stop wins over met threshold",
			input: input{
				fb: duet.Feedback{
					Score:        9,
					Ready:        true,
					ExplicitStop: "NO_IMPROVEMENT",
				},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{
				stop:     true,
				reason:   duet.StopNoImprovement,
				nextLast: 5,
			},
		},
		{
			name: "explicit stop with other valid tag",
			input: input{
				fb:        duet.Feedback{Score: 3, ExplicitStop: "MAX_ROUNDS"},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{stop: true, reason: duet.StopMaxRounds, nextLast: 5},
		},
		{
			name: "unrecognized explicit stop tag is ignored",
			input: input{
				fb: duet.Feedback{
					Score:        9,
					Ready:        true,
					ExplicitStop: "BECAUSE_I_SAID_SO",
				},
				state:     StopState{LastScore: 5},
				threshold: 8.5,
			},
			expected: expected{stop: true, reason: duet.StopThresholdMet, nextLast: 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := EvaluateStop(&tc.input.fb, tc.input.state, tc.input.threshold)

			assert.Equal(t, tc.expected.stop, d.Stop)
			if tc.expected.stop {
				assert.Equal(t, tc.expected.reason, d.Reason)
			}
			assert.Equal(t, tc.expected.nextLast, d.Next.LastScore)
			assert.Equal(t, tc.expected.nextStall, d.Next.StallCount)
		})
	}
}

// A first round scored 0 compares against the initial LastScore of 0 and
// already counts as a stall. Two zero-scored rounds end the session.
func TestEvaluateStop_FirstRoundZeroScoreStalls(t *testing.T) {
	first := EvaluateStop(&duet.Feedback{Score: 0}, StopState{}, 8.5)
	assert.False(t, first.Stop)
	assert.Equal(t, 1, first.Next.StallCount)

	second := EvaluateStop(&duet.Feedback{Score: 0}, first.Next, 8.5)
	assert.True(t, second.Stop)
	assert.Equal(t, duet.StopNoImprovement, second.Reason)
}

// Three rounds at the same mediocre score: the first establishes the
// baseline, the next two stall, and the third round stops the session.
func TestEvaluateStop_FlatScoresStopAfterThreeRounds(t *testing.T) {
	state := StopState{}
	scores := []float64{5, 5, 5}
	wantStall := []int{0, 1, 2}

	for i, score := range scores {
		d := EvaluateStop(&duet.Feedback{Score: score}, state, 8.5)
		assert.Equal(t, wantStall[i], d.Next.StallCount, "round %d", i+1)

		if i < 2 {
			assert.False(t, d.Stop, "round %d", i+1)
		} else {
			assert.True(t, d.Stop, "round %d", i+1)
			assert.Equal(t, duet.StopNoImprovement, d.Reason)
		}
		state = d.Next
	}
}
