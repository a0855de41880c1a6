package convergence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperature(t *testing.T) {
	type input struct {
		roundIndex int
		maxRounds  int
	}

	tests := []struct {
		name     string
		input    input
		expected float64
	}{
		{
			name:     "initial draft gets the exploratory temperature",
			input:    input{roundIndex: 0, maxRounds: 4},
			expected: 0.7,
		},
		{
			name:     "first revision sits just under the mid value",
			input:    input{roundIndex: 1, maxRounds: 4},
			expected: 0.4875,
		},
		{
			name:     "halfway",
			input:    input{roundIndex: 2, maxRounds: 4},
			expected: 0.425,
		},
		{
			name:     "penultimate round",
			input:    input{roundIndex: 3, maxRounds: 4},
			expected: 0.3625,
		},
		{
			name:     "final round reaches the floor",
			input:    input{roundIndex: 4, maxRounds: 4},
			expected: 0.3,
		},
		{
			name:     "past max rounds clamps to the floor",
			input:    input{roundIndex: 5, maxRounds: 4},
			expected: 0.3,
		},
		{
			name:     "single round session revises at the floor",
			input:    input{roundIndex: 1, maxRounds: 1},
			expected: 0.3,
		},
		{
			name:     "zero max rounds guards the division",
			input:    input{roundIndex: 1, maxRounds: 0},
			expected: 0.3,
		},
		{
			name:     "negative index treated as initial draft",
			input:    input{roundIndex: -1, maxRounds: 4},
			expected: 0.7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Temperature(tc.input.roundIndex, tc.input.maxRounds)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

// Later revisions never sample hotter than earlier ones.
func TestTemperature_NonIncreasingAcrossRounds(t *testing.T) {
	const maxRounds = 6
	prev := Temperature(1, maxRounds)
	for i := 2; i <= maxRounds+2; i++ {
		cur := Temperature(i, maxRounds)
		assert.LessOrEqual(t, cur, prev, "round index %d", i)
		prev = cur
	}
}
