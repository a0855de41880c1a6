package convergence

import (
	"github.com/rickchristie/duet"
)

// StopState is the evaluator's carry-over between rounds. The zero value is
// the correct starting state: LastScore 0 means the first round is compared
// against 0, so a first-round score of 0 already counts as stagnation.
type StopState struct {
	// LastScore is the score of the previous round, 0 before any round.
	LastScore float64

	// StallCount is the number of consecutive rounds with non-increasing
	// score or no material improvements.
	StallCount int
}

// StopDecision is the outcome of evaluating one round of feedback.
type StopDecision struct {
	// Stop is true when the session should end now, with no revision of
	// the current draft.
	Stop bool

	// Reason is set only when Stop is true.
	Reason duet.StopReason

	// Next is the state to carry into the next round's evaluation.
	Next StopState
}

// stallLimit is how many consecutive stagnant rounds end the session.
const stallLimit = 2

// EvaluateStop decides whether the session ends after this round's feedback.
// The checks run in strict precedence order:
//
//  1. A valid ExplicitStop tag wins over everything, including a score
//     above the threshold. An unrecognized tag is ignored entirely.
//  2. Score at or above the threshold with Ready set stops with
//     duet.StopThresholdMet. Score alone is not enough: a high score on a
//     draft the collaborator does not call ready keeps the loop going.
//  3. A score that failed to increase, or a round flagged
//     NoMaterialImprovements, counts as a stall. Stalls accumulate across
//     consecutive rounds and reset to zero on any improvement.
//  4. Two consecutive stalls, or a single NoMaterialImprovements flag,
//     stop with duet.StopNoImprovement.
//
// When none of those fire, the decision is to continue and Next carries the
// round's score forward as the new comparison point.
func EvaluateStop(fb *duet.Feedback, state StopState, threshold float64) StopDecision {
	if reason, ok := duet.ParseStopReason(fb.ExplicitStop); ok {
		return StopDecision{Stop: true, Reason: reason, Next: state}
	}

	if fb.Score >= threshold && fb.Ready {
		return StopDecision{Stop: true, Reason: duet.StopThresholdMet, Next: state}
	}

	stall := 0
	if fb.Score <= state.LastScore || fb.NoMaterialImprovements {
		stall = state.StallCount + 1
	}
	next := StopState{LastScore: fb.Score, StallCount: stall}

	if stall >= stallLimit || fb.NoMaterialImprovements {
		return StopDecision{Stop: true, Reason: duet.StopNoImprovement, Next: next}
	}

	return StopDecision{Next: next}
}
