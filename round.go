package duet

import "time"

// StopReason says why a convergence session ended. The string values are
// canonical tags: they appear in results, in logs, and in the guidance shown
// to the Collaborator for explicit stops, so they must not change.
type StopReason string

const (
	// StopThresholdMet means the Collaborator's score reached the session's
	// threshold and the draft was marked ready.
	StopThresholdMet StopReason = "THRESHOLD_MET"

	// StopNoImprovement means the loop stalled: consecutive rounds without
	// score improvement, or the Collaborator reported that no material
	// improvements remain.
	StopNoImprovement StopReason = "NO_IMPROVEMENT"

	// StopMaxRounds means the round budget was exhausted before any other
	// condition fired.
	StopMaxRounds StopReason = "MAX_ROUNDS"

	// StopErrorFallback means something failed mid-session (generator
	// error, schema repair exhaustion, cancellation) and the result carries
	// the best draft known at failure time.
	StopErrorFallback StopReason = "ERROR_FALLBACK"
)

// ParseStopReason maps a canonical tag to its StopReason. The boolean is
// false for anything that is not one of the four canonical tags; callers use
// this to ignore invalid explicit-stop requests from the Collaborator.
func ParseStopReason(tag string) (StopReason, bool) {
	switch StopReason(tag) {
	case StopThresholdMet, StopNoImprovement, StopMaxRounds, StopErrorFallback:
		return StopReason(tag), true
	}
	return "", false
}

// Round is one completed feedback cycle: the draft the Collaborator
// critiqued, the feedback it returned, and how long the cycle took.
//
// Rounds are append-only. The controller appends one Round per feedback step
// and never mutates an appended Round; revisions change the NEXT round's
// Draft, not this one. The initial draft (round 0) is not a Round: it has no
// feedback and lives in [ConvergenceResult.InitialDraft].
type Round struct {
	// RoundNum is 1-based and monotonic within a session.
	RoundNum int

	// Draft is the full draft text the feedback in this round refers to.
	Draft string

	// Feedback is the Collaborator's structured critique of Draft.
	Feedback *Feedback

	// TimeMs is the wall-clock duration of the round in milliseconds,
	// covering the feedback call and, when one happened, the revision.
	// Never negative.
	TimeMs int64
}

// ConvergenceResult is everything one session produced. It is owned by the
// invocation that created it and has no life beyond that call; duet keeps no
// cross-session state.
type ConvergenceResult struct {
	// Final is the draft produced by the most recently completed writing
	// step. This holds on failure paths too: whatever draft existed when
	// the session stopped is what Final carries.
	Final string

	// StopReason says why the session ended.
	StopReason StopReason

	// Rounds are the completed feedback cycles, in order. Always
	// len(Rounds) <= the session's effective max rounds.
	Rounds []*Round

	// InitialDraft is round 0: the Writer's first draft, before any
	// feedback existed.
	InitialDraft string

	// UnresolvedQuestions are the Collaborator's questions accumulated
	// across all rounds, deduplicated by exact text, in first-seen order.
	// The set only grows; nothing detects that a question was answered.
	UnresolvedQuestions []string

	// Duration is the wall-clock time of the whole session.
	Duration time.Duration

	// Stats are the session's counters (rounds, calls per role, repair
	// retries, token placeholders).
	Stats *SessionStats

	// Err is the failure that collapsed the session when StopReason is
	// StopErrorFallback, nil otherwise. It is diagnostic only: Run-style
	// entry points still return the result, never a bare error.
	Err error
}
