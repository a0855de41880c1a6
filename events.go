package duet

import "time"

// Role says which side of the loop a generator call served.
type Role string

const (
	RoleWriter       Role = "writer"
	RoleCollaborator Role = "collaborator"
)

// -----------------------------------------------------------------------------
// Hook Event Interface
// -----------------------------------------------------------------------------

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// -----------------------------------------------------------------------------
// Session Events
// -----------------------------------------------------------------------------

// BeforeSessionEvent is emitted once, before the initial draft is generated.
type BeforeSessionEvent struct {
	// Idea is the user intent the session runs on.
	Idea string

	// MaxRounds and ScoreThreshold are the effective values after merging
	// session inputs with the template policy.
	MaxRounds      int
	ScoreThreshold float64
}

func (BeforeSessionEvent) hookEvent() {}

// AfterSessionEvent is emitted once, after the session produced its result.
// It fires on every path out of the loop, including error fallback.
type AfterSessionEvent struct {
	// Result is the finished session result.
	Result *ConvergenceResult
}

func (AfterSessionEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Round Events
// -----------------------------------------------------------------------------

// BeforeRoundEvent is emitted before each feedback step.
type BeforeRoundEvent struct {
	// RoundNum is the round about to run (1-indexed).
	RoundNum int

	// Draft is the draft the Collaborator is about to critique.
	Draft string
}

func (BeforeRoundEvent) hookEvent() {}

// AfterRoundEvent is emitted after a round was appended and its stop
// evaluation ran.
type AfterRoundEvent struct {
	// Round is the appended round record.
	Round *Round

	// Stopped reports whether the stop evaluation ended the session on this
	// round; Reason is only meaningful when Stopped is true.
	Stopped bool
	Reason  StopReason
}

func (AfterRoundEvent) hookEvent() {}

// DraftDiffEvent is emitted after a revision that changed the draft,
// carrying a unified diff from the draft the round critiqued to the
// revised draft. Revisions that return the draft unchanged emit nothing.
type DraftDiffEvent struct {
	// RoundNum is the round whose revision produced the new draft.
	RoundNum int

	// Diff is a unified diff between the two drafts.
	Diff string
}

func (DraftDiffEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Generator Call Events
// -----------------------------------------------------------------------------

// BeforeGeneratorCallEvent is emitted before each Writer or Collaborator
// call, including repair-pipeline regenerations.
type BeforeGeneratorCallEvent struct {
	// Role is which side of the loop is calling.
	Role Role

	// Model is the bound model id.
	Model string

	// Prompt is the full prompt being sent.
	Prompt string
}

func (BeforeGeneratorCallEvent) hookEvent() {}

// AfterGeneratorCallEvent is emitted after each generator call returns.
type AfterGeneratorCallEvent struct {
	// Role is which side of the loop called.
	Role Role

	// Model is the bound model id.
	Model string

	// Result is the generation outcome; nil when Err is non-nil.
	Result *GenerationResult

	// Err is the call failure, if any.
	Err error

	// Duration is how long the call took.
	Duration time.Duration
}

func (AfterGeneratorCallEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Error Events
// -----------------------------------------------------------------------------

// ErrorEvent is emitted when an error is about to collapse the session to
// StopErrorFallback.
type ErrorEvent struct {
	// RoundNum is the round during which the error occurred; 0 means before
	// round 1 (initial draft or input validation).
	RoundNum int

	// Err is the error.
	Err error
}

func (ErrorEvent) hookEvent() {}
