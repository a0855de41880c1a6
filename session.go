package duet

import (
	"strings"
	"time"
)

// SessionInputs is everything a caller supplies to start one convergence
// session. Idea is the only hard requirement; MaxRounds and ScoreThreshold
// fall back to the template's policy via [Effective] when unset.
type SessionInputs struct {
	// Idea is the user intent the Writer drafts from. Required.
	Idea string

	// Context is optional supporting detail (audience, tone, constraints).
	Context string

	// TemplateID resolves through a [Store] at the service boundary.
	// Ignored by a controller that was constructed with a Template.
	TemplateID string

	// Writer and Collaborator bind each role to a generator and model.
	Writer       Binding
	Collaborator Binding

	// MaxRounds caps feedback/revision rounds. Zero or negative takes the
	// template policy's value.
	MaxRounds int

	// ScoreThreshold is the score that, with ready=true, stops the session
	// with StopThresholdMet. Zero or negative takes the template policy's
	// value.
	ScoreThreshold float64

	// Client identifies the caller for admission control at the service
	// boundary. The core loop ignores it.
	Client string
}

// Validate reports whether the inputs can start a session at all. Binding
// and template resolution is the service boundary's concern; this checks
// only what the core loop itself requires.
func (in SessionInputs) Validate() error {
	if strings.TrimSpace(in.Idea) == "" {
		return ErrEmptyIdea
	}
	return nil
}

// Binding names the generator and model one role runs on. Generator is a
// registry reference ("openai", "anthropic"); it is empty when the caller
// wires Generator values directly into a controller.
type Binding struct {
	Generator string
	Model     string
}

// Effective merges a requested numeric setting with its template default:
// the requested value wins when positive, otherwise the default applies.
// Merge precedence lives here, in one testable place, instead of inline
// fallbacks scattered through the loop.
func Effective[T int | float64](requested, templateDefault T) T {
	if requested > 0 {
		return requested
	}
	return templateDefault
}

// Session is the per-invocation context handed to hooks: who is running
// (name), since when, and the session's counters. It is created by the
// controller at the top of Run and discarded with the invocation.
//
// Name, start time, and clock are fixed at creation; Stats carries its own
// lock. Distinct sessions share nothing.
type Session struct {
	name  string
	stats *SessionStats
	clock Clock
	start time.Time
}

// NewSession creates a session context. A nil clock falls back to
// [RealClock].
func NewSession(name string, clock Clock) *Session {
	if clock == nil {
		clock = RealClock{}
	}
	return &Session{
		name:  name,
		stats: NewSessionStats(),
		clock: clock,
		start: clock.Now(),
	}
}

// Name returns the session's display name (typically the template name).
func (s *Session) Name() string { return s.name }

// Stats returns the session's counter set. Safe for concurrent use.
func (s *Session) Stats() *SessionStats { return s.stats }

// Clock returns the session's time source.
func (s *Session) Clock() Clock { return s.clock }

// StartTime returns when the session context was created.
func (s *Session) StartTime() time.Time { return s.start }
