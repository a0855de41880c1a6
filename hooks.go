package duet

import "context"

// -----------------------------------------------------------------------------
// Loop Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe a running session. To use hooks:
//
//  1. Implement the hook interface(s) you care about
//  2. Register with hooks.NewRegistry()
//  3. Pass the registry to the controller via WithHooks
//
// Example:
//
//	type LoggingHook struct {
//	    logger *log.Logger
//	}
//
//	func (h *LoggingHook) OnAfterRound(ctx context.Context, s *duet.Session, e duet.AfterRoundEvent) {
//	    h.logger.Printf("round %d: score %.1f ready=%v",
//	        e.Round.RoundNum, e.Round.Feedback.Score, e.Round.Feedback.Ready)
//	}
//
//	reg := hooks.NewRegistry()
//	reg.Register(&LoggingHook{logger: log.Default()})
//	ctrl := convergence.New(writer, collab, tpl).WithHooks(reg)
//
// # Ordering
//
// Hooks fire in registration order. The session and generator-call pairs
// always close: their After hooks fire even on the error path. A round that
// fails mid-flight is the exception; it emits ErrorEvent instead of
// AfterRoundEvent.
//
// # Error Handling
//
// Hooks do not return errors and cannot steer the loop. A panicking hook
// propagates; recover inside the hook if that is not acceptable.
// -----------------------------------------------------------------------------

// BeforeSessionHook is notified once before the initial draft is generated.
type BeforeSessionHook interface {
	OnBeforeSession(ctx context.Context, s *Session, e BeforeSessionEvent)
}

// AfterSessionHook is notified once with the finished result, on every path
// out of the loop.
type AfterSessionHook interface {
	OnAfterSession(ctx context.Context, s *Session, e AfterSessionEvent)
}

// BeforeRoundHook is notified before each feedback step.
type BeforeRoundHook interface {
	OnBeforeRound(ctx context.Context, s *Session, e BeforeRoundEvent)
}

// AfterRoundHook is notified after each round is appended and evaluated.
type AfterRoundHook interface {
	OnAfterRound(ctx context.Context, s *Session, e AfterRoundEvent)
}

// BeforeGeneratorCallHook is notified before every generator call.
type BeforeGeneratorCallHook interface {
	OnBeforeGeneratorCall(ctx context.Context, s *Session, e BeforeGeneratorCallEvent)
}

// AfterGeneratorCallHook is notified after every generator call.
type AfterGeneratorCallHook interface {
	OnAfterGeneratorCall(ctx context.Context, s *Session, e AfterGeneratorCallEvent)
}

// DraftDiffHook is notified with a unified diff after each revision that
// changed the draft.
type DraftDiffHook interface {
	OnDraftDiff(ctx context.Context, s *Session, e DraftDiffEvent)
}

// ErrorHook is notified when an error collapses the session.
type ErrorHook interface {
	OnError(ctx context.Context, s *Session, e ErrorEvent)
}
