// Package hooks provides a registry for session lifecycle hooks.
//
// Hooks observe a convergence session from the outside: round boundaries,
// generator calls, draft diffs, and errors. Each hook interface corresponds
// to one event type. Implement only the interfaces you need.
//
// # Hook Interfaces
//
// Session lifecycle:
//   - [duet.BeforeSessionHook] - Called once before the initial draft
//   - [duet.AfterSessionHook] - Called once with the final result
//   - [duet.BeforeRoundHook] - Called before each feedback round
//   - [duet.AfterRoundHook] - Called after each completed round
//   - [duet.ErrorHook] - Called when a failure folds into the result
//
// Generator calls:
//   - [duet.BeforeGeneratorCallHook] - Called before each writer or
//     collaborator call, including schema-repair regenerations
//   - [duet.AfterGeneratorCallHook] - Called after each call returns
//
// Draft observation:
//   - [duet.DraftDiffHook] - Called with a unified diff after each revision
//     that changed the draft
//
// # Creating a Hook
//
// Implement any combination of interfaces:
//
//	type ScoreLogger struct{}
//
//	func (h *ScoreLogger) OnAfterRound(
//	    ctx context.Context,
//	    sess *duet.Session,
//	    event duet.AfterRoundEvent,
//	) {
//	    log.Printf("round %d: score %.1f", event.Round.RoundNum, event.Round.Feedback.Score)
//	}
//
//	// Compile-time check
//	var _ duet.AfterRoundHook = (*ScoreLogger)(nil)
//
// # Registering Hooks
//
// Register directly on the controller for simple cases:
//
//	ctrl := convergence.New(writer, collab, tpl).
//	    RegisterHook(&ScoreLogger{})
//
// Or share one registry across controllers:
//
//	registry := hooks.NewRegistry()
//	registry.Register(&ScoreLogger{})
//
//	ctrlA := convergence.New(writer, collab, tplA).WithHooks(registry)
//	ctrlB := convergence.New(writer, collab, tplB).WithHooks(registry)
//
// RegisterHook adds to the controller's existing registry; WithHooks
// replaces it.
//
// # Example
//
// See integrationtest/loggers/logger.go for a hook that implements every
// interface.
package hooks
