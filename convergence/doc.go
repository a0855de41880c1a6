// Package convergence drives the Writer/Collaborator loop: it owns the
// round state machine, alternates draft generation and structured critique,
// and stops when the session's policy says the draft converged.
//
// The [Controller] is the only stateful piece, and its state lives for one
// Run call. The supporting logic is pure functions, each separately
// testable: [EvaluateStop] (threshold, stagnation, explicit-stop
// precedence), [Compress] (cross-round memory), and [Temperature] (sampling
// schedule).
//
//	ctrl := convergence.New(writer, collaborator, tpl).
//	    WithHooks(reg).
//	    WithSchemaRetries(2)
//	result := ctrl.Run(ctx, inputs)
//
// Run never returns an error: every failure folds into a result with
// duet.StopErrorFallback, the best-known draft, and the rounds that
// completed.
package convergence
