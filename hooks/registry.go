package hooks

import (
	"context"

	"github.com/rickchristie/duet"
)

// Registry stores hooks and dispatches session events to them.
//
// A hook can implement any combination of hook interfaces; it only receives
// the events for the interfaces it implements. Hooks are called in
// registration order, synchronously, on the session goroutine.
//
// Registry is NOT thread-safe. Register all hooks before running a session.
// Fire methods are meant to be called by the convergence controller.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. Returns the registry for chaining.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeSession dispatches a BeforeSessionEvent to all registered
// BeforeSessionHook implementations.
func (r *Registry) FireBeforeSession(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeSessionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.BeforeSessionHook); ok {
			hook.OnBeforeSession(ctx, sess, event)
		}
	}
}

// FireAfterSession dispatches an AfterSessionEvent to all registered
// AfterSessionHook implementations.
func (r *Registry) FireAfterSession(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterSessionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.AfterSessionHook); ok {
			hook.OnAfterSession(ctx, sess, event)
		}
	}
}

// FireBeforeRound dispatches a BeforeRoundEvent to all registered
// BeforeRoundHook implementations.
func (r *Registry) FireBeforeRound(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeRoundEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.BeforeRoundHook); ok {
			hook.OnBeforeRound(ctx, sess, event)
		}
	}
}

// FireAfterRound dispatches an AfterRoundEvent to all registered
// AfterRoundHook implementations.
func (r *Registry) FireAfterRound(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterRoundEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.AfterRoundHook); ok {
			hook.OnAfterRound(ctx, sess, event)
		}
	}
}

// FireBeforeGeneratorCall dispatches a BeforeGeneratorCallEvent to all
// registered BeforeGeneratorCallHook implementations.
func (r *Registry) FireBeforeGeneratorCall(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeGeneratorCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.BeforeGeneratorCallHook); ok {
			hook.OnBeforeGeneratorCall(ctx, sess, event)
		}
	}
}

// FireAfterGeneratorCall dispatches an AfterGeneratorCallEvent to all
// registered AfterGeneratorCallHook implementations. It fires for failed
// calls too, with the event's Err set.
func (r *Registry) FireAfterGeneratorCall(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterGeneratorCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.AfterGeneratorCallHook); ok {
			hook.OnAfterGeneratorCall(ctx, sess, event)
		}
	}
}

// FireDraftDiff dispatches a DraftDiffEvent to all registered DraftDiffHook
// implementations.
func (r *Registry) FireDraftDiff(
	ctx context.Context,
	sess *duet.Session,
	event duet.DraftDiffEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.DraftDiffHook); ok {
			hook.OnDraftDiff(ctx, sess, event)
		}
	}
}

// FireError dispatches an ErrorEvent to all registered ErrorHook
// implementations. This is informational only; the session is already on
// its way to an error-fallback result when this fires.
func (r *Registry) FireError(ctx context.Context, sess *duet.Session, event duet.ErrorEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(duet.ErrorHook); ok {
			hook.OnError(ctx, sess, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}
