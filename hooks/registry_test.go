package hooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/duet"
)

// -----------------------------------------------------------------------------
// Test Hooks
// -----------------------------------------------------------------------------

type mockBeforeSessionHook struct {
	called bool
	event  duet.BeforeSessionEvent
}

func (h *mockBeforeSessionHook) OnBeforeSession(
	_ context.Context,
	_ *duet.Session,
	e duet.BeforeSessionEvent,
) {
	h.called = true
	h.event = e
}

type mockAfterSessionHook struct {
	called bool
	event  duet.AfterSessionEvent
}

func (h *mockAfterSessionHook) OnAfterSession(
	_ context.Context,
	_ *duet.Session,
	e duet.AfterSessionEvent,
) {
	h.called = true
	h.event = e
}

type mockBeforeRoundHook struct {
	called bool
	event  duet.BeforeRoundEvent
}

func (h *mockBeforeRoundHook) OnBeforeRound(
	_ context.Context,
	_ *duet.Session,
	e duet.BeforeRoundEvent,
) {
	h.called = true
	h.event = e
}

type mockAfterRoundHook struct {
	called bool
	event  duet.AfterRoundEvent
}

func (h *mockAfterRoundHook) OnAfterRound(
	_ context.Context,
	_ *duet.Session,
	e duet.AfterRoundEvent,
) {
	h.called = true
	h.event = e
}

type mockBeforeGeneratorCallHook struct {
	called bool
	event  duet.BeforeGeneratorCallEvent
}

func (h *mockBeforeGeneratorCallHook) OnBeforeGeneratorCall(
	_ context.Context,
	_ *duet.Session,
	e duet.BeforeGeneratorCallEvent,
) {
	h.called = true
	h.event = e
}

type mockAfterGeneratorCallHook struct {
	called bool
	event  duet.AfterGeneratorCallEvent
}

func (h *mockAfterGeneratorCallHook) OnAfterGeneratorCall(
	_ context.Context,
	_ *duet.Session,
	e duet.AfterGeneratorCallEvent,
) {
	h.called = true
	h.event = e
}

type mockDraftDiffHook struct {
	called bool
	event  duet.DraftDiffEvent
}

func (h *mockDraftDiffHook) OnDraftDiff(
	_ context.Context,
	_ *duet.Session,
	e duet.DraftDiffEvent,
) {
	h.called = true
	h.event = e
}

type mockErrorHook struct {
	called bool
	event  duet.ErrorEvent
}

func (h *mockErrorHook) OnError(
	_ context.Context,
	_ *duet.Session,
	e duet.ErrorEvent,
) {
	h.called = true
	h.event = e
}

// multiHook implements several hook interfaces at once.
type multiHook struct {
	beforeSessionCalled bool
	afterSessionCalled  bool
	beforeRoundCalled   bool
	afterCallCalled     bool
}

func (h *multiHook) OnBeforeSession(_ context.Context, _ *duet.Session, _ duet.BeforeSessionEvent) {
	h.beforeSessionCalled = true
}

func (h *multiHook) OnAfterSession(_ context.Context, _ *duet.Session, _ duet.AfterSessionEvent) {
	h.afterSessionCalled = true
}

func (h *multiHook) OnBeforeRound(_ context.Context, _ *duet.Session, _ duet.BeforeRoundEvent) {
	h.beforeRoundCalled = true
}

func (h *multiHook) OnAfterGeneratorCall(_ context.Context, _ *duet.Session, _ duet.AfterGeneratorCallEvent) {
	h.afterCallCalled = true
}

func testSession() *duet.Session {
	return duet.NewSession("test", duet.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
}

// -----------------------------------------------------------------------------
// Registry Tests
// -----------------------------------------------------------------------------

func TestNewRegistry_ReturnsEmptyRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_Register_AddsHook(t *testing.T) {
	registry := NewRegistry()
	hook := &mockBeforeSessionHook{}

	result := registry.Register(hook)

	assert.Equal(t, registry, result, "Register should return registry for chaining")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Register_ChainMultiple(t *testing.T) {
	registry := NewRegistry()

	registry.Register(&mockBeforeSessionHook{}).Register(&mockAfterSessionHook{})

	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_Clear_RemovesAllHooks(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockBeforeSessionHook{})
	registry.Register(&mockAfterSessionHook{})

	registry.Clear()

	assert.Equal(t, 0, registry.Len())
}

// -----------------------------------------------------------------------------
// Dispatch Tests
// -----------------------------------------------------------------------------

func TestRegistry_FireBeforeSession(t *testing.T) {
	registry := NewRegistry()
	hook := &mockBeforeSessionHook{}
	registry.Register(hook)

	event := duet.BeforeSessionEvent{
		Idea:           "launch email for Lumen 2.0",
		MaxRounds:      4,
		ScoreThreshold: 8.5,
	}

	registry.FireBeforeSession(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireAfterSession(t *testing.T) {
	registry := NewRegistry()
	hook := &mockAfterSessionHook{}
	registry.Register(hook)

	event := duet.AfterSessionEvent{
		Result: &duet.ConvergenceResult{
			Final:      "final draft",
			StopReason: duet.StopThresholdMet,
		},
	}

	registry.FireAfterSession(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireBeforeRound(t *testing.T) {
	registry := NewRegistry()
	hook := &mockBeforeRoundHook{}
	registry.Register(hook)

	event := duet.BeforeRoundEvent{RoundNum: 2, Draft: "second draft"}

	registry.FireBeforeRound(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireAfterRound(t *testing.T) {
	registry := NewRegistry()
	hook := &mockAfterRoundHook{}
	registry.Register(hook)

	event := duet.AfterRoundEvent{
		Round: &duet.Round{
			RoundNum: 1,
			Draft:    "first draft",
			Feedback: &duet.Feedback{Score: 9, Ready: true},
		},
		Stopped: true,
		Reason:  duet.StopThresholdMet,
	}

	registry.FireAfterRound(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireBeforeGeneratorCall(t *testing.T) {
	registry := NewRegistry()
	hook := &mockBeforeGeneratorCallHook{}
	registry.Register(hook)

	event := duet.BeforeGeneratorCallEvent{
		Role:   duet.RoleWriter,
		Model:  "gpt-4.1",
		Prompt: "Write a product launch email.",
	}

	registry.FireBeforeGeneratorCall(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireAfterGeneratorCall(t *testing.T) {
	registry := NewRegistry()
	hook := &mockAfterGeneratorCallHook{}
	registry.Register(hook)

	event := duet.AfterGeneratorCallEvent{
		Role:  duet.RoleCollaborator,
		Model: "gpt-4.1-mini",
		Result: &duet.GenerationResult{
			Text: `{"score": 7}`,
			Info: &duet.GenerationInfo{InputTokens: 100, OutputTokens: 50},
		},
		Duration: 120 * time.Millisecond,
	}

	registry.FireAfterGeneratorCall(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireDraftDiff(t *testing.T) {
	registry := NewRegistry()
	hook := &mockDraftDiffHook{}
	registry.Register(hook)

	event := duet.DraftDiffEvent{RoundNum: 1, Diff: "-old line\n+new line\n"}

	registry.FireDraftDiff(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_FireError(t *testing.T) {
	registry := NewRegistry()
	hook := &mockErrorHook{}
	registry.Register(hook)

	event := duet.ErrorEvent{RoundNum: 3, Err: errors.New("provider unavailable")}

	registry.FireError(context.Background(), testSession(), event)

	assert.True(t, hook.called)
	assert.Equal(t, event, hook.event)
}

func TestRegistry_Fire_OnlyCallsMatchingHooks(t *testing.T) {
	registry := NewRegistry()
	beforeHook := &mockBeforeSessionHook{}
	afterHook := &mockAfterSessionHook{}
	registry.Register(beforeHook)
	registry.Register(afterHook)

	registry.FireBeforeSession(context.Background(), testSession(), duet.BeforeSessionEvent{})

	assert.True(t, beforeHook.called, "matching hook should be called")
	assert.False(t, afterHook.called, "non-matching hook should not be called")
}

func TestRegistry_Fire_CallsInOrder(t *testing.T) {
	registry := NewRegistry()
	var order []int

	registry.
		Register(&orderTrackingHook{order: &order, id: 1}).
		Register(&orderTrackingHook{order: &order, id: 2}).
		Register(&orderTrackingHook{order: &order, id: 3})

	registry.FireBeforeSession(context.Background(), testSession(), duet.BeforeSessionEvent{})

	assert.Equal(t, []int{1, 2, 3}, order)
}

type orderTrackingHook struct {
	order *[]int
	id    int
}

func (h *orderTrackingHook) OnBeforeSession(_ context.Context, _ *duet.Session, _ duet.BeforeSessionEvent) {
	*h.order = append(*h.order, h.id)
}

func TestRegistry_Fire_MultiInterfaceHook(t *testing.T) {
	registry := NewRegistry()
	hook := &multiHook{}
	registry.Register(hook)

	ctx := context.Background()
	sess := testSession()

	registry.FireBeforeSession(ctx, sess, duet.BeforeSessionEvent{})
	registry.FireAfterSession(ctx, sess, duet.AfterSessionEvent{})
	registry.FireBeforeRound(ctx, sess, duet.BeforeRoundEvent{})
	registry.FireAfterGeneratorCall(ctx, sess, duet.AfterGeneratorCallEvent{})

	assert.True(t, hook.beforeSessionCalled)
	assert.True(t, hook.afterSessionCalled)
	assert.True(t, hook.beforeRoundCalled)
	assert.True(t, hook.afterCallCalled)
}

func TestRegistry_Fire_PlainStructReceivesNothing(t *testing.T) {
	registry := NewRegistry()
	registry.Register(struct{}{})

	assert.NotPanics(t, func() {
		registry.FireBeforeSession(context.Background(), testSession(), duet.BeforeSessionEvent{})
		registry.FireError(context.Background(), testSession(), duet.ErrorEvent{})
	})
}
