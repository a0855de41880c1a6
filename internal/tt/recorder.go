package tt

import (
	"context"
	"fmt"
	"strings"

	"github.com/rickchristie/duet"
)

// Recorder implements every hook interface and records events in firing
// order. Tests assert on Names() for ordering and on Events for payloads.
type Recorder struct {
	Events []duet.HookEvent
}

// Names returns the recorded event type names, in order, without the
// package qualifier.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		names = append(names, strings.TrimPrefix(fmt.Sprintf("%T", e), "duet."))
	}
	return names
}

// CountByType returns how many events of each type name were recorded.
func (r *Recorder) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, name := range r.Names() {
		counts[name]++
	}
	return counts
}

func (r *Recorder) record(e duet.HookEvent) {
	r.Events = append(r.Events, e)
}

func (r *Recorder) OnBeforeSession(_ context.Context, _ *duet.Session, e duet.BeforeSessionEvent) {
	r.record(e)
}

func (r *Recorder) OnAfterSession(_ context.Context, _ *duet.Session, e duet.AfterSessionEvent) {
	r.record(e)
}

func (r *Recorder) OnBeforeRound(_ context.Context, _ *duet.Session, e duet.BeforeRoundEvent) {
	r.record(e)
}

func (r *Recorder) OnAfterRound(_ context.Context, _ *duet.Session, e duet.AfterRoundEvent) {
	r.record(e)
}

func (r *Recorder) OnBeforeGeneratorCall(_ context.Context, _ *duet.Session, e duet.BeforeGeneratorCallEvent) {
	r.record(e)
}

func (r *Recorder) OnAfterGeneratorCall(_ context.Context, _ *duet.Session, e duet.AfterGeneratorCallEvent) {
	r.record(e)
}

func (r *Recorder) OnDraftDiff(_ context.Context, _ *duet.Session, e duet.DraftDiffEvent) {
	r.record(e)
}

func (r *Recorder) OnError(_ context.Context, _ *duet.Session, e duet.ErrorEvent) {
	r.record(e)
}

var (
	_ duet.BeforeSessionHook       = (*Recorder)(nil)
	_ duet.AfterSessionHook        = (*Recorder)(nil)
	_ duet.BeforeRoundHook         = (*Recorder)(nil)
	_ duet.AfterRoundHook          = (*Recorder)(nil)
	_ duet.BeforeGeneratorCallHook = (*Recorder)(nil)
	_ duet.AfterGeneratorCallHook  = (*Recorder)(nil)
	_ duet.DraftDiffHook           = (*Recorder)(nil)
	_ duet.ErrorHook               = (*Recorder)(nil)
)
