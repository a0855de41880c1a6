// Package loggers provides reusable logging hooks for integration testing.
package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/duet"
)

// LoggerHook implements all hook interfaces to log everything that happens
// during a convergence session. Structured data is logged as YAML for easy
// reading. Nothing is truncated - full drafts and prompts are always logged.
type LoggerHook struct {
	out io.Writer
}

// NewLoggerHook creates a new LoggerHook that writes to stdout.
func NewLoggerHook() *LoggerHook {
	return &LoggerHook{
		out: os.Stdout,
	}
}

// NewLoggerHookWithWriter creates a new LoggerHook that writes to the given writer.
func NewLoggerHookWithWriter(w io.Writer) *LoggerHook {
	return &LoggerHook{
		out: w,
	}
}

// logEvent logs an event header with timestamp.
func (h *LoggerHook) logEvent(name string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, timestamp)
}

// log writes a line without any prefix.
func (h *LoggerHook) log(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

func (h *LoggerHook) logYAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		h.log("(failed to marshal: %v)", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

// logBlock writes a labeled multi-line text block, indented.
func (h *LoggerHook) logBlock(label, text string) {
	h.log("%s:", label)
	for _, line := range strings.Split(text, "\n") {
		h.log("  %s", line)
	}
}

// OnBeforeSession logs session start with the idea and effective policy.
func (h *LoggerHook) OnBeforeSession(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeSessionEvent,
) {
	h.logEvent("BeforeSession")
	h.log("================================================================================")
	h.log("SESSION STARTED")
	h.log("================================================================================")
	h.log("Name: %s", sess.Name())
	h.log("")
	h.logYAML(map[string]any{
		"idea":            event.Idea,
		"max_rounds":      event.MaxRounds,
		"score_threshold": event.ScoreThreshold,
	})
}

// OnAfterSession logs session completion with the result and final stats.
func (h *LoggerHook) OnAfterSession(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterSessionEvent,
) {
	h.logEvent("AfterSession")
	h.log("================================================================================")
	h.log("SESSION COMPLETED")
	h.log("================================================================================")

	result := event.Result
	eventData := map[string]any{
		"stop_reason": string(result.StopReason),
		"rounds":      len(result.Rounds),
		"duration":    result.Duration.String(),
	}
	if result.Err != nil {
		eventData["error"] = result.Err.Error()
	}
	if len(result.UnresolvedQuestions) > 0 {
		eventData["unresolved_questions"] = result.UnresolvedQuestions
	}
	h.logYAML(eventData)

	h.log("")
	h.logBlock("Final draft", result.Final)

	h.log("")
	h.log("Stats:")
	statsData := map[string]any{}
	for key, value := range sess.Stats().Snapshot() {
		statsData[string(key)] = value
	}
	h.logYAML(statsData)
}

// OnBeforeRound logs round start with the draft under critique.
func (h *LoggerHook) OnBeforeRound(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeRoundEvent,
) {
	h.logEvent(fmt.Sprintf("BeforeRound %d", event.RoundNum))
	h.log("--------------------------------------------------------------------------------")
	h.log("ROUND %d START", event.RoundNum)
	h.log("--------------------------------------------------------------------------------")
	h.logBlock("Draft under critique", event.Draft)
}

// OnAfterRound logs round end with the feedback and stop evaluation.
func (h *LoggerHook) OnAfterRound(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterRoundEvent,
) {
	round := event.Round
	h.logEvent(fmt.Sprintf("AfterRound %d", round.RoundNum))
	h.log("--------------------------------------------------------------------------------")
	h.log("ROUND %d END", round.RoundNum)
	h.log("--------------------------------------------------------------------------------")
	h.log("Duration: %dms", round.TimeMs)
	h.log("")
	h.log("Feedback:")

	fb := round.Feedback
	feedbackData := map[string]any{
		"score": fb.Score,
		"ready": fb.Ready,
	}
	if len(fb.MustFix) > 0 {
		feedbackData["must_fix"] = fb.MustFix
	}
	if len(fb.ShouldImprove) > 0 {
		feedbackData["should_improve"] = fb.ShouldImprove
	}
	if len(fb.Questions) > 0 {
		feedbackData["questions"] = fb.Questions
	}
	if len(fb.Patches) > 0 {
		patches := make([]map[string]string, 0, len(fb.Patches))
		for _, p := range fb.Patches {
			patches = append(patches, map[string]string{
				"path":      p.Path,
				"operation": string(p.Operation),
				"content":   p.Content,
			})
		}
		feedbackData["patches"] = patches
	}
	if fb.NoMaterialImprovements {
		feedbackData["no_material_improvements"] = true
	}
	if fb.ExplicitStop != "" {
		feedbackData["explicit_stop"] = fb.ExplicitStop
	}
	h.logYAML(feedbackData)

	if event.Stopped {
		h.log("")
		h.log("Stopped: %s", event.Reason)
	}
}

// OnBeforeGeneratorCall logs the full prompt before a generator call.
func (h *LoggerHook) OnBeforeGeneratorCall(
	ctx context.Context,
	sess *duet.Session,
	event duet.BeforeGeneratorCallEvent,
) {
	h.logEvent(fmt.Sprintf("BeforeGeneratorCall %s: %s", event.Role, event.Model))
	h.logBlock("Prompt", event.Prompt)
}

// OnAfterGeneratorCall logs the response after a generator call.
func (h *LoggerHook) OnAfterGeneratorCall(
	ctx context.Context,
	sess *duet.Session,
	event duet.AfterGeneratorCallEvent,
) {
	h.logEvent(fmt.Sprintf(
		"AfterGeneratorCall %s: %s (duration: %s)",
		event.Role, event.Model, event.Duration,
	))

	if event.Err != nil {
		h.log("Error: %v", event.Err)
		return
	}

	h.logBlock("Response", event.Result.Text)

	if info := event.Result.Info; info != nil {
		h.log("Tokens: input=%d, output=%d, total=%d",
			info.InputTokens, info.OutputTokens, info.TotalTokens)
	}
}

// OnDraftDiff logs the unified diff a revision produced.
func (h *LoggerHook) OnDraftDiff(
	ctx context.Context,
	sess *duet.Session,
	event duet.DraftDiffEvent,
) {
	h.logEvent(fmt.Sprintf("DraftDiff round %d", event.RoundNum))
	fmt.Fprint(h.out, event.Diff)
}

// OnError logs errors that are about to collapse the session.
func (h *LoggerHook) OnError(
	ctx context.Context,
	sess *duet.Session,
	event duet.ErrorEvent,
) {
	h.logEvent("Error")
	h.logYAML(map[string]any{
		"round": event.RoundNum,
		"error": event.Err.Error(),
	})
}

// Compile-time checks that LoggerHook implements all hook interfaces.
var (
	_ duet.BeforeSessionHook       = (*LoggerHook)(nil)
	_ duet.AfterSessionHook        = (*LoggerHook)(nil)
	_ duet.BeforeRoundHook         = (*LoggerHook)(nil)
	_ duet.AfterRoundHook          = (*LoggerHook)(nil)
	_ duet.BeforeGeneratorCallHook = (*LoggerHook)(nil)
	_ duet.AfterGeneratorCallHook  = (*LoggerHook)(nil)
	_ duet.DraftDiffHook           = (*LoggerHook)(nil)
	_ duet.ErrorHook               = (*LoggerHook)(nil)
)
