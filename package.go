// Package duet orchestrates two text-generation roles, a Writer and a
// Collaborator, through repeated rounds of drafting and structured critique
// until the draft converges.
//
// A single user intent ("write a launch email for X") goes in; a polished
// artifact comes out, without a human relaying feedback between two model
// endpoints. The Writer produces and revises the draft; the Collaborator
// scores it against a rubric and returns structured feedback (must-fix items,
// suggested improvements, open questions, advisory patches). The loop stops
// when the score clears the template's threshold, when progress stalls, when
// the round budget runs out, or when anything fails.
//
// # Quick Start: Converging on an Email
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/rickchristie/duet"
//	    "github.com/rickchristie/duet/convergence"
//	    "github.com/rickchristie/duet/models"
//	)
//
//	func main() {
//	    // 1. Create generators for the two roles. Both roles can share a
//	    //    backend; they stay independent capabilities.
//	    writer, _ := models.NewOpenAI(os.Getenv("OPENAI_API_KEY"))
//	    collab, _ := models.NewAnthropic(os.Getenv("ANTHROPIC_API_KEY"))
//
//	    // 2. Load a template: role instructions, rubric, convergence policy.
//	    tpl, _ := duet.LoadTemplate("templates/email.yaml")
//
//	    // 3. Build the controller and run a session.
//	    ctrl := convergence.New(writer, collab, tpl)
//	    result := ctrl.Run(context.Background(), duet.SessionInputs{
//	        Idea:         "Announce the v2 launch to existing customers",
//	        Context:      "Casual tone, under 200 words",
//	        Writer:       duet.Binding{Model: duet.ModelOpenAIGPT4oMini},
//	        Collaborator: duet.Binding{Model: duet.ModelAnthropicClaude45Sonnet},
//	    })
//
//	    // 4. Run never returns an error; failures fold into the result.
//	    fmt.Println(result.StopReason)
//	    fmt.Println(result.Final)
//	}
//
// # The Convergence Loop
//
// One session is a strictly sequential state machine:
//
//	INITIAL_DRAFT -> FEEDBACK -> (stop?) -> REVISION -> FEEDBACK -> ...
//
// Round 0 is the initial draft and is held separately on the result; it has
// no feedback. Each numbered round appends exactly one [Round] record (the
// draft the Collaborator saw, the [Feedback] it returned, and timing). Rounds
// are append-only and never mutated. When a stop condition fires the loop
// exits immediately, without a revision for that round.
//
// Stop reasons are [StopReason] values: [StopThresholdMet],
// [StopNoImprovement], [StopMaxRounds], [StopErrorFallback]. The Collaborator
// may also self-terminate by naming a canonical reason in
// [Feedback.ExplicitStop]; a valid explicit stop overrides everything else.
//
// # Generators
//
// Both roles speak the same [Generator] contract: a prompt plus
// [GenerateOptions] (model id, temperature, optional max tokens and system
// prompt) in, text plus normalized usage info out. Provider failures must
// surface as errors, never as empty text. The models package adapts any
// langchaingo llms.Model and ships constructors for OpenAI, Anthropic, and
// OpenAI-compatible endpoints such as GitHub Models:
//
//	gen, err := models.NewOpenAI(token)
//	gen, err := models.NewAnthropic(token)
//	gen, err := models.NewGitHubModels(token)
//
// A models.Registry maps binding names ("openai", "anthropic") to generators
// so session inputs can reference them by name.
//
// # Structured Feedback and Repair
//
// The Collaborator's output must parse into [Feedback]. Models wrap JSON in
// prose and code fences, so the repair package runs a bounded
// generate-clean-parse-validate loop: strip one code fence (preferring a
// json-tagged one), try a direct parse, fall back to slicing the outermost
// brace/bracket pair, and on failure ask the model AGAIN (a fresh
// generation, not a re-parse). Validation is JSON Schema, generated by
// reflection from the Feedback type itself:
//
//	sch := schema.MustCompile(schema.For[duet.Feedback]())
//	fb, err := repair.Produce[duet.Feedback](ctx, gen, sch, 2)
//
// After maxRetries+1 failed attempts Produce returns a
// *repair.SchemaValidationError carrying the last underlying error.
//
// # Templates
//
// A [Template] holds the Writer's and Collaborator's standing instructions,
// the scoring rubric (label, description, weight per criterion), and the
// default [ConvergencePolicy] (round budget, score threshold, readiness
// gates). Templates load from YAML via [LoadTemplate] and resolve by id
// through a [Store]. Session inputs may override MaxRounds and
// ScoreThreshold; precedence is the explicit [Effective] merge, requested
// value first, template default when unset.
//
// # Hooks
//
// The loop reports progress through typed hook events. Implement the hook
// interfaces you care about and register with hooks.NewRegistry():
//
//	type printer struct{}
//
//	func (printer) OnAfterRound(ctx context.Context, s *duet.Session, e duet.AfterRoundEvent) {
//	    fmt.Printf("round %d: score %.1f\n", e.Round.RoundNum, e.Round.Feedback.Score)
//	}
//
//	reg := hooks.NewRegistry().Register(printer{})
//	ctrl := convergence.New(writer, collab, tpl).WithHooks(reg)
//
// Available hook interfaces: [BeforeSessionHook], [AfterSessionHook],
// [BeforeRoundHook], [AfterRoundHook], [BeforeGeneratorCallHook],
// [AfterGeneratorCallHook], [DraftDiffHook], [ErrorHook]. [DraftDiffEvent]
// carries a unified diff between consecutive drafts. Hooks observe; they do
// not steer the loop.
//
// # Sessions, Stats, and Time
//
// A [Session] is the per-invocation context passed to hooks: session name,
// start time, and a [SessionStats] counter set (rounds, calls per role,
// repair retries, token placeholders). Nothing survives the invocation; the
// package keeps no global state, and distinct sessions may run concurrently.
// A [Clock] abstracts time for round timing and prompt dating;
// [NewMockClock] makes loop timing deterministic in tests.
//
// # The Boundary
//
// The service package is the single entry point intended for callers:
// validate inputs (typed errors, no rounds run), consult an optional
// ratelimit.Admitter, resolve the template and generator bindings, then run
// the controller. Inside the loop nothing escapes: generator failures,
// repair exhaustion, and context cancellation all fold into a result with
// [StopErrorFallback] and whatever draft and rounds already exist.
package duet
