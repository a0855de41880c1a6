package convergence

import (
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/hooks"
	"github.com/rickchristie/duet/repair"
	"github.com/rickchristie/duet/schema"
)

// feedbackSchema is the compiled schema every collaborator reply must
// satisfy. Compiled once; Schema is immutable after compilation.
var feedbackSchema = schema.MustCompile(schema.For[duet.Feedback]())

// Controller runs Writer/Collaborator sessions for one template. It holds
// no per-session state, so one Controller can serve sequential Run calls;
// each call gets its own Session.
type Controller struct {
	writer       duet.Generator
	collaborator duet.Generator
	tpl          *duet.Template

	hooks         *hooks.Registry
	clock         duet.Clock
	schemaRetries int

	draftTmpl    *template.Template
	feedbackTmpl *template.Template
	revisionTmpl *template.Template
}

// New creates a Controller that drafts with writer, critiques with
// collaborator, and takes instructions, rubric, and policy from tpl.
func New(writer, collaborator duet.Generator, tpl *duet.Template) *Controller {
	return &Controller{
		writer:        writer,
		collaborator:  collaborator,
		tpl:           tpl,
		hooks:         hooks.NewRegistry(),
		clock:         duet.RealClock{},
		schemaRetries: duet.DefaultSchemaRetries,
		draftTmpl:     DefaultDraftTemplate,
		feedbackTmpl:  DefaultFeedbackTemplate,
		revisionTmpl:  DefaultRevisionTemplate,
	}
}

// WithHooks replaces the controller's hook registry. Use this to share one
// registry across controllers; use RegisterHook to add to the existing one.
func (c *Controller) WithHooks(registry *hooks.Registry) *Controller {
	if registry != nil {
		c.hooks = registry
	}
	return c
}

// RegisterHook adds a hook to the controller's registry. Returns the
// controller for chaining.
func (c *Controller) RegisterHook(hook any) *Controller {
	c.hooks.Register(hook)
	return c
}

// WithClock replaces the time source. Tests use duet.MockClock for
// deterministic durations.
func (c *Controller) WithClock(clock duet.Clock) *Controller {
	if clock != nil {
		c.clock = clock
	}
	return c
}

// WithSchemaRetries sets how many times a malformed collaborator reply is
// regenerated before the round fails. Negative values mean zero retries.
func (c *Controller) WithSchemaRetries(n int) *Controller {
	c.schemaRetries = n
	return c
}

// WithDraftTemplate replaces the initial-draft prompt template. The source
// is parsed as text/template against [DraftPromptData] and rejected at
// configuration time if it does not parse.
func (c *Controller) WithDraftTemplate(src string) (*Controller, error) {
	tmpl, err := template.New("draft").Parse(src)
	if err != nil {
		return c, fmt.Errorf("draft template: %w", err)
	}
	c.draftTmpl = tmpl
	return c, nil
}

// WithFeedbackTemplate replaces the feedback prompt template, parsed
// against [FeedbackPromptData].
func (c *Controller) WithFeedbackTemplate(src string) (*Controller, error) {
	tmpl, err := template.New("feedback").Parse(src)
	if err != nil {
		return c, fmt.Errorf("feedback template: %w", err)
	}
	c.feedbackTmpl = tmpl
	return c, nil
}

// WithRevisionTemplate replaces the revision prompt template, parsed
// against [RevisionPromptData].
func (c *Controller) WithRevisionTemplate(src string) (*Controller, error) {
	tmpl, err := template.New("revision").Parse(src)
	if err != nil {
		return c, fmt.Errorf("revision template: %w", err)
	}
	c.revisionTmpl = tmpl
	return c, nil
}

// Run executes one convergence session and always returns a result, never
// an error. Failures of any kind fold into a result with
// duet.StopErrorFallback: Final holds the draft from the most recent
// completed writing step, Rounds holds every completed round, and Err
// holds the cause.
//
// The session is strictly sequential. Rounds run one at a time, each
// feedback call sees only earlier rounds, and hooks fire synchronously on
// the calling goroutine.
func (c *Controller) Run(ctx context.Context, in duet.SessionInputs) (res *duet.ConvergenceResult) {
	sess := duet.NewSession(c.sessionName(), c.clock)
	res = &duet.ConvergenceResult{
		StopReason: duet.StopErrorFallback,
		Stats:      sess.Stats(),
	}

	defer func() {
		if r := recover(); r != nil {
			res.StopReason = duet.StopErrorFallback
			res.Err = fmt.Errorf("session panic: %v", r)
			c.hooks.FireError(ctx, sess, duet.ErrorEvent{RoundNum: len(res.Rounds), Err: res.Err})
		}
		res.Duration = sess.Clock().Now().Sub(sess.StartTime())
		c.hooks.FireAfterSession(ctx, sess, duet.AfterSessionEvent{Result: res})
	}()

	fail := func(roundNum int, err error) *duet.ConvergenceResult {
		res.StopReason = duet.StopErrorFallback
		res.Err = err
		c.hooks.FireError(ctx, sess, duet.ErrorEvent{RoundNum: roundNum, Err: err})
		return res
	}

	if c.tpl == nil {
		return fail(0, duet.ErrInvalidTemplate)
	}
	if c.writer == nil || c.collaborator == nil {
		return fail(0, errors.New("controller: nil generator"))
	}

	maxRounds := duet.Effective(in.MaxRounds,
		duet.Effective(c.tpl.Policy.MaxRounds, duet.DefaultMaxRounds))
	threshold := duet.Effective(in.ScoreThreshold,
		duet.Effective(c.tpl.Policy.ScoreThreshold, duet.DefaultScoreThreshold))

	c.hooks.FireBeforeSession(ctx, sess, duet.BeforeSessionEvent{
		Idea:           in.Idea,
		MaxRounds:      maxRounds,
		ScoreThreshold: threshold,
	})

	if err := in.Validate(); err != nil {
		return fail(0, err)
	}
	if in.Writer.Model == "" {
		return fail(0, fmt.Errorf("writer binding: %w", duet.ErrNoModel))
	}
	if in.Collaborator.Model == "" {
		return fail(0, fmt.Errorf("collaborator binding: %w", duet.ErrNoModel))
	}

	draft, err := c.initialDraft(ctx, sess, in, maxRounds)
	if err != nil {
		return fail(0, err)
	}
	res.InitialDraft = draft
	res.Final = draft

	seen := map[string]bool{}
	state := StopState{}

	for roundNum := 1; roundNum <= maxRounds; roundNum++ {
		if err := ctx.Err(); err != nil {
			return fail(roundNum, err)
		}

		roundStart := sess.Clock().Now()
		c.hooks.FireBeforeRound(ctx, sess, duet.BeforeRoundEvent{
			RoundNum: roundNum,
			Draft:    res.Final,
		})

		fb, err := c.feedback(ctx, sess, in, FeedbackPromptData{
			Idea:                      in.Idea,
			Context:                   in.Context,
			Draft:                     res.Final,
			Rubric:                    c.tpl.Rubric,
			Questions:                 res.UnresolvedQuestions,
			RequireQuestionsResolved:  c.tpl.Policy.RequireQuestionsResolved,
			RequireAllSectionsPresent: c.tpl.Policy.RequireAllSectionsPresent,
			RoundNum:                  roundNum,
			MaxRounds:                 maxRounds,
		})
		if err != nil {
			return fail(roundNum, err)
		}

		round := &duet.Round{RoundNum: roundNum, Draft: res.Final, Feedback: fb}
		res.Rounds = append(res.Rounds, round)
		sess.Stats().Incr(duet.KeyRounds, 1)

		decision := EvaluateStop(fb, state, threshold)
		state = decision.Next
		if decision.Stop {
			round.TimeMs = elapsedMs(sess.Clock(), roundStart)
			c.hooks.FireAfterRound(ctx, sess, duet.AfterRoundEvent{
				Round:   round,
				Stopped: true,
				Reason:  decision.Reason,
			})
			res.StopReason = decision.Reason
			return res
		}

		for _, q := range fb.Questions {
			if q == "" || seen[q] {
				continue
			}
			seen[q] = true
			res.UnresolvedQuestions = append(res.UnresolvedQuestions, q)
		}

		if roundNum == maxRounds {
			round.TimeMs = elapsedMs(sess.Clock(), roundStart)
			c.hooks.FireAfterRound(ctx, sess, duet.AfterRoundEvent{
				Round:   round,
				Stopped: true,
				Reason:  duet.StopMaxRounds,
			})
			res.StopReason = duet.StopMaxRounds
			return res
		}

		revised, err := c.revise(ctx, sess, in, RevisionPromptData{
			Idea:          in.Idea,
			Context:       in.Context,
			Draft:         res.Final,
			MustFix:       fb.MustFix,
			ShouldImprove: fb.ShouldImprove,
			Patches:       fb.Patches,
			Questions:     res.UnresolvedQuestions,
			Memory:        Compress(res.Rounds),
		}, roundNum, maxRounds)
		if err != nil {
			round.TimeMs = elapsedMs(sess.Clock(), roundStart)
			return fail(roundNum, err)
		}

		if revised != res.Final {
			// A diff failure only costs the observability event, never
			// the session.
			if diff, derr := duet.DraftDiff(res.Final, revised); derr == nil && diff != "" {
				c.hooks.FireDraftDiff(ctx, sess, duet.DraftDiffEvent{
					RoundNum: roundNum,
					Diff:     diff,
				})
			}
		}
		res.Final = revised
		round.TimeMs = elapsedMs(sess.Clock(), roundStart)

		c.hooks.FireAfterRound(ctx, sess, duet.AfterRoundEvent{Round: round})
	}

	// Unreachable: the roundNum == maxRounds arm returns inside the loop.
	return res
}

func (c *Controller) sessionName() string {
	if c.tpl != nil && c.tpl.Name != "" {
		return c.tpl.Name
	}
	return "duet"
}

// initialDraft produces the round-0 draft at the exploratory temperature.
func (c *Controller) initialDraft(
	ctx context.Context,
	sess *duet.Session,
	in duet.SessionInputs,
	maxRounds int,
) (string, error) {
	prompt, err := renderPrompt(c.draftTmpl, DraftPromptData{
		Idea:    in.Idea,
		Context: in.Context,
		Today:   sess.Clock().Today(),
	})
	if err != nil {
		return "", fmt.Errorf("draft prompt: %w", err)
	}
	text, err := c.generate(ctx, sess, duet.RoleWriter, prompt, duet.GenerateOptions{
		Model:        in.Writer.Model,
		Temperature:  Temperature(0, maxRounds),
		SystemPrompt: c.tpl.WriterInstructions,
	})
	if err != nil {
		return "", fmt.Errorf("writer draft: %w", err)
	}
	return text, nil
}

// feedback asks the collaborator to review the draft and repairs the reply
// into a schema-valid Feedback. Every regeneration goes through generate,
// so hooks see repair attempts as ordinary collaborator calls.
func (c *Controller) feedback(
	ctx context.Context,
	sess *duet.Session,
	in duet.SessionInputs,
	data FeedbackPromptData,
) (*duet.Feedback, error) {
	data.SchemaJSON = feedbackSchema.JSON()
	prompt, err := renderPrompt(c.feedbackTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("feedback prompt: %w", err)
	}

	opts := duet.GenerateOptions{
		Model:        in.Collaborator.Model,
		Temperature:  TempFeedback,
		SystemPrompt: c.tpl.CollaboratorInstructions,
	}
	calls := 0
	gen := func(ctx context.Context) (string, error) {
		calls++
		return c.generate(ctx, sess, duet.RoleCollaborator, prompt, opts)
	}

	fb, err := repair.Produce[duet.Feedback](ctx, gen, feedbackSchema, c.schemaRetries)
	if calls > 1 {
		sess.Stats().Incr(duet.KeyRepairRetries, int64(calls-1))
	}
	if err != nil {
		return nil, fmt.Errorf("collaborator feedback: %w", err)
	}
	return &fb, nil
}

// revise asks the writer for a new draft at the scheduled temperature for
// this round index.
func (c *Controller) revise(
	ctx context.Context,
	sess *duet.Session,
	in duet.SessionInputs,
	data RevisionPromptData,
	roundNum, maxRounds int,
) (string, error) {
	prompt, err := renderPrompt(c.revisionTmpl, data)
	if err != nil {
		return "", fmt.Errorf("revision prompt: %w", err)
	}
	text, err := c.generate(ctx, sess, duet.RoleWriter, prompt, duet.GenerateOptions{
		Model:        in.Writer.Model,
		Temperature:  Temperature(roundNum, maxRounds),
		SystemPrompt: c.tpl.WriterInstructions,
	})
	if err != nil {
		return "", fmt.Errorf("writer revision: %w", err)
	}
	return text, nil
}

// generate performs one generator call with hook firing, stats, and timing.
// All writer and collaborator traffic funnels through here.
func (c *Controller) generate(
	ctx context.Context,
	sess *duet.Session,
	role duet.Role,
	prompt string,
	opts duet.GenerateOptions,
) (string, error) {
	gen := c.writer
	key := duet.KeyWriterCalls
	if role == duet.RoleCollaborator {
		gen = c.collaborator
		key = duet.KeyCollaboratorCalls
	}

	c.hooks.FireBeforeGeneratorCall(ctx, sess, duet.BeforeGeneratorCallEvent{
		Role:   role,
		Model:  opts.Model,
		Prompt: prompt,
	})

	start := sess.Clock().Now()
	result, err := gen.Generate(ctx, prompt, opts)
	duration := sess.Clock().Now().Sub(start)
	sess.Stats().Incr(key, 1)

	if err != nil {
		c.hooks.FireAfterGeneratorCall(ctx, sess, duet.AfterGeneratorCallEvent{
			Role:     role,
			Model:    opts.Model,
			Err:      err,
			Duration: duration,
		})
		return "", err
	}

	sess.Stats().AddUsage(result.Info)
	c.hooks.FireAfterGeneratorCall(ctx, sess, duet.AfterGeneratorCallEvent{
		Role:     role,
		Model:    opts.Model,
		Result:   result,
		Duration: duration,
	})
	return result.Text, nil
}

func elapsedMs(clock duet.Clock, start time.Time) int64 {
	ms := clock.Now().Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
