// Package testutil provides shared plumbing for duet integration
// scenarios: scenario configuration, a session runner wired with full
// logging, and helpers for building live generators from the environment.
package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/integrationtest/loggers"
	"github.com/rickchristie/duet/models"
	"github.com/rickchristie/duet/service"
)

// LiveKeyEnv is the environment variable holding the OpenAI API key for
// live integration runs. Scenarios that need a real model skip (tests) or
// fail (CLI) when it is unset.
const LiveKeyEnv = "DUET_TEST_OPENAI_KEY"

// TestConfig carries settings shared across scenarios.
type TestConfig struct {
	// LogWriter, when set, receives the full session log in addition to
	// the scenario's primary writer.
	LogWriter io.Writer

	// SchemaRetries is the malformed-feedback retry budget.
	SchemaRetries int

	// Timeout bounds each whole session. Zero means no deadline.
	Timeout time.Duration
}

// DefaultTestConfig returns the configuration used by automated test runs.
func DefaultTestConfig() TestConfig {
	return TestConfig{
		SchemaRetries: duet.DefaultSchemaRetries,
	}
}

// InteractiveConfig returns the configuration used by the interactive CLI.
// Live sessions get a deadline so a stuck provider call cannot hang the
// terminal.
func InteractiveConfig() TestConfig {
	return TestConfig{
		SchemaRetries: duet.DefaultSchemaRetries,
		Timeout:       5 * time.Minute,
	}
}

// ScenarioConfig describes one end-to-end convergence scenario.
type ScenarioConfig struct {
	// Name identifies the scenario; it doubles as the admission client key.
	Name string

	// HeaderTitle is printed as the scenario banner.
	HeaderTitle string

	// Idea and Context are the session inputs.
	Idea    string
	Context string

	// Template is the template the session runs under.
	Template *duet.Template

	// Writer and Collaborator back the two roles.
	Writer       duet.Generator
	Collaborator duet.Generator

	// WriterModel and CollaboratorModel are the bound model ids.
	WriterModel       string
	CollaboratorModel string

	// MaxRounds and ScoreThreshold override the template policy when
	// positive.
	MaxRounds      int
	ScoreThreshold float64

	// Clock overrides the session time source. Nil uses the real clock.
	Clock duet.Clock

	// ExpectStop lists the stop reasons the scenario accepts. Empty
	// accepts anything except duet.StopErrorFallback.
	ExpectStop []duet.StopReason
}

// TestCase couples a named scenario with its runner, for the interactive
// CLI menu.
type TestCase struct {
	Name        string
	Description string
	Run         func(
		ctx context.Context,
		w io.Writer,
		config TestConfig,
	) (*duet.ConvergenceResult, error)
}

// RunScenario wires a service around the scenario's template and
// generators, runs one session with full logging, prints the outcome, and
// returns the result. The error is non-nil when the session cannot start,
// falls back, or stops for a reason the scenario does not accept.
func RunScenario(
	ctx context.Context,
	w io.Writer,
	config TestConfig,
	scenario ScenarioConfig,
) (*duet.ConvergenceResult, error) {
	PrintHeader(w, scenario.HeaderTitle)

	store := duet.NewStore().Register(scenario.Template)
	registry := models.NewRegistry().
		Register("writer", scenario.Writer).
		Register("collaborator", scenario.Collaborator)

	svc := service.New(store, registry).
		WithSchemaRetries(config.SchemaRetries).
		WithTimeout(config.Timeout).
		RegisterHook(loggers.NewLoggerHookWithWriter(w))
	if config.LogWriter != nil {
		svc.RegisterHook(loggers.NewLoggerHookWithWriter(config.LogWriter))
	}
	if scenario.Clock != nil {
		svc.WithClock(scenario.Clock)
	}

	result, err := svc.Converge(ctx, duet.SessionInputs{
		Idea:       scenario.Idea,
		Context:    scenario.Context,
		TemplateID: scenario.Template.Name,
		Writer: duet.Binding{
			Generator: "writer",
			Model:     scenario.WriterModel,
		},
		Collaborator: duet.Binding{
			Generator: "collaborator",
			Model:     scenario.CollaboratorModel,
		},
		MaxRounds:      scenario.MaxRounds,
		ScoreThreshold: scenario.ScoreThreshold,
		Client:         scenario.Name,
	})
	if err != nil {
		return nil, err
	}

	PrintSection(w, "OUTCOME")
	fmt.Fprintf(w, "Stop reason: %s after %d round(s)\n",
		result.StopReason, len(result.Rounds))

	if result.Err != nil {
		return result, fmt.Errorf("session fell back: %w", result.Err)
	}
	if !stopAccepted(result.StopReason, scenario.ExpectStop) {
		return result, fmt.Errorf("unexpected stop reason %s", result.StopReason)
	}
	return result, nil
}

func stopAccepted(reason duet.StopReason, accepted []duet.StopReason) bool {
	if len(accepted) == 0 {
		return reason != duet.StopErrorFallback
	}
	for _, r := range accepted {
		if r == reason {
			return true
		}
	}
	return false
}

// CreateLiveGenerator builds an OpenAI-backed generator from the
// environment. It returns an error when LiveKeyEnv is unset; test callers
// typically skip on that error.
func CreateLiveGenerator() (duet.Generator, error) {
	key := os.Getenv(LiveKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%s not set", LiveKeyEnv)
	}
	return models.NewOpenAI(key)
}

// PrintHeader prints a banner title.
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 80))
}

// PrintSection prints a section divider.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
}
