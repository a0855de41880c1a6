package email

import (
	"context"
	"io"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/integrationtest/testutil"
)

const (
	launchIdea = "Announce Lumen Dashboards 2.0 to existing customers"

	launchContext = "Launch date October 14. Headline improvements: " +
		"sub-two-second loads, public share links, saved filters, fleet " +
		"uptime view. Existing dashboards upgrade in place."
)

// RunLaunchEmailScenario runs the scripted product-launch email scenario:
// three rounds converging with THRESHOLD_MET over the testdata template.
func RunLaunchEmailScenario(
	ctx context.Context,
	w io.Writer,
	config testutil.TestConfig,
) (*duet.ConvergenceResult, error) {
	fixture := NewEmailFixture()
	tpl, err := EmailTemplate()
	if err != nil {
		return nil, err
	}

	return testutil.RunScenario(ctx, w, config, testutil.ScenarioConfig{
		Name:              "email-launch",
		HeaderTitle:       "PRODUCT LAUNCH EMAIL SCENARIO",
		Idea:              launchIdea,
		Context:           launchContext,
		Template:          tpl,
		Writer:            fixture.Writer,
		Collaborator:      fixture.Collaborator,
		WriterModel:       "scripted-writer",
		CollaboratorModel: "scripted-collaborator",
		ExpectStop:        []duet.StopReason{duet.StopThresholdMet},
	})
}

// RunLiveLaunchEmailScenario runs the same scenario against a real OpenAI
// model on both roles. Requires DUET_TEST_OPENAI_KEY.
func RunLiveLaunchEmailScenario(
	ctx context.Context,
	w io.Writer,
	config testutil.TestConfig,
) (*duet.ConvergenceResult, error) {
	gen, err := testutil.CreateLiveGenerator()
	if err != nil {
		return nil, err
	}
	tpl, err := EmailTemplate()
	if err != nil {
		return nil, err
	}

	return testutil.RunScenario(ctx, w, config, testutil.ScenarioConfig{
		Name:              "email-launch-live",
		HeaderTitle:       "PRODUCT LAUNCH EMAIL SCENARIO (LIVE)",
		Idea:              launchIdea,
		Context:           launchContext,
		Template:          tpl,
		Writer:            gen,
		Collaborator:      gen,
		WriterModel:       duet.ModelOpenAIGPT41Mini,
		CollaboratorModel: duet.ModelOpenAIGPT41Mini,
	})
}

// GetEmailTestCases returns the email scenarios for the CLI menu.
func GetEmailTestCases() []testutil.TestCase {
	return []testutil.TestCase{
		{
			Name: "Launch Email (scripted)",
			Description: "Three scripted rounds converging on a " +
				"product launch email",
			Run: RunLaunchEmailScenario,
		},
		{
			Name: "Launch Email (live)",
			Description: "Same scenario with a real model on both " +
				"roles (needs " + testutil.LiveKeyEnv + ")",
			Run: RunLiveLaunchEmailScenario,
		},
	}
}
