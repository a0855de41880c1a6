// Package email contains an end-to-end convergence scenario for a product
// launch email: a scripted Writer whose drafts improve each round and a
// scripted Collaborator whose critique converges on round three, running
// over the YAML template fixture in testdata.
package email

import (
	_ "embed"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/internal/tt"
)

//go:embed testdata/email.yaml
var emailTemplateYAML []byte

// EmailTemplate parses the embedded YAML template fixture.
func EmailTemplate() (*duet.Template, error) {
	return duet.ParseTemplate(emailTemplateYAML)
}

// -------------------------------------------------------------------------
// Scripted drafts
// -------------------------------------------------------------------------

// draftVague is the Writer's first attempt: correct shape, no substance.
const draftVague = `Subject: Big news from Lumen Analytics

Hi there,

We are excited to announce that we have launched some major improvements to our dashboard product. The new version is much faster and has several new features that we think you will love.

Check it out when you get a chance.

Best,
The Lumen Team`

// draftConcrete fixes round one's critique: named product, launch date,
// numbers, and a feature list.
const draftConcrete = `Subject: Lumen Dashboards 2.0 is live

Hi {{first_name}},

Lumen Dashboards 2.0 launched today, October 14. Dashboards now load in under two seconds, and you can share any view with a public link.

Three things to try first:
- Public share links for any dashboard
- Saved filters that follow you across devices
- A new uptime view for your whole fleet

Log in and open any dashboard to see the new layout.

Best,
The Lumen Team`

// draftFinal additionally answers what happens to existing dashboards.
const draftFinal = `Subject: Lumen Dashboards 2.0 is live

Hi {{first_name}},

Lumen Dashboards 2.0 launched today, October 14. Dashboards now load in under two seconds, and you can share any view with a public link. Your existing dashboards were upgraded in place; nothing moves and no links break.

Three things to try first:
- Public share links for any dashboard
- Saved filters that follow you across devices
- A new uptime view for your whole fleet

Log in and open any dashboard to see the new layout.

Best,
The Lumen Team`

// openQuestion is raised in round one and never answered by a later round,
// so it must surface in the result's unresolved set.
const openQuestion = "Is the sub-two-second load time audited, or should the claim be hedged?"

// -------------------------------------------------------------------------
// EmailFixture
// -------------------------------------------------------------------------

// EmailFixture provides the scripted generators for the launch-email
// scenario. The Collaborator's three replies deliberately arrive in three
// different wrappings (fenced, bare, prose-wrapped) so the scenario runs
// the whole extraction pipeline, not just the happy parse.
type EmailFixture struct {
	Writer       *tt.MockGenerator
	Collaborator *tt.MockGenerator
}

// NewEmailFixture creates a fixture scripted for a three-round session
// that converges with THRESHOLD_MET.
func NewEmailFixture() *EmailFixture {
	writer := tt.NewMockGenerator().
		WithName("scripted-writer").
		AddResponse(draftVague, 420, 160).
		AddResponse(draftConcrete, 540, 180).
		AddResponse(draftFinal, 610, 175)

	roundOne := tt.FeedbackJSON(duet.Feedback{
		Score: 6,
		Ready: false,
		MustFix: []string{
			`Name the product and the launch date instead of "big news" and "major improvements"`,
			`Replace "much faster" and "several new features" with numbers and feature names`,
		},
		ShouldImprove: []string{
			"Address the reader by first name",
		},
		Questions: []string{openQuestion},
		Patches: []duet.Patch{
			{
				Path:      "subject line",
				Operation: duet.PatchReplace,
				Content:   "Lumen Dashboards 2.0 is live",
			},
		},
	})

	roundTwo := tt.FeedbackJSON(duet.Feedback{
		Score: 7.5,
		Ready: false,
		MustFix: []string{
			"State what happens to existing dashboards during the upgrade",
		},
		ShouldImprove: []string{
			"Keep the closing to a single call to action",
		},
	})

	roundThree := tt.FeedbackJSON(duet.Feedback{
		Score: 9,
		Ready: true,
	})

	collaborator := tt.NewMockGenerator().
		WithName("scripted-collaborator").
		AddResponse("```json\n"+roundOne+"\n```", 820, 95).
		AddResponse(roundTwo, 880, 60).
		AddResponse(
			"Here is my final assessment.\n\n"+roundThree+
				"\n\nNice work; this is ready to send.",
			910, 25,
		)

	return &EmailFixture{
		Writer:       writer,
		Collaborator: collaborator,
	}
}
