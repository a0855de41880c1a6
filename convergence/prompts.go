package convergence

import (
	"bytes"
	"text/template"

	"github.com/rickchristie/duet"
)

// DraftPromptData is the data passed to the draft template. Custom
// templates installed with Controller.WithDraftTemplate receive the same
// struct.
type DraftPromptData struct {
	// Idea is the user's request, verbatim.
	Idea string

	// Context is optional supporting material, "" when absent.
	Context string

	// Today is the current date in YYYY-MM-DD, from the session clock.
	Today string
}

// FeedbackPromptData is the data passed to the feedback template.
type FeedbackPromptData struct {
	Idea    string
	Context string

	// Draft is the text under review.
	Draft string

	// Rubric is the template's scoring dimensions.
	Rubric []duet.RubricCriterion

	// Questions are unresolved questions from earlier rounds. Empty on
	// round 1.
	Questions []string

	// RequireQuestionsResolved and RequireAllSectionsPresent mirror the
	// template policy. They only shape the reviewing guidance; the stop
	// evaluator never looks at them.
	RequireQuestionsResolved  bool
	RequireAllSectionsPresent bool

	RoundNum  int
	MaxRounds int

	// SchemaJSON is the JSON Schema the reply must satisfy, pretty-printed.
	SchemaJSON string
}

// RevisionPromptData is the data passed to the revision template.
type RevisionPromptData struct {
	Idea    string
	Context string
	Draft   string

	// MustFix and ShouldImprove come from the latest feedback, in the
	// collaborator's order.
	MustFix       []string
	ShouldImprove []string

	// Patches are the collaborator's suggested edits. They are rendered
	// as suggestions for the writer to weigh, never applied mechanically.
	Patches []duet.Patch

	// Questions is the full unresolved set, including this round's.
	Questions []string

	// Memory is the cross-round summary from Compress, "" early on.
	Memory string
}

const draftTemplateText = `Today is {{.Today}}.

Write a complete first draft for the request below.

<idea>
{{.Idea}}
</idea>
{{- if .Context}}

<supporting_context>
{{.Context}}
</supporting_context>
{{- end}}

Output only the draft text itself. No preamble, no commentary, no code fences.`

const feedbackTemplateText = `You are reviewing a draft. Score it honestly against the rubric; do not
inflate scores to be agreeable. This is round {{.RoundNum}} of at most {{.MaxRounds}}.

The draft was written for this request:

<idea>
{{.Idea}}
</idea>
{{- if .Context}}

<supporting_context>
{{.Context}}
</supporting_context>
{{- end}}

<draft>
{{.Draft}}
</draft>

Rubric, weighted:
{{- range .Rubric}}
- {{.Label}} (weight {{.Weight}}): {{.Description}}
{{- end}}
{{- if .Questions}}

Questions you raised in earlier rounds that the draft has not yet resolved.
Factor them into your score and repeat any that still matter:
{{- range .Questions}}
- {{.}}
{{- end}}
{{- end}}
{{- if .RequireQuestionsResolved}}

Do not set "ready" while the draft leaves open questions unresolved.
{{- end}}
{{- if .RequireAllSectionsPresent}}

Do not set "ready" unless every section the request calls for is present.
{{- end}}

Reply with a single JSON object conforming to the schema below. No prose
before or after the JSON.

{{.SchemaJSON}}`

const revisionTemplateText = `Revise the draft below using the feedback. Preserve everything that was not
flagged; change only what the feedback calls out.

The draft answers this request:

<idea>
{{.Idea}}
</idea>
{{- if .Context}}

<supporting_context>
{{.Context}}
</supporting_context>
{{- end}}

<draft>
{{.Draft}}
</draft>
{{- if .MustFix}}

Must fix, in priority order:
{{- range .MustFix}}
- {{.}}
{{- end}}
{{- end}}
{{- if .ShouldImprove}}

Should improve, if it does not conflict with the fixes:
{{- range .ShouldImprove}}
- {{.}}
{{- end}}
{{- end}}
{{- if .Patches}}

Suggested edits. Treat them as suggestions: apply the ones that help,
adapt or skip the ones that do not:
{{- range .Patches}}
- [{{.Operation}}] {{.Path}}: {{.Content}}
{{- end}}
{{- end}}
{{- if .Questions}}

Open questions. Resolve each one inside the draft, or state the assumption
you are making inline:
{{- range .Questions}}
- {{.}}
{{- end}}
{{- end}}
{{- if .Memory}}

Session so far:
{{.Memory}}
{{- end}}

Output only the complete revised draft. No preamble, no commentary, no
code fences.`

// Default prompt templates. A Controller starts with these; install
// replacements with WithDraftTemplate, WithFeedbackTemplate, and
// WithRevisionTemplate.
var (
	DefaultDraftTemplate    = template.Must(template.New("draft").Parse(draftTemplateText))
	DefaultFeedbackTemplate = template.Must(template.New("feedback").Parse(feedbackTemplateText))
	DefaultRevisionTemplate = template.Must(template.New("revision").Parse(revisionTemplateText))
)

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
