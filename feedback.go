package duet

// Feedback is the Collaborator's structured critique of one draft. It is the
// target shape of the repair pipeline: the json tags define the wire format
// and, together with the description tags, the JSON Schema the model is both
// shown and validated against (see schema.For).
//
// Score and Ready are required; everything else is optional. Score uses a
// 1-10 scale by convention but is NOT clamped; the stop evaluator compares
// whatever the Collaborator returned.
type Feedback struct {
	// Score is the overall quality score for the draft.
	Score float64 `json:"score" description:"Overall quality score for the draft, 1 (unusable) to 10 (ship as-is). Score against the rubric, weighing each criterion by its weight."`

	// Ready reports whether the draft could ship without further revision.
	Ready bool `json:"ready" description:"True only if the draft needs no further revision."`

	// MustFix lists defects that block readiness, in priority order.
	MustFix []string `json:"mustFix,omitempty" description:"Defects that must be corrected before the draft can be ready, most important first."`

	// ShouldImprove lists non-blocking suggestions, in priority order.
	ShouldImprove []string `json:"shouldImprove,omitempty" description:"Improvements worth making but not blocking readiness."`

	// Questions are open questions for the Writer. They accumulate across
	// rounds in the session's unresolved-question set.
	Questions []string `json:"questions,omitempty" description:"Open questions that block a confident assessment. Ask only what the draft itself cannot answer."`

	// Patches are advisory edit suggestions. They are rendered into the
	// revision prompt for the Writer to consider; nothing ever applies them
	// mechanically.
	Patches []Patch `json:"patches,omitempty" description:"Concrete suggested edits. The writer decides how to incorporate them."`

	// NoMaterialImprovements reports that further rounds are unlikely to
	// improve the draft. It counts as stagnation immediately.
	NoMaterialImprovements bool `json:"noMaterialImprovements,omitempty" description:"True if further revision rounds are unlikely to materially improve the draft."`

	// ExplicitStop, when it names a canonical stop reason (THRESHOLD_MET,
	// NO_IMPROVEMENT, MAX_ROUNDS, ERROR_FALLBACK), overrides all other stop
	// logic for the round. Invalid values are ignored.
	ExplicitStop string `json:"explicitStop,omitempty" description:"Set to a stop reason tag (THRESHOLD_MET, NO_IMPROVEMENT, MAX_ROUNDS, ERROR_FALLBACK) to force the session to stop with that reason. Leave empty otherwise."`
}

// PatchOperation is the kind of edit a Patch suggests.
type PatchOperation string

const (
	PatchReplace PatchOperation = "replace"
	PatchAdd     PatchOperation = "add"
	PatchRemove  PatchOperation = "remove"
)

// Patch is one advisory edit suggestion from the Collaborator.
//
// Path is an opaque locator ("subject line", "paragraph 2"); duet assigns it
// no structure. Patches are shown to the Writer as operation + path +
// content and are never applied programmatically.
type Patch struct {
	// Path locates the section the patch refers to. Opaque text.
	Path string `json:"path" description:"Which part of the draft the edit targets, e.g. 'subject line' or 'closing paragraph'."`

	// Operation is one of replace, add, remove.
	Operation PatchOperation `json:"operation" description:"One of: replace, add, remove."`

	// Content is the suggested text. May be empty for remove operations.
	Content string `json:"content,omitempty" description:"The suggested replacement or addition. Empty for remove."`
}
