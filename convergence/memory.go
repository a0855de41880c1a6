package convergence

import (
	"fmt"
	"strings"

	"github.com/rickchristie/duet"
)

const (
	// historyWindow is how many trailing rounds appear in the score
	// history block.
	historyWindow = 3

	// resolvedCap is the maximum number of previously resolved must-fix
	// items carried into the revision prompt.
	resolvedCap = 3
)

// Compress summarizes completed rounds into a compact plain-text block for
// the writer's revision prompt. It returns "" when fewer than two rounds
// exist, because a single round has no trajectory worth repeating back.
//
// The summary has two parts: a score history over the last three rounds,
// and up to three must-fix items that appeared in an earlier round but are
// absent from the latest one. Listing those keeps the writer from undoing
// fixes it already made. Item comparison is exact text equality; a
// rephrased item counts as new.
func Compress(rounds []*duet.Round) string {
	if len(rounds) < 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Score history:\n")
	start := len(rounds) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, r := range rounds[start:] {
		fmt.Fprintf(&b, "- Round %d: score %g", r.RoundNum, r.Feedback.Score)
		if r.Feedback.Ready {
			b.WriteString(" (ready)")
		}
		b.WriteString("\n")
	}

	resolved := resolvedMustFix(rounds)
	if len(resolved) > 0 {
		b.WriteString("\nMust-fix items resolved in earlier rounds (do not reintroduce these problems):\n")
		for _, item := range resolved {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// resolvedMustFix collects must-fix items raised in earlier rounds that no
// longer appear in the latest round's feedback, most recent first, capped
// at resolvedCap.
func resolvedMustFix(rounds []*duet.Round) []string {
	latest := map[string]bool{}
	for _, item := range rounds[len(rounds)-1].Feedback.MustFix {
		latest[item] = true
	}

	var resolved []string
	seen := map[string]bool{}
	for i := len(rounds) - 2; i >= 0 && len(resolved) < resolvedCap; i-- {
		for _, item := range rounds[i].Feedback.MustFix {
			if latest[item] || seen[item] {
				continue
			}
			seen[item] = true
			resolved = append(resolved, item)
			if len(resolved) == resolvedCap {
				break
			}
		}
	}
	return resolved
}
