package duet

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DraftDiff renders a unified diff between two draft versions. The loop uses
// it for DraftDiffEvent after each revision; it is also handy in tests for
// readable failure output. Returns "" when the drafts are identical.
func DraftDiff(before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "draft(before)",
		ToFile:   "draft(after)",
		Context:  2,
	})
	if err != nil {
		return "", fmt.Errorf("diff drafts: %w", err)
	}
	return diff, nil
}
