package convergence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/duet"
)

func round(num int, score float64, ready bool, mustFix ...string) *duet.Round {
	return &duet.Round{
		RoundNum: num,
		Draft:    "draft",
		Feedback: &duet.Feedback{Score: score, Ready: ready, MustFix: mustFix},
	}
}

func TestCompress_FewerThanTwoRounds(t *testing.T) {
	assert.Equal(t, "", Compress(nil))
	assert.Equal(t, "", Compress([]*duet.Round{round(1, 5, false)}))
}

func TestCompress_ScoreHistory(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 5, false),
		round(2, 6.5, true),
	})

	expected := "Score history:\n" +
		"- Round 1: score 5\n" +
		"- Round 2: score 6.5 (ready)"
	assert.Equal(t, expected, out)
}

func TestCompress_HistoryWindowIsLastThree(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 3, false),
		round(2, 4, false),
		round(3, 5, false),
		round(4, 6, false),
		round(5, 7, false),
	})

	assert.NotContains(t, out, "Round 1:")
	assert.NotContains(t, out, "Round 2:")
	assert.Contains(t, out, "- Round 3: score 5")
	assert.Contains(t, out, "- Round 4: score 6")
	assert.Contains(t, out, "- Round 5: score 7")
}

func TestCompress_ResolvedMustFix(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 5, false, "fix the subject line", "shorten the intro"),
		round(2, 6, false, "shorten the intro", "add a deadline"),
	})

	// "fix the subject line" vanished from the latest round, so it was
	// resolved. "shorten the intro" is still open and must not appear.
	assert.Contains(t, out, "resolved in earlier rounds")
	assert.Contains(t, out, "- fix the subject line")
	assert.NotContains(t, out, "- shorten the intro")
	assert.NotContains(t, out, "- add a deadline")
}

func TestCompress_NoResolvedBlockWhenNothingResolved(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 5, false, "fix the subject line"),
		round(2, 6, false, "fix the subject line"),
	})

	assert.NotContains(t, out, "resolved in earlier rounds")
}

func TestCompress_ResolvedCappedAtThreeMostRecent(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 4, false, "older item one", "older item two"),
		round(2, 5, false, "newer item one", "newer item two"),
		round(3, 6, false),
	})

	// Most recent rounds win the cap: both round-2 items, then one
	// round-1 item.
	assert.Contains(t, out, "- newer item one")
	assert.Contains(t, out, "- newer item two")
	assert.Contains(t, out, "- older item one")
	assert.NotContains(t, out, "- older item two")
}

// Resolution is exact text equality. A rephrased finding counts as a new
// one, and the original phrasing counts as resolved.
func TestCompress_RephrasedItemCountsAsResolved(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 5, false, "tighten the CTA"),
		round(2, 6, false, "tighten the call to action"),
	})

	assert.Contains(t, out, "- tighten the CTA")
}

func TestCompress_DuplicateItemAcrossRoundsListedOnce(t *testing.T) {
	out := Compress([]*duet.Round{
		round(1, 4, false, "fix the greeting"),
		round(2, 5, false, "fix the greeting"),
		round(3, 6, false),
	})

	assert.Equal(t, 1, strings.Count(out, "- fix the greeting"))
}
