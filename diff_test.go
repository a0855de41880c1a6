package duet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftDiff(t *testing.T) {
	diff, err := DraftDiff("Subject: Hello\n\nBody one.\n", "Subject: Hello\n\nBody two.\n")
	require.NoError(t, err)

	assert.Contains(t, diff, "-Body one.")
	assert.Contains(t, diff, "+Body two.")
}

func TestDraftDiff_Identical(t *testing.T) {
	diff, err := DraftDiff("same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}
