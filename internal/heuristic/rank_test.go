package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susumOyaji/quotelens/internal/model"
)

func TestRank_DedupesKeepingHigherScore(t *testing.T) {
	in := []model.RankedCandidate{
		{Text: "2,345.5", Score: 50, Reason: "generic"},
		{Text: "2,345.5", Score: 150, Reason: "specific"},
		{Text: "12.0", Score: 50, Reason: "generic"},
	}

	out := Rank(in)

	require.Len(t, out, 2)
	assert.Equal(t, "2,345.5", out[0].Text)
	assert.Equal(t, 150, out[0].Score)
	assert.Equal(t, "specific", out[0].Reason)
}

func TestRank_ScoreTieKeepsFirstSeen(t *testing.T) {
	in := []model.RankedCandidate{
		{Text: "100", Score: 50, Reason: "first"},
		{Text: "100", Score: 50, Reason: "second"},
	}

	out := Rank(in)

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Reason)
}

func TestRank_OrderingIsDeterministic(t *testing.T) {
	in := []model.RankedCandidate{
		{Text: "b", Score: 50},
		{Text: "a", Score: 50},
		{Text: "c", Score: 90},
	}

	out := Rank(in)

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].Text)
	assert.Equal(t, "a", out[1].Text, "equal scores tie-break by ascending text")
	assert.Equal(t, "b", out[2].Text)

	// Re-ranking the same input must give the identical order.
	again := Rank(in)
	assert.Equal(t, out, again)
}

func TestRank_Empty(t *testing.T) {
	assert.Nil(t, Rank(nil))
	assert.Nil(t, Rank([]model.RankedCandidate{}))
}
