package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_IDAnchorFirst(t *testing.T) {
	body := `<html><body>
		<span id="current-price">2,345.5</span>
		<span>other</span>
	</body></html>`

	descs, err := Synthesize(body, "2,345.5")

	require.NoError(t, err)
	require.NotEmpty(t, descs)
	assert.Equal(t, "#current-price", descs[0].Query)
	assert.True(t, descs[0].Valid)
	assert.GreaterOrEqual(t, descs[0].MatchCount, 1)
}

func TestSynthesize_StableClassFragmentForGeneratedNames(t *testing.T) {
	body := `<html><body>
		<span class="_StyledNumber__value_xj2p1_11">2,345.5</span>
	</body></html>`

	descs, err := Synthesize(body, "2,345.5")

	require.NoError(t, err)
	require.NotEmpty(t, descs)

	var queries []string
	for _, d := range descs {
		queries = append(queries, d.Query)
	}
	assert.Contains(t, queries, "span[class*='_StyledNumber__value']")
}

func TestSynthesize_EveryResultRelocatesTarget(t *testing.T) {
	body := `<html><body>
		<div class="board">
			<span class="val">38,100.21</span>
			<span class="val">other text</span>
		</div>
	</body></html>`

	descs, err := Synthesize(body, "38,100.21")

	require.NoError(t, err)
	require.NotEmpty(t, descs)
	for _, d := range descs {
		assert.True(t, d.Valid, "query %s", d.Query)
		found := false
		for _, s := range d.Samples {
			if strings.Contains(s.Text, "38,100.21") {
				found = true
			}
		}
		assert.True(t, found, "query %s samples must include target", d.Query)
	}
}

func TestSynthesize_TargetAbsent(t *testing.T) {
	descs, err := Synthesize(`<html><body><p>nothing</p></body></html>`, "999.99")

	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestSynthesize_EmptyTarget(t *testing.T) {
	descs, err := Synthesize(`<html><body><p>x</p></body></html>`, "   ")

	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestStableClassFragment(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"_StyledNumber__value_xj2p1_11", "_StyledNumber__value"},
		{"_PriceBoard__price_abc1", "_PriceBoard__price"},
		{"plain", "plain"},
		{"ab", ""},          // too short after trimming
		{"x1_y2_z3", ""},    // every segment carries digits
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StableClassFragment(tt.class), "class %q", tt.class)
	}
}
