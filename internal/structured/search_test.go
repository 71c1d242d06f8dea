package structured

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/susumOyaji/quotelens/internal/model"
)

func TestFindObjectPaths_DocumentOrder(t *testing.T) {
	tree := gjson.Parse(`{
		"first": {"code": "1", "name": "a"},
		"second": {
			"inner": {"code": "2", "name": "b"}
		},
		"third": [
			{"code": "3", "name": "c"},
			{"noCode": true},
			{"code": "4", "name": "d"}
		]
	}`)

	found := FindObjectPaths(tree, []string{"code", "name"})

	require.Len(t, found, 4)
	assert.Equal(t, []string{"first"}, found[0].Path)
	assert.Equal(t, []string{"second", "inner"}, found[1].Path)
	assert.Equal(t, []string{"third", "0"}, found[2].Path)
	assert.Equal(t, []string{"third", "2"}, found[3].Path)
}

func TestFindObjectPaths_RootObjectCounts(t *testing.T) {
	tree := gjson.Parse(`{"code": "7203", "name": "Toyota"}`)

	found := FindObjectPaths(tree, []string{"code", "name"})

	require.Len(t, found, 1)
	assert.Empty(t, found[0].Path)
}

func TestFindObjectPaths_MissingKeyExcludes(t *testing.T) {
	tree := gjson.Parse(`{"a": {"code": "1"}, "b": {"name": "x"}}`)

	found := FindObjectPaths(tree, []string{"code", "name"})

	assert.Empty(t, found)
}

func TestFindObjectPaths_DeepNesting(t *testing.T) {
	// A payload nested far beyond any realistic page must not blow the
	// stack; the traversal is iterative.
	var b strings.Builder
	const depth = 50000
	for i := 0; i < depth; i++ {
		b.WriteString(`{"next":`)
	}
	b.WriteString(`{"code":"x","name":"y"}`)
	for i := 0; i < depth; i++ {
		b.WriteString(`}`)
	}

	found := FindObjectPaths(gjson.Parse(b.String()), []string{"code", "name"})

	require.Len(t, found, 1)
	assert.Len(t, found[0].Path, depth)
}

func TestFindObjectPaths_PathsAreIndependent(t *testing.T) {
	tree := gjson.Parse(`{
		"parent": {
			"a": {"code": "1", "name": "x"},
			"b": {"code": "2", "name": "y"}
		}
	}`)

	found := FindObjectPaths(tree, []string{"code", "name"})

	require.Len(t, found, 2)
	// Mutating one path must not bleed into the other.
	found[0].Path[0] = "mutated"
	assert.Equal(t, "parent", found[1].Path[0])
}

func TestLocateGeneric_MatchesSuffixStripped(t *testing.T) {
	tree := gjson.Parse(`{
		"anything": {
			"board": {
				"code": "7203",
				"name": "トヨタ自動車(株)",
				"price": "2,345.5",
				"priceChange": "+12.0",
				"priceChangeRate": "+0.51",
				"priceDateTime": "15:00"
			}
		}
	}`)

	rec, ok := LocateGeneric(tree, "7203.T")

	require.True(t, ok)
	assert.Equal(t, "7203.T", rec.Code)
	assert.Equal(t, "トヨタ自動車(株)", rec.Name)
	assert.Equal(t, "2,345.5", rec.Price)
	assert.Equal(t, "15:00", rec.UpdateTime)
	assert.Equal(t, model.SourceGeneric, rec.Source)
}

func TestLocateGeneric_SkipsWrongCode(t *testing.T) {
	tree := gjson.Parse(`{
		"a": {"code": "9984", "name": "SoftBank", "price": "1"},
		"b": {"code": "7203", "name": "Toyota", "price": "2"}
	}`)

	rec, ok := LocateGeneric(tree, "7203.T")

	require.True(t, ok)
	assert.Equal(t, "Toyota", rec.Name)
}

func TestLocateGeneric_NoMatch(t *testing.T) {
	tree := gjson.Parse(`{"a": {"code": "9984", "name": "SoftBank"}}`)

	_, ok := LocateGeneric(tree, "7203.T")

	assert.False(t, ok)
}

func TestLocateGeneric_WideTree(t *testing.T) {
	// Many sibling candidates; first matching object in document order wins.
	var parts []string
	for i := 0; i < 100; i++ {
		parts = append(parts, fmt.Sprintf(`{"code":"c%d","name":"n%d","price":"%d"}`, i, i, i))
	}
	tree := gjson.Parse(`{"items":[` + strings.Join(parts, ",") + `]}`)

	rec, ok := LocateGeneric(tree, "c42")

	require.True(t, ok)
	assert.Equal(t, "42", rec.Price)
}
