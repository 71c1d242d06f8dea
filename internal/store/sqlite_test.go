package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susumOyaji/quotelens/internal/model"
)

func openTestStore(t *testing.T) *SelectorStore {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSelectorStore_SaveAndGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Save(ctx, SelectorRecord{
		Code:       "7203.T",
		Field:      model.FieldPrice,
		Query:      "span[class*='_StyledNumber__value']",
		MatchCount: 1,
		SampleText: "2,345.5",
	})
	require.NoError(t, err)

	recs, err := st.Get(ctx, "7203.T")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].ID)
	assert.Equal(t, model.FieldPrice, recs[0].Field)
	assert.Equal(t, "span[class*='_StyledNumber__value']", recs[0].Query)
	assert.Equal(t, "2,345.5", recs[0].SampleText)
	assert.False(t, recs[0].UpdatedAt.IsZero())
}

func TestSelectorStore_UpsertReplacesPerCodeField(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, SelectorRecord{
		Code: "7203.T", Field: model.FieldPrice, Query: "span.old", MatchCount: 3,
	}))
	require.NoError(t, st.Save(ctx, SelectorRecord{
		Code: "7203.T", Field: model.FieldPrice, Query: "span.new", MatchCount: 1,
	}))

	recs, err := st.Get(ctx, "7203.T")
	require.NoError(t, err)
	require.Len(t, recs, 1, "one row per (code, field)")
	assert.Equal(t, "span.new", recs[0].Query)
	assert.Equal(t, 1, recs[0].MatchCount)
}

func TestSelectorStore_GetOrdersByField(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, SelectorRecord{Code: "X", Field: model.FieldUpdateTime, Query: "time"}))
	require.NoError(t, st.Save(ctx, SelectorRecord{Code: "X", Field: model.FieldName, Query: "h1"}))
	require.NoError(t, st.Save(ctx, SelectorRecord{Code: "X", Field: model.FieldPrice, Query: "span"}))

	recs, err := st.Get(ctx, "X")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, model.FieldName, recs[0].Field)
	assert.Equal(t, model.FieldPrice, recs[1].Field)
	assert.Equal(t, model.FieldUpdateTime, recs[2].Field)
}

func TestSelectorStore_GetUnknownCode(t *testing.T) {
	st := openTestStore(t)

	recs, err := st.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Empty(t, recs)
}
