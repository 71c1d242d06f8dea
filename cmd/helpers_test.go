package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susumOyaji/quotelens/internal/model"
)

func TestSplitCodes(t *testing.T) {
	assert.Equal(t, []string{"7203.T", "^DJI", "USDJPY=X"}, splitCodes("7203.T,^DJI,USDJPY=X"))
	assert.Equal(t, []string{"7203.T"}, splitCodes(" 7203.T , "))
	assert.Nil(t, splitCodes(""))
	assert.Nil(t, splitCodes(" , ,"))
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"price", "name"})
	require.NoError(t, err)
	assert.Equal(t, []model.Field{model.FieldPrice, model.FieldName}, fields)

	fields, err = parseFields(nil)
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = parseFields([]string{"bogus"})
	assert.Error(t, err)
}
