package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susumOyaji/quotelens/internal/model"
)

func TestValid_Price(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"2,345.5", true},
		{"38100.21", true},
		{"0", true},
		{"１２３４", true}, // full-width digits
		{"+12.0", false},  // signed text belongs to change
		{"-12.0", false},
		{"N/A", false},
		{"", false},
		{"price", false},
		{"12.3.4", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(model.FieldPrice, tt.text), "price %q", tt.text)
	}
}

func TestValid_PriceChange(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"+12.0", true},
		{"-0.32", true},
		{"12.0", false},    // unsigned
		{"+0.51%", false},  // percent belongs to change rate
		{"+", false},       // sign with no digits
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(model.FieldPriceChange, tt.text), "change %q", tt.text)
	}
}

func TestValid_PriceChangeRate(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"+0.51%", true},
		{"-0.22%", true},
		{"0.5%", true},
		{"+0.51", false}, // no percent sign
		{"%", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(model.FieldPriceChangeRate, tt.text), "rate %q", tt.text)
	}
}

func TestValid_TextFields(t *testing.T) {
	assert.True(t, Valid(model.FieldName, "トヨタ自動車(株)"))
	assert.False(t, Valid(model.FieldName, "   "))
	assert.True(t, Valid(model.FieldUpdateTime, "15:00"))
}

func TestValidatePatterns_BuiltinsCompile(t *testing.T) {
	require.NoError(t, ValidatePatterns(AllPatternSets()...))
}

func TestValidatePatterns_RejectsMalformed(t *testing.T) {
	bad := PatternSet{Fields: map[model.Field][]Pattern{
		model.FieldPrice: {{Selector: "span[class*='unterminated", Score: 10}},
	}}

	err := ValidatePatterns(bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}
