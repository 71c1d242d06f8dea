package heuristic

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
	"golang.org/x/text/width"

	"github.com/susumOyaji/quotelens/internal/model"
)

// Valid reports whether text is a plausible value for the field.
func Valid(field model.Field, text string) bool {
	switch field {
	case model.FieldPrice:
		return validPrice(text)
	case model.FieldPriceChange:
		return validChange(text)
	case model.FieldPriceChangeRate:
		return validChangeRate(text)
	default:
		return strings.TrimSpace(text) != ""
	}
}

// validPrice accepts digit-bearing text that, with grouping separators
// removed, parses as a non-negative decimal. Signed text is rejected so
// change figures never pollute the price list. Full-width digits are
// narrowed before parsing since localized pages render both forms.
func validPrice(text string) bool {
	if !containsDigit(text) {
		return false
	}
	if strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-") {
		return false
	}
	clean := strings.ReplaceAll(width.Narrow.String(text), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	return err == nil && v >= 0
}

// validChange accepts signed digit-bearing text without a percent sign
// (percentages belong to the change-rate field).
func validChange(text string) bool {
	if !strings.HasPrefix(text, "+") && !strings.HasPrefix(text, "-") {
		return false
	}
	return containsDigit(text) && !strings.Contains(text, "%")
}

// validChangeRate accepts text carrying a percent sign plus a sign or a
// digit.
func validChangeRate(text string) bool {
	if !strings.Contains(text, "%") {
		return false
	}
	return strings.Contains(text, "+") || strings.Contains(text, "-") || containsDigit(text)
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

// ValidatePatterns compiles every selector in the given pattern sets. It
// runs once at startup so a malformed built-in pattern fails the process
// before any request is served instead of at scan time.
func ValidatePatterns(sets ...PatternSet) error {
	for _, set := range sets {
		for field, patterns := range set.Fields {
			for _, p := range patterns {
				if _, err := cascadia.Compile(p.Selector); err != nil {
					return eris.Wrapf(err, "heuristic: invalid pattern %q for field %s", p.Selector, field)
				}
			}
		}
	}
	return nil
}
