package extract

import "strings"

// instrumentKind selects the pipeline variant. Instrument-type branching
// lives here and nowhere else: the locator, scanner and selector packages
// are all layout-agnostic.
type instrumentKind int

const (
	kindEquity instrumentKind = iota
	kindIndex
	kindCurrency
)

// kindOf classifies a requested code by its shape.
func kindOf(code string) instrumentKind {
	switch {
	case strings.HasPrefix(code, "^"):
		return kindIndex
	case strings.HasSuffix(code, "=X") || strings.HasSuffix(code, "=FX"):
		return kindCurrency
	default:
		return kindEquity
	}
}

// quoteURL builds the quote page URL. Codes already carrying a market
// qualifier, an index caret, or a currency pair marker are used as-is;
// bare equity codes default to the Tokyo market suffix.
func quoteURL(base, code string) string {
	if strings.HasPrefix(code, "^") || strings.Contains(code, "=") ||
		strings.HasSuffix(code, ".T") || strings.HasSuffix(code, ".O") {
		return base + "/quote/" + code + "/"
	}
	return base + "/quote/" + code + ".T/"
}

// currencyVariants returns the rate page code ("=X") and the quote page
// code ("=FX") for a currency pair, whichever form was requested.
func currencyVariants(code string) (rateCode, changeCode string) {
	if strings.HasSuffix(code, "=FX") {
		rateCode = strings.TrimSuffix(code, "=FX") + "=X"
	} else {
		rateCode = code
	}
	changeCode = strings.TrimSuffix(rateCode, "=X") + "=FX"
	return rateCode, changeCode
}
