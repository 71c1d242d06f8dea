package heuristic

import (
	"strings"

	"github.com/susumOyaji/quotelens/internal/model"
)

// Pattern is one structural query tried for a field, with the base score
// its matches receive. Lists are ordered most specific first.
type Pattern struct {
	Selector string
	Score    int
	Reason   string
}

// PatternSet is the full scanning configuration for one page layout.
// New fields and patterns are additive configuration; the scan routine
// itself is layout-agnostic.
type PatternSet struct {
	Fields map[model.Field][]Pattern

	// TitleAnchor enables the title-seeded name search: the base name is
	// derived from the page title and headings are scored against it.
	TitleAnchor bool

	// CleanName, when set, is applied to raw name candidate text before
	// validation (e.g. cutting a " - site name" suffix).
	CleanName func(string) string
}

// cutDash keeps the text before a " - " separator.
func cutDash(s string) string {
	head, _, _ := strings.Cut(s, " - ")
	return strings.TrimSpace(head)
}

// EquityPatterns matches the stock quote page layout.
func EquityPatterns() PatternSet {
	return PatternSet{
		TitleAnchor: true,
		Fields: map[model.Field][]Pattern{
			model.FieldPrice: {
				{Selector: "span[class*='PriceBoard__price'] span[class*='StyledNumber__value']", Score: 150, Reason: "price board value"},
				{Selector: "[class*='price'], [class*='Price']", Score: 50, Reason: "price-like class"},
				{Selector: "span[class*='value'], div[class*='value']", Score: 50, Reason: "value-like class"},
				{Selector: "[class*='board'] span, [class*='Board'] span", Score: 50, Reason: "board child"},
				{Selector: "[data-field='regularMarketPrice']", Score: 50, Reason: "market price data field"},
				{Selector: "[class*='quote'], [class*='Quote']", Score: 50, Reason: "quote-like class"},
				{Selector: "span[class*='last'], div[class*='last']", Score: 50, Reason: "last-like class"},
				{Selector: "[class*='current'], [class*='Current']", Score: 50, Reason: "current-like class"},
			},
			model.FieldPriceChange: {
				{Selector: "[class*='PriceChangeLabel__primary']", Score: 100, Reason: "primary change label"},
			},
			model.FieldPriceChangeRate: {
				{Selector: "[class*='PriceChangeLabel__primary']", Score: 100, Reason: "primary change label"},
				{Selector: "[class*='change'], [class*='percent']", Score: 50, Reason: "change-like class"},
			},
			model.FieldUpdateTime: {
				{Selector: "ul[class*='PriceBoard__times'] time", Score: 100, Reason: "price board time"},
				{Selector: "time[class*='timestamp']", Score: 100, Reason: "timestamp element"},
			},
		},
	}
}

// IndexPatterns matches the domestic/overseas index page layout, whose
// price board uses a different component tree than equities.
func IndexPatterns() PatternSet {
	return PatternSet{
		CleanName: cutDash,
		Fields: map[model.Field][]Pattern{
			model.FieldName: {
				{Selector: "title", Score: 80, Reason: "page title"},
				{Selector: "h1", Score: 70, Reason: "page heading"},
			},
			model.FieldPrice: {
				{Selector: "div[class*='_CommonPriceBoard__priceBlock'] span[class*='_StyledNumber__value']", Score: 90, Reason: "common price board"},
				{Selector: "div[class*='_BasePriceBoard__priceInformation'] span, div[class*='_BasePriceBoard__priceInformation'] div", Score: 70, Reason: "price information block"},
			},
			model.FieldPriceChange: {
				{Selector: "span[class*='_PriceChangeLabel__primary'] span[class*='_StyledNumber__value']", Score: 90, Reason: "primary change label"},
			},
			model.FieldPriceChangeRate: {
				{Selector: "span[class*='_PriceChangeLabel__secondary'] span[class*='_StyledNumber__value']", Score: 90, Reason: "secondary change label"},
			},
			model.FieldUpdateTime: {
				{Selector: "span[class*='_Time'], time[class*='timestamp']", Score: 90, Reason: "time element"},
			},
		},
	}
}

// CurrencyRatePatterns matches the currency rate page (the "=X" variant),
// which carries identity, price and update time.
func CurrencyRatePatterns() PatternSet {
	return PatternSet{
		CleanName: cutDash,
		Fields: map[model.Field][]Pattern{
			model.FieldName: {
				{Selector: "h1", Score: 100, Reason: "page heading"},
			},
			model.FieldPrice: {
				{Selector: "div[class*='rate'] span, span[class*='price']", Score: 90, Reason: "rate block value"},
			},
			model.FieldUpdateTime: {
				{Selector: "span[class*='time'], time", Score: 90, Reason: "time element"},
			},
		},
	}
}

// CurrencyChangePatterns matches the currency quote page (the "=FX"
// variant), which carries the change and change-rate figures.
func CurrencyChangePatterns() PatternSet {
	return PatternSet{
		CleanName: cutDash,
		Fields: map[model.Field][]Pattern{
			model.FieldName: {
				{Selector: "h1", Score: 100, Reason: "page heading"},
			},
			model.FieldPriceChange: {
				{Selector: "[class*='change'], [class*='diff'], [class*='gain'], [class*='loss'], [class*='up'], [class*='down']", Score: 90, Reason: "change-like class"},
			},
			model.FieldPriceChangeRate: {
				{Selector: "[class*='change'], [class*='diff'], [class*='gain'], [class*='loss'], [class*='up'], [class*='down']", Score: 90, Reason: "change-like class"},
			},
		},
	}
}

// AllPatternSets returns every built-in set, used by the startup
// self-check.
func AllPatternSets() []PatternSet {
	return []PatternSet{
		EquityPatterns(),
		IndexPatterns(),
		CurrencyRatePatterns(),
		CurrencyChangePatterns(),
	}
}
