package heuristic

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/model"
)

// baseNameDelims cut the page title down to the instrument's base name:
// everything before the first bracket, parenthesis, or colon-like
// delimiter.
var baseNameDelims = []string{"【", "（", "(", "："}

// scannedFields are the fields the DOM scanner discovers. The instrument
// code itself is never scraped from markup; it is the request identity.
var scannedFields = []model.Field{
	model.FieldName,
	model.FieldPrice,
	model.FieldPriceChange,
	model.FieldPriceChangeRate,
	model.FieldUpdateTime,
}

// widenedFields get the generic digit-sniffing fallback pass when their
// dedicated patterns match nothing.
var widenedFields = map[model.Field]bool{
	model.FieldPrice:           true,
	model.FieldPriceChange:     true,
	model.FieldPriceChangeRate: true,
}

// Scan runs the pattern set against the document and returns the ranked
// candidate lists per field. The scanner never mutates its input; its only
// side effect is diagnostic logging.
func Scan(doc *goquery.Document, code, url string, set PatternSet, cfg ScanConfig) *model.DiscoveredFieldSet {
	out := model.NewDiscoveredFieldSet(code, url)

	for _, field := range scannedFields {
		var raw []model.RankedCandidate

		if field == model.FieldName && set.TitleAnchor {
			raw = anchoredNameScan(doc, cfg)
		} else {
			raw = patternScan(doc, field, set, cfg)
		}

		if len(raw) == 0 && widenedFields[field] {
			raw = widenScan(doc, field, cfg)
		}

		ranked := Rank(raw)
		if len(ranked) > 0 {
			out.Candidates[field] = ranked
			zap.L().Debug("heuristic: field candidates",
				zap.String("code", code),
				zap.String("field", string(field)),
				zap.Int("count", len(ranked)),
				zap.String("top", ranked[0].Text),
				zap.Int("top_score", ranked[0].Score),
			)
		}
	}

	return out
}

// patternScan applies the field's ordered pattern list.
func patternScan(doc *goquery.Document, field model.Field, set PatternSet, cfg ScanConfig) []model.RankedCandidate {
	var out []model.RankedCandidate
	for _, p := range set.Fields[field] {
		doc.Find(p.Selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if field == model.FieldName && set.CleanName != nil {
				text = set.CleanName(text)
			}
			if !Valid(field, text) {
				return
			}
			class, _ := s.Attr("class")
			score := p.Score
			if field == model.FieldPrice {
				score += priceHints(text, class, cfg)
			}
			out = append(out, model.RankedCandidate{
				Text:   text,
				Score:  score,
				Reason: fmt.Sprintf("%s (selector: %s)", p.Reason, p.Selector),
			})
		})
	}
	return out
}

// priceHints adjusts a price candidate's score from attribute and text
// shape signals: affirming class names and a thousands separator raise it,
// a code/symbol label class lowers it.
func priceHints(text, class string, cfg ScanConfig) int {
	adj := 0
	if strings.Contains(text, ",") {
		adj += cfg.ThousandsBonus
	}
	if strings.Contains(class, "value") {
		adj += cfg.ValueClassBonus
	}
	if strings.Contains(class, "large") {
		adj += cfg.LargeClassBonus
	}
	if strings.Contains(class, "code") || strings.Contains(class, "symbol") {
		adj -= cfg.CodeClassPenalty
	}
	return adj
}

// anchoredNameScan seeds the name search with the page title: the text
// before the first delimiter becomes the base name, and headings are
// scored by how closely they match it.
func anchoredNameScan(doc *goquery.Document, cfg ScanConfig) []model.RankedCandidate {
	var out []model.RankedCandidate

	titleText := strings.TrimSpace(doc.Find("title").First().Text())
	base := BaseName(titleText)
	if base == "" {
		return nil
	}

	out = append(out, model.RankedCandidate{
		Text:   titleText,
		Score:  cfg.TitleScore,
		Reason: "page title text",
	})

	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		tag := goquery.NodeName(s)
		switch {
		case text == base:
			out = append(out, model.RankedCandidate{
				Text:   text,
				Score:  cfg.ExactHeadingScore,
				Reason: fmt.Sprintf("exact base name match in <%s>", tag),
			})
		case strings.Contains(text, base):
			out = append(out, model.RankedCandidate{
				Text:   text,
				Score:  cfg.ContainsHeadingScore,
				Reason: fmt.Sprintf("contains base name in <%s>", tag),
			})
		}
	})

	return out
}

// BaseName derives the instrument's display name seed from title text.
func BaseName(title string) string {
	base := title
	for _, d := range baseNameDelims {
		if head, _, found := strings.Cut(base, d); found {
			base = head
		}
	}
	return strings.TrimSpace(base)
}

// widenScan is the low-confidence fallback: any text-bearing span or div
// containing a digit, validated for the field, at a fixed low score. A
// field's list is empty only when the page truly has no plausible text.
func widenScan(doc *goquery.Document, field model.Field, cfg ScanConfig) []model.RankedCandidate {
	var out []model.RankedCandidate
	doc.Find("span, div").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !containsDigit(text) || !Valid(field, text) {
			return
		}
		out = append(out, model.RankedCandidate{
			Text:   text,
			Score:  cfg.FallbackScore,
			Reason: fmt.Sprintf("fallback: digit-bearing <%s>", goquery.NodeName(s)),
		})
	})
	return out
}
