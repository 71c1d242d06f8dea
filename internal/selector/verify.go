// Package selector is the self-healing and diagnostic surface: it
// synthesizes structural queries from an already-confirmed text value and
// verifies arbitrary queries against a document. It is pure and does not
// depend on the heuristic scanner.
package selector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"

	"github.com/susumOyaji/quotelens/internal/model"
)

// SyntaxError reports a structural query that does not parse. It is
// surfaced only on the diagnostic endpoints and is never fatal to
// extraction.
type SyntaxError struct {
	Query string
	Cause error
}

func (e *SyntaxError) Error() string {
	return "selector: invalid query " + e.Query + ": " + e.Cause.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// CheckSyntax compiles the query, returning a *SyntaxError when it is
// malformed.
func CheckSyntax(query string) error {
	if _, err := cascadia.Compile(query); err != nil {
		return &SyntaxError{Query: query, Cause: err}
	}
	return nil
}

// Verify checks a structural query against a document: syntax validity,
// match count, and up to model.MaxSelectorSamples sample matches. A
// malformed query yields a descriptor with Valid=false, never an error.
func Verify(body, query string) (model.SelectorDescriptor, error) {
	desc := model.SelectorDescriptor{Query: query}

	matcher, err := cascadia.Compile(query)
	if err != nil {
		desc.Error = (&SyntaxError{Query: query, Cause: err}).Error()
		return desc, nil
	}
	desc.Valid = true

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return desc, eris.Wrap(err, "selector: parse document")
	}

	matches := doc.FindMatcher(matcher)
	desc.MatchCount = matches.Length()
	matches.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= model.MaxSelectorSamples {
			return false
		}
		raw, _ := goquery.OuterHtml(s)
		desc.Samples = append(desc.Samples, model.ElementSample{
			Tag:  goquery.NodeName(s),
			Text: strings.TrimSpace(s.Text()),
			HTML: raw,
		})
		return true
	})

	return desc, nil
}
