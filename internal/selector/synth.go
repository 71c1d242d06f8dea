package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/susumOyaji/quotelens/internal/model"
)

// maxAnchorElements bounds how many matching elements seed query
// generation; the best anchors appear first in document order.
const maxAnchorElements = 3

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// skipTags are containers whose text always swallows the target; they
// never make useful anchors.
var skipTags = map[string]bool{
	"html": true, "head": true, "body": true,
	"script": true, "style": true, "title": true,
}

// Synthesize builds structural query candidates that re-locate the target
// text in the document, ordered by estimated robustness: id anchors, then
// stable class-attribute fragments, then exact classes, then
// parent-anchored and bare tag queries. Every returned descriptor has been
// verified against the same document and matches at least one element
// containing the target. An empty result means no discriminating query was
// found; that is a valid outcome, not an error.
func Synthesize(body, target string) ([]model.SelectorDescriptor, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "selector: parse document")
	}

	anchors := findAnchors(doc, target)
	if len(anchors) == 0 {
		return nil, nil
	}

	var queries []string
	seen := make(map[string]bool)
	add := func(q string) {
		if q != "" && !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}
	for _, a := range anchors {
		for _, q := range queriesFor(a) {
			add(q)
		}
	}

	var out []model.SelectorDescriptor
	for _, q := range queries {
		desc, err := Verify(body, q)
		if err != nil {
			return nil, err
		}
		if desc.Valid && matchesTarget(desc, target) {
			out = append(out, desc)
		}
	}
	return out, nil
}

// findAnchors picks the elements whose trimmed text equals the target, or
// failing that, the deepest elements containing it.
func findAnchors(doc *goquery.Document, target string) []*goquery.Selection {
	var exact, containing []*goquery.Selection

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if skipTags[goquery.NodeName(s)] {
			return
		}
		text := strings.TrimSpace(s.Text())
		switch {
		case text == target:
			exact = append(exact, s)
		case strings.Contains(text, target):
			// Keep only the deepest container: an element none of whose
			// child elements also carry the target.
			deepest := true
			s.Children().Each(func(_ int, c *goquery.Selection) {
				if strings.Contains(c.Text(), target) {
					deepest = false
				}
			})
			if deepest {
				containing = append(containing, s)
			}
		}
	})

	anchors := exact
	if len(anchors) == 0 {
		anchors = containing
	}
	if len(anchors) > maxAnchorElements {
		anchors = anchors[:maxAnchorElements]
	}
	return anchors
}

// queriesFor generates query candidates for one anchor element, most
// robust first.
func queriesFor(s *goquery.Selection) []string {
	tag := goquery.NodeName(s)
	var out []string

	if id, ok := s.Attr("id"); ok && identRe.MatchString(id) {
		out = append(out, "#"+id)
	}

	class, _ := s.Attr("class")
	classes := strings.Fields(class)

	if len(classes) > 0 {
		if frag := StableClassFragment(classes[0]); frag != "" {
			out = append(out, fmt.Sprintf("%s[class*='%s']", tag, frag))
		}
	}
	for _, c := range classes {
		if identRe.MatchString(c) {
			out = append(out, tag+"."+c)
		}
	}

	// Parent-anchored combo for elements whose own attributes do not
	// discriminate.
	parent := s.Parent()
	if parent.Length() > 0 && !skipTags[goquery.NodeName(parent)] {
		pClass, _ := parent.Attr("class")
		pClasses := strings.Fields(pClass)
		if len(pClasses) > 0 {
			if frag := StableClassFragment(pClasses[0]); frag != "" {
				out = append(out, fmt.Sprintf("%s[class*='%s'] %s", goquery.NodeName(parent), frag, tag))
			}
		}
	}

	out = append(out, tag)
	return out
}

// StableClassFragment reduces a generated class name to its stable prefix
// by dropping trailing underscore-separated segments that carry digits
// (build hashes, ordinal suffixes). "_StyledNumber__value_xj2p1_11"
// becomes "_StyledNumber__value".
func StableClassFragment(class string) string {
	parts := strings.Split(class, "_")
	end := len(parts)
	for end > 0 {
		last := parts[end-1]
		if last != "" && !containsDigit(last) {
			break
		}
		end--
	}
	frag := strings.Join(parts[:end], "_")
	if len(strings.Trim(frag, "_")) < 3 {
		return ""
	}
	return frag
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// matchesTarget reports whether a verified descriptor's samples include
// the target text.
func matchesTarget(desc model.SelectorDescriptor, target string) bool {
	if desc.MatchCount == 0 {
		return false
	}
	for _, sample := range desc.Samples {
		if strings.Contains(sample.Text, target) {
			return true
		}
	}
	return false
}
