// Package structured locates quote fields inside the embedded structured-data
// block that finance pages ship alongside their markup. Two strategies live
// here: a schema table of known data shapes, and a generic key-set search
// for pages whose shape has drifted away from every known schema.
package structured

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// blockRe captures the embedded state payload up to the closing script tag.
var blockRe = regexp.MustCompile(`(?s)window\.__PRELOADED_STATE__\s*=\s*(.*?)</script>`)

// ErrNoBlock is returned when the page carries no embedded data block at
// all. The caller treats this as "structured path unavailable", not a
// request failure.
var ErrNoBlock = eris.New("structured: no embedded data block")

// ParseError reports an embedded block that is present but not parseable.
// It is recovered locally by falling back to the next strategy.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "structured: malformed embedded data block: " + e.Reason
}

// ExtractBlock slices the raw embedded-data payload out of the page body.
func ExtractBlock(body string) (string, error) {
	m := blockRe.FindStringSubmatch(body)
	if m == nil {
		return "", ErrNoBlock
	}
	payload := strings.TrimSpace(m[1])
	payload = strings.TrimSuffix(payload, ";")
	if payload == "" {
		return "", ErrNoBlock
	}
	return payload, nil
}

// ParseBlock validates and parses the payload into a traversable tree.
func ParseBlock(payload string) (gjson.Result, error) {
	if !gjson.Valid(payload) {
		return gjson.Result{}, &ParseError{Reason: "invalid JSON"}
	}
	tree := gjson.Parse(payload)
	if !tree.IsObject() && !tree.IsArray() {
		return gjson.Result{}, &ParseError{Reason: "payload is not an object or array"}
	}
	return tree, nil
}

// fieldText renders a field value as plain text: quoted JSON strings lose
// their surrounding quotes, bare numbers keep their exact source
// representation. Absent keys become NotAvailable at the call sites.
func fieldText(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return strings.Trim(v.Raw, `"`)
}

// NormalizeCode prepares an instrument code for identity comparison,
// stripping the trailing market suffix (everything after the first dot)
// when the schema asks for it. "7203.T" becomes "7203"; "USDJPY=X" is
// left alone because no schema requests stripping for currency codes.
func NormalizeCode(code string, stripSuffix bool) string {
	code = strings.TrimSpace(code)
	if !stripSuffix {
		return code
	}
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i]
	}
	return code
}
