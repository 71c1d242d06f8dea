package extract

import (
	"fmt"
	"strings"

	"github.com/susumOyaji/quotelens/internal/model"
)

// FetchError wraps a transport failure for a single code's pipeline. It is
// the only terminal condition inside a pipeline: it is surfaced verbatim
// and never retried here; retry policy belongs to the caller.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("extract: fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// UnresolvedError reports that every strategy was exhausted without
// resolving the required fields.
type UnresolvedError struct {
	Code    string
	Missing []model.Field
}

func (e *UnresolvedError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("extract: no strategy resolved %s for code %s",
		strings.Join(names, ", "), e.Code)
}
