package model

// ElementSample is one matched element captured for selector inspection.
type ElementSample struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

// SelectorDescriptor describes a structural query checked against a
// document: whether it parses, how many elements it matches, and up to
// MaxSelectorSamples sample matches. Used only by the self-healing and
// diagnostic surface, never by primary extraction.
type SelectorDescriptor struct {
	Query      string          `json:"selector"`
	Valid      bool            `json:"is_valid_syntax"`
	Error      string          `json:"error_message,omitempty"`
	MatchCount int             `json:"match_count"`
	Samples    []ElementSample `json:"matches"`
}

// MaxSelectorSamples caps the sample matches recorded per descriptor.
const MaxSelectorSamples = 5
