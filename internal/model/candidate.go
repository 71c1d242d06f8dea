package model

// RankedCandidate is a text value some strategy considers plausible for a
// logical field, with a confidence score and a provenance note for audit.
type RankedCandidate struct {
	Text   string `json:"text"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// DiscoveredFieldSet holds the ranked candidate lists produced by one
// heuristic discovery pass. Built fresh per request, never shared.
type DiscoveredFieldSet struct {
	Code       string                       `json:"code"`
	URL        string                       `json:"url"`
	Candidates map[Field][]RankedCandidate `json:"candidates"`
}

// NewDiscoveredFieldSet returns an empty field set for the given code.
func NewDiscoveredFieldSet(code, url string) *DiscoveredFieldSet {
	return &DiscoveredFieldSet{
		Code:       code,
		URL:        url,
		Candidates: make(map[Field][]RankedCandidate),
	}
}

// Top returns the highest-ranked candidate text for the field, or ok=false
// when the field is unresolved in this attempt.
func (d *DiscoveredFieldSet) Top(f Field) (string, bool) {
	list := d.Candidates[f]
	if len(list) == 0 {
		return "", false
	}
	return list[0].Text, true
}
