// Package heuristic discovers quote fields directly from page markup when
// no structured data block is usable. Per-field pattern tables drive a
// single scanning routine; every accepted text fragment becomes a scored
// candidate, deduplicated and ranked into a deterministic order.
package heuristic

// ScanConfig holds the scoring constants for the DOM scanner. The defaults
// are empirically tuned against observed markup; callers may override any
// of them. The only ordering the pipeline relies on is that dedicated
// patterns outrank the generic digit-sniffing fallback.
type ScanConfig struct {
	// Bonuses and penalties applied to price candidates based on the
	// matched element's class attribute and text shape.
	ValueClassBonus  int
	LargeClassBonus  int
	ThousandsBonus   int
	CodeClassPenalty int

	// Score for candidates found by the generic widening pass that runs
	// when a field's dedicated patterns match nothing.
	FallbackScore int

	// Name anchoring scores: the raw page title, a heading exactly equal
	// to the title-derived base name, and a heading containing it.
	TitleScore           int
	ExactHeadingScore    int
	ContainsHeadingScore int
}

// DefaultScanConfig returns the tuned production constants.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ValueClassBonus:      20,
		LargeClassBonus:      10,
		ThousandsBonus:       30,
		CodeClassPenalty:     40,
		FallbackScore:        10,
		TitleScore:           50,
		ExactHeadingScore:    110,
		ContainsHeadingScore: 100,
	}
}
