package heuristic

import (
	"sort"

	"github.com/susumOyaji/quotelens/internal/model"
)

// Rank deduplicates and orders a field's candidates. Two candidates with
// identical text collapse into the higher-scored one (first seen wins a
// score tie); the result is sorted by descending score, tie-broken by
// ascending text. This is a total order, so identical inputs always
// produce identical output.
func Rank(candidates []model.RankedCandidate) []model.RankedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	best := make(map[string]model.RankedCandidate, len(candidates))
	for _, c := range candidates {
		if prev, ok := best[c.Text]; !ok || c.Score > prev.Score {
			best[c.Text] = c
		}
	}

	out := make([]model.RankedCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Text < out[j].Text
	})
	return out
}
