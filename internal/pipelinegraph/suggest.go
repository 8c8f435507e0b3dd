package pipelinegraph

import (
	"fmt"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance bounds how different a candidate name may be from the
// typo before we consider it worth suggesting. Above this, a "did you
// mean" hint does more to mislead than to help.
const maxSuggestDistance = 3

// suggestNearest returns "" or a formatted "; did you mean %q?" clause for
// the candidate name closest to target, for enriching missing-node and
// missing-model diagnostics with a nearest-match hint.
func suggestNearest(target string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range candidates {
		d := levenshtein.Distance(target, candidate, nil)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	if best == "" || bestDist > maxSuggestDistance {
		return ""
	}
	return fmt.Sprintf("; did you mean %q?", best)
}
