package segment

import (
	"slices"

	"github.com/fwojciec/sitescan"
)

// Dedupe sorts sections by top and merges those that are the same logical
// section: two sections are the same when they share more than ratio of the
// shorter one's height. Of a duplicate pair the one with higher confidence
// is kept; ties keep the earlier one. The result is reindexed.
func Dedupe(sections []sitescan.Section, ratio float64) []sitescan.Section {
	sorted := slices.Clone(sections)
	slices.SortStableFunc(sorted, byTop)

	accepted := make([]sitescan.Section, 0, len(sorted))
	for _, candidate := range sorted {
		var dupes []int
		keep := true
		for i, a := range accepted {
			if !sameSection(a, candidate, ratio) {
				continue
			}
			if a.Confidence >= candidate.Confidence {
				keep = false
				break
			}
			dupes = append(dupes, i)
		}
		if !keep {
			continue
		}
		for j := len(dupes) - 1; j >= 0; j-- {
			accepted = slices.Delete(accepted, dupes[j], dupes[j]+1)
		}
		accepted = append(accepted, candidate)
	}

	// Candidates arrive in top order and deletions preserve it.
	sitescan.Reindex(accepted)
	return accepted
}

func sameSection(a, b sitescan.Section, ratio float64) bool {
	shorter := min(a.Rect.Height, b.Rect.Height)
	return a.Rect.Overlap(b.Rect) > ratio*shorter
}

func byTop(a, b sitescan.Section) int {
	switch {
	case a.Rect.Top < b.Rect.Top:
		return -1
	case a.Rect.Top > b.Rect.Top:
		return 1
	}
	return 0
}
