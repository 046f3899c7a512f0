// File: sort.go
// Role: shared recursion-width bookkeeping — sort candidates by objective
// value, drop ones that tie an earlier one, and keep only the best width.
package localsearch

import "sort"

func sortDedupTruncate(solutions []*Evaluated, width int) []*Evaluated {
	sort.Slice(solutions, func(i, j int) bool {
		return solutions[i].ObjectiveValue().Less(solutions[j].ObjectiveValue())
	})
	deduped := solutions[:0]
	for i, s := range solutions {
		if i > 0 && s.ObjectiveValue().Compare(solutions[i-1].ObjectiveValue()) == 0 {
			continue
		}
		deduped = append(deduped, s)
	}
	if width < len(deduped) {
		deduped = deduped[:width]
	}
	return deduped
}
