// File: take_first.go
// Role: TakeFirstRecursion, the single-threaded first-improvement
// strategy with bounded-width recursion into the non-improving
// candidates it collected along the way.
//
// Grounded on: original_source/solver_framework/src/local_search/
// local_improver.rs's TakeFirstRecursion::improve_recursion.
package localsearch

import "github.com/rssched/rollingstock-solver/objective"

// TakeFirstRecursion scans the neighborhood in iteration order and returns
// the first strict improvement found. If none exists, it recurses into the
// combined neighborhood of the best width candidates seen, one recursion
// level at a time, until depth is exhausted. Deterministic.
type TakeFirstRecursion struct {
	depth     int
	width     int // 0 means unlimited
	objective *objective.Objective[objective.Solution]
}

// NewTakeFirstRecursion builds a TakeFirstRecursion with the given
// recursion depth and width (0 = unlimited width).
func NewTakeFirstRecursion(depth, width int, obj *objective.Objective[objective.Solution]) *TakeFirstRecursion {
	return &TakeFirstRecursion{depth: depth, width: width, objective: obj}
}

func (imp *TakeFirstRecursion) Improve(current *Evaluated) *Evaluated {
	return imp.recurse([]*Evaluated{current}, current.ObjectiveValue(), imp.depth)
}

func (imp *TakeFirstRecursion) recurse(solutions []*Evaluated, toBeat *objective.ObjectiveValue, remaining int) *Evaluated {
	var forRecursion []*Evaluated
	for _, sol := range solutions {
		for _, c := range sol.Solution().Neighborhood() {
			ev := imp.objective.Evaluate(c.Schedule)
			if remaining > 0 {
				forRecursion = append(forRecursion, ev)
				if imp.width > 0 {
					forRecursion = sortDedupTruncate(forRecursion, imp.width)
				}
			}
			if ev.ObjectiveValue().Less(toBeat) {
				return ev
			}
		}
	}
	if remaining == 0 {
		return nil
	}
	return imp.recurse(forRecursion, toBeat, remaining-1)
}
