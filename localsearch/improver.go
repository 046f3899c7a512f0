// File: improver.go
// Role: the Improver interface every local-search strategy implements,
// plus Minimizer, the deterministic full-scan strategy.
//
// Grounded on: original_source/solver_framework/src/local_search/
// local_improver.rs's LocalImprover trait and Minimizer impl.
package localsearch

import "github.com/rssched/rollingstock-solver/objective"

// Evaluated is a schedule.Schedule bundled with its objective.ObjectiveValue.
type Evaluated = objective.EvaluatedSolution[objective.Solution]

// Improver proposes the next incumbent given the current one, or nil if
// none of its candidates strictly improves on it.
type Improver interface {
	Improve(current *Evaluated) *Evaluated
}

// Minimizer enumerates the full neighborhood of the current incumbent and
// returns its minimum if that minimum strictly improves on the incumbent.
// Deterministic: ties are broken by neighborhood iteration order.
type Minimizer struct {
	objective *objective.Objective[objective.Solution]
}

// NewMinimizer builds a Minimizer scoring candidates with obj.
func NewMinimizer(obj *objective.Objective[objective.Solution]) *Minimizer {
	return &Minimizer{objective: obj}
}

func (m *Minimizer) Improve(current *Evaluated) *Evaluated {
	candidates := current.Solution().Neighborhood()
	var best *Evaluated
	for _, c := range candidates {
		ev := m.objective.Evaluate(c.Schedule)
		if best == nil || ev.ObjectiveValue().Less(best.ObjectiveValue()) {
			best = ev
		}
	}
	if best == nil {
		return nil
	}
	if !best.ObjectiveValue().Less(current.ObjectiveValue()) {
		return nil
	}
	return best
}
