// File: take_any_parallel.go
// Role: TakeAnyParallelRecursion — one goroutine per recursion candidate,
// each scanning its own neighborhood concurrently for any strict
// improvement; the first to succeed cancels its peers via a shared
// context. Non-deterministic in which improving neighbor wins, but
// monotone: the returned value always strictly improves on the incumbent
// when one is returned.
//
// Grounded on: original_source/solver_framework/src/local_search/
// local_improver.rs's TakeAnyParallelRecursion (rayon::scope + per-worker
// channels), re-expressed with goroutines, a sync.WaitGroup, and
// context.Context cancellation in the style of lvlath's bfs/dfs packages
// (ctx.Done() checked between work items) and core's own
// goroutine-per-unit-of-work test harness shape.
package localsearch

import (
	"context"
	"sync"

	"github.com/rssched/rollingstock-solver/objective"
)

// NeighborCache lets TakeAnyParallelRecursion skip re-evaluating a
// candidate schedule another worker (in this process or, via a shared
// backend, another one in a solver fleet) already scored. Implemented by
// rscache.Cache; kept as a narrow interface here so localsearch never
// depends on Redis directly.
type NeighborCache interface {
	Get(ctx context.Context, hash string) (*objective.ObjectiveValue, bool)
	Set(ctx context.Context, hash string, value *objective.ObjectiveValue)
}

// HashFunc computes a NeighborCache key for a candidate solution.
type HashFunc func(objective.Solution) string

// TakeAnyParallelRecursion mirrors TakeFirstRecursion's recursion shape but
// evaluates each recursion candidate's neighborhood on its own goroutine,
// racing for the first strict improvement.
type TakeAnyParallelRecursion struct {
	depth     int
	width     int // 0 means unlimited
	objective *objective.Objective[objective.Solution]
	cache     NeighborCache
	hash      HashFunc
}

// NewTakeAnyParallelRecursion builds a TakeAnyParallelRecursion with the
// given recursion depth and per-candidate width (0 = unlimited).
func NewTakeAnyParallelRecursion(depth, width int, obj *objective.Objective[objective.Solution]) *TakeAnyParallelRecursion {
	return &TakeAnyParallelRecursion{depth: depth, width: width, objective: obj}
}

// WithNeighborCache attaches a best-effort NeighborCache, keyed by hash,
// so repeated evaluation of structurally identical candidates (common
// once several recursion branches converge on the same reassignment) is
// skipped.
func (imp *TakeAnyParallelRecursion) WithNeighborCache(cache NeighborCache, hash HashFunc) *TakeAnyParallelRecursion {
	imp.cache = cache
	imp.hash = hash
	return imp
}

func (imp *TakeAnyParallelRecursion) Improve(current *Evaluated) *Evaluated {
	return imp.recurse(context.Background(), []*Evaluated{current}, current.ObjectiveValue(), imp.depth)
}

// workerResult is what one candidate's worker goroutine reports: either a
// strict improvement, or the width-truncated non-improving set it
// collected before its neighborhood was exhausted or cancellation arrived.
type workerResult struct {
	improved  *Evaluated
	collected []*Evaluated
}

func (imp *TakeAnyParallelRecursion) recurse(parent context.Context, solutions []*Evaluated, toBeat *objective.ObjectiveValue, remaining int) *Evaluated {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	results := make(chan workerResult, len(solutions))
	var wg sync.WaitGroup
	for _, sol := range solutions {
		wg.Add(1)
		go func(sol *Evaluated) {
			defer wg.Done()
			results <- imp.evaluateNeighborhood(ctx, cancel, sol, toBeat, remaining)
		}(sol)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var best *Evaluated
	var collected []*Evaluated
	for r := range results {
		if r.improved != nil {
			if best == nil || r.improved.ObjectiveValue().Less(best.ObjectiveValue()) {
				best = r.improved
			}
			cancel()
			continue
		}
		collected = append(collected, r.collected...)
	}
	if best != nil {
		return best
	}

	if remaining == 0 {
		return nil
	}
	collected = sortDedupTruncate(collected, effectiveWidth(imp.width, len(collected)))
	return imp.recurse(parent, collected, toBeat, remaining-1)
}

// evaluateNeighborhood scans sol's neighborhood for any strict improvement,
// checking ctx between every evaluated neighbor so a peer's success
// aborts this scan promptly rather than running it to completion.
func (imp *TakeAnyParallelRecursion) evaluateNeighborhood(ctx context.Context, cancel context.CancelFunc, sol *Evaluated, toBeat *objective.ObjectiveValue, remaining int) workerResult {
	var collected []*Evaluated
	for _, c := range sol.Solution().Neighborhood() {
		select {
		case <-ctx.Done():
			return workerResult{collected: collected}
		default:
		}
		ev := imp.evaluate(ctx, c.Schedule)
		if ev.ObjectiveValue().Less(toBeat) {
			return workerResult{improved: ev}
		}
		if remaining > 0 {
			collected = append(collected, ev)
			if imp.width > 0 {
				collected = sortDedupTruncate(collected, imp.width)
			}
		}
	}
	return workerResult{collected: collected}
}

// evaluate scores sol, consulting the NeighborCache first when one is
// attached: a hit rebuilds the Evaluated from the cached ObjectiveValue
// without re-running every Level's indicator.
func (imp *TakeAnyParallelRecursion) evaluate(ctx context.Context, sol objective.Solution) *Evaluated {
	if imp.cache == nil {
		return imp.objective.Evaluate(sol)
	}
	hash := imp.hash(sol)
	if cached, ok := imp.cache.Get(ctx, hash); ok {
		return objective.NewEvaluatedSolution(sol, cached)
	}
	ev := imp.objective.Evaluate(sol)
	imp.cache.Set(ctx, hash, ev.ObjectiveValue())
	return ev
}

// effectiveWidth resolves width=0 ("unlimited") to the collected count
// itself, which leaves sortDedupTruncate's own "width < len" check a no-op.
func effectiveWidth(width, collectedCount int) int {
	if width == 0 {
		return collectedCount
	}
	return width
}
