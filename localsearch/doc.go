// Package localsearch walks schedule.Schedule's neighborhood toward a
// locally optimal objective.Objective score: Minimizer (full scan,
// deterministic), TakeFirstRecursion (first strict improvement, with
// bounded-width recursion into non-improving candidates), and
// TakeAnyParallelRecursion (a worker per recursion candidate, racing to
// find any strict improvement, cooperatively cancelled once one succeeds).
//
// Grounded on: original_source/solver_framework/src/local_search/
// local_improver.rs (Minimizer, TakeFirstRecursion, and
// TakeAnyParallelRecursion's rayon::scope/channel worker-pool shape,
// ported to goroutines, channels, and context.Context cancellation in the
// style of lvlath's bfs/dfs packages).
package localsearch
