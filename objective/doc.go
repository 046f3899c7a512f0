// Package objective scores a Schedule for local search: a BaseValue
// arithmetic lattice, weighted Indicators summed into Levels, and an
// Objective that compares solutions lexicographically across Levels.
//
// Grounded on: original_source/objective_framework/src/{coefficient,level,
// indicator}.rs. base_value.rs, objective.rs, and evaluated_solution.rs
// did not survive into original_source/_INDEX.md, so BaseValue, Objective,
// ObjectiveValue, and EvaluatedSolution are rebuilt directly from the
// stated arithmetic rules and comparison semantics, following the
// surviving files' naming and doc-comment style.
package objective
