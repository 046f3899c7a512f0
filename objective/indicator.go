// File: indicator.go
// Role: Indicator, an atomic measurable aspect of a solution (e.g. "number
// of unserved passengers").
//
// Grounded on: original_source/objective_framework/src/indicator.rs,
// generalized from a trait object to a Go generic interface.
package objective

// Indicator maps a solution of type S to a single BaseValue. Implementors
// are typically stateless: Evaluate reads only from solution.
type Indicator[S any] interface {
	Evaluate(solution S) BaseValue
	Name() string
}
