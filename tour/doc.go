// Package tour implements Path (an uninterrupted, depot-free node
// sequence) and Tour (a depot-to-depot node sequence owned by a single
// vehicle), together with the insertion/removal algebra used throughout
// schedule mutation.
package tour
