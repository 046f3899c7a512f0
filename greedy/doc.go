// Package greedy builds an initial feasible schedule one service trip at a
// time: for each uncovered trip, extend whichever existing vehicle can
// reach it and finishes latest, or spawn a fresh vehicle of the first
// catalog type when none can.
//
// Grounded on: original_source/solver/src/greedy.rs's Greedy::initialize /
// Greedy::solve.
package greedy
