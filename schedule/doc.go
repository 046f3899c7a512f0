// Package schedule holds Schedule, the persistent assignment of vehicles
// (real and dummy) to tours, train formations, and depot usage that the
// solver searches over. Every mutation returns a new Schedule; the
// receiver is never modified.
package schedule
