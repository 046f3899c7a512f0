// Package network holds the time-expanded graph of depots, service trips,
// and maintenance slots that tours are built over: vehicle types, depots,
// nodes, and the can-reach precedence between them.
package network
