// File: fit.go
// Role: a fit-insertion helper: find the largest prefix of a displaced path
// that can be grafted onto a receiver tour before the next time-wise
// blocker, while the provider can still give up that prefix.
// schedule.FitReassign does not call it; it runs its own walk
// (fitPathIntoTour in schedule/modifications.go).
package tour

import "github.com/rssched/rollingstock-solver/basetypes"

// FitNextPrefix returns the length of the largest prefix of remaining that
// can be inserted into receiver: every node in the prefix must end before
// the next blocking receiver node starts, the prefix's last node must reach
// that blocker, and providerRemovable must accept giving up the prefix.
// Returns 0 if no non-empty prefix qualifies; the caller advances past
// remaining.nodes[0] and retries in that case ("skip prefixes that
// cannot be placed").
func FitNextPrefix(remaining *Path, receiver *Tour, providerRemovable func(Segment) bool) int {
	nodes := remaining.nodes
	blocker, hasBlocker := receiverBlocker(receiver, nodes[0])
	nw := remaining.nw

	best := 0
	for j := 0; j < len(nodes); j++ {
		if hasBlocker {
			if !nw.Node(nodes[j]).EndTime().Before(nw.Node(blocker).StartTime()) {
				break
			}
			if !nw.CanReach(nodes[j], blocker) {
				continue
			}
		}
		if providerRemovable(Segment{First: nodes[0], Last: nodes[j]}) {
			best = j + 1
		}
	}
	return best
}

// receiverBlocker finds the receiver-tour node that would immediately
// follow a hypothetical insertion of first, or false if the whole
// remaining tail is open (first can reach past the receiver's last node).
func receiverBlocker(receiver *Tour, first basetypes.NodeIdx) (basetypes.NodeIdx, bool) {
	l, ok := receiver.latestNodeReaching(first)
	if !ok {
		return basetypes.NodeIdx{}, false
	}
	if l+1 >= len(receiver.nodes) {
		return basetypes.NodeIdx{}, false
	}
	return receiver.nodes[l+1], true
}
