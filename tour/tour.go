// File: tour.go
// Role: Tour, the node sequence a single vehicle (real or dummy) occupies
// across an instance. Real tours are depot-to-depot; dummy tours hold only
// the service/maintenance nodes displaced during search and carry no
// depots at all.
//
// Determinism: nodes are always kept sorted by start time; every mutating
// method returns a new Tour rather than mutating the receiver.
//
// Grounded on: original_source/src/schedule/tour.rs (latest_node_reaching /
// earliest_node_reached_by binary searches, insert) generalized to the
// depot-aware contract of solution/src/schedule.rs's tour operations.
package tour

import (
	"sort"
	"time"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
)

// Segment identifies a contiguous inclusive run of a Tour by its boundary
// node indices.
type Segment struct {
	First, Last basetypes.NodeIdx
}

// Tour is an immutable, time-ordered node sequence owned by one vehicle.
type Tour struct {
	vehicle basetypes.VehicleID
	dummy   bool
	nodes   []basetypes.NodeIdx
	nw      *network.Network
	pos     map[basetypes.NodeIdx]int
}

// New builds a real vehicle's tour: nodes must start with exactly one
// start-depot, end with exactly one end-depot, contain no intermediate
// depots, and every consecutive pair must satisfy the network's can-reach
// predicate.
func New(vehicle basetypes.VehicleID, nodes []basetypes.NodeIdx, nw *network.Network) (*Tour, error) {
	if vehicle.IsDummy() {
		return NewDummy(vehicle, nodes, nw)
	}
	if len(nodes) < 2 {
		return nil, ErrBadDepotStructure
	}
	if nw.Node(nodes[0]).Kind != basetypes.KindStartDepot {
		return nil, ErrBadDepotStructure
	}
	if nw.Node(nodes[len(nodes)-1]).Kind != basetypes.KindEndDepot {
		return nil, ErrBadDepotStructure
	}
	for _, idx := range nodes[1 : len(nodes)-1] {
		if nw.Node(idx).IsDepot() {
			return nil, ErrBadDepotStructure
		}
	}
	if err := checkConsecutiveReachable(nodes, nw); err != nil {
		return nil, err
	}
	t := &Tour{vehicle: vehicle, nodes: cloneNodes(nodes), nw: nw}
	t.buildIndex()
	return t, nil
}

// NewDummy builds a dummy vehicle's tour: depot-free, at least one node,
// every consecutive pair reachable.
func NewDummy(vehicle basetypes.VehicleID, nodes []basetypes.NodeIdx, nw *network.Network) (*Tour, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyPath
	}
	for _, idx := range nodes {
		if nw.Node(idx).IsDepot() {
			return nil, ErrBadDepotStructure
		}
	}
	if err := checkConsecutiveReachable(nodes, nw); err != nil {
		return nil, err
	}
	t := &Tour{vehicle: vehicle, dummy: true, nodes: cloneNodes(nodes), nw: nw}
	t.buildIndex()
	return t, nil
}

func checkConsecutiveReachable(nodes []basetypes.NodeIdx, nw *network.Network) error {
	for i := 0; i+1 < len(nodes); i++ {
		if !nw.CanReach(nodes[i], nodes[i+1]) {
			return &NotReachableError{A: nodes[i], B: nodes[i+1]}
		}
	}
	return nil
}

func (t *Tour) buildIndex() {
	t.pos = make(map[basetypes.NodeIdx]int, len(t.nodes))
	for i, idx := range t.nodes {
		t.pos[idx] = i
	}
}

func (t *Tour) clone(nodes []basetypes.NodeIdx) *Tour {
	nt := &Tour{vehicle: t.vehicle, dummy: t.dummy, nodes: nodes, nw: t.nw}
	nt.buildIndex()
	return nt
}

// Vehicle returns the owning vehicle id.
func (t *Tour) Vehicle() basetypes.VehicleID { return t.vehicle }

// Network returns the network this tour was built against.
func (t *Tour) Network() *network.Network { return t.nw }

// IsDummy reports whether this is a dummy (depot-free) tour.
func (t *Tour) IsDummy() bool { return t.dummy }

// Len returns the number of nodes in the tour.
func (t *Tour) Len() int { return len(t.nodes) }

// AllNodesIter returns the full node sequence, a defensive copy.
func (t *Tour) AllNodesIter() []basetypes.NodeIdx { return cloneNodes(t.nodes) }

// NthNode returns the node at position n.
func (t *Tour) NthNode(n int) (basetypes.NodeIdx, bool) {
	if n < 0 || n >= len(t.nodes) {
		return basetypes.NodeIdx{}, false
	}
	return t.nodes[n], true
}

// FirstNonDepot returns the first non-depot node of a real tour (position
// 1), or the first node of a dummy tour.
func (t *Tour) FirstNonDepot() (basetypes.NodeIdx, bool) {
	if t.dummy {
		if len(t.nodes) == 0 {
			return basetypes.NodeIdx{}, false
		}
		return t.nodes[0], true
	}
	if len(t.nodes) < 3 {
		return basetypes.NodeIdx{}, false
	}
	return t.nodes[1], true
}

// LastNonDepot returns the last non-depot node of a real tour, or the last
// node of a dummy tour.
func (t *Tour) LastNonDepot() (basetypes.NodeIdx, bool) {
	if t.dummy {
		if len(t.nodes) == 0 {
			return basetypes.NodeIdx{}, false
		}
		return t.nodes[len(t.nodes)-1], true
	}
	if len(t.nodes) < 3 {
		return basetypes.NodeIdx{}, false
	}
	return t.nodes[len(t.nodes)-2], true
}

// StartDepot returns the start-depot node of a real tour.
func (t *Tour) StartDepot() (basetypes.NodeIdx, bool) {
	if t.dummy || len(t.nodes) == 0 {
		return basetypes.NodeIdx{}, false
	}
	return t.nodes[0], true
}

// EndDepot returns the end-depot node of a real tour.
func (t *Tour) EndDepot() (basetypes.NodeIdx, bool) {
	if t.dummy || len(t.nodes) == 0 {
		return basetypes.NodeIdx{}, false
	}
	return t.nodes[len(t.nodes)-1], true
}

// SubPath borrows the contiguous inclusive segment as a Path.
func (t *Tour) SubPath(seg Segment) (*Path, error) {
	pf, ok1 := t.pos[seg.First]
	pl, ok2 := t.pos[seg.Last]
	if !ok1 || !ok2 || pf > pl {
		return nil, ErrSegmentNotContiguous
	}
	return newTrusted(t.nodes[pf:pl+1], t.nw), nil
}

// latestArrivalBeforeOrEqual returns the rightmost tour position whose node
// ends at or before target, assuming nodes are sorted by end time.
func (t *Tour) latestArrivalBeforeOrEqual(target time.Time) (int, bool) {
	idx := sort.Search(len(t.nodes), func(i int) bool {
		return t.nw.Node(t.nodes[i]).EndTime().After(target)
	})
	if idx == 0 {
		return 0, false
	}
	return idx - 1, true
}

// earliestDepartureAfterOrEqual returns the leftmost tour position whose
// node departs at or after target.
func (t *Tour) earliestDepartureAfterOrEqual(target time.Time) (int, bool) {
	idx := sort.Search(len(t.nodes), func(i int) bool {
		return !t.nw.Node(t.nodes[i]).StartTime().Before(target)
	})
	if idx == len(t.nodes) {
		return 0, false
	}
	return idx, true
}

// latestNodeReaching finds the latest tour position whose node can reach
// target: binary search by arrival time, then linear backtrack since time
// order alone does not guarantee reachability (dead-head distance varies).
func (t *Tour) latestNodeReaching(target basetypes.NodeIdx) (int, bool) {
	if !t.nw.CanReach(t.nodes[0], target) {
		return 0, false
	}
	p, ok := t.latestArrivalBeforeOrEqual(t.nw.Node(target).StartTime())
	if !ok {
		return 0, false
	}
	for !t.nw.CanReach(t.nodes[p], target) {
		if p == 0 {
			return 0, false
		}
		p--
	}
	return p, true
}

// earliestNodeReachedBy finds the earliest tour position reachable from
// source: binary search by departure time, then linear advance.
func (t *Tour) earliestNodeReachedBy(source basetypes.NodeIdx) (int, bool) {
	if !t.nw.CanReach(source, t.nodes[len(t.nodes)-1]) {
		return 0, false
	}
	p, ok := t.earliestDepartureAfterOrEqual(t.nw.Node(source).EndTime())
	if !ok {
		return 0, false
	}
	for !t.nw.CanReach(source, t.nodes[p]) {
		p++
		if p >= len(t.nodes) {
			return 0, false
		}
	}
	return p, true
}

// Conflict reports the nodes that would be displaced by inserting path,
// without mutating the tour.
func (t *Tour) Conflict(path *Path) ([]basetypes.NodeIdx, error) {
	l, ok := t.latestNodeReaching(path.First())
	if !ok {
		return nil, &NotReachableError{A: t.nodes[0], B: path.First()}
	}
	r, ok := t.earliestNodeReachedBy(path.Last())
	if !ok {
		return nil, &NotReachableError{A: path.Last(), B: t.nodes[len(t.nodes)-1]}
	}
	if r <= l+1 {
		return nil, nil
	}
	return cloneNodes(t.nodes[l+1 : r]), nil
}

// InsertPath inserts path on the correct time-wise position, returning the
// new tour and any displaced nodes as a Path (nil if nothing was displaced).
func (t *Tour) InsertPath(path *Path) (*Tour, *Path, error) {
	l, ok := t.latestNodeReaching(path.First())
	if !ok {
		return nil, nil, &NotReachableError{A: t.nodes[0], B: path.First()}
	}
	r, ok := t.earliestNodeReachedBy(path.Last())
	if !ok {
		return nil, nil, &NotReachableError{A: path.Last(), B: t.nodes[len(t.nodes)-1]}
	}

	var replaced *Path
	if r > l+1 {
		replaced = newTrusted(t.nodes[l+1:r], t.nw)
	}

	newNodes := make([]basetypes.NodeIdx, 0, l+1+path.Len()+(len(t.nodes)-r))
	newNodes = append(newNodes, t.nodes[:l+1]...)
	newNodes = append(newNodes, path.nodes...)
	newNodes = append(newNodes, t.nodes[r:]...)

	return t.clone(newNodes), replaced, nil
}

// CheckRemovable reports whether seg can be removed from the tour: its
// boundaries must be non-depot nodes forming a contiguous sub-path, and the
// remaining prefix/suffix must still connect (or one side is empty, which
// is always feasible).
func (t *Tour) CheckRemovable(seg Segment) bool {
	pf, ok1 := t.pos[seg.First]
	pl, ok2 := t.pos[seg.Last]
	if !ok1 || !ok2 || pf > pl {
		return false
	}
	if t.nw.Node(seg.First).IsDepot() || t.nw.Node(seg.Last).IsDepot() {
		return false
	}
	if pf > 0 && pl < len(t.nodes)-1 {
		return t.nw.CanReach(t.nodes[pf-1], t.nodes[pl+1])
	}
	return true
}

// Remove removes the contiguous inclusive segment, returning the shrunk
// tour (nil if no non-depot node remains) and the removed nodes as a Path.
func (t *Tour) Remove(seg Segment) (*Tour, *Path, error) {
	pf, ok1 := t.pos[seg.First]
	pl, ok2 := t.pos[seg.Last]
	if !ok1 || !ok2 || pf > pl {
		return nil, nil, ErrSegmentNotContiguous
	}
	if t.nw.Node(seg.First).IsDepot() || t.nw.Node(seg.Last).IsDepot() {
		return nil, nil, ErrBadDepotStructure
	}
	if pf > 0 && pl < len(t.nodes)-1 {
		if !t.nw.CanReach(t.nodes[pf-1], t.nodes[pl+1]) {
			return nil, nil, ErrTourInfeasible
		}
	}

	removed := cloneNodes(t.nodes[pf : pl+1])
	newNodes := make([]basetypes.NodeIdx, 0, len(t.nodes)-len(removed))
	newNodes = append(newNodes, t.nodes[:pf]...)
	newNodes = append(newNodes, t.nodes[pl+1:]...)

	hasNonDepot := false
	for _, idx := range newNodes {
		if !t.nw.Node(idx).IsDepot() {
			hasNonDepot = true
			break
		}
	}

	removedPath := newTrusted(removed, t.nw)
	if !hasNonDepot {
		return nil, removedPath, nil
	}
	return t.clone(newNodes), removedPath, nil
}

// ReplaceStartDepot swaps the tour's start depot node, validating that the
// new depot can still reach the first non-depot node.
func (t *Tour) ReplaceStartDepot(depotNode basetypes.NodeIdx) (*Tour, error) {
	if t.dummy {
		return nil, ErrBadDepotStructure
	}
	if t.nw.Node(depotNode).Kind != basetypes.KindStartDepot {
		return nil, ErrBadDepotStructure
	}
	if !t.nw.CanReach(depotNode, t.nodes[1]) {
		return nil, &NotReachableError{A: depotNode, B: t.nodes[1]}
	}
	newNodes := cloneNodes(t.nodes)
	newNodes[0] = depotNode
	return t.clone(newNodes), nil
}

// ReplaceEndDepot swaps the tour's end depot node, validating that the
// last non-depot node can still reach the new depot.
func (t *Tour) ReplaceEndDepot(depotNode basetypes.NodeIdx) (*Tour, error) {
	if t.dummy {
		return nil, ErrBadDepotStructure
	}
	if t.nw.Node(depotNode).Kind != basetypes.KindEndDepot {
		return nil, ErrBadDepotStructure
	}
	last := len(t.nodes) - 1
	if !t.nw.CanReach(t.nodes[last-1], depotNode) {
		return nil, &NotReachableError{A: t.nodes[last-1], B: depotNode}
	}
	newNodes := cloneNodes(t.nodes)
	newNodes[last] = depotNode
	return t.clone(newNodes), nil
}

// LatestNotReachingNode returns the latest tour position whose node cannot
// reach target, or false if every node in the tour can reach it. Used by
// the fit-insertion algorithm to bound how much of a displaced path can be
// re-inserted before the next blocker.
func (t *Tour) LatestNotReachingNode(target basetypes.NodeIdx) (int, bool) {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		if !t.nw.CanReach(t.nodes[i], target) {
			return i, true
		}
	}
	return 0, false
}

// TotalDistance sums service distances and dead-head distances across the
// whole tour.
func (t *Tour) TotalDistance() basetypes.Distance {
	total := basetypes.ZeroDistance()
	for _, idx := range t.nodes {
		total = total.Add(t.nw.Node(idx).Distance)
	}
	return total.Add(t.DeadHeadDistance())
}

// DeadHeadDistance sums only the empty-running distance between
// consecutive nodes.
func (t *Tour) DeadHeadDistance() basetypes.Distance {
	total := basetypes.ZeroDistance()
	locs := t.nw.Locations()
	for i := 0; i+1 < len(t.nodes); i++ {
		a, b := t.nw.Node(t.nodes[i]), t.nw.Node(t.nodes[i+1])
		total = total.Add(locs.Distance(a.EndLocation(), b.StartLocation()))
	}
	return total
}

// MaintenanceCounter reports the accumulated distance since the tour's last
// maintenance node (or since the start depot, if none). Saturates to
// basetypes.MaintCounterForInfDist's unit scale via Distance's own overflow
// handling.
func (t *Tour) MaintenanceCounter() basetypes.MaintenanceCounter {
	sinceLast := basetypes.ZeroDistance()
	locs := t.nw.Locations()
	for i, idx := range t.nodes {
		node := t.nw.Node(idx)
		if node.IsMaintenance() {
			sinceLast = basetypes.ZeroDistance()
			continue
		}
		sinceLast = sinceLast.Add(node.Distance)
		if i+1 < len(t.nodes) {
			next := t.nw.Node(t.nodes[i+1])
			sinceLast = sinceLast.Add(locs.Distance(node.EndLocation(), next.StartLocation()))
		}
	}
	meters, finite := sinceLast.Meters()
	if !finite {
		return basetypes.MaintenanceCounter(basetypes.MaintCounterForInfDist)
	}
	return basetypes.MaintenanceCounter(meters)
}
