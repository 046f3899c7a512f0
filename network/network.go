// File: network.go
// Role: the time-expanded DAG of nodes, the can-reach predicate, and depot
// lookups. Immutable once built.
//
// Determinism:
//   - ServiceNodes/CoverableNodes/Depots/StartDepotsSortedByDistanceTo/
//     EndDepotsSortedByDistanceFrom all return stable, deterministically
//     ordered slices — callers rely on this for reproducible schedules.
//
// Complexity:
//   - CanReach is precomputed into an adjacency set at construction time,
//     O(n^2) in the number of nodes; acceptable at the instance sizes this
//     solver targets (design notes call this out as an implementer choice
//     between an on-demand predicate and a precomputed bitset).
//
// Grounded on: original_source model/src/network (depot.rs) and
// solution/src/schedule.rs's Network-facing calls (can_reach,
// start_depots_sorted_by_distance_to, end_depots_sorted_by_distance_from,
// get_depot_id, capacity_of, coverable_nodes, service_nodes).
package network

import (
	"fmt"
	"sort"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
)

// Network is the immutable time-expanded graph of nodes plus depot
// metadata and the locations table used for dead-head arithmetic.
type Network struct {
	locs *locations.Locations

	nodes map[basetypes.NodeIdx]*Node
	depots map[basetypes.DepotIdx]*Depot
	nodeDepot map[basetypes.NodeIdx]basetypes.DepotIdx // depot nodes -> owning depot

	serviceNodes     []basetypes.NodeIdx
	coverableNodes   []basetypes.NodeIdx
	startDepotNodes  []basetypes.NodeIdx
	endDepotNodes    []basetypes.NodeIdx
	depotIDsSorted   []basetypes.DepotIdx

	successors map[basetypes.NodeIdx][]basetypes.NodeIdx
}

// Builder assembles a Network incrementally.
type Builder struct {
	locs      *locations.Locations
	nodes     map[basetypes.NodeIdx]*Node
	depots    map[basetypes.DepotIdx]*Depot
	nodeDepot map[basetypes.NodeIdx]basetypes.DepotIdx
}

// NewBuilder starts a Network builder over a fixed Locations table.
func NewBuilder(locs *locations.Locations) *Builder {
	return &Builder{
		locs:      locs,
		nodes:     make(map[basetypes.NodeIdx]*Node),
		depots:    make(map[basetypes.DepotIdx]*Depot),
		nodeDepot: make(map[basetypes.NodeIdx]basetypes.DepotIdx),
	}
}

// AddNode registers a service/maintenance node.
func (b *Builder) AddNode(n *Node) { b.nodes[n.Idx] = n }

// AddDepot registers a depot and its synthesized start/end depot nodes.
func (b *Builder) AddDepot(d *Depot, startNode, endNode *Node) {
	b.depots[d.ID] = d
	b.nodes[startNode.Idx] = startNode
	b.nodes[endNode.Idx] = endNode
	b.nodeDepot[startNode.Idx] = d.ID
	b.nodeDepot[endNode.Idx] = d.ID
}

// Build freezes the builder into a Network, precomputing the can-reach
// adjacency and the sorted iteration indices.
func (b *Builder) Build() (*Network, error) {
	n := &Network{
		locs:      b.locs,
		nodes:     b.nodes,
		depots:    b.depots,
		nodeDepot: b.nodeDepot,
	}

	for idx, node := range n.nodes {
		switch node.Kind {
		case basetypes.KindService:
			n.serviceNodes = append(n.serviceNodes, idx)
			n.coverableNodes = append(n.coverableNodes, idx)
		case basetypes.KindMaintenance:
			n.coverableNodes = append(n.coverableNodes, idx)
		case basetypes.KindStartDepot:
			n.startDepotNodes = append(n.startDepotNodes, idx)
		case basetypes.KindEndDepot:
			n.endDepotNodes = append(n.endDepotNodes, idx)
		}
	}
	sortNodeIdx(n.serviceNodes)
	sortNodeIdx(n.coverableNodes)
	sortNodeIdx(n.startDepotNodes)
	sortNodeIdx(n.endDepotNodes)

	for id := range n.depots {
		n.depotIDsSorted = append(n.depotIDsSorted, id)
	}
	sort.Slice(n.depotIDsSorted, func(i, j int) bool { return n.depotIDsSorted[i] < n.depotIDsSorted[j] })

	n.precomputeSuccessors()

	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func sortNodeIdx(s []basetypes.NodeIdx) {
	sort.Slice(s, func(i, j int) bool { return s[i].Less(s[j]) })
}

func (n *Network) validate() error {
	for idx, node := range n.nodes {
		if !n.locs.HasStation(node.StartLocation()) || !n.locs.HasStation(node.EndLocation()) {
			return fmt.Errorf("network: node %s references an unknown location", idx)
		}
	}
	return nil
}

func (n *Network) precomputeSuccessors() {
	n.successors = make(map[basetypes.NodeIdx][]basetypes.NodeIdx, len(n.nodes))
	all := make([]basetypes.NodeIdx, 0, len(n.nodes))
	for idx := range n.nodes {
		all = append(all, idx)
	}
	sortNodeIdx(all)
	for _, a := range all {
		for _, b := range all {
			if n.canReachUncached(a, b) {
				n.successors[a] = append(n.successors[a], b)
			}
		}
	}
}

// Node returns the node for idx; nil if unknown.
func (n *Network) Node(idx basetypes.NodeIdx) *Node { return n.nodes[idx] }

// Locations exposes the dead-head table backing this network.
func (n *Network) Locations() *locations.Locations { return n.locs }

// ServiceNodes returns every service-trip node index, sorted.
func (n *Network) ServiceNodes() []basetypes.NodeIdx { return cloneIdx(n.serviceNodes) }

// CoverableNodes returns every node index that can carry a train formation
// (service + maintenance), sorted.
func (n *Network) CoverableNodes() []basetypes.NodeIdx { return cloneIdx(n.coverableNodes) }

func cloneIdx(s []basetypes.NodeIdx) []basetypes.NodeIdx {
	out := make([]basetypes.NodeIdx, len(s))
	copy(out, s)
	return out
}

// Depots returns every depot id, sorted ascending.
func (n *Network) Depots() []basetypes.DepotIdx {
	out := make([]basetypes.DepotIdx, len(n.depotIDsSorted))
	copy(out, n.depotIDsSorted)
	return out
}

// Depot returns the depot metadata for id.
func (n *Network) Depot(id basetypes.DepotIdx) (*Depot, bool) {
	d, ok := n.depots[id]
	return d, ok
}

// DepotOf returns the depot owning a start/end depot node.
func (n *Network) DepotOf(nodeIdx basetypes.NodeIdx) basetypes.DepotIdx {
	return n.nodeDepot[nodeIdx]
}

// CapacityOf returns the spawn capacity of (depot, vehicleType); allowed is
// false if the type is forbidden at that depot.
func (n *Network) CapacityOf(depot basetypes.DepotIdx, vehicleType basetypes.VehicleTypeIdx) (capacity basetypes.VehicleCount, allowed bool) {
	d, ok := n.depots[depot]
	if !ok {
		return 0, false
	}
	return d.CapacityFor(vehicleType)
}

// StartDepotsSortedByDistanceTo returns start-depot node indices ordered by
// ascending dead-head distance from the depot to loc, ties broken by index.
func (n *Network) StartDepotsSortedByDistanceTo(loc basetypes.LocationIdx) []basetypes.NodeIdx {
	return n.depotsSortedByDistance(n.startDepotNodes, func(depotLoc basetypes.LocationIdx) basetypes.Distance {
		return n.locs.Distance(depotLoc, loc)
	})
}

// EndDepotsSortedByDistanceFrom returns end-depot node indices ordered by
// ascending dead-head distance from loc to the depot, ties broken by index.
func (n *Network) EndDepotsSortedByDistanceFrom(loc basetypes.LocationIdx) []basetypes.NodeIdx {
	return n.depotsSortedByDistance(n.endDepotNodes, func(depotLoc basetypes.LocationIdx) basetypes.Distance {
		return n.locs.Distance(loc, depotLoc)
	})
}

func (n *Network) depotsSortedByDistance(candidates []basetypes.NodeIdx, distTo func(basetypes.LocationIdx) basetypes.Distance) []basetypes.NodeIdx {
	out := cloneIdx(candidates)
	sort.SliceStable(out, func(i, j int) bool {
		di := distTo(n.nodes[out[i]].DepotLocation)
		dj := distTo(n.nodes[out[j]].DepotLocation)
		if c := di.Compare(dj); c != 0 {
			return c < 0
		}
		return out[i].Less(out[j])
	})
	return out
}

// CanReach reports whether a vehicle finishing node a can subsequently
// start node b: arrival at a's end-location plus the dead-head travel time
// to b's start-location must not exceed b's start time. A start-depot can
// reach anything locationally connected to it; anything locationally
// connected can reach an end-depot. No node can reach a start-depot and no
// node is reachable from an end-depot.
func (n *Network) CanReach(a, b basetypes.NodeIdx) bool {
	succs, ok := n.successors[a]
	if !ok {
		return false
	}
	idx := sort.Search(len(succs), func(i int) bool { return !succs[i].Less(b) })
	return idx < len(succs) && succs[idx] == b
}

// Successors returns every node reachable directly from a, sorted.
func (n *Network) Successors(a basetypes.NodeIdx) []basetypes.NodeIdx {
	return cloneIdx(n.successors[a])
}

func (n *Network) canReachUncached(a, b basetypes.NodeIdx) bool {
	if a == b {
		return false
	}
	na, nb := n.nodes[a], n.nodes[b]
	if nb.Kind == basetypes.KindStartDepot || na.Kind == basetypes.KindEndDepot {
		return false
	}
	if na.Kind == basetypes.KindStartDepot {
		tt := n.locs.TravelTime(na.StartLocation(), nb.StartLocation())
		return !tt.IsInfinite()
	}
	if nb.Kind == basetypes.KindEndDepot {
		tt := n.locs.TravelTime(na.EndLocation(), nb.EndLocation())
		return !tt.IsInfinite()
	}
	tt := n.locs.TravelTime(na.EndLocation(), nb.StartLocation())
	if tt.IsInfinite() {
		return false
	}
	arrivalPlusDeadhead := na.EndTime().Add(tt.Std())
	return !arrivalPlusDeadhead.After(nb.StartTime())
}
