// File: node.go
// Role: Node is the tagged union of start-depot / service / maintenance /
// end-depot entries of the time-expanded network.
//
// Grounded on: original_source model/src/base_types.rs (NodeIdx enum) and
// the service-trip / depot fields implied throughout solution/src/schedule.rs.
package network

import (
	"time"

	"github.com/rssched/rollingstock-solver/basetypes"
)

// Node is a single vertex of the time-expanded network. Only the fields
// relevant to Kind are meaningful; the others are zero.
type Node struct {
	Idx  basetypes.NodeIdx
	Kind basetypes.NodeKind

	// Service / Maintenance fields.
	Origin      basetypes.LocationIdx
	Destination basetypes.LocationIdx
	Departure   time.Time
	Arrival     time.Time
	Distance    basetypes.Distance
	Demand      basetypes.PassengerCount
	Name        string

	// Depot fields (StartDepot / EndDepot).
	DepotLocation basetypes.LocationIdx
	Depot         basetypes.DepotIdx
}

// IsDepot reports whether the node is a start or end depot.
func (n *Node) IsDepot() bool {
	return n.Kind == basetypes.KindStartDepot || n.Kind == basetypes.KindEndDepot
}

// IsService reports whether the node is a timetabled service trip.
func (n *Node) IsService() bool { return n.Kind == basetypes.KindService }

// IsMaintenance reports whether the node is a maintenance placeholder.
func (n *Node) IsMaintenance() bool { return n.Kind == basetypes.KindMaintenance }

// StartLocation is the location a vehicle occupies this node from.
func (n *Node) StartLocation() basetypes.LocationIdx {
	if n.IsDepot() {
		return n.DepotLocation
	}
	return n.Origin
}

// EndLocation is the location a vehicle occupies after finishing this node.
func (n *Node) EndLocation() basetypes.LocationIdx {
	if n.IsDepot() {
		return n.DepotLocation
	}
	return n.Destination
}

// farFuture is a sentinel time used so that an end-depot node, which has no
// real timetable, still sorts after every real service/maintenance node
// when tour positions are binary-searched by time.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// StartTime is the node's departure time. A start-depot has no fixed
// timetable and is defined to depart at the zero time (so it always sorts
// first); an end-depot is defined to depart at farFuture (so it always
// sorts last).
func (n *Node) StartTime() time.Time {
	switch n.Kind {
	case basetypes.KindStartDepot:
		return time.Time{}
	case basetypes.KindEndDepot:
		return farFuture
	default:
		return n.Departure
	}
}

// EndTime is the node's arrival time, with the same depot sentinels as
// StartTime.
func (n *Node) EndTime() time.Time {
	switch n.Kind {
	case basetypes.KindStartDepot:
		return time.Time{}
	case basetypes.KindEndDepot:
		return farFuture
	default:
		return n.Arrival
	}
}
