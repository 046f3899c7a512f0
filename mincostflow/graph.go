// File: graph.go
// Role: builds the time-expanded flow network for one vehicle type
// over one group of service trips assigned to it.
package mincostflow

import (
	"github.com/katalvlaran/lvlath/core"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
)

const (
	source = "source"
	sink   = "sink"
)

// role tags what a flow-graph vertex represents in the original network, so
// the decoder can translate a source→sink path back into node indices.
type role uint8

const (
	roleSource role = iota
	roleSink
	roleDepotStart
	roleDepotEnd
	roleServiceIn
	roleServiceOut
)

type vertexInfo struct {
	role role
	node basetypes.NodeIdx // meaningful for depot/service roles only
}

// flowGraph is the forward network (core.Graph, Edge.Weight = integer cost)
// plus the residual bookkeeping (capacity, cost per ordered vertex pair)
// successive-shortest-path augmentation mutates in place.
type flowGraph struct {
	g *core.Graph

	info map[string]vertexInfo

	capacity map[string]map[string]int64
	cost     map[string]map[string]int64
	used     map[string]map[string]int64

	// requiredSlots records the in→out capacity of each service, i.e. the
	// number of vehicle-slots that must traverse it for full coverage.
	requiredSlots map[basetypes.NodeIdx]int64
}

func newFlowGraph() *flowGraph {
	return &flowGraph{
		g:             core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges()),
		info:          make(map[string]vertexInfo),
		capacity:      make(map[string]map[string]int64),
		cost:          make(map[string]map[string]int64),
		used:          make(map[string]map[string]int64),
		requiredSlots: make(map[basetypes.NodeIdx]int64),
	}
}

func (fg *flowGraph) addVertex(id string, info vertexInfo) {
	if _, ok := fg.info[id]; ok {
		return
	}
	_ = fg.g.AddVertex(id)
	fg.info[id] = info
	fg.capacity[id] = make(map[string]int64)
	fg.cost[id] = make(map[string]int64)
	fg.used[id] = make(map[string]int64)
}

// addArc installs a forward arc of the given capacity/cost and its zero-
// capacity residual reverse. Non-positive capacities and arcs the core
// graph rejects are skipped; a repeated arc adds to the existing capacity,
// and an existing reverse entry is left as it is.
func (fg *flowGraph) addArc(from, to string, capacity, cost int64) {
	if capacity <= 0 {
		return
	}
	if _, err := fg.g.AddEdge(from, to, cost); err != nil {
		return
	}
	fg.capacity[from][to] += capacity
	fg.cost[from][to] = cost
	if _, ok := fg.cost[to][from]; !ok {
		fg.cost[to][from] = -cost
	}
	if _, ok := fg.capacity[to][from]; !ok {
		fg.capacity[to][from] = 0
	}
}

func depotStartID(n basetypes.NodeIdx) string { return "D+" + n.String() }
func depotEndID(n basetypes.NodeIdx) string   { return "D-" + n.String() }
func serviceInID(n basetypes.NodeIdx) string  { return "I:" + n.String() }
func serviceOutID(n basetypes.NodeIdx) string { return "O:" + n.String() }

// buildFlowGraph assembles the network for vehicle type typ and the
// given group of service nodes (all of which must have typ as their
// best-fit type — see mincostflow.go).
func buildFlowGraph(nw *network.Network, catalog *network.VehicleTypeCatalog, typ basetypes.VehicleTypeIdx, services []basetypes.NodeIdx) *flowGraph {
	fg := newFlowGraph()
	fg.addVertex(source, vertexInfo{role: roleSource})
	fg.addVertex(sink, vertexInfo{role: roleSink})

	serviceSet := make(map[basetypes.NodeIdx]bool, len(services))
	for _, s := range services {
		serviceSet[s] = true
	}

	vt, _ := catalog.Get(typ)
	seats := vt.Seats
	if seats == 0 {
		seats = 1
	}

	for _, s := range services {
		in, out := serviceInID(s), serviceOutID(s)
		fg.addVertex(in, vertexInfo{role: roleServiceIn, node: s})
		fg.addVertex(out, vertexInfo{role: roleServiceOut, node: s})

		demand := nw.Node(s).Demand
		slots := int64(demand) / int64(seats)
		if int64(demand)%int64(seats) != 0 {
			slots++
		}
		if slots < 1 {
			slots = 1
		}
		fg.requiredSlots[s] = slots
		fg.addArc(in, out, slots, 0)
	}

	for _, depotID := range nw.Depots() {
		depot, _ := nw.Depot(depotID)
		capacity, allowed := depot.CapacityFor(typ)
		if !allowed || capacity == 0 {
			continue
		}
		for _, startNode := range nw.StartDepotsSortedByDistanceTo(depot.Location) {
			if nw.DepotOf(startNode) != depotID {
				continue
			}
			sID := depotStartID(startNode)
			fg.addVertex(sID, vertexInfo{role: roleDepotStart, node: startNode})
			fg.addArc(source, sID, int64(capacity), 0)
			for _, s := range services {
				if nw.CanReach(startNode, s) {
					dist, finite := nw.Locations().Distance(nw.Node(startNode).DepotLocation, nw.Node(s).Origin).Meters()
					if !finite {
						continue
					}
					fg.addArc(sID, serviceInID(s), 1, int64(dist))
				}
			}
		}
		for _, endNode := range nw.EndDepotsSortedByDistanceFrom(depot.Location) {
			if nw.DepotOf(endNode) != depotID {
				continue
			}
			eID := depotEndID(endNode)
			fg.addVertex(eID, vertexInfo{role: roleDepotEnd, node: endNode})
			fg.addArc(eID, sink, int64(capacity), 0)
			for _, s := range services {
				if nw.CanReach(s, endNode) {
					dist, finite := nw.Locations().Distance(nw.Node(s).Destination, nw.Node(endNode).DepotLocation).Meters()
					if !finite {
						continue
					}
					fg.addArc(serviceOutID(s), eID, 1, int64(dist))
				}
			}
		}
	}

	for _, a := range services {
		for _, b := range services {
			if a == b || !nw.CanReach(a, b) {
				continue
			}
			dist, finite := nw.Locations().Distance(nw.Node(a).Destination, nw.Node(b).Origin).Meters()
			if !finite {
				continue
			}
			fg.addArc(serviceOutID(a), serviceInID(b), 1, int64(dist))
		}
	}

	return fg
}
