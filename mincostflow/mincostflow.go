// File: mincostflow.go
// Role: top-level entry point — groups service trips by their best-fit
// vehicle type, solves one flow network per group, and decodes the result
// into an initial schedule.Schedule by spawning one vehicle per extracted
// path.
//
// Grounded on: original_source solution/src/min_cost_flow_solver (the
// source/sink/depot-role/service-in-out topology and best_for(demand)
// type assignment) — no single file of that solver survived into
// original_source/_INDEX.md, so the topology is rebuilt directly from
// the written arc-by-arc network description.
package mincostflow

import (
	"sort"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/schedule"
)

// Solve builds a feasible initial cover of every service trip in nw using
// catalog's vehicle types, or returns ErrInfeasible if depot capacity
// cannot meet the required demand.
func Solve(nw *network.Network, catalog *network.VehicleTypeCatalog) (*schedule.Schedule, error) {
	groups := groupServicesByBestFitType(nw, catalog)

	sched := schedule.Empty(catalog, nw)

	var totalRequired, totalAchieved int64
	for _, typ := range catalog.Iter() {
		services := groups[typ]
		if len(services) == 0 {
			continue
		}
		fg := buildFlowGraph(nw, catalog, typ, services)
		_, _ = solveMaxFlow(fg)

		for _, s := range services {
			totalRequired += fg.requiredSlots[s]
		}

		for _, route := range decomposePaths(fg) {
			var err error
			sched, _, err = sched.SpawnVehicleForPath(typ, route)
			if err != nil {
				continue
			}
			totalAchieved += int64(routeServiceCount(fg, route))
		}
	}

	if totalAchieved < totalRequired {
		return nil, ErrInfeasible
	}
	return sched, nil
}

func routeServiceCount(fg *flowGraph, route []basetypes.NodeIdx) int {
	count := 0
	for _, n := range route {
		if _, ok := fg.requiredSlots[n]; ok {
			count++
		}
	}
	return count
}

func groupServicesByBestFitType(nw *network.Network, catalog *network.VehicleTypeCatalog) map[basetypes.VehicleTypeIdx][]basetypes.NodeIdx {
	groups := make(map[basetypes.VehicleTypeIdx][]basetypes.NodeIdx)
	services := nw.ServiceNodes()
	sort.Slice(services, func(i, j int) bool { return services[i].Less(services[j]) })
	for _, s := range services {
		typ := catalog.BestFor(nw.Node(s).Demand)
		groups[typ] = append(groups[typ], s)
	}
	return groups
}
