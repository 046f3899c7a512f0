// File: neighborhood.go
// Role: neighborhood generation for local search — every Schedule a single
// elementary move away from the receiver. A move never mutates the
// receiver; each candidate is an independently built Schedule returned
// through a callback so a caller can stop early without paying for moves
// it never inspects.
//
// Grounded on: original_source/solution/src/schedule/modifications.rs's
// move catalogue ("move segment from provider to receiver", "spawn vehicle
// for dummy tour", "swap end depots", "remove vehicle and redistribute")
// and localsearch's own depth/width-bounded recursive search shape
// (localsearch generalizes the walk over this move set).
package schedule

import (
	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/tour"
)

// Move names which elementary transformation produced a neighborhood
// candidate, so a caller inspecting Neighborhood's output can report or
// filter by move kind without re-deriving it from the resulting Schedule.
type Move int

const (
	MoveReassignSegment Move = iota
	MoveSpawnForDummy
	MoveReassignEndDepots
	MoveRemoveAndRedistribute
)

func (m Move) String() string {
	switch m {
	case MoveReassignSegment:
		return "reassign-segment"
	case MoveSpawnForDummy:
		return "spawn-for-dummy"
	case MoveReassignEndDepots:
		return "reassign-end-depots"
	case MoveRemoveAndRedistribute:
		return "remove-and-redistribute"
	default:
		return "unknown-move"
	}
}

// Candidate pairs a neighborhood member with the move that produced it.
type Candidate struct {
	Move     Move
	Schedule *Schedule
}

// Neighborhood enumerates every Schedule reachable from s by one elementary
// move: reassigning a vehicle's whole non-depot segment onto another
// vehicle or dummy (FitReassign, so only the nodes that fit move),
// promoting a dummy tour to a real vehicle of every type that could cover
// it, replacing every vehicle's end depot with its nearest reachable one in
// a single combined candidate, and removing a vehicle outright with its
// nodes parked as a fresh dummy tour for a later move to re-home.
//
// Failed moves (conflicts, infeasible insertions) are silently skipped;
// Neighborhood only ever returns schedules that passed their move's own
// validation.
func (s *Schedule) Neighborhood() []Candidate {
	var out []Candidate

	vehicles := s.VehiclesIter()
	dummies := s.DummyIter()
	providers := make([]basetypes.VehicleID, 0, len(vehicles)+len(dummies))
	providers = append(providers, vehicles...)
	providers = append(providers, dummies...)

	for _, provider := range providers {
		providerTour, ok := s.TourOf(provider)
		if !ok {
			continue
		}
		first, hasFirst := providerTour.FirstNonDepot()
		last, hasLast := providerTour.LastNonDepot()
		if !hasFirst || !hasLast {
			continue
		}
		seg := tour.Segment{First: first, Last: last}

		for _, receiver := range providers {
			if receiver == provider {
				continue
			}
			if ns, err := s.FitReassign(seg, provider, receiver); err == nil {
				out = append(out, Candidate{Move: MoveReassignSegment, Schedule: ns})
			}
		}
	}

	for _, dummy := range dummies {
		for _, typ := range s.catalog.Iter() {
			if ns, _, err := s.SpawnVehicleToReplaceDummyTour(dummy, typ); err == nil {
				out = append(out, Candidate{Move: MoveSpawnForDummy, Schedule: ns})
			}
		}
	}

	if len(vehicles) > 0 {
		if ns, err := s.ReassignEndDepotsGreedily(); err == nil {
			out = append(out, Candidate{Move: MoveReassignEndDepots, Schedule: ns})
		}
	}

	for _, v := range vehicles {
		t, ok := s.TourOf(v)
		if !ok {
			continue
		}
		nodes := nonDepotNodes(t.AllNodesIter())
		if len(nodes) == 0 {
			continue
		}
		withoutVehicle, err := s.DeleteVehicle(v)
		if err != nil {
			continue
		}
		if redistributed, _, err := withoutVehicle.SpawnDummyTour(nodes); err == nil {
			out = append(out, Candidate{Move: MoveRemoveAndRedistribute, Schedule: redistributed})
		}
	}

	return out
}

func nonDepotNodes(nodes []basetypes.NodeIdx) []basetypes.NodeIdx {
	out := make([]basetypes.NodeIdx, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != basetypes.KindStartDepot && n.Kind != basetypes.KindEndDepot {
			out = append(out, n)
		}
	}
	return out
}
