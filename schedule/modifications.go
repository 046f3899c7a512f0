// File: modifications.go
// Role: every Schedule mutation. Each public operation builds its new maps
// from defensively cloned copies of the receiver's and returns a brand new
// Schedule; the receiver is left untouched. Private helpers take the
// receiver (the pre-mutation schedule, "old") and the schedule under
// construction ("ns") explicitly, since Go has no borrow-checker to enforce
// that distinction the way the original does.
//
// Grounded on: original_source/solution/src/schedule/modifications.rs
// (spawn_vehicle_for_path, delete_vehicle, delete_dummy,
// spawn_vehicle_to_replace_dummy_tour, add_path_to_vehicle_tour,
// cautious_reassign, override_reassign, fit_reassign,
// reassign_end_depots_greedily, update_tours, update_tour,
// update_train_formation, vehicle_replacement_in_train_formation,
// update_depot_usage*, add_dummy_tour, fit_path_into_tour,
// improve_depots_of_tour, add_suitable_start_and_end_depot_to_path,
// find_best_start_depot_for_spawning, find_best_end_depot_for_despawning).
package schedule

import (
	"fmt"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/tour"
	"github.com/rssched/rollingstock-solver/trainformation"
)

// SpawnVehicleForPath spawns a new vehicle of typ to cover path. If path
// does not start with a depot, the nearest start depot with spawn capacity
// is prepended; if it does not end with one, the nearest end depot is
// appended (end depots are not checked for capacity).
func (s *Schedule) SpawnVehicleForPath(typ basetypes.VehicleTypeIdx, path []basetypes.NodeIdx) (*Schedule, basetypes.VehicleID, error) {
	nodes, err := s.addSuitableStartAndEndDepotToPath(typ, path)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}

	id := basetypes.NewVehicleID(s.vehicleCounter)
	newTour, err := tour.New(id, nodes, s.nw)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}

	ns := s.clone()
	ns.vehicles = cloneVehicleMap(s.vehicles)
	ns.tours = cloneTourMap(s.tours)
	ns.trainFormations = cloneFormationMap(s.trainFormations)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)
	ns.vehicleIDsSorted = insertSorted(cloneIDs(s.vehicleIDsSorted), id)
	ns.vehicleCounter = s.vehicleCounter + 1

	v := Vehicle{ID: id, Type: typ}
	ns.vehicles[id] = v
	ns.tours[id] = newTour

	s.updateTrainFormation(ns, basetypes.VehicleID{}, false, &v, newTour.AllNodesIter())
	s.updateDepotUsage(ns, id)

	return ns, id, nil
}

// DeleteVehicle removes a real vehicle and its tour entirely.
func (s *Schedule) DeleteVehicle(id basetypes.VehicleID) (*Schedule, error) {
	if !s.IsVehicle(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, id)
	}
	t := s.tours[id]

	ns := s.clone()
	ns.vehicles = cloneVehicleMap(s.vehicles)
	ns.tours = cloneTourMap(s.tours)
	ns.trainFormations = cloneFormationMap(s.trainFormations)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)
	ns.vehicleIDsSorted = removeSorted(cloneIDs(s.vehicleIDsSorted), id)

	delete(ns.vehicles, id)
	delete(ns.tours, id)

	s.updateTrainFormation(ns, id, true, nil, t.AllNodesIter())
	s.updateDepotUsage(ns, id)

	return ns, nil
}

// DeleteDummy removes a dummy tour entirely.
func (s *Schedule) DeleteDummy(id basetypes.VehicleID) (*Schedule, error) {
	if !s.IsDummy(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotADummy, id)
	}
	ns := s.clone()
	ns.dummyTours = cloneTourMap(s.dummyTours)
	ns.dummyIDsSorted = removeSorted(cloneIDs(s.dummyIDsSorted), id)
	delete(ns.dummyTours, id)
	return ns, nil
}

// SpawnVehicleToReplaceDummyTour deletes dummy tour id and spawns a real
// vehicle of typ to cover the same nodes.
func (s *Schedule) SpawnVehicleToReplaceDummyTour(id basetypes.VehicleID, typ basetypes.VehicleTypeIdx) (*Schedule, basetypes.VehicleID, error) {
	t, ok := s.dummyTours[id]
	if !ok {
		return nil, basetypes.VehicleID{}, fmt.Errorf("%w: %s", ErrNotADummy, id)
	}
	nodes := t.AllNodesIter()
	intermediate, err := s.DeleteDummy(id)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}
	return intermediate.SpawnVehicleForPath(typ, nodes)
}

// AddPathToVehicleTour inserts path into vehicle's (real or dummy) tour.
// Any nodes the insertion displaces leave vehicle's train formation; path's
// nodes join it.
func (s *Schedule) AddPathToVehicleTour(id basetypes.VehicleID, path *tour.Path) (*Schedule, error) {
	t, ok := s.TourOf(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, id)
	}

	ns := s.clone()
	ns.tours = cloneTourMap(s.tours)
	ns.dummyTours = cloneTourMap(s.dummyTours)
	ns.trainFormations = cloneFormationMap(s.trainFormations)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)

	v, hasVehicle := s.vehicles[id]
	var vp *Vehicle
	if hasVehicle {
		vp = &v
	}
	s.updateTrainFormation(ns, basetypes.VehicleID{}, false, vp, path.Iter())

	newTour, removed, err := t.InsertPath(path)
	if err != nil {
		return nil, err
	}
	if removed != nil {
		s.updateTrainFormation(ns, id, true, nil, removed.Iter())
	}

	s.updateTour(ns, id, newTour)
	s.updateDepotUsage(ns, id)

	return ns, nil
}

// SpawnDummyTour wraps an arbitrary depot-free node sequence in a brand new
// dummy tour, without touching any vehicle's train-formation membership.
// Used by neighborhood generation to park nodes orphaned by a vehicle
// removal so a later move can try to re-home them.
func (s *Schedule) SpawnDummyTour(nodes []basetypes.NodeIdx) (*Schedule, basetypes.VehicleID, error) {
	path, err := tour.NewPath(nodes, s.nw)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}
	ns := s.clone()
	ns.dummyTours = cloneTourMap(s.dummyTours)
	ns.dummyIDsSorted = cloneIDs(s.dummyIDsSorted)

	id := basetypes.NewDummyID(s.dummyCounter)
	ns.dummyCounter = s.dummyCounter + 1
	s.addDummyTour(ns, id, path)
	return ns, id, nil
}

// CautiousReassign moves segment from provider's tour to receiver's tour,
// aborting with ErrConflict if the move would displace any of receiver's
// existing nodes.
func (s *Schedule) CautiousReassign(seg tour.Segment, provider, receiver basetypes.VehicleID) (*Schedule, error) {
	receiverTour, ok := s.TourOf(receiver)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, receiver)
	}
	providerTour, ok := s.TourOf(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, provider)
	}
	path, err := providerTour.SubPath(seg)
	if err != nil {
		return nil, err
	}
	conflictNodes, err := receiverTour.Conflict(path)
	if err != nil {
		return nil, err
	}
	if len(conflictNodes) > 0 {
		return nil, fmt.Errorf("%w: segment %v displaces %d node(s) of %s", ErrConflict, seg, len(conflictNodes), receiver)
	}
	ns, _, err := s.OverrideReassign(seg, provider, receiver)
	return ns, err
}

// OverrideReassign removes segment from provider's tour and inserts it into
// receiver's tour, displacing whatever nodes of receiver's tour conflict
// into a fresh dummy tour. Returns the new dummy's id, or the zero
// VehicleID if nothing was displaced.
func (s *Schedule) OverrideReassign(seg tour.Segment, provider, receiver basetypes.VehicleID) (*Schedule, basetypes.VehicleID, error) {
	providerTour, ok := s.TourOf(provider)
	if !ok {
		return nil, basetypes.VehicleID{}, fmt.Errorf("%w: %s", ErrNotAVehicle, provider)
	}
	receiverTour, ok := s.TourOf(receiver)
	if !ok {
		return nil, basetypes.VehicleID{}, fmt.Errorf("%w: %s", ErrNotAVehicle, receiver)
	}

	shrunkProvider, removedPath, err := providerTour.Remove(seg)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}
	movedNodes := removedPath.Iter()

	newReceiverTour, replacedPath, err := receiverTour.InsertPath(removedPath)
	if err != nil {
		return nil, basetypes.VehicleID{}, err
	}

	ns := s.clone()
	ns.vehicles = cloneVehicleMap(s.vehicles)
	ns.tours = cloneTourMap(s.tours)
	ns.dummyTours = cloneTourMap(s.dummyTours)
	ns.trainFormations = cloneFormationMap(s.trainFormations)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)
	ns.vehicleIDsSorted = cloneIDs(s.vehicleIDsSorted)
	ns.dummyIDsSorted = cloneIDs(s.dummyIDsSorted)

	s.applyTourUpdate(ns, provider, true, shrunkProvider, receiver, newReceiverTour, movedNodes)

	var newDummy basetypes.VehicleID
	if replacedPath != nil {
		newDummy = basetypes.NewDummyID(ns.dummyCounter)
		if s.IsVehicle(receiver) {
			s.updateTrainFormation(ns, receiver, true, nil, replacedPath.Iter())
		}
		s.addDummyTour(ns, newDummy, replacedPath)
		ns.dummyCounter++
	}

	return ns, newDummy, nil
}

// FitReassign tries to insert as much of segment's nodes into receiver's
// tour as fit without conflict; rejected nodes stay with provider.
func (s *Schedule) FitReassign(seg tour.Segment, provider, receiver basetypes.VehicleID) (*Schedule, error) {
	providerTour, ok := s.TourOf(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, provider)
	}
	receiverTour, ok := s.TourOf(receiver)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAVehicle, receiver)
	}
	path, err := providerTour.SubPath(seg)
	if err != nil {
		return nil, err
	}

	newProviderTour, newReceiverTour, moved := fitPathIntoTour(path, providerTour, receiverTour)

	ns := s.clone()
	ns.vehicles = cloneVehicleMap(s.vehicles)
	ns.tours = cloneTourMap(s.tours)
	ns.dummyTours = cloneTourMap(s.dummyTours)
	ns.trainFormations = cloneFormationMap(s.trainFormations)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)
	ns.vehicleIDsSorted = cloneIDs(s.vehicleIDsSorted)
	ns.dummyIDsSorted = cloneIDs(s.dummyIDsSorted)

	s.applyTourUpdate(ns, provider, true, newProviderTour, receiver, newReceiverTour, moved)

	return ns, nil
}

// ReassignEndDepotsGreedily replaces every real vehicle's end depot with
// the nearest one reachable from its last stop.
func (s *Schedule) ReassignEndDepotsGreedily() (*Schedule, error) {
	ns := s.clone()
	ns.tours = cloneTourMap(s.tours)
	ns.depotUsage = cloneDepotUsage(s.depotUsage)

	for _, id := range s.vehicleIDsSorted {
		t := ns.tours[id]
		last, ok := t.LastNonDepot()
		if !ok {
			return nil, fmt.Errorf("%w: vehicle %s has no non-depot node", ErrInconsistent, id)
		}
		loc := s.nw.Node(last).EndLocation()
		candidates := s.nw.EndDepotsSortedByDistanceFrom(loc)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: no end depot reachable for vehicle %s", ErrNoDepotAvailable, id)
		}
		newTour, err := t.ReplaceEndDepot(candidates[0])
		if err != nil {
			return nil, err
		}
		ns.tours[id] = newTour
		s.updateDepotUsage(ns, id)
	}
	return ns, nil
}

// applyTourUpdate is the shared tail of fit/override reassign: write back
// the provider's and receiver's new tours (or delete the provider if it has
// none left), refresh depot usage, and move train-formation membership for
// movedNodes from provider to receiver. s is the pre-mutation schedule.
func (s *Schedule) applyTourUpdate(ns *Schedule, provider basetypes.VehicleID, hasProvider bool, newProviderTour *tour.Tour, receiver basetypes.VehicleID, newReceiverTour *tour.Tour, movedNodes []basetypes.NodeIdx) {
	if hasProvider {
		switch {
		case newProviderTour != nil:
			s.updateTour(ns, provider, newProviderTour)
		case s.IsDummy(provider):
			delete(ns.dummyTours, provider)
			ns.dummyIDsSorted = removeSorted(ns.dummyIDsSorted, provider)
		case s.IsVehicle(provider):
			delete(ns.vehicles, provider)
			delete(ns.tours, provider)
			ns.vehicleIDsSorted = removeSorted(ns.vehicleIDsSorted, provider)
		}
		s.updateDepotUsage(ns, provider)
	}

	s.updateTour(ns, receiver, newReceiverTour)
	s.updateDepotUsage(ns, receiver)

	var receiverVehicle *Vehicle
	if v, ok := s.vehicles[receiver]; ok {
		receiverVehicle = &v
	}
	var providerID basetypes.VehicleID
	if hasProvider {
		providerID = provider
	}
	s.updateTrainFormation(ns, providerID, hasProvider, receiverVehicle, movedNodes)
}

// updateTour writes a vehicle's new tour into ns, improving its depots
// first if it belongs to a real vehicle. s is the pre-mutation schedule,
// used only to decide real-vs-dummy.
func (s *Schedule) updateTour(ns *Schedule, id basetypes.VehicleID, t *tour.Tour) {
	if s.IsDummy(id) {
		ns.dummyTours[id] = t
		return
	}
	typ := s.vehicles[id].Type
	ns.tours[id] = s.improveDepotsOfTour(t, typ)
}

// updateTrainFormation moves membership for every node in moved from
// provider (if hasProvider) to receiverVehicle (if non-nil), skipping
// depot nodes, which carry no formation.
func (s *Schedule) updateTrainFormation(ns *Schedule, provider basetypes.VehicleID, hasProvider bool, receiverVehicle *Vehicle, moved []basetypes.NodeIdx) {
	for _, node := range moved {
		if s.nw.Node(node).IsDepot() {
			continue
		}
		ns.trainFormations[node] = s.vehicleReplacementInTrainFormation(ns, provider, hasProvider, receiverVehicle, node)
	}
}

// vehicleReplacementInTrainFormation computes the new formation for node
// after provider gives it up and/or receiverVehicle takes it on. A dummy
// provider, or a nil/dummy receiver, carries no formation membership of
// its own.
func (s *Schedule) vehicleReplacementInTrainFormation(ns *Schedule, provider basetypes.VehicleID, hasProvider bool, receiverVehicle *Vehicle, node basetypes.NodeIdx) *trainformation.TrainFormation {
	old := ns.trainFormations[node]
	providerIsVehicle := hasProvider && s.IsVehicle(provider)

	if receiverVehicle != nil {
		member := trainformation.MemberFromCatalog(receiverVehicle.ID, receiverVehicle.Type, s.catalog)
		if providerIsVehicle {
			if replaced, err := old.Replace(provider, member); err == nil {
				return replaced
			}
		}
		return old.AddAtTail(member)
	}
	if providerIsVehicle {
		if removed, err := old.Remove(provider); err == nil {
			return removed
		}
	}
	return old
}

// updateDepotUsage refreshes depot occupancy for id after ns.vehicles/
// ns.tours have already been updated for it; s is the pre-mutation
// schedule, consulted for id's previous depot assignment.
func (s *Schedule) updateDepotUsage(ns *Schedule, id basetypes.VehicleID) {
	if v, ok := ns.vehicles[id]; ok {
		s.updateDepotUsageAssumingNoDummies(ns, v, ns.tours[id])
		return
	}
	if v, ok := s.vehicles[id]; ok {
		s.updateDepotUsageAssumingNoDummies(ns, v, nil)
	}
}

func (s *Schedule) updateDepotUsageAssumingNoDummies(ns *Schedule, v Vehicle, newTour *tour.Tour) {
	var newStart, newEnd *basetypes.NodeIdx
	if newTour != nil {
		if sd, ok := newTour.StartDepot(); ok {
			newStart = &sd
		}
		if ed, ok := newTour.EndDepot(); ok {
			newEnd = &ed
		}
	}
	s.updateDepotUsageForNewStartDepot(ns, v, newStart)
	s.updateDepotUsageForNewEndDepot(ns, v, newEnd)
}

func (s *Schedule) updateDepotUsageForNewStartDepot(ns *Schedule, v Vehicle, newStartDepotNode *basetypes.NodeIdx) {
	if s.IsVehicle(v.ID) {
		oldDepotNode, _ := s.tours[v.ID].StartDepot()
		key := depotUsageKey{Depot: s.nw.DepotOf(oldDepotNode), Type: v.Type}
		if entry, ok := ns.depotUsage[key]; ok {
			delete(entry.Spawned, v.ID)
		}
	}
	if newStartDepotNode != nil {
		key := depotUsageKey{Depot: s.nw.DepotOf(*newStartDepotNode), Type: v.Type}
		if entry, ok := ns.depotUsage[key]; ok {
			entry.Spawned[v.ID] = struct{}{}
		}
	}
}

func (s *Schedule) updateDepotUsageForNewEndDepot(ns *Schedule, v Vehicle, newEndDepotNode *basetypes.NodeIdx) {
	if s.IsVehicle(v.ID) {
		oldDepotNode, _ := s.tours[v.ID].EndDepot()
		key := depotUsageKey{Depot: s.nw.DepotOf(oldDepotNode), Type: v.Type}
		if entry, ok := ns.depotUsage[key]; ok {
			delete(entry.Despawned, v.ID)
		}
	}
	if newEndDepotNode != nil {
		key := depotUsageKey{Depot: s.nw.DepotOf(*newEndDepotNode), Type: v.Type}
		if entry, ok := ns.depotUsage[key]; ok {
			entry.Despawned[v.ID] = struct{}{}
		}
	}
}

// addDummyTour builds a dummy tour from path and installs it into ns.
func (s *Schedule) addDummyTour(ns *Schedule, id basetypes.VehicleID, path *tour.Path) {
	dt, err := tour.NewDummy(id, path.Iter(), s.nw)
	if err != nil {
		return
	}
	ns.dummyTours[id] = dt
	ns.dummyIDsSorted = insertSorted(ns.dummyIDsSorted, id)
}

// fitPathIntoTour walks path, the nodes displaced from provider's tour,
// cutting it into the largest segments that can each be reassigned onto
// receiver's tour without conflict, and removed from provider's without
// breaking its connectivity. Segments that cannot be fit at all are
// dropped one node at a time so the walk still makes progress.
func fitPathIntoTour(path *tour.Path, providerTour, receiverTour *tour.Tour) (*tour.Tour, *tour.Tour, []basetypes.NodeIdx) {
	newProvider := providerTour
	newReceiver := receiverTour
	remaining := path
	var moved []basetypes.NodeIdx
	nw := receiverTour.Network()

	for remaining != nil && newProvider != nil {
		nodes := remaining.Iter()
		subStart := nodes[0]
		endPos := len(nodes) - 1
		subEnd := nodes[endPos]

		if blockerPos, ok := newReceiver.LatestNotReachingNode(subStart); ok {
			blocker, _ := newReceiver.NthNode(blockerPos)
			best := -1
			var bestNode basetypes.NodeIdx
			for i, n := range nodes {
				if nw.Node(n).EndTime().After(nw.Node(blocker).StartTime()) {
					break
				}
				if !nw.CanReach(n, blocker) {
					continue
				}
				if !newProvider.CheckRemovable(tour.Segment{First: subStart, Last: n}) {
					continue
				}
				best, bestNode = i, n
			}
			if best == -1 {
				endPos, subEnd = 0, nodes[0]
			} else {
				endPos, subEnd = best, bestNode
			}
		}

		_, tail := tour.SplitAfter(remaining, endPos)
		remaining = tail

		shrunk, removedPath, err := newProvider.Remove(tour.Segment{First: subStart, Last: subEnd})
		if err != nil {
			continue
		}
		if conflictNodes, cerr := newReceiver.Conflict(removedPath); cerr != nil || len(conflictNodes) > 0 {
			continue
		}
		grown, _, err := newReceiver.InsertPath(removedPath)
		if err != nil {
			continue
		}

		newProvider = shrunk
		newReceiver = grown
		moved = append(moved, removedPath.Iter()...)
	}
	return newProvider, newReceiver, moved
}

// improveDepotsOfTour replaces t's start and end depots with the nearest
// ones that still fit, if better ones exist.
func (s *Schedule) improveDepotsOfTour(t *tour.Tour, typ basetypes.VehicleTypeIdx) *tour.Tour {
	if t.IsDummy() {
		return t
	}
	working := t

	if firstNonDepot, ok := working.FirstNonDepot(); ok {
		if newStart, err := s.findBestStartDepotForSpawning(typ, firstNonDepot); err == nil {
			if curStart, _ := working.StartDepot(); curStart != newStart {
				if nt, err2 := working.ReplaceStartDepot(newStart); err2 == nil {
					working = nt
				}
			}
		}
	}

	if lastNonDepot, ok := working.LastNonDepot(); ok {
		if newEnd, err := s.findBestEndDepotForDespawning(typ, lastNonDepot); err == nil {
			if curEnd, _ := working.EndDepot(); curEnd != newEnd {
				if nt, err2 := working.ReplaceEndDepot(newEnd); err2 == nil {
					working = nt
				}
			}
		}
	}

	return working
}

// addSuitableStartAndEndDepotToPath prepends/appends a depot to path if it
// does not already start/end with one: the nearest start depot with spare
// spawn capacity, and the nearest end depot (no capacity check). Returns an
// error if path's given start depot has no capacity, or if no depot is
// reachable.
func (s *Schedule) addSuitableStartAndEndDepotToPath(typ basetypes.VehicleTypeIdx, path []basetypes.NodeIdx) ([]basetypes.NodeIdx, error) {
	if len(path) == 0 {
		return nil, tour.ErrEmptyPath
	}
	nodes := make([]basetypes.NodeIdx, len(path))
	copy(nodes, path)
	first := nodes[0]
	last := nodes[len(nodes)-1]

	if s.nw.Node(first).IsDepot() && !s.CanDepotSpawnVehicle(first, typ) {
		return nil, fmt.Errorf("%w: start depot %s has no spawn capacity for vehicle type %d", ErrNoCapacity, first, typ)
	}

	if !s.nw.Node(first).IsDepot() {
		depot, err := s.findBestStartDepotForSpawning(typ, first)
		if err != nil {
			return nil, err
		}
		nodes = append([]basetypes.NodeIdx{depot}, nodes...)
	}
	if !s.nw.Node(last).IsDepot() {
		depot, err := s.findBestEndDepotForDespawning(typ, last)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, depot)
	}
	return nodes, nil
}

func (s *Schedule) findBestStartDepotForSpawning(typ basetypes.VehicleTypeIdx, firstNode basetypes.NodeIdx) (basetypes.NodeIdx, error) {
	loc := s.nw.Node(firstNode).StartLocation()
	for _, depot := range s.nw.StartDepotsSortedByDistanceTo(loc) {
		if s.CanDepotSpawnVehicle(depot, typ) {
			return depot, nil
		}
	}
	return basetypes.NodeIdx{}, fmt.Errorf("%w: no start depot can spawn vehicle type %d for node %s", ErrNoDepotAvailable, typ, firstNode)
}

func (s *Schedule) findBestEndDepotForDespawning(typ basetypes.VehicleTypeIdx, lastNode basetypes.NodeIdx) (basetypes.NodeIdx, error) {
	loc := s.nw.Node(lastNode).EndLocation()
	candidates := s.nw.EndDepotsSortedByDistanceFrom(loc)
	if len(candidates) == 0 {
		return basetypes.NodeIdx{}, fmt.Errorf("%w: no end depot reachable from node %s for vehicle type %d", ErrNoDepotAvailable, lastNode, typ)
	}
	return candidates[0], nil
}
