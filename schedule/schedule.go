// File: schedule.go
// Role: Schedule, the persistent solution object: which vehicles exist,
// what tour each occupies, which train formation covers each coverable
// node, and each depot's spawn/despawn usage. Immutable — every mutation
// in modifications.go returns a new Schedule built from defensively cloned
// maps rather than touching the receiver.
//
// Determinism:
//   - VehicleIDsSorted/DummyIDsSorted are kept sorted after every mutation;
//     schedule comparison and reporting depend on that order.
//
// Grounded on: original_source/solution/src/schedule.rs (the field set,
// the query methods, Ord/PartialOrd/Eq). im::HashMap's structural sharing
// has no direct Go equivalent; this port approximates persistence with
// defensively-cloned Go maps at each mutation boundary (noted in
// DESIGN.md), which is asymptotically worse but observably identical.
package schedule

import (
	"fmt"
	"sort"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/tour"
	"github.com/rssched/rollingstock-solver/trainformation"
)

// Vehicle is a real vehicle's identity and assigned type.
type Vehicle struct {
	ID   basetypes.VehicleID
	Type basetypes.VehicleTypeIdx
}

type depotUsageKey struct {
	Depot basetypes.DepotIdx
	Type  basetypes.VehicleTypeIdx
}

type vehicleSet map[basetypes.VehicleID]struct{}

func (s vehicleSet) clone() vehicleSet {
	out := make(vehicleSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

type depotUsageEntry struct {
	Spawned   vehicleSet
	Despawned vehicleSet
}

// Schedule is the immutable solver state: vehicle set, tours, train
// formations, and depot usage.
type Schedule struct {
	vehicles        map[basetypes.VehicleID]Vehicle
	tours           map[basetypes.VehicleID]*tour.Tour
	dummyTours      map[basetypes.VehicleID]*tour.Tour
	trainFormations map[basetypes.NodeIdx]*trainformation.TrainFormation
	depotUsage      map[depotUsageKey]depotUsageEntry

	vehicleIDsSorted []basetypes.VehicleID
	dummyIDsSorted   []basetypes.VehicleID

	vehicleCounter uint32
	dummyCounter   uint32

	catalog *network.VehicleTypeCatalog
	nw      *network.Network
}

// Empty builds a schedule with no vehicles: every coverable node starts
// with an empty train formation and every depot/type pair starts at zero
// usage.
func Empty(catalog *network.VehicleTypeCatalog, nw *network.Network) *Schedule {
	s := &Schedule{
		vehicles:        make(map[basetypes.VehicleID]Vehicle),
		tours:           make(map[basetypes.VehicleID]*tour.Tour),
		dummyTours:      make(map[basetypes.VehicleID]*tour.Tour),
		trainFormations: make(map[basetypes.NodeIdx]*trainformation.TrainFormation),
		depotUsage:      make(map[depotUsageKey]depotUsageEntry),
		catalog:         catalog,
		nw:              nw,
	}
	for _, node := range nw.CoverableNodes() {
		s.trainFormations[node] = trainformation.Empty()
	}
	for _, depot := range nw.Depots() {
		for _, typ := range catalog.Iter() {
			s.depotUsage[depotUsageKey{Depot: depot, Type: typ}] = depotUsageEntry{
				Spawned:   make(vehicleSet),
				Despawned: make(vehicleSet),
			}
		}
	}
	return s
}

// clone makes a shallow struct copy; callers then replace whichever maps
// they are about to mutate with their own clones before returning it.
func (s *Schedule) clone() *Schedule {
	return &Schedule{
		vehicles:         s.vehicles,
		tours:            s.tours,
		dummyTours:       s.dummyTours,
		trainFormations:  s.trainFormations,
		depotUsage:       s.depotUsage,
		vehicleIDsSorted: s.vehicleIDsSorted,
		dummyIDsSorted:   s.dummyIDsSorted,
		vehicleCounter:   s.vehicleCounter,
		dummyCounter:     s.dummyCounter,
		catalog:          s.catalog,
		nw:               s.nw,
	}
}

func cloneVehicleMap(m map[basetypes.VehicleID]Vehicle) map[basetypes.VehicleID]Vehicle {
	out := make(map[basetypes.VehicleID]Vehicle, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTourMap(m map[basetypes.VehicleID]*tour.Tour) map[basetypes.VehicleID]*tour.Tour {
	out := make(map[basetypes.VehicleID]*tour.Tour, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFormationMap(m map[basetypes.NodeIdx]*trainformation.TrainFormation) map[basetypes.NodeIdx]*trainformation.TrainFormation {
	out := make(map[basetypes.NodeIdx]*trainformation.TrainFormation, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneDepotUsage(m map[depotUsageKey]depotUsageEntry) map[depotUsageKey]depotUsageEntry {
	out := make(map[depotUsageKey]depotUsageEntry, len(m))
	for k, v := range m {
		out[k] = depotUsageEntry{Spawned: v.Spawned.clone(), Despawned: v.Despawned.clone()}
	}
	return out
}

func cloneIDs(s []basetypes.VehicleID) []basetypes.VehicleID {
	out := make([]basetypes.VehicleID, len(s))
	copy(out, s)
	return out
}

func insertSorted(ids []basetypes.VehicleID, id basetypes.VehicleID) []basetypes.VehicleID {
	i := sort.Search(len(ids), func(i int) bool { return !ids[i].Less(id) })
	out := make([]basetypes.VehicleID, len(ids)+1)
	copy(out, ids[:i])
	out[i] = id
	copy(out[i+1:], ids[i:])
	return out
}

func removeSorted(ids []basetypes.VehicleID, id basetypes.VehicleID) []basetypes.VehicleID {
	i := sort.Search(len(ids), func(i int) bool { return !ids[i].Less(id) })
	if i >= len(ids) || ids[i] != id {
		return ids
	}
	out := make([]basetypes.VehicleID, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	out = append(out, ids[i+1:]...)
	return out
}

// NumberOfVehicles returns the count of real vehicles.
func (s *Schedule) NumberOfVehicles() int { return len(s.vehicles) }

// VehiclesIter returns real vehicle ids, sorted ascending.
func (s *Schedule) VehiclesIter() []basetypes.VehicleID { return cloneIDs(s.vehicleIDsSorted) }

// IsVehicle reports whether id names a real vehicle in this schedule.
func (s *Schedule) IsVehicle(id basetypes.VehicleID) bool {
	_, ok := s.vehicles[id]
	return ok
}

// IsDummy reports whether id names a dummy tour in this schedule.
func (s *Schedule) IsDummy(id basetypes.VehicleID) bool {
	_, ok := s.dummyTours[id]
	return ok
}

// IsVehicleOrDummy reports whether id is known to this schedule at all.
func (s *Schedule) IsVehicleOrDummy(id basetypes.VehicleID) bool {
	return s.IsVehicle(id) || s.IsDummy(id)
}

// Vehicle returns the vehicle record for id.
func (s *Schedule) Vehicle(id basetypes.VehicleID) (Vehicle, bool) {
	v, ok := s.vehicles[id]
	return v, ok
}

// VehicleTypeOf returns the vehicle type of a real vehicle.
func (s *Schedule) VehicleTypeOf(id basetypes.VehicleID) (basetypes.VehicleTypeIdx, bool) {
	v, ok := s.vehicles[id]
	if !ok {
		return 0, false
	}
	return v.Type, true
}

// NumberOfDummyTours returns the count of dummy tours.
func (s *Schedule) NumberOfDummyTours() int { return len(s.dummyTours) }

// DummyIter returns dummy vehicle ids, sorted ascending.
func (s *Schedule) DummyIter() []basetypes.VehicleID { return cloneIDs(s.dummyIDsSorted) }

// TourOf returns the tour assigned to a real or dummy vehicle.
func (s *Schedule) TourOf(id basetypes.VehicleID) (*tour.Tour, bool) {
	if t, ok := s.tours[id]; ok {
		return t, true
	}
	t, ok := s.dummyTours[id]
	return t, ok
}

// TrainFormationOf returns the train formation covering node.
func (s *Schedule) TrainFormationOf(node basetypes.NodeIdx) *trainformation.TrainFormation {
	return s.trainFormations[node]
}

// Network exposes the underlying network.
func (s *Schedule) Network() *network.Network { return s.nw }

// VehicleTypes exposes the underlying vehicle type catalog.
func (s *Schedule) VehicleTypes() *network.VehicleTypeCatalog { return s.catalog }

// NumberOfVehiclesOfSameTypeSpawnedAt returns how many vehicles of typ are
// currently spawned at depot.
func (s *Schedule) NumberOfVehiclesOfSameTypeSpawnedAt(depot basetypes.DepotIdx, typ basetypes.VehicleTypeIdx) basetypes.VehicleCount {
	e, ok := s.depotUsage[depotUsageKey{Depot: depot, Type: typ}]
	if !ok {
		return 0
	}
	return basetypes.VehicleCount(len(e.Spawned))
}

// DepotBalance is spawned-count minus despawned-count for (depot, type);
// negative means more vehicles despawn there than spawn.
func (s *Schedule) DepotBalance(depot basetypes.DepotIdx, typ basetypes.VehicleTypeIdx) int64 {
	e, ok := s.depotUsage[depotUsageKey{Depot: depot, Type: typ}]
	if !ok {
		return 0
	}
	return int64(len(e.Spawned)) - int64(len(e.Despawned))
}

// TotalDepotBalanceViolation sums |balance| over every (depot, type) pair.
func (s *Schedule) TotalDepotBalanceViolation() basetypes.VehicleCount {
	var total basetypes.VehicleCount
	for key := range s.depotUsage {
		b := s.DepotBalance(key.Depot, key.Type)
		if b < 0 {
			b = -b
		}
		total += basetypes.VehicleCount(b)
	}
	return total
}

// CanDepotSpawnVehicle reports whether depot node startDepotNode still has
// spawn capacity left for vehicle type typ.
func (s *Schedule) CanDepotSpawnVehicle(startDepotNode basetypes.NodeIdx, typ basetypes.VehicleTypeIdx) bool {
	depot := s.nw.DepotOf(startDepotNode)
	capacity, allowed := s.nw.CapacityOf(depot, typ)
	if !allowed {
		return false
	}
	return s.NumberOfVehiclesOfSameTypeSpawnedAt(depot, typ) < capacity
}

// NumberOfUnservedPassengers sums, over every service trip, the demand not
// met by its train formation's seat capacity.
func (s *Schedule) NumberOfUnservedPassengers() basetypes.PassengerCount {
	var total basetypes.PassengerCount
	for _, node := range s.nw.ServiceNodes() {
		demand := s.nw.Node(node).Demand
		served := s.trainFormations[node].Seats()
		if served < demand {
			total += demand - served
		}
	}
	return total
}

// IsFullyCovered reports whether a service node's formation meets demand.
func (s *Schedule) IsFullyCovered(serviceNode basetypes.NodeIdx) bool {
	return s.trainFormations[serviceNode].Seats() >= s.nw.Node(serviceNode).Demand
}

// SeatDistanceTraveled sums, over every real vehicle, seats * total tour
// distance in meters.
func (s *Schedule) SeatDistanceTraveled() basetypes.SeatDistance {
	var total basetypes.SeatDistance
	for id, t := range s.tours {
		meters, finite := t.TotalDistance().Meters()
		if !finite {
			continue
		}
		vt, _ := s.catalog.Get(s.vehicles[id].Type)
		total += basetypes.SeatDistance(meters) * basetypes.SeatDistance(vt.Seats)
	}
	return total
}

// TotalDeadHeadDistance sums dead-head distance over every real vehicle's
// tour.
func (s *Schedule) TotalDeadHeadDistance() basetypes.Distance {
	total := basetypes.ZeroDistance()
	for _, t := range s.tours {
		total = total.Add(t.DeadHeadDistance())
	}
	return total
}

// Compare gives Schedule a total order: first by vehicle count, then
// lexicographically by the tours of same-position sorted vehicle ids,
// then by dummy-tour count, then by sorted dummy tours. Two schedules
// that differ only in vehicle-id numbering but have the same tours
// (matched positionally) compare equal on that prefix, matching the
// original's documented "equal modulo vehicle-id labeling" semantics.
func (s *Schedule) Compare(other *Schedule) int {
	if len(s.vehicles) != len(other.vehicles) {
		if len(s.vehicles) < len(other.vehicles) {
			return -1
		}
		return 1
	}
	for i, id := range s.vehicleIDsSorted {
		otherID := other.vehicleIDsSorted[i]
		if c := compareTours(s.tours[id], other.tours[otherID]); c != 0 {
			return c
		}
	}
	if len(s.dummyTours) != len(other.dummyTours) {
		if len(s.dummyTours) < len(other.dummyTours) {
			return -1
		}
		return 1
	}
	mine := sortedDummyTours(s.dummyTours, s.dummyIDsSorted)
	theirs := sortedDummyTours(other.dummyTours, other.dummyIDsSorted)
	for i := range mine {
		if c := compareTours(mine[i], theirs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func sortedDummyTours(m map[basetypes.VehicleID]*tour.Tour, ids []basetypes.VehicleID) []*tour.Tour {
	out := make([]*tour.Tour, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	sort.Slice(out, func(i, j int) bool { return compareTours(out[i], out[j]) < 0 })
	return out
}

func compareTours(a, b *tour.Tour) int {
	if a.Len() != b.Len() {
		if a.Len() < b.Len() {
			return -1
		}
		return 1
	}
	an, bn := a.AllNodesIter(), b.AllNodesIter()
	for i := range an {
		if an[i] != bn[i] {
			if an[i].Less(bn[i]) {
				return -1
			}
			return 1
		}
	}
	return 0
}

// VerifyConsistency re-checks every structural invariant against the live
// maps; returns the first violation found, or nil. Intended for tests and
// debug builds, not the hot mutation path.
func (s *Schedule) VerifyConsistency() error {
	for id, v := range s.vehicles {
		if v.ID != id {
			return fmt.Errorf("%w: vehicle key %s maps to record with id %s", ErrInconsistent, id, v.ID)
		}
	}
	for _, id := range s.vehicleIDsSorted {
		if !s.IsVehicle(id) {
			return fmt.Errorf("%w: %s listed in vehicleIDsSorted but not in vehicles", ErrInconsistent, id)
		}
	}
	for i := 1; i < len(s.vehicleIDsSorted); i++ {
		if !s.vehicleIDsSorted[i-1].Less(s.vehicleIDsSorted[i]) {
			return fmt.Errorf("%w: vehicleIDsSorted is not strictly increasing", ErrInconsistent)
		}
	}
	for i := 1; i < len(s.dummyIDsSorted); i++ {
		if !s.dummyIDsSorted[i-1].Less(s.dummyIDsSorted[i]) {
			return fmt.Errorf("%w: dummyIDsSorted is not strictly increasing", ErrInconsistent)
		}
	}
	for id := range s.vehicles {
		t, ok := s.tours[id]
		if !ok {
			return fmt.Errorf("%w: vehicle %s has no tour", ErrInconsistent, id)
		}
		nodes := t.AllNodesIter()
		for i := 0; i+1 < len(nodes); i++ {
			if !s.nw.CanReach(nodes[i], nodes[i+1]) {
				return fmt.Errorf("%w: tour of %s has unreachable consecutive pair", ErrInconsistent, id)
			}
		}
		for _, node := range nodes {
			if s.nw.Node(node).IsDepot() {
				continue
			}
			if !s.trainFormations[node].Contains(id) {
				return fmt.Errorf("%w: vehicle %s not in formation of node %s it occupies", ErrInconsistent, id, node)
			}
		}
	}
	for key, entry := range s.depotUsage {
		capacity, allowed := s.nw.CapacityOf(key.Depot, key.Type)
		if allowed && basetypes.VehicleCount(len(entry.Spawned)) > capacity {
			return fmt.Errorf("%w: depot %d/type %d spawned count exceeds capacity", ErrInconsistent, key.Depot, key.Type)
		}
	}
	return nil
}
