package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
)

// ShuntingParams carries the instance's global shunting timing parameters.
type ShuntingParams struct {
	MinimalDuration      basetypes.Duration
	DeadHeadTripDuration basetypes.Duration
}

// Instance is everything ingestion produces from one JSON document.
type Instance struct {
	Locations              *locations.Locations
	Network                *network.Network
	Catalog                *network.VehicleTypeCatalog
	Shunting               ShuntingParams
	DefaultFormationLength uint64
}

// Load reads and parses the instance at path.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidInput, path, err)
	}
	return Parse(data)
}

// Parse decodes one JSON instance document.
func Parse(data []byte) (*Instance, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	locMap := make(map[string]basetypes.LocationIdx, len(doc.Locations))
	lb := locations.NewBuilder()
	for i, l := range doc.Locations {
		idx := basetypes.LocationIdx(i)
		locMap[l.ID] = idx
		lb.AddStation(idx, l.Name)
	}

	if err := populateDeadHeadTrips(lb, locMap, doc.DeadHeadTrips); err != nil {
		return nil, err
	}
	locs, err := lb.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	vtMap := make(map[string]basetypes.VehicleTypeIdx, len(doc.VehicleTypes))
	types := make([]network.VehicleType, 0, len(doc.VehicleTypes))
	for i, vt := range doc.VehicleTypes {
		idx := basetypes.VehicleTypeIdx(i)
		vtMap[vt.ID] = idx
		types = append(types, network.VehicleType{
			ID: idx, Name: vt.Name, Seats: vt.Seats, Capacity: vt.Capacity, Length: vt.Length,
		})
	}
	catalog := network.NewVehicleTypeCatalog(types)

	routes, err := resolveRoutes(doc.Routes, locMap)
	if err != nil {
		return nil, err
	}

	nb := network.NewBuilder(locs)

	for i, depot := range doc.Depots {
		depotIdx := basetypes.DepotIdx(i)
		loc, ok := locMap[depot.Location]
		if !ok {
			return nil, fmt.Errorf("%w: depot %s references unknown location %s", ErrInvalidInput, depot.ID, depot.Location)
		}
		d, err := buildDepot(depotIdx, loc, depot, vtMap)
		if err != nil {
			return nil, err
		}
		startNode := &network.Node{
			Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: uint32(i)},
			Kind: basetypes.KindStartDepot, DepotLocation: loc, Depot: depotIdx,
		}
		endNode := &network.Node{
			Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: uint32(i)},
			Kind: basetypes.KindEndDepot, DepotLocation: loc, Depot: depotIdx,
		}
		nb.AddDepot(d, startNode, endNode)
	}

	for i, st := range doc.ServiceTrips {
		route, ok := routes[st.Route]
		if !ok {
			return nil, fmt.Errorf("%w: service trip %s references unknown route %s", ErrInvalidInput, st.ID, st.Route)
		}
		departure, err := time.Parse(time.RFC3339, st.Departure)
		if err != nil {
			return nil, fmt.Errorf("%w: service trip %s has invalid departure %q: %v", ErrInvalidInput, st.ID, st.Departure, err)
		}
		node := &network.Node{
			Idx:         basetypes.NodeIdx{Kind: basetypes.KindService, Num: uint32(i)},
			Kind:        basetypes.KindService,
			Origin:      route.origin,
			Destination: route.destination,
			Departure:   departure,
			Arrival:     departure.Add(route.duration.Std()),
			Distance:    route.distance,
			Demand:      st.Passengers,
			Name:        st.Name,
		}
		nb.AddNode(node)
	}

	nw, err := nb.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &Instance{
		Locations: locs,
		Network:   nw,
		Catalog:   catalog,
		Shunting: ShuntingParams{
			MinimalDuration:      basetypes.DurationFromSeconds(doc.Parameters.Shunting.MinimalDuration),
			DeadHeadTripDuration: basetypes.DurationFromSeconds(doc.Parameters.Shunting.DeadHeadTripDuration),
		},
		DefaultFormationLength: doc.Parameters.Defaults.MaximalFormationLength,
	}, nil
}

func populateDeadHeadTrips(lb *locations.Builder, locMap map[string]basetypes.LocationIdx, dh deadHeadTripsJSON) error {
	n := len(dh.Indices)
	if len(dh.Durations) != n || len(dh.Distances) != n {
		return fmt.Errorf("%w: deadHeadTrips matrix dimensions do not match indices", ErrInvalidInput)
	}
	for i, originID := range dh.Indices {
		origin, ok := locMap[originID]
		if !ok {
			return fmt.Errorf("%w: deadHeadTrips references unknown location %s", ErrInvalidInput, originID)
		}
		if len(dh.Durations[i]) != n || len(dh.Distances[i]) != n {
			return fmt.Errorf("%w: deadHeadTrips row %s is not square", ErrInvalidInput, originID)
		}
		for j, destID := range dh.Indices {
			dest, ok := locMap[destID]
			if !ok {
				return fmt.Errorf("%w: deadHeadTrips references unknown location %s", ErrInvalidInput, destID)
			}
			lb.SetTrip(origin, dest, locations.DeadHeadTrip{
				Distance:        basetypes.DistanceFromMeters(dh.Distances[i][j]),
				TravelTime:      basetypes.DurationFromSeconds(dh.Durations[i][j]),
				OriginSide:      basetypes.Front,
				DestinationSide: basetypes.Front,
			})
		}
	}
	return nil
}

type resolvedRoute struct {
	origin, destination basetypes.LocationIdx
	distance            basetypes.Distance
	duration            basetypes.Duration
}

func resolveRoutes(rs []routeJSON, locMap map[string]basetypes.LocationIdx) (map[string]resolvedRoute, error) {
	out := make(map[string]resolvedRoute, len(rs))
	for _, r := range rs {
		origin, ok := locMap[r.Origin]
		if !ok {
			return nil, fmt.Errorf("%w: route %s references unknown origin %s", ErrInvalidInput, r.ID, r.Origin)
		}
		destination, ok := locMap[r.Destination]
		if !ok {
			return nil, fmt.Errorf("%w: route %s references unknown destination %s", ErrInvalidInput, r.ID, r.Destination)
		}
		out[r.ID] = resolvedRoute{
			origin: origin, destination: destination,
			distance: basetypes.DistanceFromMeters(r.Distance),
			duration: basetypes.DurationFromSeconds(r.Duration),
		}
	}
	return out, nil
}

// buildDepot derives a network.Depot from its wire representation.
// TotalCapacity is not a field of the wire format; it is the sum of the
// depot's per-type upper bounds, or unbounded if any per-type bound is
// itself unbounded (nil upperBound), since a finite sum alongside an
// unbounded member would silently cap what the instance declared open.
func buildDepot(idx basetypes.DepotIdx, loc basetypes.LocationIdx, d depotJSON, vtMap map[string]basetypes.VehicleTypeIdx) (*network.Depot, error) {
	allowed := make(map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount, len(d.Capacities))
	var total uint32
	unbounded := false
	for _, c := range d.Capacities {
		vt, ok := vtMap[c.VehicleType]
		if !ok {
			return nil, fmt.Errorf("%w: depot %s references unknown vehicle type %s", ErrInvalidInput, d.ID, c.VehicleType)
		}
		if c.UpperBound == nil {
			allowed[vt] = nil
			unbounded = true
			continue
		}
		bound := *c.UpperBound
		allowed[vt] = &bound
		total += bound
	}
	if unbounded {
		total = math.MaxUint32
	}
	return &network.Depot{ID: idx, Location: loc, TotalCapacity: total, AllowedTypes: allowed}, nil
}
