package mincostflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/mincostflow"
	"github.com/rssched/rollingstock-solver/network"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
	stationC
)

func buildInstance(t *testing.T, depotCapacity basetypes.VehicleCount) (*network.Network, *network.VehicleTypeCatalog) {
	t.Helper()

	lb := locations.NewBuilder()
	lb.AddStation(stationA, "A")
	lb.AddStation(stationB, "B")
	lb.AddStation(stationC, "C")
	for _, from := range []basetypes.LocationIdx{stationA, stationB, stationC} {
		for _, to := range []basetypes.LocationIdx{stationA, stationB, stationC} {
			dist := basetypes.DistanceFromMeters(0)
			dur := basetypes.DurationFromSeconds(0)
			if from != to {
				dist = basetypes.DistanceFromMeters(10_000)
				dur = basetypes.DurationFromSeconds(600)
			}
			lb.SetTrip(from, to, locations.DeadHeadTrip{
				Distance: dist, TravelTime: dur,
				OriginSide: basetypes.Front, DestinationSide: basetypes.Back,
			})
		}
	}
	locs, err := lb.Build()
	require.NoError(t, err)

	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	s1 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 1}, Kind: basetypes.KindService,
		Origin: stationA, Destination: stationB,
		Departure: base, Arrival: base.Add(time.Hour),
		Distance: basetypes.DistanceFromMeters(40_000), Demand: 40, Name: "s1",
	}
	s2 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 2}, Kind: basetypes.KindService,
		Origin: stationB, Destination: stationA,
		Departure: base.Add(90 * time.Minute), Arrival: base.Add(150 * time.Minute),
		Distance: basetypes.DistanceFromMeters(40_000), Demand: 40, Name: "s2",
	}

	depotA := &network.Depot{ID: 0, Location: stationA, TotalCapacity: depotCapacity,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}
	startA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 0},
		Kind: basetypes.KindStartDepot, DepotLocation: stationA, Depot: 0}
	endA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 0},
		Kind: basetypes.KindEndDepot, DepotLocation: stationA, Depot: 0}

	b := network.NewBuilder(locs)
	b.AddNode(s1)
	b.AddNode(s2)
	b.AddDepot(depotA, startA, endA)
	nw, err := b.Build()
	require.NoError(t, err)

	catalog := network.NewVehicleTypeCatalog([]network.VehicleType{
		{ID: 0, Name: "T", Seats: 50, Capacity: 80, Length: 80},
	})
	return nw, catalog
}

func TestSolveCoversBothTripsWithOneVehicle(t *testing.T) {
	nw, catalog := buildInstance(t, 1)
	sched, err := mincostflow.Solve(nw, catalog)
	require.NoError(t, err)
	require.Equal(t, 1, sched.NumberOfVehicles())
	require.Equal(t, basetypes.PassengerCount(0), sched.NumberOfUnservedPassengers())
	require.NoError(t, sched.VerifyConsistency())
}

func TestSolveInfeasibleWhenDepotHasNoCapacity(t *testing.T) {
	nw, catalog := buildInstance(t, 0)
	_, err := mincostflow.Solve(nw, catalog)
	require.ErrorIs(t, err, mincostflow.ErrInfeasible)
}
