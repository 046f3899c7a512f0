package greedy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/greedy"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
)

func buildNetwork(t *testing.T) (*network.Network, *network.VehicleTypeCatalog) {
	t.Helper()

	lb := locations.NewBuilder()
	lb.AddStation(stationA, "A")
	lb.AddStation(stationB, "B")
	for _, from := range []basetypes.LocationIdx{stationA, stationB} {
		for _, to := range []basetypes.LocationIdx{stationA, stationB} {
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
	svc1 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 1}, Kind: basetypes.KindService,
		Origin: stationA, Destination: stationB,
		Departure: base, Arrival: base.Add(20 * time.Minute),
		Distance: basetypes.DistanceFromMeters(15_000), Demand: 30, Name: "svc1",
	}
	svc2 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 2}, Kind: basetypes.KindService,
		Origin: stationB, Destination: stationA,
		Departure: base.Add(40 * time.Minute), Arrival: base.Add(60 * time.Minute),
		Distance: basetypes.DistanceFromMeters(15_000), Demand: 20, Name: "svc2",
	}

	depotA := &network.Depot{ID: 0, Location: stationA, TotalCapacity: 5,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}
	startA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 0},
		Kind: basetypes.KindStartDepot, DepotLocation: stationA, Depot: 0}
	endA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 0},
		Kind: basetypes.KindEndDepot, DepotLocation: stationA, Depot: 0}

	b := network.NewBuilder(locs)
	b.AddNode(svc1)
	b.AddNode(svc2)
	b.AddDepot(depotA, startA, endA)
	nw, err := b.Build()
	require.NoError(t, err)

	catalog := network.NewVehicleTypeCatalog([]network.VehicleType{
		{ID: 0, Name: "T", Seats: 50, Capacity: 80, Length: 80},
	})
	return nw, catalog
}

func TestSolveCoversEveryServiceTrip(t *testing.T) {
	nw, catalog := buildNetwork(t)
	obj := objective.FirstPhase()

	g := greedy.New(nw, catalog, obj)
	result, err := g.Solve()
	require.NoError(t, err)
	require.NotNil(t, result)

	sched := result.Solution()
	for _, svc := range nw.ServiceNodes() {
		require.True(t, sched.IsFullyCovered(svc), "service node %v left uncovered", svc)
	}
}

func TestSolveChainsReachableTripsOntoOneVehicle(t *testing.T) {
	nw, catalog := buildNetwork(t)
	obj := objective.FirstPhase()

	g := greedy.New(nw, catalog, obj)
	result, err := g.Solve()
	require.NoError(t, err)

	sched := result.Solution()
	require.Len(t, sched.VehiclesIter(), 1, "the second trip is reachable from the first and should reuse the same vehicle")
}
