package tour_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/tour"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
	stationC
)

func buildFixtureNetwork(t *testing.T) (*network.Network, map[string]basetypes.NodeIdx) {
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
				Distance:        dist,
				TravelTime:      dur,
				OriginSide:      basetypes.Front,
				DestinationSide: basetypes.Back,
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
		Distance: basetypes.DistanceFromMeters(15_000), Demand: 50, Name: "svc1",
	}
	svc2 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 2}, Kind: basetypes.KindService,
		Origin: stationB, Destination: stationC,
		Departure: base.Add(40 * time.Minute), Arrival: base.Add(60 * time.Minute),
		Distance: basetypes.DistanceFromMeters(15_000), Demand: 40, Name: "svc2",
	}
	svc3 := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 3}, Kind: basetypes.KindService,
		Origin: stationA, Destination: stationC,
		Departure: base.Add(30 * time.Minute), Arrival: base.Add(90 * time.Minute),
		Distance: basetypes.DistanceFromMeters(30_000), Demand: 20, Name: "svc3",
	}

	depotA := &network.Depot{ID: 0, Location: stationA, TotalCapacity: 5,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}
	depotC := &network.Depot{ID: 1, Location: stationC, TotalCapacity: 5,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}

	startNode := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 0},
		Kind: basetypes.KindStartDepot, DepotLocation: stationA, Depot: 0}
	unusedEndAtA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 0},
		Kind: basetypes.KindEndDepot, DepotLocation: stationA, Depot: 0}
	unusedStartAtC := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 1},
		Kind: basetypes.KindStartDepot, DepotLocation: stationC, Depot: 1}
	endNode := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 1},
		Kind: basetypes.KindEndDepot, DepotLocation: stationC, Depot: 1}

	b := network.NewBuilder(locs)
	b.AddNode(svc1)
	b.AddNode(svc2)
	b.AddNode(svc3)
	b.AddDepot(depotA, startNode, unusedEndAtA)
	b.AddDepot(depotC, unusedStartAtC, endNode)

	nw, err := b.Build()
	require.NoError(t, err)

	return nw, map[string]basetypes.NodeIdx{
		"start": startNode.Idx,
		"svc1":  svc1.Idx,
		"svc2":  svc2.Idx,
		"svc3":  svc3.Idx,
		"end":   endNode.Idx,
	}
}

func TestNewRealTourValid(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	tr, err := tour.New(vehicle, []basetypes.NodeIdx{n["start"], n["svc1"], n["svc2"], n["end"]}, nw)
	require.NoError(t, err)
	require.Equal(t, 4, tr.Len())
	first, ok := tr.FirstNonDepot()
	require.True(t, ok)
	require.Equal(t, n["svc1"], first)
}

func TestNewRealTourRejectsBadDepotStructure(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	_, err := tour.New(vehicle, []basetypes.NodeIdx{n["svc1"], n["svc2"], n["end"]}, nw)
	require.ErrorIs(t, err, tour.ErrBadDepotStructure)
}

func TestInsertPathNoConflict(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	tr, err := tour.New(vehicle, []basetypes.NodeIdx{n["start"], n["svc1"], n["end"]}, nw)
	require.NoError(t, err)

	path := tour.NewFromSingleNode(n["svc2"], nw)
	newTour, replaced, err := tr.InsertPath(path)
	require.NoError(t, err)
	require.Nil(t, replaced)
	require.Equal(t, 4, newTour.Len())
}

func TestRemoveMiddleSegment(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	tr, err := tour.New(vehicle, []basetypes.NodeIdx{n["start"], n["svc1"], n["svc2"], n["end"]}, nw)
	require.NoError(t, err)

	shrunk, removed, err := tr.Remove(tour.Segment{First: n["svc1"], Last: n["svc1"]})
	require.NoError(t, err)
	require.NotNil(t, shrunk)
	require.Equal(t, 3, shrunk.Len())
	require.Equal(t, n["svc1"], removed.First())
}

func TestRemoveAllNonDepotYieldsNilTour(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	tr, err := tour.New(vehicle, []basetypes.NodeIdx{n["start"], n["svc1"], n["end"]}, nw)
	require.NoError(t, err)

	shrunk, removed, err := tr.Remove(tour.Segment{First: n["svc1"], Last: n["svc1"]})
	require.NoError(t, err)
	require.Nil(t, shrunk)
	require.Equal(t, n["svc1"], removed.Last())
}

func TestTotalDistanceIncludesDeadHead(t *testing.T) {
	nw, n := buildFixtureNetwork(t)
	vehicle := basetypes.NewVehicleID(1)

	tr, err := tour.New(vehicle, []basetypes.NodeIdx{n["start"], n["svc1"], n["end"]}, nw)
	require.NoError(t, err)

	meters, finite := tr.TotalDistance().Meters()
	require.True(t, finite)
	require.Greater(t, meters, basetypes.Meter(15_000))
}
