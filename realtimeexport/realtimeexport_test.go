package realtimeexport_test

import (
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/realtimeexport"
	"github.com/rssched/rollingstock-solver/schedule"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
)

func buildSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()

	lb := locations.NewBuilder()
	lb.AddStation(stationA, "Alpha")
	lb.AddStation(stationB, "Beta")
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

	s := schedule.Empty(catalog, nw)
	s, _, err = s.SpawnVehicleForPath(0, []basetypes.NodeIdx{svc1.Idx})
	require.NoError(t, err)
	s, _, err = s.SpawnDummyTour([]basetypes.NodeIdx{svc2.Idx})
	require.NoError(t, err)
	return s
}

func TestFeedMessageHasOneTripUpdatePerTour(t *testing.T) {
	s := buildSchedule(t)

	msg := realtimeexport.FeedMessage(s, 1_767_000_000)
	require.Equal(t, "2.0", msg.Header.GetGtfsRealtimeVersion())
	require.Len(t, msg.Entity, 2)

	var sawScheduled, sawCancelled bool
	for _, e := range msg.Entity {
		require.NotNil(t, e.TripUpdate)
		require.Len(t, e.TripUpdate.StopTimeUpdate, 1)
		switch e.TripUpdate.Trip.GetScheduleRelationship() {
		case gtfs.TripDescriptor_SCHEDULED:
			sawScheduled = true
		case gtfs.TripDescriptor_CANCELED:
			sawCancelled = true
		}
	}
	require.True(t, sawScheduled, "real vehicle's tour should be SCHEDULED")
	require.True(t, sawCancelled, "dummy tour's unserved trip should be CANCELED")
}

func TestMarshalAndMarshalTextRoundTrip(t *testing.T) {
	s := buildSchedule(t)
	msg := realtimeexport.FeedMessage(s, 1_767_000_000)

	bin, err := realtimeexport.Marshal(msg)
	require.NoError(t, err)
	require.NotEmpty(t, bin)

	text, err := realtimeexport.MarshalText(msg)
	require.NoError(t, err)
	require.Contains(t, string(text), "trip_update")
}
