package rscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/rscache"
	"github.com/rssched/rollingstock-solver/schedule"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
)

func buildSchedule(t *testing.T) *schedule.Schedule {
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

	depotA := &network.Depot{ID: 0, Location: stationA, TotalCapacity: 5,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}
	startA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 0},
		Kind: basetypes.KindStartDepot, DepotLocation: stationA, Depot: 0}
	endA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 0},
		Kind: basetypes.KindEndDepot, DepotLocation: stationA, Depot: 0}

	b := network.NewBuilder(locs)
	b.AddNode(svc1)
	b.AddDepot(depotA, startA, endA)
	nw, err := b.Build()
	require.NoError(t, err)

	catalog := network.NewVehicleTypeCatalog([]network.VehicleType{
		{ID: 0, Name: "T", Seats: 50, Capacity: 80, Length: 80},
	})

	s := schedule.Empty(catalog, nw)
	s, _, err = s.SpawnVehicleForPath(0, []basetypes.NodeIdx{svc1.Idx})
	require.NoError(t, err)
	return s
}

func TestHashScheduleIsStableAndDistinguishing(t *testing.T) {
	s1 := buildSchedule(t)
	s2 := buildSchedule(t)
	require.Equal(t, rscache.HashSchedule(s1), rscache.HashSchedule(s2),
		"structurally identical schedules must hash identically")

	empty := schedule.Empty(s1.VehicleTypes(), s1.Network())
	require.NotEqual(t, rscache.HashSchedule(s1), rscache.HashSchedule(empty))
}

func TestCacheGetMissesGracefullyWithoutServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	defer client.Close()
	cache := rscache.New(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, ok := cache.Get(ctx, "deadbeef")
	require.False(t, ok)

	cache.Set(ctx, "deadbeef", objective.ObjectiveValueFromFloats([]float64{1, 2, 3}))
}
