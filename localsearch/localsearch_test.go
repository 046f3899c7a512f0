package localsearch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/localsearch"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/rscache"
	"github.com/rssched/rollingstock-solver/schedule"
)

// memCache is an in-process stand-in for rscache.Cache, avoiding a live
// Redis dependency in this test while exercising the exact NeighborCache
// interface TakeAnyParallelRecursion.WithNeighborCache consumes.
type memCache struct {
	values map[string]*objective.ObjectiveValue
	hits   int
}

func newMemCache() *memCache { return &memCache{values: make(map[string]*objective.ObjectiveValue)} }

func (c *memCache) Get(_ context.Context, hash string) (*objective.ObjectiveValue, bool) {
	v, ok := c.values[hash]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *memCache) Set(_ context.Context, hash string, value *objective.ObjectiveValue) {
	c.values[hash] = value
}

const (
	stationA basetypes.LocationIdx = iota
	stationB
)

// buildFixture returns a schedule with no real vehicle and one dummy tour
// covering svc, so spawning a vehicle of the only type to replace the
// dummy (which serves svc's passengers) is a valid, objective-reducing move.
func buildFixture(t *testing.T) *schedule.Schedule {
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
	svc := &network.Node{
		Idx: basetypes.NodeIdx{Kind: basetypes.KindService, Num: 1}, Kind: basetypes.KindService,
		Origin: stationA, Destination: stationB,
		Departure: base, Arrival: base.Add(20 * time.Minute),
		Distance: basetypes.DistanceFromMeters(15_000), Demand: 30, Name: "svc",
	}

	depotA := &network.Depot{ID: 0, Location: stationA, TotalCapacity: 2,
		AllowedTypes: map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount{0: nil}}
	startA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindStartDepot, Num: 0},
		Kind: basetypes.KindStartDepot, DepotLocation: stationA, Depot: 0}
	endA := &network.Node{Idx: basetypes.NodeIdx{Kind: basetypes.KindEndDepot, Num: 0},
		Kind: basetypes.KindEndDepot, DepotLocation: stationA, Depot: 0}

	b := network.NewBuilder(locs)
	b.AddNode(svc)
	b.AddDepot(depotA, startA, endA)
	nw, err := b.Build()
	require.NoError(t, err)

	catalog := network.NewVehicleTypeCatalog([]network.VehicleType{
		{ID: 0, Name: "T", Seats: 50, Capacity: 80, Length: 80},
	})

	empty := schedule.Empty(catalog, nw)
	withDummy, _, err := empty.SpawnDummyTour([]basetypes.NodeIdx{svc.Idx})
	require.NoError(t, err)
	return withDummy
}

func TestMinimizerImprovesOnDummyCover(t *testing.T) {
	s := buildFixture(t)
	obj := objective.FirstPhase()
	current := obj.Evaluate(s)

	m := localsearch.NewMinimizer(obj)
	improved := m.Improve(current)
	require.NotNil(t, improved)
	require.True(t, improved.ObjectiveValue().Less(current.ObjectiveValue()))
}

func TestTakeFirstRecursionFindsImprovement(t *testing.T) {
	s := buildFixture(t)
	obj := objective.FirstPhase()
	current := obj.Evaluate(s)

	imp := localsearch.NewTakeFirstRecursion(1, 3, obj)
	improved := imp.Improve(current)
	require.NotNil(t, improved)
	require.True(t, improved.ObjectiveValue().Less(current.ObjectiveValue()))
}

func TestTakeAnyParallelRecursionFindsImprovement(t *testing.T) {
	s := buildFixture(t)
	obj := objective.FirstPhase()
	current := obj.Evaluate(s)

	imp := localsearch.NewTakeAnyParallelRecursion(1, 3, obj)
	improved := imp.Improve(current)
	require.NotNil(t, improved)
	require.True(t, improved.ObjectiveValue().Less(current.ObjectiveValue()))
}

func TestTakeAnyParallelRecursionUsesNeighborCache(t *testing.T) {
	s := buildFixture(t)
	obj := objective.FirstPhase()
	current := obj.Evaluate(s)

	cache := newMemCache()
	imp := localsearch.NewTakeAnyParallelRecursion(1, 3, obj).
		WithNeighborCache(cache, rscache.HashSchedule)

	improved := imp.Improve(current)
	require.NotNil(t, improved)
	require.True(t, improved.ObjectiveValue().Less(current.ObjectiveValue()))
	require.NotEmpty(t, cache.values, "evaluated neighbors must populate the cache")

	// Re-running against the now-warm cache must reach the same verdict,
	// and must actually hit the entries populated by the first run.
	cache.hits = 0
	again := imp.Improve(current)
	require.NotNil(t, again)
	require.True(t, again.ObjectiveValue().Less(current.ObjectiveValue()))
	require.Greater(t, cache.hits, 0, "second run should hit cache entries from the first")
}

func TestMinimizerReturnsNilAtLocalOptimum(t *testing.T) {
	nw, catalog := trivialEmptyFixture(t)
	empty := schedule.Empty(catalog, nw)

	obj := objective.FirstPhase()
	current := obj.Evaluate(empty)

	m := localsearch.NewMinimizer(obj)
	require.Nil(t, m.Improve(current))
}

func trivialEmptyFixture(t *testing.T) (*network.Network, *network.VehicleTypeCatalog) {
	t.Helper()
	lb := locations.NewBuilder()
	lb.AddStation(stationA, "A")
	lb.SetTrip(stationA, stationA, locations.DeadHeadTrip{
		Distance: basetypes.DistanceFromMeters(0), TravelTime: basetypes.DurationFromSeconds(0),
		OriginSide: basetypes.Front, DestinationSide: basetypes.Back,
	})
	locs, err := lb.Build()
	require.NoError(t, err)

	b := network.NewBuilder(locs)
	nw, err := b.Build()
	require.NoError(t, err)

	catalog := network.NewVehicleTypeCatalog([]network.VehicleType{
		{ID: 0, Name: "T", Seats: 50, Capacity: 80, Length: 80},
	})
	return nw, catalog
}
