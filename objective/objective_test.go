package objective_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/schedule"
)

const (
	stationA basetypes.LocationIdx = iota
	stationB
)

func buildFixture(t *testing.T) (*network.Network, *network.VehicleTypeCatalog, basetypes.NodeIdx) {
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
	return nw, catalog, svc.Idx
}

func TestFirstPhasePrefersFewerUnservedPassengers(t *testing.T) {
	nw, catalog, svc := buildFixture(t)
	empty := schedule.Empty(catalog, nw)
	covered, _, err := empty.SpawnVehicleForPath(0, []basetypes.NodeIdx{svc})
	require.NoError(t, err)

	obj := objective.FirstPhase()
	evEmpty := obj.Evaluate(empty)
	evCovered := obj.Evaluate(covered)

	require.True(t, evCovered.Less(evEmpty))
}

func TestBaseValueZeroIsIdentity(t *testing.T) {
	z := objective.Zero()
	v := objective.Integer(5)
	require.Equal(t, 0, z.Add(v).Compare(v))
	require.Equal(t, 0, v.Add(z).Compare(v))
}

func TestBaseValueMaximumAbsorbs(t *testing.T) {
	m := objective.Maximum()
	v := objective.Integer(1_000_000)
	require.Equal(t, 0, m.Add(v).Compare(m))
	require.Equal(t, 1, m.Compare(v))
	require.Equal(t, -1, v.Compare(m))
}

func TestCoefficientMulPreservesIntegerUnderFloatCoefficient(t *testing.T) {
	c := objective.FloatCoefficient(2.5)
	v := objective.Integer(10)
	require.Equal(t, objective.Integer(25).String(), c.Mul(v).String())
}

func TestLevelStringOmitsUnitCoefficient(t *testing.T) {
	l := objective.NewLevel(objective.Summand[int]{
		Coefficient: objective.IntegerCoefficient(1),
		Indicator:   constIndicator{name: "x"},
	})
	require.Equal(t, "x", l.String())
}

type constIndicator struct{ name string }

func (constIndicator) Evaluate(int) objective.BaseValue { return objective.Zero() }
func (c constIndicator) Name() string                   { return c.name }
