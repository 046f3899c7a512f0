package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/schedule"
)

func TestNeighborhoodOfEmptyScheduleIsEmpty(t *testing.T) {
	nw, catalog, _ := buildFixture(t)
	s := schedule.Empty(catalog, nw)

	require.Empty(t, s.Neighborhood())
}

func TestNeighborhoodIncludesSpawnForDummy(t *testing.T) {
	nw, catalog, n := buildFixture(t)
	s := schedule.Empty(catalog, nw)

	ns, id, err := s.SpawnDummyTour([]basetypes.NodeIdx{n["svc1"]})
	require.NoError(t, err)
	require.True(t, ns.IsDummy(id))

	var sawSpawn bool
	for _, c := range ns.Neighborhood() {
		require.NoError(t, c.Schedule.VerifyConsistency())
		if c.Move == schedule.MoveSpawnForDummy {
			sawSpawn = true
			require.Equal(t, ns.NumberOfDummyTours()-1, c.Schedule.NumberOfDummyTours())
			require.Equal(t, ns.NumberOfVehicles()+1, c.Schedule.NumberOfVehicles())
		}
	}
	require.True(t, sawSpawn)

	// receiver schedule is untouched
	require.Equal(t, 1, ns.NumberOfDummyTours())
	require.Equal(t, 0, ns.NumberOfVehicles())
}

func TestNeighborhoodIncludesRemoveAndRedistribute(t *testing.T) {
	nw, catalog, n := buildFixture(t)
	s := schedule.Empty(catalog, nw)

	ns, id, err := s.SpawnVehicleForPath(0, []basetypes.NodeIdx{n["svc1"]})
	require.NoError(t, err)

	var sawRemoval bool
	for _, c := range ns.Neighborhood() {
		require.NoError(t, c.Schedule.VerifyConsistency())
		if c.Move == schedule.MoveRemoveAndRedistribute {
			sawRemoval = true
			require.False(t, c.Schedule.IsVehicle(id))
			require.Equal(t, 1, c.Schedule.NumberOfDummyTours())
		}
	}
	require.True(t, sawRemoval)
}

func TestNeighborhoodIncludesReassignSegmentBetweenVehicles(t *testing.T) {
	nw, catalog, n := buildFixture(t)
	s := schedule.Empty(catalog, nw)

	s1, _, err := s.SpawnVehicleForPath(0, []basetypes.NodeIdx{n["svc1"], n["svc2"]})
	require.NoError(t, err)
	s2, _, err := s1.SpawnVehicleForPath(0, []basetypes.NodeIdx{n["startC"], n["endC"]})
	require.NoError(t, err)

	var sawReassign bool
	for _, c := range s2.Neighborhood() {
		require.NoError(t, c.Schedule.VerifyConsistency())
		if c.Move == schedule.MoveReassignSegment {
			sawReassign = true
		}
	}
	require.True(t, sawReassign)
}
