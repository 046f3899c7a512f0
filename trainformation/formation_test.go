package trainformation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/trainformation"
)

func TestAddRemoveReplace(t *testing.T) {
	v1 := basetypes.NewVehicleID(1)
	v2 := basetypes.NewVehicleID(2)
	v3 := basetypes.NewVehicleID(3)

	f := trainformation.Empty()
	f = f.AddAtTail(trainformation.Member{ID: v1, Seats: 100, Capacity: 150})
	f = f.AddAtTail(trainformation.Member{ID: v2, Seats: 80, Capacity: 120})

	require.Equal(t, 2, f.Len())
	require.Equal(t, basetypes.PassengerCount(180), f.Seats())
	require.Equal(t, basetypes.PassengerCount(270), f.Capacity())
	require.Equal(t, []basetypes.VehicleID{v1, v2}, f.Ids())

	replaced, err := f.Replace(v1, trainformation.Member{ID: v3, Seats: 90, Capacity: 140})
	require.NoError(t, err)
	require.Equal(t, []basetypes.VehicleID{v3, v2}, replaced.Ids())

	_, err = f.Replace(v3, trainformation.Member{ID: v1, Seats: 0, Capacity: 0})
	require.ErrorIs(t, err, trainformation.ErrNotInFormation)

	shrunk, err := f.Remove(v1)
	require.NoError(t, err)
	require.Equal(t, 1, shrunk.Len())
	require.False(t, shrunk.Contains(v1))

	_, err = shrunk.Remove(v1)
	require.ErrorIs(t, err, trainformation.ErrNotInFormation)
}
