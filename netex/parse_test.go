package netex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
	"github.com/rssched/rollingstock-solver/netex"
)

const sampleStopPlaces = `<?xml version="1.0"?>
<PublicationDelivery>
  <dataObjects>
    <CompositeFrame>
      <frames>
        <SiteFrame>
          <stopPlaces>
            <StopPlace id="STOP:A" version="1">
              <Name>Alpha Station</Name>
              <quays>
                <Quay id="STOP:A:Q1"><Side>front</Side></Quay>
                <Quay id="STOP:A:Q2"><Side>back</Side></Quay>
              </quays>
            </StopPlace>
            <StopPlace id="STOP:B" version="1">
              <Name>Beta Station</Name>
            </StopPlace>
          </stopPlaces>
        </SiteFrame>
      </frames>
    </CompositeFrame>
  </dataObjects>
</PublicationDelivery>`

const sampleVehicleTypes = `<?xml version="1.0"?>
<PublicationDelivery>
  <dataObjects>
    <CompositeFrame>
      <frames>
        <ResourceFrame>
          <vehicleTypes>
            <VehicleType id="VT:1" version="1"><Name>Double Deck EMU</Name></VehicleType>
          </vehicleTypes>
        </ResourceFrame>
      </frames>
    </CompositeFrame>
  </dataObjects>
</PublicationDelivery>`

func TestParseStopPlacesReadsNameAndQuaySides(t *testing.T) {
	stops, err := netex.ParseStopPlaces([]byte(sampleStopPlaces))
	require.NoError(t, err)
	require.Len(t, stops, 2)

	require.Equal(t, "STOP:A", stops[0].ID)
	require.Equal(t, "Alpha Station", stops[0].Name)
	require.Equal(t, basetypes.Front, stops[0].QuaySide("STOP:A:Q1"))
	require.Equal(t, basetypes.Back, stops[0].QuaySide("STOP:A:Q2"))
	require.Equal(t, basetypes.Front, stops[0].QuaySide("unknown-quay"))

	require.Equal(t, "Beta Station", stops[1].Name)
}

func TestParseVehicleTypeNames(t *testing.T) {
	types, err := netex.ParseVehicleTypeNames([]byte(sampleVehicleTypes))
	require.NoError(t, err)
	require.Len(t, types, 1)
	require.Equal(t, "VT:1", types[0].ID)
	require.Equal(t, "Double Deck EMU", types[0].Name)
}

func TestMergeLocationsAssignsContiguousIndices(t *testing.T) {
	stops, err := netex.ParseStopPlaces([]byte(sampleStopPlaces))
	require.NoError(t, err)

	lb := locations.NewBuilder()
	ids, next := netex.MergeLocations(lb, basetypes.LocationIdx(0), stops)
	require.Equal(t, basetypes.LocationIdx(2), next)
	require.Equal(t, basetypes.LocationIdx(0), ids["STOP:A"])
	require.Equal(t, basetypes.LocationIdx(1), ids["STOP:B"])
}
