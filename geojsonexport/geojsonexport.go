package geojsonexport

import (
	"math"

	geojson "github.com/paulmach/go.geojson"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
)

// radius is the unit-circle radius stations are placed on; purely a
// layout constant, not a geographic unit.
const radius = 1.0

// Network renders every station in nw's location table as a Point feature,
// and every depot as a second Point feature marking its station with its
// capacity, then marshals the result as GeoJSON.
func Network(nw *network.Network) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	locs := nw.Locations()
	stations := locs.StationIndices()
	n := len(stations)
	positions := make(map[basetypes.LocationIdx][2]float64, n)

	for i, idx := range stations {
		lon, lat := circlePoint(i, n)
		positions[idx] = [2]float64{lon, lat}

		f := geojson.NewPointFeature([]float64{lon, lat})
		f.Properties["kind"] = "station"
		f.Properties["id"] = uint32(idx)
		f.Properties["name"] = locs.Name(idx)
		fc.AddFeature(f)
	}

	for _, depotID := range nw.Depots() {
		depot, ok := nw.Depot(depotID)
		if !ok {
			continue
		}
		pos, ok := positions[depot.Location]
		if !ok {
			continue
		}

		f := geojson.NewPointFeature([]float64{pos[0], pos[1]})
		f.Properties["kind"] = "depot"
		f.Properties["id"] = uint32(depotID)
		f.Properties["location"] = uint32(depot.Location)
		f.Properties["totalCapacity"] = depot.TotalCapacity
		f.Properties["allowedTypes"] = allowedTypeIDs(depot)
		fc.AddFeature(f)
	}

	return fc.MarshalJSON()
}

func allowedTypeIDs(depot *network.Depot) []uint32 {
	ids := make([]uint32, 0, len(depot.AllowedTypes))
	for vt := range depot.AllowedTypes {
		ids = append(ids, uint32(vt))
	}
	return ids
}

func circlePoint(i, n int) (lon, lat float64) {
	if n <= 1 {
		return 0, 0
	}
	theta := 2 * math.Pi * float64(i) / float64(n)
	return radius * math.Cos(theta), radius * math.Sin(theta)
}
