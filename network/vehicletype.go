// File: vehicletype.go
// Role: VehicleType catalog, totally ordered by (seats, capacity, length, id).
//
// Grounded on: original_source model/src/vehicle_types.rs (VehicleTypes,
// VehicleType, best_for).
package network

import (
	"sort"

	"github.com/rssched/rollingstock-solver/basetypes"
)

// VehicleType describes a class of rolling stock.
type VehicleType struct {
	ID       basetypes.VehicleTypeIdx
	Name     string
	Seats    basetypes.PassengerCount
	Capacity basetypes.PassengerCount
	Length   basetypes.Meter
}

// VehicleTypeCatalog indexes a fixed set of VehicleType values and keeps
// them sorted by (seats, capacity, length, id), matching "types are
// totally ordered by (seats, capacity, length, id)".
type VehicleTypeCatalog struct {
	byID       map[basetypes.VehicleTypeIdx]VehicleType
	idsSorted  []basetypes.VehicleTypeIdx
}

// NewVehicleTypeCatalog builds a catalog from a slice of vehicle types.
func NewVehicleTypeCatalog(types []VehicleType) *VehicleTypeCatalog {
	byID := make(map[basetypes.VehicleTypeIdx]VehicleType, len(types))
	ids := make([]basetypes.VehicleTypeIdx, 0, len(types))
	for _, vt := range types {
		byID[vt.ID] = vt
		ids = append(ids, vt.ID)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := byID[ids[i]], byID[ids[j]]
		if a.Seats != b.Seats {
			return a.Seats < b.Seats
		}
		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return a.ID < b.ID
	})
	return &VehicleTypeCatalog{byID: byID, idsSorted: ids}
}

// Get looks up a vehicle type by id.
func (c *VehicleTypeCatalog) Get(id basetypes.VehicleTypeIdx) (VehicleType, bool) {
	vt, ok := c.byID[id]
	return vt, ok
}

// Iter returns all vehicle type ids, ascending by the catalog's total order.
func (c *VehicleTypeCatalog) Iter() []basetypes.VehicleTypeIdx {
	out := make([]basetypes.VehicleTypeIdx, len(c.idsSorted))
	copy(out, c.idsSorted)
	return out
}

// BestFor returns the vehicle type with the fewest seats that still covers
// demand, falling back to the largest type if none suffices.
func (c *VehicleTypeCatalog) BestFor(demand basetypes.PassengerCount) basetypes.VehicleTypeIdx {
	for _, id := range c.idsSorted {
		if c.byID[id].Seats >= demand {
			return id
		}
	}
	return c.idsSorted[len(c.idsSorted)-1]
}
